// Package ffmpeg adapts ffmpeg/ffprobe to the VideoTool port using the
// ffmpeg-go command builder.
package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"ytshorts/internal/types"
)

// ErrEncodeFailed wraps every failure reported by the external encoder.
var ErrEncodeFailed = errors.New("encode failed")

const fallbackThreads = 4

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// probeResult mirrors the ffprobe JSON fields we read.
type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (a *Adapter) Probe(ctx context.Context, path string) (types.MediaInfo, error) {
	if err := ctx.Err(); err != nil {
		return types.MediaInfo{}, err
	}
	out, err := ffmpeggo.Probe(path)
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	var pr probeResult
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		return types.MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	sec, err := strconv.ParseFloat(pr.Format.Duration, 64)
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("parse duration %q: %w", pr.Format.Duration, err)
	}

	info := types.MediaInfo{Duration: time.Duration(sec * float64(time.Second))}
	for _, s := range pr.Streams {
		if s.CodecType == "video" {
			info.Width = s.Width
			info.Height = s.Height
			break
		}
	}
	if info.Width == 0 || info.Height == 0 {
		return types.MediaInfo{}, fmt.Errorf("no video stream found in %s", path)
	}
	return info, nil
}

func (a *Adapter) RenderSegment(ctx context.Context, in string, seg types.Segment, crop types.CropRect, res types.Resolution, fps int, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stream := renderStream(in, seg, crop, res, fps, out)
	if err := stream.Run(); err != nil {
		return fmt.Errorf("%w: %v (command: ffmpeg %s)", ErrEncodeFailed, err, strings.Join(stream.GetArgs(), " "))
	}
	return nil
}

// renderStream builds the encode graph for one segment. The filters
// apply to the video stream only, so the input is split and the audio
// stream mapped into the output alongside the filtered video.
func renderStream(in string, seg types.Segment, crop types.CropRect, res types.Resolution, fps int, out string) *ffmpeggo.Stream {
	input := ffmpeggo.Input(in, ffmpeggo.KwArgs{
		"ss": fmtSeconds(seg.Start),
		"to": fmtSeconds(seg.End),
	})
	video := input.Video().
		Filter("crop", ffmpeggo.Args{
			fmt.Sprintf("%d:%d:%d:%d", crop.Width(), crop.Height(), crop.X1, crop.Y1),
		}).
		Filter("scale", ffmpeggo.Args{
			fmt.Sprintf("%d:%d", res.Width, res.Height),
		})
	audio := input.Audio()
	return ffmpeggo.Output([]*ffmpeggo.Stream{video, audio}, out, ffmpeggo.KwArgs{
		"c:v":     "libx264",
		"c:a":     "aac",
		"r":       fps,
		"preset":  "veryfast",
		"crf":     18,
		"threads": encodeThreads(),
	}).OverWriteOutput()
}

func encodeThreads() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return fallbackThreads
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
