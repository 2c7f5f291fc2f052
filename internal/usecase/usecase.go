package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"ytshorts/internal/domain/geometry"
	"ytshorts/internal/ports"
	"ytshorts/internal/types"
)

type Deps struct {
	Video ports.VideoTool
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	SourcePath string
	// Media is the probe result for SourcePath; the source is opened once
	// after download and its metadata travels with the run.
	Media      types.MediaInfo
	Segments   []types.Segment
	Aspect     types.AspectRatio
	Resolution types.Resolution
	FPS        int
	OutDir     string
	Prefix     string
	Logf       func(format string, args ...any)
}

type Result struct {
	Artifacts []types.Artifact
}

// Run renders one output file per segment, in spec order. The crop
// window is computed once from the source pixel size and shared by every
// segment. Processing is sequential and fails fast: the first render
// error aborts the run and earlier outputs stay on disk.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	crop := geometry.CenterCrop(in.Media.Width, in.Media.Height, in.Aspect)
	logf("source %dx%d, crop window %dx%d at (%d,%d)",
		in.Media.Width, in.Media.Height, crop.Width(), crop.Height(), crop.X1, crop.Y1)

	var res Result
	for i, seg := range in.Segments {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		out := filepath.Join(in.OutDir, fmt.Sprintf("%s_part%d.mp4", in.Prefix, i+1))
		logf("segment %d/%d: %s -> %s", i+1, len(in.Segments), seg.Start, seg.End)
		if err := u.d.Video.RenderSegment(ctx, in.SourcePath, seg, crop, in.Resolution, in.FPS, out); err != nil {
			return Result{}, fmt.Errorf("segment %d: %w", i+1, err)
		}
		res.Artifacts = append(res.Artifacts, types.Artifact{
			Index:   i + 1,
			Segment: seg,
			Path:    out,
		})
	}
	return res, nil
}
