package ports

import (
	"context"

	"ytshorts/internal/types"
)

// VideoTool is the narrow contract against the external media toolkit.
type VideoTool interface {
	// Probe opens the file once and reports its duration and pixel size.
	Probe(ctx context.Context, path string) (types.MediaInfo, error)
	// RenderSegment extracts seg from in, applies the crop window, scales
	// to the target resolution and encodes the result to out.
	RenderSegment(ctx context.Context, in string, seg types.Segment, crop types.CropRect, res types.Resolution, fps int, out string) error
}

// Downloader fetches a remote video into destDir and returns the local
// file path.
type Downloader interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}
