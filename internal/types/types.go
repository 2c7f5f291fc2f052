package types

import "time"

// Segment is a validated, duration-clamped time range to cut from the
// source video. Invariant: 0 <= Start < End.
type Segment struct {
	Start time.Duration
	End   time.Duration
}

// AspectRatio is the target width:height proportion of the output frame,
// not a pixel size. Both components are positive.
type AspectRatio struct {
	W int
	H int
}

// Resolution is the literal output frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// CropRect is a centered crop window inside the source frame, spanning
// pixels [X1,X2) x [Y1,Y2).
type CropRect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

func (r CropRect) Width() int  { return r.X2 - r.X1 }
func (r CropRect) Height() int { return r.Y2 - r.Y1 }

// MediaInfo is what a single probe of the source file yields.
type MediaInfo struct {
	Duration time.Duration
	Width    int
	Height   int
}

// Artifact is one produced output file. Index is the 1-based position of
// its segment in spec order.
type Artifact struct {
	Index   int
	Segment Segment
	Path    string
}
