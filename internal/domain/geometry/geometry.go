// Package geometry resolves the target frame shape: aspect-ratio and
// resolution strings, and the centered crop window that maps an arbitrary
// source frame onto a target ratio.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"ytshorts/internal/types"
)

var (
	ErrInvalidRatio      = errors.New("invalid aspect ratio")
	ErrInvalidResolution = errors.New("invalid resolution")
)

var (
	ratioRe      = regexp.MustCompile(`^(\d+)\s*:\s*(\d+)$`)
	resolutionRe = regexp.MustCompile(`^(\d+)x(\d+)$`)
)

// ParseRatio parses a "W:H" aspect string, allowing spaces around the
// colon. Both components must be positive.
func ParseRatio(s string) (types.AspectRatio, error) {
	m := ratioRe.FindStringSubmatch(s)
	if m == nil {
		return types.AspectRatio{}, fmt.Errorf("%w: %q (expected e.g. 9:16 or 16:9)", ErrInvalidRatio, s)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w <= 0 || h <= 0 {
		return types.AspectRatio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	return types.AspectRatio{W: w, H: h}, nil
}

// ResolveResolution returns the explicit "WxH" resolution when s is
// non-empty, otherwise the default keyed on the aspect ratio: 9:16 maps
// to 1080x1920, everything else to 1920x1080. The two-case default is
// deliberate; it does not generalize to arbitrary ratios.
func ResolveResolution(s string, aspect types.AspectRatio) (types.Resolution, error) {
	if s != "" {
		m := resolutionRe.FindStringSubmatch(s)
		if m == nil {
			return types.Resolution{}, fmt.Errorf("%w: %q (expected e.g. 1080x1920)", ErrInvalidResolution, s)
		}
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		if w <= 0 || h <= 0 {
			return types.Resolution{}, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
		}
		return types.Resolution{Width: w, Height: h}, nil
	}
	if aspect == (types.AspectRatio{W: 9, H: 16}) {
		return types.Resolution{Width: 1080, Height: 1920}, nil
	}
	return types.Resolution{Width: 1920, Height: 1080}, nil
}

// CenterCrop computes the crop window that brings a w x h source frame to
// the target aspect ratio, centered on the longer axis. When the source
// already matches within 1e-6 the full frame is returned.
func CenterCrop(w, h int, aspect types.AspectRatio) types.CropRect {
	target := float64(aspect.W) / float64(aspect.H)
	current := float64(w) / float64(h)

	if math.Abs(current-target) < 1e-6 {
		return types.CropRect{X1: 0, Y1: 0, X2: w, Y2: h}
	}
	if current > target {
		// source is relatively wider: keep full height, narrow width
		newW := int(float64(h) * target)
		x1 := (w - newW) / 2
		return types.CropRect{X1: x1, Y1: 0, X2: x1 + newW, Y2: h}
	}
	// source is relatively taller: keep full width, shorten height
	newH := int(float64(w) / target)
	y1 := (h - newH) / 2
	return types.CropRect{X1: 0, Y1: y1, X2: w, Y2: y1 + newH}
}
