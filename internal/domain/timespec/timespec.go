// Package timespec parses the time-range syntax accepted on the command
// line and the web form: comma-separated ranges, where a range is either
// "start:end" (both plain seconds) or "start-end" (each side a plain
// number or H:MM[:SS] timestamp).
package timespec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ytshorts/internal/types"
)

var (
	ErrInvalidTime    = errors.New("invalid time format")
	ErrInvalidSegment = errors.New("invalid segment")
)

var (
	plainSecondsRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	clockRe        = regexp.MustCompile(`^(\d+):(\d{1,2})(?::(\d{1,2}))?$`)
)

// ParseTime converts one timestamp token into an offset. Plain decimal
// numbers are seconds; otherwise the token must be H:MM[:SS] with hours
// required and seconds defaulting to 0. Minute/second values are not
// range-checked.
func ParseTime(token string) (time.Duration, error) {
	if plainSecondsRe.MatchString(token) {
		sec, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, token)
		}
		return secondsToDuration(sec), nil
	}
	m := clockRe.FindStringSubmatch(token)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, token)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	ss := 0
	if m[3] != "" {
		ss, _ = strconv.Atoi(m[3])
	}
	return secondsToDuration(float64(h*3600 + mm*60 + ss)), nil
}

// ParseSegments splits a raw spec string into validated segments, clamped
// to the media duration. Segments starting at or past the duration are
// dropped silently; segments ending past it are clamped. Input order is
// preserved and the result may be empty.
func ParseSegments(spec string, duration time.Duration) ([]types.Segment, error) {
	var segs []types.Segment
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		a, b, err := splitRange(token)
		if err != nil {
			return nil, err
		}
		start, err := ParseTime(a)
		if err != nil {
			return nil, err
		}
		end, err := ParseTime(b)
		if err != nil {
			return nil, err
		}
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSegment, token)
		}
		if start >= duration {
			continue
		}
		if end > duration {
			end = duration
		}
		segs = append(segs, types.Segment{Start: start, End: end})
	}
	return segs, nil
}

// splitRange picks the pair separator for one token. A token with no
// hyphen and exactly one colon is a colon-separated pair of plain-second
// values; anything else splits on the hyphen, leaving colons to the
// timestamp parser.
func splitRange(token string) (string, string, error) {
	if !strings.Contains(token, "-") && strings.Count(token, ":") == 1 {
		a, b, _ := strings.Cut(token, ":")
		return a, b, nil
	}
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSegment, token)
	}
	return parts[0], parts[1], nil
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
