package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// MaxPosition is the end coordinate used for a region naming a whole contig.
const MaxPosition = math.MaxInt64

// Interval is a genomic range on one contig.
// Coordinates are 1-based and inclusive on both ends.
type Interval struct {
	Contig string
	Start  int64
	End    int64
}

// NewInterval creates an Interval, validating that 1 <= start <= end.
func NewInterval(contig string, start, end int64) (Interval, error) {
	iv := Interval{Contig: contig, Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate reports whether the interval has a contig and well-ordered positive coordinates.
func (iv Interval) Validate() error {
	if iv.Contig == "" {
		return zerr.Wrap(ErrInvalidInterval, "missing contig")
	}
	if iv.Start < 1 || iv.End < iv.Start {
		return zerr.With(zerr.Wrap(ErrInvalidInterval, "coordinates out of order"),
			"interval", iv.String())
	}
	return nil
}

// Overlaps reports whether iv and other share at least one position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Contig == other.Contig && iv.Start <= other.End && other.Start <= iv.End
}

// Len returns the number of positions covered.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start + 1
}

// String formats the interval as contig:start-end.
func (iv Interval) String() string {
	if iv.End == MaxPosition {
		return fmt.Sprintf("%s:%d", iv.Contig, iv.Start)
	}
	return fmt.Sprintf("%s:%d-%d", iv.Contig, iv.Start, iv.End)
}

// ParseInterval parses a region of the form "contig", "contig:pos" or "contig:start-end".
// A bare contig spans the whole contig. Commas in numbers are ignored ("chr1:1,000-2,000").
func ParseInterval(region string) (Interval, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return Interval{}, ErrInvalidRegion
	}

	contig, span, hasSpan := strings.Cut(region, ":")
	if contig == "" {
		return Interval{}, zerr.With(zerr.Wrap(ErrInvalidRegion, "missing contig"), "region", region)
	}
	if !hasSpan {
		return Interval{Contig: contig, Start: 1, End: MaxPosition}, nil
	}

	startStr, endStr, hasEnd := strings.Cut(span, "-")
	start, err := parsePosition(startStr)
	if err != nil {
		return Interval{}, zerr.With(zerr.Wrap(ErrInvalidRegion, "bad start"), "region", region)
	}
	end := start
	if hasEnd {
		end, err = parsePosition(endStr)
		if err != nil {
			return Interval{}, zerr.With(zerr.Wrap(ErrInvalidRegion, "bad end"), "region", region)
		}
	}

	iv, err := NewInterval(contig, start, end)
	if err != nil {
		return Interval{}, zerr.With(zerr.Wrap(ErrInvalidRegion, err.Error()), "region", region)
	}
	return iv, nil
}

func parsePosition(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
}
