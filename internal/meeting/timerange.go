// Package meeting finds free slots in a single day for a group of attendees.
package meeting

import (
	"cmp"
	"fmt"
	"slices"
)

// MinutesPerDay is the length of the scheduling window.
const MinutesPerDay = 24 * 60

// TimeRange is a half-open interval [Start, End) in minutes since midnight.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// WholeDay spans the entire scheduling window.
var WholeDay = TimeRange{Start: 0, End: MinutesPerDay}

// Duration returns the length in minutes.
func (r TimeRange) Duration() int {
	return r.End - r.Start
}

// Overlaps reports whether the two ranges share at least one minute.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// Validate checks that the range is non-empty and lies within a day.
func (r TimeRange) Validate() error {
	if r.Start < 0 || r.End > MinutesPerDay || r.Start >= r.End {
		return fmt.Errorf("invalid time range [%d, %d)", r.Start, r.End)
	}
	return nil
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.Start/60, r.Start%60, r.End/60, r.End%60)
}

// merge sorts ranges by start and coalesces overlapping ones.
func merge(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b TimeRange) int {
		return cmp.Compare(a.Start, b.Start)
	})

	out := []TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Start < last.End {
			last.End = max(last.End, r.End)
			continue
		}
		out = append(out, r)
	}
	return out
}

// gaps returns the parts of the day not covered by merged busy ranges.
func gaps(busy []TimeRange) []TimeRange {
	free := make([]TimeRange, 0, len(busy)+1)
	start := 0
	for _, b := range busy {
		if b.Start > start {
			free = append(free, TimeRange{Start: start, End: b.Start})
		}
		start = max(start, b.End)
	}
	if start < MinutesPerDay {
		free = append(free, TimeRange{Start: start, End: MinutesPerDay})
	}
	return free
}
