// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"
)

// Overlaps reports whether the [aStart, aEnd] and [bStart, bEnd]
// closed datetime intervals overlap. Touching endpoints count as an
// overlap. Comparison is exact with no floating point involvement.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// TimeOfDay specifies a wall-clock time within a day as the number of
// minutes since midnight, so two instances can be compared exactly
// without involving dates, locations, or floating point values.
type TimeOfDay int

// MinutesPerDay is the number of minutes in a civil day.
const MinutesPerDay = 24 * 60

// ErrBadTimeOfDay indicates that a given string may not be parsed as
// a valid HH:MM time of day.
var ErrBadTimeOfDay = errors.New("malformed time of day")

// NewTimeOfDay builds a TimeOfDay from an hour and minute pair.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf extracts the TimeOfDay of the given point in time,
// observing the location of the t instance. Seconds are truncated,
// matching the minute granularity of availability windows.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// Validate returns nil if the TimeOfDay value lies within a day.
func (td TimeOfDay) Validate() error {
	if td < 0 || td >= MinutesPerDay {
		return fmt.Errorf("time of day out of range: %d", int(td))
	}
	return nil
}

// String formats the TimeOfDay using the HH:MM format.
func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(td)/60, int(td)%60)
}

// ParseTimeOfDay parses an HH:MM formatted string into a TimeOfDay.
// For invalid strings, ErrBadTimeOfDay will be returned (after
// wrapping).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeOfDay, s)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

// TimesOverlap reports whether the [aStart, aEnd] and [bStart, bEnd]
// closed time-of-day intervals overlap, using the same closed-interval
// semantics as the Overlaps function.
func TimesOverlap(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart <= bEnd && aEnd >= bStart
}
