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

// Weekday specifies a day of the week with a fixed Sunday..Saturday
// ordering which is independent of any runtime locale. Although this
// enum is numeric, it is (de)serialized as a three-letter label such
// as "Sun" or "Mon" for readability in the adapter layer.
type Weekday int

// Valid values for the Weekday enum.
const (
	WeekdayInvalid Weekday = iota // zero value is invalid

	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// ErrUnknownWeekday indicates that a given string may not be parsed
// as a valid/known three-letter weekday label.
var ErrUnknownWeekday = errors.New("unknown weekday")

// WeekdayError indicates an invalid weekday value. This error contains
// the invalid value as an integer, so it may be reported when a
// Weekday instance is found to be out of range during an execution
// (e.g., after being unmarshaled from a persisted representation).
type WeekdayError int

// Error implements the error interface, returning a string
// representation of the WeekdayError.
func (e WeekdayError) Error() string {
	return fmt.Sprintf("invalid weekday: %d", int(e))
}

var weekdayLabels = [...]string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

// Validate returns nil if the Weekday value is valid. For invalid
// values, an instance of the WeekdayError will be returned.
func (w Weekday) Validate() error {
	if w < Sunday || w > Saturday {
		return WeekdayError(w)
	}
	return nil
}

// String converts the Weekday enum to its three-letter label, helping
// to serialize it for transmission to web clients. Invalid weekday
// causes a panic.
func (w Weekday) String() string {
	if err := w.Validate(); err != nil {
		panic(err)
	}
	return weekdayLabels[int(w)-1]
}

// ParseWeekday parses the given three-letter label, such as "Sun",
// and returns a Weekday, helping to deserialize it when reading a
// REST API request. For invalid strings, WeekdayInvalid and
// ErrUnknownWeekday will be returned.
func ParseWeekday(s string) (Weekday, error) {
	for i, label := range weekdayLabels {
		if label == s {
			return Weekday(i + 1), nil
		}
	}
	return WeekdayInvalid, ErrUnknownWeekday
}

// WeekdayOf returns the Weekday of the given point in time, observing
// the location of the t instance.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(int(t.Weekday()) + 1)
}

// WeekdaySpanBetween computes the ordered, wraparound-aware list of
// weekdays from the w1 weekday to the w2 weekday, inclusive.
// If w1 equals w2, a single-element list is returned. If w1 comes
// after w2 in the fixed Sunday..Saturday ordering, the span wraps
// around the week boundary, e.g., Friday..Monday spans the
// [Fri Sat Sun Mon] weekdays. This is required because a single
// reservation or fixed availability may span a week boundary.
func WeekdaySpanBetween(w1, w2 Weekday) []Weekday {
	if w1 == w2 {
		return []Weekday{w1}
	}
	span := make([]Weekday, 0, 7)
	for w := w1; ; {
		span = append(span, w)
		if w == w2 {
			break
		}
		if w = w + 1; w > Saturday {
			w = Sunday
		}
	}
	return span
}

// WeekdaySet represents a non-empty set of weekdays on which a
// repeating availability recurs. The set is persisted as a bitmask
// (see Mask) in order to keep the database schema free of array
// columns.
type WeekdaySet []Weekday

// Contains reports whether the w weekday is a member of the set.
func (ws WeekdaySet) Contains(w Weekday) bool {
	for _, d := range ws {
		if d == w {
			return true
		}
	}
	return false
}

// Intersects reports whether this set and the other set share at
// least one weekday.
func (ws WeekdaySet) Intersects(other WeekdaySet) bool {
	for _, d := range ws {
		if other.Contains(d) {
			return true
		}
	}
	return false
}

// Validate returns nil if the set is non-empty and all of its members
// are valid and distinct.
func (ws WeekdaySet) Validate() error {
	if len(ws) == 0 {
		return errors.New("weekday set may not be empty")
	}
	seen := 0
	for _, d := range ws {
		if err := d.Validate(); err != nil {
			return err
		}
		bit := 1 << uint(d-Sunday)
		if seen&bit != 0 {
			return fmt.Errorf("repeated weekday: %s", d)
		}
		seen |= bit
	}
	return nil
}

// Mask encodes the set as a bitmask with the Sunday at the least
// significant bit.
func (ws WeekdaySet) Mask() int {
	m := 0
	for _, d := range ws {
		m |= 1 << uint(d-Sunday)
	}
	return m
}

// WeekdaySetFromMask decodes a bitmask, as produced by the Mask
// method, into an ordered WeekdaySet.
func WeekdaySetFromMask(mask int) WeekdaySet {
	var ws WeekdaySet
	for d := Sunday; d <= Saturday; d++ {
		if mask&(1<<uint(d-Sunday)) != 0 {
			ws = append(ws, d)
		}
	}
	return ws
}

// Strings returns the three-letter labels of the set members,
// preserving their order.
func (ws WeekdaySet) Strings() []string {
	labels := make([]string, 0, len(ws))
	for _, d := range ws {
		labels = append(labels, d.String())
	}
	return labels
}

// ParseWeekdaySet parses a list of three-letter weekday labels into
// a WeekdaySet, failing with ErrUnknownWeekday on the first unknown
// label.
func ParseWeekdaySet(labels []string) (WeekdaySet, error) {
	ws := make(WeekdaySet, 0, len(labels))
	for _, label := range labels {
		d, err := ParseWeekday(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, label)
		}
		ws = append(ws, d)
	}
	return ws, nil
}
