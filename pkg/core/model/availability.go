// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// FixedAvailability is a one-off open time window during which a
// parking space can be reserved, as a single closed datetime interval
// [Start, End] with a per-hour price in currency minor units.
type FixedAvailability struct {
	ID             uuid.UUID
	ParkingSpaceID uuid.UUID

	Start time.Time
	End   time.Time

	// PricePerHour is the cost (in cents) of parking at the space
	// for one hour. This is the price listed on the map; fees are
	// added on top of it (see schedule.CustomerPrice).
	PricePerHour int

	CreatedAt time.Time
}

// Contains reports whether the [start, end] window lies entirely
// within the bounds of this availability.
func (fa *FixedAvailability) Contains(start, end time.Time) bool {
	return !start.Before(fa.Start) && !end.After(fa.End)
}

// OverlapsWith reports whether this availability overlaps the other
// availability, using closed-interval semantics (touching endpoints
// count as an overlap).
func (fa *FixedAvailability) OverlapsWith(other *FixedAvailability) bool {
	return Overlaps(fa.Start, fa.End, other.Start, other.End)
}

// WeekdaySpan returns the ordered, wraparound-aware weekdays spanned
// from the start weekday to the end weekday of this availability,
// observing the location of its Start and End instants.
func (fa *FixedAvailability) WeekdaySpan() []Weekday {
	return WeekdaySpanBetween(WeekdayOf(fa.Start), WeekdayOf(fa.End))
}

// RepeatingAvailability is a recurring weekly time window during
// which a parking space can be reserved. It either covers whole days
// (AllDay is set and Start/End are nil) or a [Start, End] time-of-day
// interval, on each weekday of the Weekdays set.
type RepeatingAvailability struct {
	ID             uuid.UUID
	ParkingSpaceID uuid.UUID

	// AllDay indicates that the availability covers the whole of each
	// repeating day. When it is false, both Start and End must be set.
	AllDay bool
	Start  *TimeOfDay
	End    *TimeOfDay

	Weekdays WeekdaySet

	// PricePerHour is the cost (in cents) of parking at the space
	// for one hour.
	PricePerHour int

	CreatedAt time.Time
}

// Contains reports whether the [start, end] window lies within this
// availability: the window start weekday must be a member of the
// Weekdays set and, unless the availability is all-day, the
// time-of-day bounds must contain the window's times of day.
func (ra *RepeatingAvailability) Contains(start, end time.Time) bool {
	if !ra.Weekdays.Contains(WeekdayOf(start)) {
		return false
	}
	if ra.AllDay {
		return true
	}
	return *ra.Start <= TimeOfDayOf(start) && *ra.End >= TimeOfDayOf(end)
}

// OverlapsWith reports whether this availability overlaps the other
// availability on some shared weekday. Two availabilities sharing a
// weekday overlap unconditionally if either is all-day, otherwise
// their time-of-day intervals are compared with closed-interval
// semantics.
func (ra *RepeatingAvailability) OverlapsWith(other *RepeatingAvailability) bool {
	if !ra.Weekdays.Intersects(other.Weekdays) {
		return false
	}
	if ra.AllDay || other.AllDay {
		return true
	}
	return TimesOverlap(*ra.Start, *ra.End, *other.Start, *other.End)
}

// AvailabilityKind discriminates the two availability variants which
// a reservation may reference.
type AvailabilityKind int

// Valid values for the AvailabilityKind enum.
const (
	AvailabilityKindInvalid AvailabilityKind = iota // zero value is invalid

	KindFixed
	KindRepeating
)

// String converts the AvailabilityKind enum to a string. Invalid
// kind causes a panic.
func (k AvailabilityKind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindRepeating:
		return "repeating"
	default:
		panic("invalid availability kind")
	}
}

// CoveringAvailability is a tagged union holding the one availability
// record whose bounds contain a reservation's window. Exactly one of
// the Fixed and Repeating pointers is set, as discriminated by Kind,
// so the mutual exclusivity which the persistence layer realizes with
// two nullable references is a construction-time invariant here.
// Instances must be created with the CoverFixed and CoverRepeating
// constructors.
type CoveringAvailability struct {
	Kind      AvailabilityKind
	Fixed     *FixedAvailability
	Repeating *RepeatingAvailability
}

// CoverFixed builds a CoveringAvailability referencing the given
// fixed availability.
func CoverFixed(fa *FixedAvailability) CoveringAvailability {
	return CoveringAvailability{Kind: KindFixed, Fixed: fa}
}

// CoverRepeating builds a CoveringAvailability referencing the given
// repeating availability.
func CoverRepeating(ra *RepeatingAvailability) CoveringAvailability {
	return CoveringAvailability{Kind: KindRepeating, Repeating: ra}
}

// ID returns the identifier of the referenced availability record.
func (ca CoveringAvailability) ID() uuid.UUID {
	switch ca.Kind {
	case KindFixed:
		return ca.Fixed.ID
	case KindRepeating:
		return ca.Repeating.ID
	default:
		panic("invalid availability kind")
	}
}

// ParkingSpaceID returns the parking space which the referenced
// availability belongs to.
func (ca CoveringAvailability) ParkingSpaceID() uuid.UUID {
	switch ca.Kind {
	case KindFixed:
		return ca.Fixed.ParkingSpaceID
	case KindRepeating:
		return ca.Repeating.ParkingSpaceID
	default:
		panic("invalid availability kind")
	}
}

// PricePerHour returns the per-hour price of the referenced
// availability.
func (ca CoveringAvailability) PricePerHour() int {
	switch ca.Kind {
	case KindFixed:
		return ca.Fixed.PricePerHour
	case KindRepeating:
		return ca.Repeating.PricePerHour
	default:
		panic("invalid availability kind")
	}
}

// Contains reports whether the [start, end] window lies within the
// bounds of the referenced availability.
func (ca CoveringAvailability) Contains(start, end time.Time) bool {
	switch ca.Kind {
	case KindFixed:
		return ca.Fixed.Contains(start, end)
	case KindRepeating:
		return ca.Repeating.Contains(start, end)
	default:
		panic("invalid availability kind")
	}
}

// Ref returns a light reference (kind and ID pair) suitable for
// embedding in a Reservation.
func (ca CoveringAvailability) Ref() CoveringRef {
	return CoveringRef{Kind: ca.Kind, AvailabilityID: ca.ID()}
}

// CoveringRef identifies a covering availability by kind and ID,
// without holding the full record. The kind is set when a reservation
// is created and is immutable thereafter.
type CoveringRef struct {
	Kind           AvailabilityKind
	AvailabilityID uuid.UUID
}
