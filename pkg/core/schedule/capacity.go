// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schedule

import (
	"time"

	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

// IsReserved reports whether any non-cancelled reservation which
// references the availabilityID availability overlaps the
// [start, end] window. Reservations referencing other availabilities
// (or none) are ignored.
func IsReserved(
	availabilityID uuid.UUID,
	kind model.AvailabilityKind,
	reservations []*model.Reservation,
	start, end time.Time,
) bool {
	for _, r := range reservations {
		if r.Cancelled {
			continue
		}
		if r.Covering.Kind != kind ||
			r.Covering.AvailabilityID != availabilityID {
			continue
		}
		if r.OverlapsWindow(start, end) {
			return true
		}
	}
	return false
}

// IsAvailableBetween reports whether some availability of the parking
// space covers the whole [start, end] window: either a fixed
// availability fully contains it, or a repeating availability
// recurs on the window's weekday and (is all-day or its time-of-day
// bounds contain the window's times of day). For the repeating case
// the start and end must fall on the same weekday; multi-day windows
// can only be covered by a fixed availability.
func IsAvailableBetween(
	fixed []*model.FixedAvailability,
	repeating []*model.RepeatingAvailability,
	start, end time.Time,
) bool {
	for _, fa := range fixed {
		if fa.Contains(start, end) {
			return true
		}
	}
	if model.WeekdayOf(start) != model.WeekdayOf(end) {
		return false
	}
	for _, ra := range repeating {
		if ra.Contains(start, end) {
			return true
		}
	}
	return false
}

// UnreservedSpaces computes the vacant capacity of the space for the
// [start, end] window: zero if no availability covers the window,
// otherwise the static AvailableSpaces ceiling decremented once for
// every availability of the space which already has a conflicting
// non-cancelled reservation. The result may be zero or negative;
// callers treat <= 0 as "no capacity".
//
// Decrementing per conflicting availability, rather than once per
// conflicting reservation, is the reference behavior and is kept for
// compatibility even though it can under-count distinct overlapping
// reservations which share one availability (each availability is
// expected to hold at most one reservation per instant of its own
// window, so both countings agree in practice).
func UnreservedSpaces(
	space *model.ParkingSpace,
	fixed []*model.FixedAvailability,
	repeating []*model.RepeatingAvailability,
	reservations []*model.Reservation,
	start, end time.Time,
) int {
	if !IsAvailableBetween(fixed, repeating, start, end) {
		return 0
	}
	num := space.AvailableSpaces
	for _, fa := range fixed {
		if IsReserved(fa.ID, model.KindFixed, reservations, start, end) {
			num--
		}
	}
	for _, ra := range repeating {
		if IsReserved(ra.ID, model.KindRepeating, reservations, start, end) {
			num--
		}
	}
	return num
}
