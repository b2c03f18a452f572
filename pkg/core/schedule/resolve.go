// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schedule

import (
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
)

// ResolveCovering selects the availability whose bounds contain the
// [start, end] reservation window. A fixed availability, when present
// and covering, always wins over a repeating one; this is a
// deliberate priority order, not a double-match error. A repeating
// availability covers the window when its weekday set contains the
// window start's weekday and it is all-day or its time-of-day bounds
// contain the window's times of day.
//
// When no availability contains the window but one overlaps it, that
// availability is still resolved, so that ValidateReservation rejects
// the window with cerr.ErrOutOfBounds instead of pretending the space
// is never open at that time. Only when the window overlaps nothing is
// cerr.ErrNoAvailability returned wrapped in a *cerr.Error with the
// not-found status.
func ResolveCovering(
	fixed []*model.FixedAvailability,
	repeating []*model.RepeatingAvailability,
	start, end time.Time,
) (model.CoveringAvailability, error) {
	for _, fa := range fixed {
		if fa.Contains(start, end) {
			return model.CoverFixed(fa), nil
		}
	}
	weekday := model.WeekdayOf(start)
	for _, ra := range repeating {
		if !ra.Weekdays.Contains(weekday) {
			continue
		}
		if ra.AllDay ||
			(*ra.Start <= model.TimeOfDayOf(start) &&
				*ra.End >= model.TimeOfDayOf(end)) {
			return model.CoverRepeating(ra), nil
		}
	}
	for _, fa := range fixed {
		if model.Overlaps(fa.Start, fa.End, start, end) {
			return model.CoverFixed(fa), nil
		}
	}
	for _, ra := range repeating {
		if ra.AllDay || !ra.Weekdays.Contains(weekday) {
			continue
		}
		if model.TimesOverlap(
			*ra.Start, *ra.End,
			model.TimeOfDayOf(start), model.TimeOfDayOf(end),
		) {
			return model.CoverRepeating(ra), nil
		}
	}
	return model.CoveringAvailability{}, cerr.NotFound(
		cerr.ErrNoAvailability,
	)
}

// ValidateReservation re-checks every reservation invariant for the
// candidate reservation against its covering availability and the
// relevant sibling collections:
//
//  1. the window end must come after its start,
//  2. the window must lie within the covering availability's bounds
//     (weekday membership is re-checked for the repeating kind),
//  3. the parking space must have strictly-positive vacancy over the
//     window, counting the non-cancelled spaceReservations,
//  4. the vehicle must have no other overlapping non-cancelled
//     reservation among vehicleReservations.
//
// Entries of either reservations slice sharing the candidate's ID are
// skipped, so re-validation at save time does not conflict with the
// candidate's own persisted row. Checks run in order and the first
// violation aborts with its specific error kind.
func ValidateReservation(
	r *model.Reservation,
	covering model.CoveringAvailability,
	space *model.ParkingSpace,
	fixed []*model.FixedAvailability,
	repeating []*model.RepeatingAvailability,
	spaceReservations []*model.Reservation,
	vehicleReservations []*model.Reservation,
) error {
	if !r.End.After(r.Start) {
		return cerr.BadRequest(cerr.ErrInvalidWindow)
	}
	if !covering.Contains(r.Start, r.End) {
		return cerr.BadRequest(cerr.ErrOutOfBounds)
	}
	others := excluding(spaceReservations, r)
	if UnreservedSpaces(
		space, fixed, repeating, others, r.Start, r.End,
	) <= 0 {
		return cerr.Conflict(cerr.ErrNoCapacity)
	}
	for _, vr := range excluding(vehicleReservations, r) {
		if vr.Cancelled {
			continue
		}
		if vr.OverlapsWindow(r.Start, r.End) {
			return cerr.Conflict(cerr.ErrVehicleConflict)
		}
	}
	return nil
}

func excluding(
	rs []*model.Reservation, r *model.Reservation,
) []*model.Reservation {
	out := make([]*model.Reservation, 0, len(rs))
	for _, x := range rs {
		if x.ID == r.ID {
			continue
		}
		out = append(out, x)
	}
	return out
}
