// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schedule_test

import (
	"testing"
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at returns an instant on 2024-03-01, which is a Friday.
func at(h, m int) time.Time {
	return time.Date(2024, 3, 1, h, m, 0, 0, time.UTC)
}

func fixedWindow(sid uuid.UUID, start, end time.Time) *model.FixedAvailability {
	return &model.FixedAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		Start:          start,
		End:            end,
		PricePerHour:   100,
	}
}

func TestValidateFixed(t *testing.T) {
	sid := uuid.New()
	now := at(10, 0)
	sibling := fixedWindow(sid, at(12, 0), at(13, 0))
	siblings := []*model.FixedAvailability{sibling}
	for _, tc := range []struct {
		name       string
		start, end time.Time
		err        error
	}{
		{
			name:  "inverted window",
			start: at(15, 0), end: at(14, 0),
			err: cerr.ErrInvalidWindow,
		},
		{
			name:  "empty window",
			start: at(15, 0), end: at(15, 0),
			err: cerr.ErrInvalidWindow,
		},
		{
			name:  "already elapsed",
			start: at(8, 0), end: at(9, 0),
			err: cerr.ErrExpiredAvailability,
		},
		{
			name:  "contained overlap",
			start: at(12, 15), end: at(12, 45),
			err: cerr.ErrOverlapViolation,
		},
		{
			name:  "touching start boundary",
			start: at(11, 0), end: at(12, 0),
			err: cerr.ErrOverlapViolation,
		},
		{
			name:  "touching end boundary",
			start: at(13, 0), end: at(14, 0),
			err: cerr.ErrOverlapViolation,
		},
		{
			name:  "one minute after sibling",
			start: at(13, 1), end: at(14, 0),
		},
		{
			name:  "one minute before sibling",
			start: at(11, 0), end: at(11, 59),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fa := fixedWindow(sid, tc.start, tc.end)
			err := schedule.ValidateFixed(fa, siblings, now)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidateFixedSkipsItself(t *testing.T) {
	sid := uuid.New()
	fa := fixedWindow(sid, at(12, 0), at(13, 0))
	// editing an availability must not conflict with its own row
	err := schedule.ValidateFixed(
		fa, []*model.FixedAvailability{fa}, at(10, 0),
	)
	assert.NoError(t, err)
}

func tod(h, m int) *model.TimeOfDay {
	td := model.NewTimeOfDay(h, m)
	return &td
}

func TestValidateRepeating(t *testing.T) {
	sid := uuid.New()
	sibling := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		Start:          tod(9, 0),
		End:            tod(17, 0),
		Weekdays:       model.WeekdaySet{model.Monday, model.Wednesday},
		PricePerHour:   100,
	}
	siblings := []*model.RepeatingAvailability{sibling}
	for _, tc := range []struct {
		name string
		ra   *model.RepeatingAvailability
		err  error
	}{
		{
			name: "empty weekday set",
			ra: &model.RepeatingAvailability{
				ID: uuid.New(), AllDay: true,
			},
			err: nil, // weekday set error is not a sentinel
		},
		{
			name: "missing times",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				Start:    tod(10, 0),
				Weekdays: model.WeekdaySet{model.Friday},
			},
			err: cerr.ErrIncompleteAvailability,
		},
		{
			name: "inverted times",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				Start:    tod(17, 0),
				End:      tod(9, 0),
				Weekdays: model.WeekdaySet{model.Friday},
			},
			err: cerr.ErrInvalidWindow,
		},
		{
			name: "overlapping times on shared weekday",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				Start:    tod(16, 0),
				End:      tod(20, 0),
				Weekdays: model.WeekdaySet{model.Wednesday},
			},
			err: cerr.ErrOverlapViolation,
		},
		{
			name: "all-day on shared weekday",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				AllDay:   true,
				Weekdays: model.WeekdaySet{model.Monday},
			},
			err: cerr.ErrOverlapViolation,
		},
		{
			name: "disjoint weekdays",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				AllDay:   true,
				Weekdays: model.WeekdaySet{model.Saturday},
			},
		},
		{
			name: "disjoint times on shared weekday",
			ra: &model.RepeatingAvailability{
				ID:       uuid.New(),
				Start:    tod(17, 1),
				End:      tod(20, 0),
				Weekdays: model.WeekdaySet{model.Monday},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := schedule.ValidateRepeating(tc.ra, siblings)
			switch {
			case tc.ra.Weekdays == nil:
				assert.Error(t, err)
			case tc.err == nil:
				assert.NoError(t, err)
			default:
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestValidateRepeatingSkipsItself(t *testing.T) {
	ra := &model.RepeatingAvailability{
		ID:       uuid.New(),
		AllDay:   true,
		Weekdays: model.WeekdaySet{model.Friday},
	}
	err := schedule.ValidateRepeating(
		ra, []*model.RepeatingAvailability{ra},
	)
	assert.NoError(t, err)
}

func TestResolveCoveringPrefersFixed(t *testing.T) {
	sid := uuid.New()
	fa := fixedWindow(sid, at(8, 0), at(20, 0))
	fa.PricePerHour = 300
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		AllDay:         true,
		Weekdays:       model.WeekdaySet{model.Friday},
		PricePerHour:   100,
	}
	covering, err := schedule.ResolveCovering(
		[]*model.FixedAvailability{fa},
		[]*model.RepeatingAvailability{ra},
		at(9, 0), at(11, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, model.KindFixed, covering.Kind)
	// the reservation is priced by the winning fixed availability
	assert.Equal(t, 300, covering.PricePerHour())
}

func TestResolveCoveringFallsBackToRepeating(t *testing.T) {
	sid := uuid.New()
	fa := fixedWindow(sid, at(8, 0), at(10, 0))
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		Start:          tod(8, 0),
		End:            tod(20, 0),
		Weekdays:       model.WeekdaySet{model.Friday},
		PricePerHour:   100,
	}
	covering, err := schedule.ResolveCovering(
		[]*model.FixedAvailability{fa},
		[]*model.RepeatingAvailability{ra},
		at(11, 0), at(13, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, model.KindRepeating, covering.Kind)
}

func TestResolveCoveringOverlapOutOfBounds(t *testing.T) {
	sid := uuid.New()
	space := &model.ParkingSpace{ID: sid, AvailableSpaces: 2}
	fa := fixedWindow(sid, at(9, 0), at(17, 0))
	fixed := []*model.FixedAvailability{fa}

	// a window sticking out of the only availability still resolves
	// to it, and the bounds re-check rejects it as a bad request
	// rather than a missing availability
	covering, err := schedule.ResolveCovering(
		fixed, nil, at(8, 0), at(9, 30),
	)
	require.NoError(t, err)
	assert.Equal(t, model.KindFixed, covering.Kind)

	r := reservationOn(covering, uuid.New(), at(8, 0), at(9, 30))
	err = schedule.ValidateReservation(
		r, covering, space, fixed, nil, nil, nil,
	)
	assert.ErrorIs(t, err, cerr.ErrOutOfBounds)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 400, ce.HTTPStatusCode)
}

func TestResolveCoveringOverlapRepeating(t *testing.T) {
	sid := uuid.New()
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		Start:          tod(9, 0),
		End:            tod(17, 0),
		Weekdays:       model.WeekdaySet{model.Friday},
		PricePerHour:   100,
	}
	repeating := []*model.RepeatingAvailability{ra}

	covering, err := schedule.ResolveCovering(
		nil, repeating, at(16, 0), at(18, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, model.KindRepeating, covering.Kind)

	r := reservationOn(covering, uuid.New(), at(16, 0), at(18, 0))
	err = schedule.ValidateReservation(
		r, covering,
		&model.ParkingSpace{ID: sid, AvailableSpaces: 1},
		nil, repeating, nil, nil,
	)
	assert.ErrorIs(t, err, cerr.ErrOutOfBounds)
}

func TestResolveCoveringNoMatch(t *testing.T) {
	sid := uuid.New()
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		AllDay:         true,
		Weekdays:       model.WeekdaySet{model.Saturday},
		PricePerHour:   100,
	}
	_, err := schedule.ResolveCovering(
		nil,
		[]*model.RepeatingAvailability{ra},
		at(11, 0), at(13, 0),
	)
	assert.ErrorIs(t, err, cerr.ErrNoAvailability)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 404, ce.HTTPStatusCode)
}

func reservationOn(
	ca model.CoveringAvailability, vid uuid.UUID, start, end time.Time,
) *model.Reservation {
	return &model.Reservation{
		ID:             uuid.New(),
		VehicleID:      vid,
		Covering:       ca.Ref(),
		ParkingSpaceID: ca.ParkingSpaceID(),
		Start:          start,
		End:            end,
	}
}

func TestValidateReservation(t *testing.T) {
	sid := uuid.New()
	space := &model.ParkingSpace{
		ID:              sid,
		AvailableSpaces: 2,
	}
	fa := fixedWindow(sid, at(8, 0), at(20, 0))
	fixed := []*model.FixedAvailability{fa}
	ca := model.CoverFixed(fa)

	t.Run("accepted", func(t *testing.T) {
		r := reservationOn(ca, uuid.New(), at(9, 0), at(11, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil, nil, nil,
		)
		assert.NoError(t, err)
	})
	t.Run("inverted window", func(t *testing.T) {
		r := reservationOn(ca, uuid.New(), at(11, 0), at(9, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil, nil, nil,
		)
		assert.ErrorIs(t, err, cerr.ErrInvalidWindow)
	})
	t.Run("out of bounds", func(t *testing.T) {
		r := reservationOn(ca, uuid.New(), at(9, 0), at(21, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil, nil, nil,
		)
		assert.ErrorIs(t, err, cerr.ErrOutOfBounds)
	})
	t.Run("vehicle conflict", func(t *testing.T) {
		vid := uuid.New()
		other := reservationOn(ca, vid, at(10, 0), at(12, 0))
		r := reservationOn(ca, vid, at(11, 0), at(13, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil, nil,
			[]*model.Reservation{other},
		)
		assert.ErrorIs(t, err, cerr.ErrVehicleConflict)
	})
	t.Run("cancelled reservation frees the vehicle", func(t *testing.T) {
		vid := uuid.New()
		other := reservationOn(ca, vid, at(10, 0), at(12, 0))
		other.Cancelled = true
		r := reservationOn(ca, vid, at(11, 0), at(13, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil, nil,
			[]*model.Reservation{other},
		)
		assert.NoError(t, err)
	})
	t.Run("revalidation skips the candidate itself", func(t *testing.T) {
		r := reservationOn(ca, uuid.New(), at(9, 0), at(11, 0))
		err := schedule.ValidateReservation(
			r, ca, space, fixed, nil,
			[]*model.Reservation{r}, []*model.Reservation{r},
		)
		assert.NoError(t, err)
	})
}

func TestValidateReservationCapacity(t *testing.T) {
	sid := uuid.New()
	space := &model.ParkingSpace{ID: sid, AvailableSpaces: 1}
	fa1 := fixedWindow(sid, at(8, 0), at(12, 0))
	fa2 := fixedWindow(sid, at(12, 1), at(20, 0))
	fixed := []*model.FixedAvailability{fa1, fa2}

	taken := reservationOn(
		model.CoverFixed(fa1), uuid.New(), at(9, 0), at(11, 0),
	)
	r := reservationOn(
		model.CoverFixed(fa1), uuid.New(), at(10, 0), at(11, 30),
	)
	err := schedule.ValidateReservation(
		r, model.CoverFixed(fa1), space, fixed, nil,
		[]*model.Reservation{taken}, nil,
	)
	assert.ErrorIs(t, err, cerr.ErrNoCapacity)

	// cancelling the conflicting reservation frees the capacity
	taken.Cancelled = true
	err = schedule.ValidateReservation(
		r, model.CoverFixed(fa1), space, fixed, nil,
		[]*model.Reservation{taken}, nil,
	)
	assert.NoError(t, err)
}

func TestUnreservedSpaces(t *testing.T) {
	sid := uuid.New()
	space := &model.ParkingSpace{ID: sid, AvailableSpaces: 3}
	fa1 := fixedWindow(sid, at(8, 0), at(20, 0))
	fa2 := fixedWindow(sid, at(20, 1), at(23, 0))
	fixed := []*model.FixedAvailability{fa1, fa2}

	// no covering availability at all
	assert.Equal(t, 0, schedule.UnreservedSpaces(
		space, nil, nil, nil, at(9, 0), at(10, 0),
	))
	// covered with no reservations: the full static ceiling
	assert.Equal(t, 3, schedule.UnreservedSpaces(
		space, fixed, nil, nil, at(9, 0), at(10, 0),
	))

	r1 := reservationOn(
		model.CoverFixed(fa1), uuid.New(), at(9, 0), at(10, 0),
	)
	r2 := reservationOn(
		model.CoverFixed(fa2), uuid.New(), at(20, 30), at(21, 0),
	)
	rs := []*model.Reservation{r1, r2}
	// only the availability conflicting with the window counts
	assert.Equal(t, 2, schedule.UnreservedSpaces(
		space, fixed, nil, rs, at(9, 30), at(10, 30),
	))
	// a disjoint window keeps the full ceiling
	assert.Equal(t, 3, schedule.UnreservedSpaces(
		space, fixed, nil, rs, at(11, 0), at(12, 0),
	))
}

func TestIsAvailableBetweenMultiDay(t *testing.T) {
	sid := uuid.New()
	// a multi-day window can only be covered by a fixed availability
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: sid,
		AllDay:         true,
		Weekdays: model.WeekdaySet{
			model.Friday, model.Saturday,
		},
	}
	start := at(22, 0)
	end := start.Add(4 * time.Hour) // crosses into Saturday
	assert.False(t, schedule.IsAvailableBetween(
		nil, []*model.RepeatingAvailability{ra}, start, end,
	))
	fa := fixedWindow(sid, at(20, 0), start.Add(12*time.Hour))
	assert.True(t, schedule.IsAvailableBetween(
		[]*model.FixedAvailability{fa}, nil, start, end,
	))
}
