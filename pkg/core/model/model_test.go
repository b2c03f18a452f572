// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaySpanBetween(t *testing.T) {
	for _, tc := range []struct {
		name     string
		w1, w2   model.Weekday
		expected []model.Weekday
	}{
		{
			name: "same day",
			w1:   model.Wednesday, w2: model.Wednesday,
			expected: []model.Weekday{model.Wednesday},
		},
		{
			name: "forward",
			w1:   model.Monday, w2: model.Friday,
			expected: []model.Weekday{
				model.Monday, model.Tuesday, model.Wednesday,
				model.Thursday, model.Friday,
			},
		},
		{
			name: "wraparound",
			w1:   model.Friday, w2: model.Monday,
			expected: []model.Weekday{
				model.Friday, model.Saturday, model.Sunday,
				model.Monday,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			span := model.WeekdaySpanBetween(tc.w1, tc.w2)
			assert.Equal(t, tc.expected, span)
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	friday := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, model.Friday, model.WeekdayOf(friday))
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, model.Monday, model.WeekdayOf(monday))
}

func TestWeekdayLabels(t *testing.T) {
	for d := model.Sunday; d <= model.Saturday; d++ {
		parsed, err := model.ParseWeekday(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	_, err := model.ParseWeekday("Sunday")
	assert.ErrorIs(t, err, model.ErrUnknownWeekday)
}

func TestWeekdaySetMaskRoundTrip(t *testing.T) {
	ws := model.WeekdaySet{model.Sunday, model.Wednesday, model.Saturday}
	assert.Equal(t, 0b1001001, ws.Mask())
	assert.Equal(t, ws, model.WeekdaySetFromMask(ws.Mask()))
}

func TestWeekdaySetValidate(t *testing.T) {
	assert.Error(t, model.WeekdaySet{}.Validate())
	assert.Error(
		t, model.WeekdaySet{model.Monday, model.Monday}.Validate(),
	)
	assert.Error(t, model.WeekdaySet{model.Weekday(9)}.Validate())
	assert.NoError(
		t, model.WeekdaySet{model.Monday, model.Tuesday}.Validate(),
	)
}

func TestTimeOfDay(t *testing.T) {
	td, err := model.ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, model.NewTimeOfDay(9, 30), td)
	assert.Equal(t, "09:30", td.String())

	_, err = model.ParseTimeOfDay("9:30pm")
	assert.ErrorIs(t, err, model.ErrBadTimeOfDay)

	assert.NoError(t, model.NewTimeOfDay(23, 59).Validate())
	assert.Error(t, model.NewTimeOfDay(24, 0).Validate())
	assert.Error(t, model.TimeOfDay(-1).Validate())
}

func TestOverlapsClosedIntervals(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(m int) time.Time {
		return base.Add(time.Duration(m) * time.Minute)
	}
	// touching endpoints count as an overlap
	assert.True(t, model.Overlaps(at(0), at(60), at(60), at(120)))
	assert.True(t, model.Overlaps(at(60), at(120), at(0), at(60)))
	assert.True(t, model.Overlaps(at(0), at(120), at(30), at(60)))
	assert.False(t, model.Overlaps(at(0), at(60), at(61), at(120)))

	assert.True(t, model.TimesOverlap(
		model.NewTimeOfDay(12, 0), model.NewTimeOfDay(13, 0),
		model.NewTimeOfDay(13, 0), model.NewTimeOfDay(14, 0),
	))
	assert.False(t, model.TimesOverlap(
		model.NewTimeOfDay(12, 0), model.NewTimeOfDay(13, 0),
		model.NewTimeOfDay(13, 1), model.NewTimeOfDay(14, 0),
	))
}

func TestCoveringAvailability(t *testing.T) {
	fa := &model.FixedAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: uuid.New(),
		Start:          time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		PricePerHour:   250,
	}
	ca := model.CoverFixed(fa)
	assert.Equal(t, model.KindFixed, ca.Kind)
	assert.Equal(t, fa.ID, ca.ID())
	assert.Equal(t, fa.ParkingSpaceID, ca.ParkingSpaceID())
	assert.Equal(t, 250, ca.PricePerHour())
	assert.True(t, ca.Contains(
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
	))
	assert.False(t, ca.Contains(
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC),
	))
	ref := ca.Ref()
	assert.Equal(t, model.KindFixed, ref.Kind)
	assert.Equal(t, fa.ID, ref.AvailabilityID)

	start := model.NewTimeOfDay(8, 0)
	end := model.NewTimeOfDay(18, 0)
	ra := &model.RepeatingAvailability{
		ID:             uuid.New(),
		ParkingSpaceID: uuid.New(),
		Start:          &start,
		End:            &end,
		Weekdays:       model.WeekdaySet{model.Friday},
		PricePerHour:   100,
	}
	ca = model.CoverRepeating(ra)
	assert.Equal(t, model.KindRepeating, ca.Kind)
	assert.Equal(t, ra.ID, ca.ID())
	// 2024-03-01 is a Friday
	assert.True(t, ca.Contains(
		time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
	))
	// 2024-03-02 is a Saturday, outside of the weekday set
	assert.False(t, ca.Contains(
		time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC),
	))
}

func TestReservationMinutes(t *testing.T) {
	r := &model.Reservation{
		Start: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, 90, r.Minutes())
}
