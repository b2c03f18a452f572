// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schedule_test

import (
	"testing"

	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/stretchr/testify/assert"
)

func TestCustomerPrice(t *testing.T) {
	for _, tc := range []struct {
		name         string
		pricePerHour int
		minutes      int
		expected     int
	}{
		// (100 + 30) / 0.971 = 133.88 which rounds to 134
		{name: "one hour", pricePerHour: 100, minutes: 60, expected: 134},
		// proration: half an hour at twice the price costs the same
		{name: "prorated", pricePerHour: 200, minutes: 30, expected: 134},
		// (250 * 90/60 + 30) / 0.971 = 417.10 which rounds to 417
		{name: "ninety minutes", pricePerHour: 250, minutes: 90, expected: 417},
		// the fixed fee alone is grossed up: 30 / 0.971 = 30.89
		{name: "zero minutes", pricePerHour: 100, minutes: 0, expected: 31},
	} {
		t.Run(tc.name, func(t *testing.T) {
			price := schedule.CustomerPrice(
				tc.pricePerHour, tc.minutes, schedule.DefaultRates,
			)
			assert.Equal(t, tc.expected, price)
		})
	}
}

func TestHostIncome(t *testing.T) {
	// (134 * 0.971 - 30) * 0.8 = 80.09 which truncates to 80
	assert.Equal(t, 80, schedule.HostIncome(134, schedule.DefaultRates))
	// a cost below the fixed fee never drives the income negative
	assert.Equal(t, 0, schedule.HostIncome(10, schedule.DefaultRates))
	assert.Equal(t, 0, schedule.HostIncome(0, schedule.DefaultRates))
}

func TestFeeFreeRatesPassThrough(t *testing.T) {
	rates := schedule.Rates{HostShare: 1}
	assert.Equal(t, 100, schedule.CustomerPrice(100, 60, rates))
	assert.Equal(t, 100, schedule.HostIncome(100, rates))
}

func TestRatesValidate(t *testing.T) {
	assert.NoError(t, schedule.DefaultRates.Validate())
	assert.Error(t, schedule.Rates{ProcessingFeeRate: 1}.Validate())
	assert.Error(t, schedule.Rates{ProcessingFeeRate: -0.1}.Validate())
	assert.Error(t, schedule.Rates{FixedFeeCents: -1}.Validate())
	assert.Error(t, schedule.Rates{HostShare: 1.5}.Validate())
}
