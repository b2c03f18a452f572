// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resvuc

import (
	"errors"
	"time"

	"github.com/curbweb/curbweb/pkg/core/schedule"
)

// Option is a functional option for the reservations use case.
type Option func(uc *UseCase) error

// WithRates option overrides the pricing rates which derive the
// customer cost and host income figures from an availability's
// hourly price. This option may be passed to the New() function.
func WithRates(rates schedule.Rates) Option {
	return func(uc *UseCase) error {
		if err := rates.Validate(); err != nil {
			return err
		}
		if uc.rates != nil {
			return errors.New("rates are already configured")
		}
		uc.rates = &rates
		return nil
	}
}

// WithPayoutGrace option configures a reservations UseCase instance
// in order to postpone the payout settlement of each reservation for
// the given duration after its end, leaving a window for
// cancellation disputes. This option may be passed to the New()
// function.
func WithPayoutGrace(grace time.Duration) Option {
	return func(uc *UseCase) error {
		if grace < 0 {
			return errors.New("payout grace is negative")
		}
		if uc.payoutGrace != 0 {
			return errors.New("payout grace is already configured")
		}
		uc.payoutGrace = grace
		return nil
	}
}

// WithClock option overrides the wall clock which bounds the payout
// settlement window. It is useful for tests which need a frozen
// clock. This option may be passed to the New() function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
