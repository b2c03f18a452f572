// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package availuc

import (
	"errors"
	"time"
)

// Option is a functional option for the availabilities use case.
type Option func(uc *UseCase) error

// WithClock option overrides the wall clock which decides if a fixed
// availability ends in the past. It is useful for tests which need a
// frozen clock. This option may be passed to the New() function.
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
