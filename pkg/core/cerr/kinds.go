// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "errors"

// Sentinel errors classifying the deterministic business-rule
// violations of the availability and reservation engine. All of them
// are local, synchronous pre-condition violations which abort the
// operation before any persistence; none is retried automatically.
// Callers should test them with errors.Is after unwrapping.
var (
	// ErrInvalidWindow indicates an availability or reservation
	// window whose end does not come after its start.
	ErrInvalidWindow = errors.New(
		"end time must come after start time",
	)

	// ErrExpiredAvailability indicates a fixed availability whose end
	// is not in the future at creation time.
	ErrExpiredAvailability = errors.New(
		"availability end time must come after current time",
	)

	// ErrOverlapViolation indicates a new or edited availability
	// which overlaps a sibling availability of the same kind for the
	// same parking space.
	ErrOverlapViolation = errors.New(
		"overlaps with other availability",
	)

	// ErrIncompleteAvailability indicates a repeating availability
	// which is neither all-day nor fully time-bounded.
	ErrIncompleteAvailability = errors.New(
		"must be either all day or have a start and end time",
	)

	// ErrNoAvailability indicates that no fixed or repeating
	// availability covers the requested reservation window.
	ErrNoAvailability = errors.New(
		"no availabilities in given time range",
	)

	// ErrOutOfBounds indicates a reservation window which is not
	// contained within the bounds of its covering availability.
	ErrOutOfBounds = errors.New(
		"reservation window is not within availability bounds",
	)

	// ErrNoCapacity indicates that the parking space vacancy for the
	// requested window is zero or negative.
	ErrNoCapacity = errors.New(
		"not enough available spaces at this time",
	)

	// ErrVehicleConflict indicates that the vehicle already has an
	// overlapping non-cancelled reservation.
	ErrVehicleConflict = errors.New(
		"vehicle is already in use during this time",
	)

	// ErrNoPayoutDestination indicates a payout request for a host
	// with no configured payout e-mail address.
	ErrNoPayoutDestination = errors.New(
		"host has no payout destination configured",
	)
)
