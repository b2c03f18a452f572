// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation models a vehicle parked at a parking space over a
// closed [Start, End] datetime interval. It references exactly one
// covering availability through the Covering reference and also
// carries a denormalized ParkingSpaceID, so historical reservations
// remain attributable to their space even if the availability record
// is deleted later.
//
// A reservation is mutated only by cancellation (a one-way Active to
// Cancelled state flip, never a hard delete) or by an operator
// flipping PaidOut after the reservation has elapsed.
type Reservation struct {
	ID        uuid.UUID
	VehicleID uuid.UUID

	// Covering identifies the availability whose bounds contain this
	// reservation's window. Its kind is fixed at creation time.
	Covering CoveringRef

	// ParkingSpaceID is kept denormalized so that deleting the
	// availability does not orphan the reservation history.
	ParkingSpaceID uuid.UUID

	Start time.Time
	End   time.Time

	Cancelled bool
	PaidOut   bool

	// Cost is the amount (in cents) the customer pays and HostIncome
	// is the amount (in cents) the host earns after the processing
	// fee model is applied. Both are derived at creation time.
	Cost       int
	HostIncome int

	PaymentMethodInfo string

	CreatedAt time.Time
}

// OverlapsWindow reports whether this reservation overlaps the
// [start, end] closed interval (touching endpoints count).
func (r *Reservation) OverlapsWindow(start, end time.Time) bool {
	return Overlaps(r.Start, r.End, start, end)
}

// Minutes returns the duration of the reservation in whole minutes.
func (r *Reservation) Minutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}
