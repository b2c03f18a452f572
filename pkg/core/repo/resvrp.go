// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

// ResvsConnQueryer lists the reservation queries which may run on a
// single connection, out of any explicit transaction.
type ResvsConnQueryer interface {
	ResvsQueryer
}

// ResvsTxQueryer lists the reservation queries which may run in an
// ongoing transaction.
type ResvsTxQueryer interface {
	ResvsQueryer
}

// ResvsQueryer is the reservations repository interface.
// Reservations are never hard-deleted; they leave the active state
// only through Cancel (one-way) and are settled by MarkPaidOut.
type ResvsQueryer interface {
	// Create persists the given reservation, filling its ID.
	Create(ctx context.Context, r *model.Reservation) error
	// Fetch loads one reservation by its ID.
	Fetch(ctx context.Context, rid uuid.UUID) (*model.Reservation, error)
	// ListBySpace loads the reservations whose denormalized parking
	// space reference matches sid, restricted to non-cancelled
	// records when activeOnly is set.
	ListBySpace(ctx context.Context, sid uuid.UUID, activeOnly bool) ([]*model.Reservation, error)
	// ListByVehicle loads the reservations of one vehicle, restricted
	// to non-cancelled records when activeOnly is set.
	ListByVehicle(ctx context.Context, vid uuid.UUID, activeOnly bool) ([]*model.Reservation, error)
	// Cancel flips the cancelled flag of one reservation and returns
	// the updated record. Cancelling an already cancelled reservation
	// is a no-op.
	Cancel(ctx context.Context, rid uuid.UUID) (*model.Reservation, error)
	// MarkPaidOut flips paid_out on every non-cancelled, not yet
	// paid-out reservation of the hid host's parking spaces whose end
	// lies before the before instant. It returns the marked
	// reservations, so the caller can settle their host incomes.
	MarkPaidOut(ctx context.Context, hid uuid.UUID, before time.Time) ([]*model.Reservation, error)
}

// Resvs is the reservations repository builder.
type Resvs interface {
	Conn(Conn) ResvsConnQueryer
	Tx(Tx) ResvsTxQueryer
}
