// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

// SpacesConnQueryer lists the parking space queries which may run on
// a single connection, out of any explicit transaction.
type SpacesConnQueryer interface {
	SpacesQueryer
}

// SpacesTxQueryer lists the parking space queries which may run in an
// ongoing transaction.
type SpacesTxQueryer interface {
	SpacesQueryer
}

// SpacesQueryer is the parking spaces repository interface.
type SpacesQueryer interface {
	// Create persists the given parking space, filling its ID.
	Create(ctx context.Context, ps *model.ParkingSpace) error
	// Fetch loads one parking space by its ID.
	Fetch(ctx context.Context, sid uuid.UUID) (*model.ParkingSpace, error)
	// List loads all parking spaces.
	List(ctx context.Context) ([]*model.ParkingSpace, error)
	// Update overwrites the mutable fields of an existing space.
	Update(ctx context.Context, ps *model.ParkingSpace) error
	// Delete removes one parking space by its ID.
	Delete(ctx context.Context, sid uuid.UUID) error
}

// Spaces is the parking spaces repository builder, guiding a
// repository instance to run its queries over a specific connection
// or transaction.
type Spaces interface {
	Conn(Conn) SpacesConnQueryer
	Tx(Tx) SpacesTxQueryer
}
