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

// AvailsConnQueryer lists the availability queries which may run on a
// single connection, out of any explicit transaction.
type AvailsConnQueryer interface {
	AvailsQueryer
}

// AvailsTxQueryer lists the availability queries which may run in an
// ongoing transaction.
type AvailsTxQueryer interface {
	AvailsQueryer
}

// AvailsQueryer is the repository interface for both availability
// variants. Fixed and repeating availabilities are distinct entities
// with distinct tables, but they are managed by one repository since
// every caller needs the two pools of a parking space together.
type AvailsQueryer interface {
	CreateFixed(ctx context.Context, fa *model.FixedAvailability) error
	FetchFixed(ctx context.Context, aid uuid.UUID) (*model.FixedAvailability, error)
	ListFixed(ctx context.Context, sid uuid.UUID) ([]*model.FixedAvailability, error)
	UpdateFixed(ctx context.Context, fa *model.FixedAvailability) error
	DeleteFixed(ctx context.Context, aid uuid.UUID) error

	CreateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error
	FetchRepeating(ctx context.Context, aid uuid.UUID) (*model.RepeatingAvailability, error)
	ListRepeating(ctx context.Context, sid uuid.UUID) ([]*model.RepeatingAvailability, error)
	UpdateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error
	DeleteRepeating(ctx context.Context, aid uuid.UUID) error
}

// Avails is the availabilities repository builder.
type Avails interface {
	Conn(Conn) AvailsConnQueryer
	Tx(Tx) AvailsTxQueryer
}
