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

// AccountsConnQueryer lists the account queries which may run on a
// single connection, out of any explicit transaction.
type AccountsConnQueryer interface {
	AccountsQueryer
}

// AccountsTxQueryer lists the account queries which may run in an
// ongoing transaction.
type AccountsTxQueryer interface {
	AccountsQueryer
}

// AccountsQueryer is the hosts/customers/vehicles repository
// interface. Account management itself (sign up, authentication) is
// out of the core scope; these queries only support the marketplace
// use cases.
type AccountsQueryer interface {
	// FetchHost loads one host by its ID.
	FetchHost(ctx context.Context, hid uuid.UUID) (*model.Host, error)
	// UpdateHostVenmoEmail stores a new payout destination address
	// for the hid host.
	UpdateHostVenmoEmail(ctx context.Context, hid uuid.UUID, email string) error
	// FetchVehicle loads one vehicle by its ID.
	FetchVehicle(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error)
}

// Accounts is the accounts repository builder.
type Accounts interface {
	Conn(Conn) AccountsConnQueryer
	Tx(Tx) AccountsTxQueryer
}
