// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package accountsrp provides a reification of the repo.Accounts
// interface for the host and vehicle lookups which the marketplace
// use cases need.
package accountsrp

import (
	"context"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents an accounts repository.
type Repo struct {
}

// New instantiates an accounts Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer, and
// wraps it as a repo.AccountsConnQueryer.
func (accounts *Repo) Conn(c repo.Conn) repo.AccountsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) FetchHost(ctx context.Context, hid uuid.UUID) (*model.Host, error) {
	return FetchHost(ctx, cq.Conn, hid)
}

func (cq connQueryer) UpdateHostVenmoEmail(ctx context.Context, hid uuid.UUID, email string) error {
	return UpdateHostVenmoEmail(ctx, cq.Conn, hid, email)
}

func (cq connQueryer) FetchVehicle(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return FetchVehicle(ctx, cq.Conn, vid)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *postgres.Tx as created by this adapter layer, and
// wraps it as a repo.AccountsTxQueryer.
func (accounts *Repo) Tx(tx repo.Tx) repo.AccountsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) FetchHost(ctx context.Context, hid uuid.UUID) (*model.Host, error) {
	return FetchHost(ctx, tq.Tx, hid)
}

func (tq txQueryer) UpdateHostVenmoEmail(ctx context.Context, hid uuid.UUID, email string) error {
	return UpdateHostVenmoEmail(ctx, tq.Tx, hid, email)
}

func (tq txQueryer) FetchVehicle(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return FetchVehicle(ctx, tq.Tx, vid)
}
