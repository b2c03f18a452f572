// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package resvrp provides a reification of the repo.Resvs interface,
// managing the reservation rows. Reservations are never hard-deleted;
// cancellation and payout settlement only flip their flags.
package resvrp

import (
	"context"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents a reservations repository.
type Repo struct {
}

// New instantiates a reservations Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer, and
// wraps it as a repo.ResvsConnQueryer.
func (resvs *Repo) Conn(c repo.Conn) repo.ResvsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, r *model.Reservation) error {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) Fetch(ctx context.Context, rid uuid.UUID) (*model.Reservation, error) {
	return Fetch(ctx, cq.Conn, rid)
}

func (cq connQueryer) ListBySpace(ctx context.Context, sid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	return ListBySpace(ctx, cq.Conn, sid, activeOnly)
}

func (cq connQueryer) ListByVehicle(ctx context.Context, vid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	return ListByVehicle(ctx, cq.Conn, vid, activeOnly)
}

func (cq connQueryer) Cancel(ctx context.Context, rid uuid.UUID) (*model.Reservation, error) {
	return Cancel(ctx, cq.Conn, rid)
}

func (cq connQueryer) MarkPaidOut(ctx context.Context, hid uuid.UUID, before time.Time) ([]*model.Reservation, error) {
	return MarkPaidOut(ctx, cq.Conn, hid, before)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *postgres.Tx as created by this adapter layer, and
// wraps it as a repo.ResvsTxQueryer.
func (resvs *Repo) Tx(tx repo.Tx) repo.ResvsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, r *model.Reservation) error {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) Fetch(ctx context.Context, rid uuid.UUID) (*model.Reservation, error) {
	return Fetch(ctx, tq.Tx, rid)
}

func (tq txQueryer) ListBySpace(ctx context.Context, sid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	return ListBySpace(ctx, tq.Tx, sid, activeOnly)
}

func (tq txQueryer) ListByVehicle(ctx context.Context, vid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	return ListByVehicle(ctx, tq.Tx, vid, activeOnly)
}

func (tq txQueryer) Cancel(ctx context.Context, rid uuid.UUID) (*model.Reservation, error) {
	return Cancel(ctx, tq.Tx, rid)
}

func (tq txQueryer) MarkPaidOut(ctx context.Context, hid uuid.UUID, before time.Time) ([]*model.Reservation, error) {
	return MarkPaidOut(ctx, tq.Tx, hid, before)
}
