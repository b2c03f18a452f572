// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package availrp provides a reification of the repo.Avails
// interface, managing the fixed and repeating availability rows of
// parking spaces.
package availrp

import (
	"context"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents an availabilities repository.
type Repo struct {
}

// New instantiates an availabilities Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer, and
// wraps it as a repo.AvailsConnQueryer.
func (avails *Repo) Conn(c repo.Conn) repo.AvailsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) CreateFixed(ctx context.Context, fa *model.FixedAvailability) error {
	return CreateFixed(ctx, cq.Conn, fa)
}

func (cq connQueryer) FetchFixed(ctx context.Context, aid uuid.UUID) (*model.FixedAvailability, error) {
	return FetchFixed(ctx, cq.Conn, aid)
}

func (cq connQueryer) ListFixed(ctx context.Context, sid uuid.UUID) ([]*model.FixedAvailability, error) {
	return ListFixed(ctx, cq.Conn, sid)
}

func (cq connQueryer) UpdateFixed(ctx context.Context, fa *model.FixedAvailability) error {
	return UpdateFixed(ctx, cq.Conn, fa)
}

func (cq connQueryer) DeleteFixed(ctx context.Context, aid uuid.UUID) error {
	return DeleteFixed(ctx, cq.Conn, aid)
}

func (cq connQueryer) CreateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error {
	return CreateRepeating(ctx, cq.Conn, ra)
}

func (cq connQueryer) FetchRepeating(ctx context.Context, aid uuid.UUID) (*model.RepeatingAvailability, error) {
	return FetchRepeating(ctx, cq.Conn, aid)
}

func (cq connQueryer) ListRepeating(ctx context.Context, sid uuid.UUID) ([]*model.RepeatingAvailability, error) {
	return ListRepeating(ctx, cq.Conn, sid)
}

func (cq connQueryer) UpdateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error {
	return UpdateRepeating(ctx, cq.Conn, ra)
}

func (cq connQueryer) DeleteRepeating(ctx context.Context, aid uuid.UUID) error {
	return DeleteRepeating(ctx, cq.Conn, aid)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *postgres.Tx as created by this adapter layer, and
// wraps it as a repo.AvailsTxQueryer.
func (avails *Repo) Tx(tx repo.Tx) repo.AvailsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) CreateFixed(ctx context.Context, fa *model.FixedAvailability) error {
	return CreateFixed(ctx, tq.Tx, fa)
}

func (tq txQueryer) FetchFixed(ctx context.Context, aid uuid.UUID) (*model.FixedAvailability, error) {
	return FetchFixed(ctx, tq.Tx, aid)
}

func (tq txQueryer) ListFixed(ctx context.Context, sid uuid.UUID) ([]*model.FixedAvailability, error) {
	return ListFixed(ctx, tq.Tx, sid)
}

func (tq txQueryer) UpdateFixed(ctx context.Context, fa *model.FixedAvailability) error {
	return UpdateFixed(ctx, tq.Tx, fa)
}

func (tq txQueryer) DeleteFixed(ctx context.Context, aid uuid.UUID) error {
	return DeleteFixed(ctx, tq.Tx, aid)
}

func (tq txQueryer) CreateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error {
	return CreateRepeating(ctx, tq.Tx, ra)
}

func (tq txQueryer) FetchRepeating(ctx context.Context, aid uuid.UUID) (*model.RepeatingAvailability, error) {
	return FetchRepeating(ctx, tq.Tx, aid)
}

func (tq txQueryer) ListRepeating(ctx context.Context, sid uuid.UUID) ([]*model.RepeatingAvailability, error) {
	return ListRepeating(ctx, tq.Tx, sid)
}

func (tq txQueryer) UpdateRepeating(ctx context.Context, ra *model.RepeatingAvailability) error {
	return UpdateRepeating(ctx, tq.Tx, ra)
}

func (tq txQueryer) DeleteRepeating(ctx context.Context, aid uuid.UUID) error {
	return DeleteRepeating(ctx, tq.Tx, aid)
}
