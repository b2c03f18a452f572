package spacesrp

import (
	"context"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/google/uuid"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (spaces *Repo) Conn(c repo.Conn) repo.SpacesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, ps *model.ParkingSpace) error {
	return Create(ctx, cq.Conn, ps)
}

func (cq connQueryer) Fetch(ctx context.Context, sid uuid.UUID) (*model.ParkingSpace, error) {
	return Fetch(ctx, cq.Conn, sid)
}

func (cq connQueryer) List(ctx context.Context) ([]*model.ParkingSpace, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Update(ctx context.Context, ps *model.ParkingSpace) error {
	return Update(ctx, cq.Conn, ps)
}

func (cq connQueryer) Delete(ctx context.Context, sid uuid.UUID) error {
	return Delete(ctx, cq.Conn, sid)
}

type txQueryer struct {
	*postgres.Tx
}

func (spaces *Repo) Tx(tx repo.Tx) repo.SpacesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, ps *model.ParkingSpace) error {
	return Create(ctx, tq.Tx, ps)
}

func (tq txQueryer) Fetch(ctx context.Context, sid uuid.UUID) (*model.ParkingSpace, error) {
	return Fetch(ctx, tq.Tx, sid)
}

func (tq txQueryer) List(ctx context.Context) ([]*model.ParkingSpace, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Update(ctx context.Context, ps *model.ParkingSpace) error {
	return Update(ctx, tq.Tx, ps)
}

func (tq txQueryer) Delete(ctx context.Context, sid uuid.UUID) error {
	return Delete(ctx, tq.Tx, sid)
}
