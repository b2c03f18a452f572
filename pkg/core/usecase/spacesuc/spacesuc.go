// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spacesuc contains the parking spaces UseCase which supports
// listing, creation, inspection, update, and removal of parking
// spaces, in addition to the vacancy query which reports how many
// spots of a space remain unreserved over a time window.
package spacesuc

import (
	"context"
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/google/uuid"
)

// UseCase represents a parking spaces use case. It holds a database
// connection pool and the repository instances which it guides with
// connections or transactions on demand.
type UseCase struct {
	pool     repo.Pool
	spacesrp repo.Spaces
	availrp  repo.Avails
	resvrp   repo.Resvs
}

// New instantiates a parking spaces use case.
func New(
	p repo.Pool, s repo.Spaces, a repo.Avails, r repo.Resvs,
) *UseCase {
	return &UseCase{pool: p, spacesrp: s, availrp: a, resvrp: r}
}

// Create validates and persists a new parking space owned by the
// given host, returning it with its ID filled.
func (spaces *UseCase) Create(
	ctx context.Context, ps *model.ParkingSpace,
) (*model.ParkingSpace, error) {
	if err := ps.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err := spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return spaces.spacesrp.Conn(c).Create(ctx, ps)
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Fetch loads one parking space by its ID.
func (spaces *UseCase) Fetch(
	ctx context.Context, sid uuid.UUID,
) (ps *model.ParkingSpace, err error) {
	err = spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ps, err = spaces.spacesrp.Conn(c).Fetch(ctx, sid)
		return err
	})
	if err != nil {
		ps = nil
	}
	return
}

// List loads all parking spaces.
func (spaces *UseCase) List(
	ctx context.Context,
) (pss []*model.ParkingSpace, err error) {
	err = spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pss, err = spaces.spacesrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		pss = nil
	}
	return
}

// Update validates and overwrites the mutable fields of an existing
// parking space.
func (spaces *UseCase) Update(
	ctx context.Context, ps *model.ParkingSpace,
) (*model.ParkingSpace, error) {
	if err := ps.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err := spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return spaces.spacesrp.Conn(c).Update(ctx, ps)
	})
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Delete removes one parking space by its ID.
func (spaces *UseCase) Delete(ctx context.Context, sid uuid.UUID) error {
	return spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return spaces.spacesrp.Conn(c).Delete(ctx, sid)
	})
}

// Vacancy reports the number of unreserved spots of the sid parking
// space over the [start, end] window and whether the window is
// covered by some availability at all. The count starts from the
// space's static capacity ceiling and is decremented for every
// availability which already holds a conflicting non-cancelled
// reservation (see schedule.UnreservedSpaces).
func (spaces *UseCase) Vacancy(
	ctx context.Context, sid uuid.UUID, start, end time.Time,
) (vacant int, covered bool, err error) {
	if !end.After(start) {
		return 0, false, cerr.BadRequest(cerr.ErrInvalidWindow)
	}
	err = spaces.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ps, err := spaces.spacesrp.Conn(c).Fetch(ctx, sid)
		if err != nil {
			return err
		}
		aq := spaces.availrp.Conn(c)
		fixed, err := aq.ListFixed(ctx, sid)
		if err != nil {
			return err
		}
		repeating, err := aq.ListRepeating(ctx, sid)
		if err != nil {
			return err
		}
		resvs, err := spaces.resvrp.Conn(c).ListBySpace(ctx, sid, true)
		if err != nil {
			return err
		}
		covered = schedule.IsAvailableBetween(fixed, repeating, start, end)
		vacant = schedule.UnreservedSpaces(
			ps, fixed, repeating, resvs, start, end,
		)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return
}
