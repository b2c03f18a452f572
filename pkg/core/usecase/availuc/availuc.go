// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package availuc contains the availabilities UseCase which supports
// creation, inspection, update, and removal of the fixed and
// repeating availability windows of parking spaces. Every mutation
// validates the candidate against the sibling availabilities of the
// same kind and space inside one transaction which serializes with
// the reservation creation path on a per-space advisory lock, so two
// concurrent writers cannot both pass the overlap check.
package availuc

import (
	"context"
	"time"

	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/google/uuid"
)

// UseCase represents an availabilities use case. It holds a database
// connection pool and the availabilities repository instance.
type UseCase struct {
	pool    repo.Pool
	availrp repo.Avails
	locksrp repo.SpaceLocks

	now func() time.Time
}

// New instantiates an availabilities use case.
func New(
	p repo.Pool, a repo.Avails, l repo.SpaceLocks, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, availrp: a, locksrp: l}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, err
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// CreateFixed validates and persists a new fixed availability,
// returning it with its ID filled.
func (avails *UseCase) CreateFixed(
	ctx context.Context, fa *model.FixedAvailability,
) (*model.FixedAvailability, error) {
	err := avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := avails.locksrp.Tx(tx).LockSpace(
				ctx, fa.ParkingSpaceID,
			); err != nil {
				return err
			}
			aq := avails.availrp.Tx(tx)
			siblings, err := aq.ListFixed(ctx, fa.ParkingSpaceID)
			if err != nil {
				return err
			}
			if err := schedule.ValidateFixed(
				fa, siblings, avails.now(),
			); err != nil {
				return err
			}
			return aq.CreateFixed(ctx, fa)
		})
	})
	if err != nil {
		return nil, err
	}
	return fa, nil
}

// UpdateFixed validates and overwrites an existing fixed
// availability, excluding its own persisted row from the sibling
// overlap check.
func (avails *UseCase) UpdateFixed(
	ctx context.Context, fa *model.FixedAvailability,
) (*model.FixedAvailability, error) {
	err := avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := avails.locksrp.Tx(tx).LockSpace(
				ctx, fa.ParkingSpaceID,
			); err != nil {
				return err
			}
			aq := avails.availrp.Tx(tx)
			siblings, err := aq.ListFixed(ctx, fa.ParkingSpaceID)
			if err != nil {
				return err
			}
			if err := schedule.ValidateFixed(
				fa, siblings, avails.now(),
			); err != nil {
				return err
			}
			return aq.UpdateFixed(ctx, fa)
		})
	})
	if err != nil {
		return nil, err
	}
	return fa, nil
}

// FetchFixed loads one fixed availability by its ID.
func (avails *UseCase) FetchFixed(
	ctx context.Context, aid uuid.UUID,
) (fa *model.FixedAvailability, err error) {
	err = avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		fa, err = avails.availrp.Conn(c).FetchFixed(ctx, aid)
		return err
	})
	if err != nil {
		fa = nil
	}
	return
}

// ListFixed loads the fixed availabilities of one parking space.
func (avails *UseCase) ListFixed(
	ctx context.Context, sid uuid.UUID,
) (fas []*model.FixedAvailability, err error) {
	err = avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		fas, err = avails.availrp.Conn(c).ListFixed(ctx, sid)
		return err
	})
	if err != nil {
		fas = nil
	}
	return
}

// DeleteFixed removes one fixed availability. Reservations which
// reference it survive through their denormalized parking space
// reference.
func (avails *UseCase) DeleteFixed(
	ctx context.Context, aid uuid.UUID,
) error {
	return avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return avails.availrp.Conn(c).DeleteFixed(ctx, aid)
	})
}

// CreateRepeating validates and persists a new repeating
// availability, returning it with its ID filled.
func (avails *UseCase) CreateRepeating(
	ctx context.Context, ra *model.RepeatingAvailability,
) (*model.RepeatingAvailability, error) {
	err := avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := avails.locksrp.Tx(tx).LockSpace(
				ctx, ra.ParkingSpaceID,
			); err != nil {
				return err
			}
			aq := avails.availrp.Tx(tx)
			siblings, err := aq.ListRepeating(ctx, ra.ParkingSpaceID)
			if err != nil {
				return err
			}
			if err := schedule.ValidateRepeating(ra, siblings); err != nil {
				return err
			}
			return aq.CreateRepeating(ctx, ra)
		})
	})
	if err != nil {
		return nil, err
	}
	return ra, nil
}

// UpdateRepeating validates and overwrites an existing repeating
// availability, excluding its own persisted row from the sibling
// overlap check.
func (avails *UseCase) UpdateRepeating(
	ctx context.Context, ra *model.RepeatingAvailability,
) (*model.RepeatingAvailability, error) {
	err := avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := avails.locksrp.Tx(tx).LockSpace(
				ctx, ra.ParkingSpaceID,
			); err != nil {
				return err
			}
			aq := avails.availrp.Tx(tx)
			siblings, err := aq.ListRepeating(ctx, ra.ParkingSpaceID)
			if err != nil {
				return err
			}
			if err := schedule.ValidateRepeating(ra, siblings); err != nil {
				return err
			}
			return aq.UpdateRepeating(ctx, ra)
		})
	})
	if err != nil {
		return nil, err
	}
	return ra, nil
}

// FetchRepeating loads one repeating availability by its ID.
func (avails *UseCase) FetchRepeating(
	ctx context.Context, aid uuid.UUID,
) (ra *model.RepeatingAvailability, err error) {
	err = avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ra, err = avails.availrp.Conn(c).FetchRepeating(ctx, aid)
		return err
	})
	if err != nil {
		ra = nil
	}
	return
}

// ListRepeating loads the repeating availabilities of one parking
// space.
func (avails *UseCase) ListRepeating(
	ctx context.Context, sid uuid.UUID,
) (ras []*model.RepeatingAvailability, err error) {
	err = avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ras, err = avails.availrp.Conn(c).ListRepeating(ctx, sid)
		return err
	})
	if err != nil {
		ras = nil
	}
	return
}

// DeleteRepeating removes one repeating availability.
func (avails *UseCase) DeleteRepeating(
	ctx context.Context, aid uuid.UUID,
) error {
	return avails.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return avails.availrp.Conn(c).DeleteRepeating(ctx, aid)
	})
}
