// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package resvuc contains the reservations UseCase which books and
// cancels parking space reservations, charges customers for them,
// and settles host payouts. Reservation creation is the hot path of
// the marketplace: it resolves the covering availability, derives
// the price figures, and re-checks capacity and vehicle conflicts
// inside a transaction which holds the per-space lock, so racing
// requests for the last vacancy of a space cannot both succeed.
package resvuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/log"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/curbweb/curbweb/pkg/core/payment"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/google/uuid"
)

// UseCase represents a reservations use case, holding a database
// connection pool, the repositories which it consults, the payment
// gateway collaborator, and the pricing rates.
type UseCase struct {
	pool       repo.Pool
	resvrp     repo.Resvs
	spacesrp   repo.Spaces
	availrp    repo.Avails
	accountsrp repo.Accounts
	locksrp    repo.SpaceLocks

	gateway payment.Gateway
	rates   *schedule.Rates
	// payoutGrace postpones the payout settlement of a reservation
	// for the given duration after its end, leaving a window for
	// cancellation disputes.
	payoutGrace time.Duration
	now         func() time.Time
}

// New instantiates a reservations use case. The payment gateway is
// mandatory since both the charge and payout operations need it;
// pricing rates default to DefaultRates unless overridden by the
// WithRates option.
func New(
	p repo.Pool,
	r repo.Resvs,
	s repo.Spaces,
	a repo.Avails,
	acc repo.Accounts,
	l repo.SpaceLocks,
	gw payment.Gateway,
	opts ...Option,
) (*UseCase, error) {
	if gw == nil {
		return nil, fmt.Errorf("payment gateway is required")
	}
	uc := &UseCase{
		pool:       p,
		resvrp:     r,
		spacesrp:   s,
		availrp:    a,
		accountsrp: acc,
		locksrp:    l,
		gateway:    gw,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, err
		}
	}
	// now, deal with defaults
	if uc.rates == nil {
		rates := schedule.DefaultRates
		uc.rates = &rates
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Create books a reservation of the sid parking space for the vid
// vehicle over the [start, end] window. It resolves the covering
// availability (preferring the fixed kind), derives the customer
// cost and host income from that availability's hourly price, and
// re-validates capacity and vehicle conflicts while holding the
// per-space lock, persisting the reservation only if every check
// passes. The persisted reservation is returned with its price
// figures and covering reference filled.
func (resvs *UseCase) Create(
	ctx context.Context,
	sid, vid uuid.UUID,
	start, end time.Time,
	paymentMethodInfo string,
) (*model.Reservation, error) {
	r := &model.Reservation{
		VehicleID:         vid,
		ParkingSpaceID:    sid,
		Start:             start,
		End:               end,
		PaymentMethodInfo: paymentMethodInfo,
	}
	err := resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := resvs.locksrp.Tx(tx).LockSpace(ctx, sid); err != nil {
				return err
			}
			space, err := resvs.spacesrp.Tx(tx).Fetch(ctx, sid)
			if err != nil {
				return err
			}
			if _, err := resvs.accountsrp.Tx(tx).FetchVehicle(
				ctx, vid,
			); err != nil {
				return err
			}
			aq := resvs.availrp.Tx(tx)
			fixed, err := aq.ListFixed(ctx, sid)
			if err != nil {
				return err
			}
			repeating, err := aq.ListRepeating(ctx, sid)
			if err != nil {
				return err
			}
			covering, err := schedule.ResolveCovering(
				fixed, repeating, start, end,
			)
			if err != nil {
				return err
			}
			r.Covering = covering.Ref()
			r.Cost = schedule.CustomerPrice(
				covering.PricePerHour(), r.Minutes(), *resvs.rates,
			)
			r.HostIncome = schedule.HostIncome(r.Cost, *resvs.rates)
			rq := resvs.resvrp.Tx(tx)
			spaceResvs, err := rq.ListBySpace(ctx, sid, true)
			if err != nil {
				return err
			}
			vehicleResvs, err := rq.ListByVehicle(ctx, vid, true)
			if err != nil {
				return err
			}
			if err := schedule.ValidateReservation(
				r, covering, space,
				fixed, repeating,
				spaceResvs, vehicleResvs,
			); err != nil {
				return err
			}
			return rq.Create(ctx, r)
		})
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Fetch loads one reservation by its ID.
func (resvs *UseCase) Fetch(
	ctx context.Context, rid uuid.UUID,
) (r *model.Reservation, err error) {
	err = resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = resvs.resvrp.Conn(c).Fetch(ctx, rid)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// ListBySpace loads the reservations of one parking space,
// restricted to the non-cancelled ones when activeOnly is set.
func (resvs *UseCase) ListBySpace(
	ctx context.Context, sid uuid.UUID, activeOnly bool,
) (rs []*model.Reservation, err error) {
	err = resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rs, err = resvs.resvrp.Conn(c).ListBySpace(ctx, sid, activeOnly)
		return err
	})
	if err != nil {
		rs = nil
	}
	return
}

// ListByVehicle loads the reservations of one vehicle, restricted to
// the non-cancelled ones when activeOnly is set.
func (resvs *UseCase) ListByVehicle(
	ctx context.Context, vid uuid.UUID, activeOnly bool,
) (rs []*model.Reservation, err error) {
	err = resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rs, err = resvs.resvrp.Conn(c).ListByVehicle(ctx, vid, activeOnly)
		return err
	})
	if err != nil {
		rs = nil
	}
	return
}

// Cancel marks one reservation as cancelled and returns the updated
// record. The reservation row is kept; its capacity is released
// because vacancy computations only count non-cancelled
// reservations. Cancelling twice is a no-op.
func (resvs *UseCase) Cancel(
	ctx context.Context, rid uuid.UUID,
) (r *model.Reservation, err error) {
	err = resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = resvs.resvrp.Conn(c).Cancel(ctx, rid)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// Charge collects the cost of one reservation from the customer's
// registered payment source through the payment gateway. The charged
// amount is the reservation's stored cost, so re-pricing between
// booking and charging cannot change what the customer pays.
func (resvs *UseCase) Charge(
	ctx context.Context, rid uuid.UUID, customerRef, source string,
) error {
	var r *model.Reservation
	err := resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		var err error
		r, err = resvs.resvrp.Conn(c).Fetch(ctx, rid)
		return err
	})
	if err != nil {
		return err
	}
	return resvs.gateway.Charge(ctx, payment.ChargeRequest{
		CustomerRef:         customerRef,
		Source:              source,
		AmountCents:         r.Cost,
		StatementDescriptor: "Curb parking",
		Description:         fmt.Sprintf("Reservation %s", r.ID),
	})
}

// Payout settles the hid host's accumulated income. Every
// non-cancelled reservation of the host's spaces which ended in the
// past and was not settled before is marked as paid out and its host
// income contributes to a single payout request sent to the payment
// gateway, destined to the host's payout e-mail. A non-empty
// venmoEmail is stored as the host's new destination first, so
// repeated payouts may omit it. The marking and the gateway request
// share one transaction, so a gateway failure rolls the marks back
// and the reservations remain payable. The settled amount (in cents)
// is returned; a host with no payable reservations settles zero
// without contacting the gateway.
func (resvs *UseCase) Payout(
	ctx context.Context, hid uuid.UUID, venmoEmail string,
) (amount int, err error) {
	err = resvs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			accq := resvs.accountsrp.Tx(tx)
			if venmoEmail != "" {
				if err := accq.UpdateHostVenmoEmail(
					ctx, hid, venmoEmail,
				); err != nil {
					return err
				}
			}
			host, err := accq.FetchHost(ctx, hid)
			if err != nil {
				return err
			}
			marked, err := resvs.resvrp.Tx(tx).MarkPaidOut(
				ctx, hid, resvs.now().Add(-resvs.payoutGrace),
			)
			if err != nil {
				return err
			}
			for _, r := range marked {
				amount += r.HostIncome
			}
			if amount <= 0 {
				amount = 0
				return nil
			}
			if host.VenmoEmail == "" {
				return cerr.BadRequest(cerr.ErrNoPayoutDestination)
			}
			if err := resvs.gateway.RequestPayout(
				ctx, payment.PayoutRequest{
					HostID:      hid,
					AmountCents: amount,
					Destination: host.VenmoEmail,
				},
			); err != nil {
				return err
			}
			log.Info(
				ctx, "host payout is settled",
				slog.String("host", hid.String()),
				slog.Int("reservations", len(marked)),
				slog.Int("amount", amount),
			)
			return nil
		})
	})
	if err != nil {
		amount = 0
	}
	return
}
