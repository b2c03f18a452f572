// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stripe provides a reification of the payment.Gateway
// interface over the Stripe API. Customer charges are created as
// Stripe charge objects against the customer's registered source
// token. Host payouts draw from the platform balance; since Stripe
// cannot push money to a Venmo address directly, the destination
// e-mail travels in the payout metadata for the settlement run.
package stripe

import (
	"context"
	"fmt"

	"github.com/curbweb/curbweb/pkg/core/payment"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/charge"
	"github.com/stripe/stripe-go/v79/payout"
)

// Gateway holds the Stripe API credentials. It implements the
// payment.Gateway interface.
type Gateway struct {
	key string
}

// New instantiates a Stripe payment gateway with the given secret
// API key.
func New(key string) (*Gateway, error) {
	if key == "" {
		return nil, fmt.Errorf("stripe API key is empty")
	}
	return &Gateway{key: key}, nil
}

// Charge performs one customer card charge.
//
// The stripe-go client does not accept a context; the ctx argument
// only guards the pre-flight check.
func (g *Gateway) Charge(
	ctx context.Context, req payment.ChargeRequest,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stripe.Key = g.key
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(req.AmountCents)),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Customer:    stripe.String(req.CustomerRef),
		Description: stripe.String(req.Description),
	}
	if req.StatementDescriptor != "" {
		params.StatementDescriptor = stripe.String(
			req.StatementDescriptor,
		)
	}
	if err := params.SetSource(req.Source); err != nil {
		return fmt.Errorf("setting charge source: %w", err)
	}
	if _, err := charge.New(params); err != nil {
		return fmt.Errorf("creating stripe charge: %w", err)
	}
	return nil
}

// RequestPayout asks Stripe to pay the given amount out of the
// platform balance. The host identity and Venmo destination are
// attached as metadata.
func (g *Gateway) RequestPayout(
	ctx context.Context, req payment.PayoutRequest,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stripe.Key = g.key
	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(int64(req.AmountCents)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("host_id", req.HostID.String())
	params.AddMetadata("venmo_email", req.Destination)
	if _, err := payout.New(params); err != nil {
		return fmt.Errorf("creating stripe payout: %w", err)
	}
	return nil
}
