// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package payment exports the expected interface of the payment
// collaborator. The core never talks to a payment provider itself:
// it derives cost and host income figures (see the schedule package)
// and delegates the actual card charge and host payout requests to a
// Gateway implementation from the adapter layer.
//
// Interfaces should be defined based on the use cases requirements;
// the marketplace only ever charges a customer for a reservation and
// requests a payout of a host's accumulated income, so those are the
// only two operations asked of an implementation.
package payment

import (
	"context"

	"github.com/google/uuid"
)

// ChargeRequest describes one customer card charge. Amounts are in
// currency minor units (cents).
type ChargeRequest struct {
	// CustomerRef is the provider-side customer identifier.
	CustomerRef string
	// Source is the provider-side payment source token.
	Source string

	AmountCents int

	// StatementDescriptor is the short text shown on the customer's
	// card statement.
	StatementDescriptor string
	// Description is a free-form description for the provider
	// dashboard, e.g. naming the reservation.
	Description string
}

// PayoutRequest describes one host payout of accumulated reservation
// income. Amounts are in currency minor units (cents).
type PayoutRequest struct {
	HostID      uuid.UUID
	AmountCents int
	// Destination is the payout destination address, e.g. the host's
	// Venmo e-mail.
	Destination string
}

// Gateway represents the expectations from a payment provider
// implementation. Errors returned from a Gateway are external
// failures, not business-rule violations, and so are not part of the
// cerr taxonomy.
type Gateway interface {
	// Charge performs one customer card charge.
	Charge(ctx context.Context, req ChargeRequest) error
	// RequestPayout asks the provider to transfer the given amount to
	// the host's payout destination.
	RequestPayout(ctx context.Context, req PayoutRequest) error
}
