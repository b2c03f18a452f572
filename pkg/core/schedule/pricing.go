// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schedule

import (
	"fmt"
	"math"
)

// Rates holds the processing-fee model parameters which derive the
// customer price and the host income from an availability's per-hour
// price. The processing fee follows the usual card-processor shape of
// a percentage plus a fixed per-transaction amount; the host then
// earns a share of what remains.
type Rates struct {
	// ProcessingFeeRate is the proportional fee, e.g. 0.029 for 2.9%.
	ProcessingFeeRate float64
	// FixedFeeCents is the fixed per-transaction fee in cents.
	FixedFeeCents int
	// HostShare is the host's share of the post-fee amount,
	// e.g. 0.8 for 80%.
	HostShare float64
}

// Validate returns nil if all rate parameters lie in their sensible
// ranges, namely proportional rates within [0, 1) and a non-negative
// fixed fee.
func (r Rates) Validate() error {
	if r.ProcessingFeeRate < 0 || r.ProcessingFeeRate >= 1 {
		return fmt.Errorf(
			"processing fee rate (%v) is out of the [0, 1) range",
			r.ProcessingFeeRate,
		)
	}
	if r.FixedFeeCents < 0 {
		return fmt.Errorf(
			"fixed fee (%d cents) is negative", r.FixedFeeCents,
		)
	}
	if r.HostShare < 0 || r.HostShare > 1 {
		return fmt.Errorf(
			"host share (%v) is out of the [0, 1] range", r.HostShare,
		)
	}
	return nil
}

// DefaultRates is the processing-fee model applied when a use case
// is not configured otherwise.
var DefaultRates = Rates{
	ProcessingFeeRate: 0.029,
	FixedFeeCents:     30,
	HostShare:         0.8,
}

// CustomerPrice computes the amount (in cents) the customer pays for
// parking minutes minutes at an availability priced at pricePerHour
// cents per hour. The per-hour price is prorated by minutes and then
// grossed up so that, after the processing fee is deducted, the
// prorated price remains; the result is rounded to a whole cent.
func CustomerPrice(pricePerHour, minutes int, rates Rates) int {
	preFee := float64(pricePerHour) * float64(minutes) / 60.0
	price := (preFee + float64(rates.FixedFeeCents)) /
		(1.0 - rates.ProcessingFeeRate)
	return int(math.Round(price))
}

// HostIncome computes the amount (in cents) the host earns out of a
// customer cost: the processing fee is deducted and the host receives
// their share of the remainder, floored at zero so the host never
// receives a negative amount.
func HostIncome(cost int, rates Rates) int {
	income := (float64(cost)*(1.0-rates.ProcessingFeeRate) -
		float64(rates.FixedFeeCents)) * rates.HostShare
	if income < 0 {
		return 0
	}
	return int(income)
}
