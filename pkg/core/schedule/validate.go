// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schedule implements the availability and reservation
// consistency engine as pure functions over explicitly passed
// entities and their sibling collections, so every rule is unit
// testable without a live store. It covers availability validation,
// the capacity engine, covering-availability resolution, and pricing
// derivation.
//
// Fixed and repeating availabilities of one parking space form two
// independently validated pools: each pool is internally overlap
// free, but a fixed availability may overlap a repeating one. This
// cross-kind gap is a known limitation which is kept deliberately
// (a sound cross-kind check would have to reason about all-day
// repeating windows across the weekday span of the fixed window and
// no agreed semantic exists for it).
package schedule

import (
	"fmt"
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
)

// ValidateFixed checks a new or edited fixed availability against its
// field-level invariants and against the sibling fixed availabilities
// of the same parking space. The siblings slice should hold every
// other fixed availability currently registered for the space; an
// entry sharing the candidate's ID is skipped, so updates do not
// collide with their own persisted row. The now instant anchors the
// expiry check.
//
// Violations are reported as cerr.ErrInvalidWindow,
// cerr.ErrExpiredAvailability, or cerr.ErrOverlapViolation wrapped in
// a *cerr.Error carrying the HTTP status for the adapter layer.
func ValidateFixed(
	fa *model.FixedAvailability,
	siblings []*model.FixedAvailability,
	now time.Time,
) error {
	if !fa.End.After(fa.Start) {
		return cerr.BadRequest(cerr.ErrInvalidWindow)
	}
	if !fa.End.After(now) {
		return cerr.BadRequest(cerr.ErrExpiredAvailability)
	}
	for _, sib := range siblings {
		if sib.ID == fa.ID {
			continue
		}
		if fa.OverlapsWith(sib) {
			return cerr.Conflict(fmt.Errorf(
				"%w: [%s, %s]",
				cerr.ErrOverlapViolation,
				sib.Start.Format(time.RFC3339),
				sib.End.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// ValidateRepeating checks a new or edited repeating availability
// against its field-level invariants and against the sibling
// repeating availabilities of the same parking space. A sibling
// sharing the candidate's ID is skipped. Two availabilities conflict
// if they share at least one weekday and either is all-day or their
// time-of-day intervals overlap (closed-interval semantics).
func ValidateRepeating(
	ra *model.RepeatingAvailability,
	siblings []*model.RepeatingAvailability,
) error {
	if err := ra.Weekdays.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	if !ra.AllDay {
		if ra.Start == nil || ra.End == nil {
			return cerr.BadRequest(cerr.ErrIncompleteAvailability)
		}
		if err := ra.Start.Validate(); err != nil {
			return cerr.BadRequest(err)
		}
		if err := ra.End.Validate(); err != nil {
			return cerr.BadRequest(err)
		}
		if *ra.End <= *ra.Start {
			return cerr.BadRequest(cerr.ErrInvalidWindow)
		}
	}
	for _, sib := range siblings {
		if sib.ID == ra.ID {
			continue
		}
		if ra.OverlapsWith(sib) {
			return cerr.Conflict(fmt.Errorf(
				"%w: every %v",
				cerr.ErrOverlapViolation,
				sib.Weekdays.Strings(),
			))
		}
	}
	return nil
}
