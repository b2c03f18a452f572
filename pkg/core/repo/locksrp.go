// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
)

// SpaceLocks interface represents the transaction-scoped per-parking
// space lock. Writers which must observe a consistent view of one
// space's availabilities and reservations (i.e., the availability
// mutation and reservation creation paths) take this lock first, so
// their validation and persistence steps serialize with each other.
// The lock is released when its surrounding transaction completes.
type SpaceLocks interface {
	Tx(Tx) SpaceLockQueryer
}

// SpaceLockQueryer interface lists the operations which may be
// executed while holding a transaction.
type SpaceLockQueryer interface {
	// LockSpace blocks until the per-space exclusive lock for the
	// sid parking space is acquired by the current transaction, or
	// the ctx is cancelled.
	LockSpace(ctx context.Context, sid uuid.UUID) error
}
