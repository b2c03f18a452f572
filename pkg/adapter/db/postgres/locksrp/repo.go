// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package locksrp provides a reification of the repo.SpaceLocks
// interface over PostgreSQL transaction-scoped advisory locks.
package locksrp

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents a per-parking space lock repository.
type Repo struct {
}

// New instantiates a space locks Repo struct.
func New() *Repo {
	return &Repo{}
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an
// instance of *postgres.Tx as created by this adapter layer, and
// wraps it as a repo.SpaceLockQueryer. Acquired locks belong to the
// wrapped transaction and are released when it commits or rolls
// back; there is no connection-based variant since a lock without a
// bounding transaction would never be released deterministically.
func (locks *Repo) Tx(tx repo.Tx) repo.SpaceLockQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

// LockSpace blocks until the sid parking space's advisory lock is
// held by the current transaction. The 128-bit UUID is folded into
// the 64-bit advisory lock keyspace; that keyspace is shared with
// any other advisory lock user of the same database.
func (tq txQueryer) LockSpace(ctx context.Context, sid uuid.UUID) error {
	_, err := tq.Exec(
		ctx, "SELECT pg_advisory_xact_lock(?)", lockKey(sid),
	)
	if err != nil {
		return fmt.Errorf("acquiring space lock: %w", err)
	}
	return nil
}

func lockKey(sid uuid.UUID) int64 {
	hi := binary.BigEndian.Uint64(sid[:8])
	lo := binary.BigEndian.Uint64(sid[8:])
	return int64(hi ^ lo)
}
