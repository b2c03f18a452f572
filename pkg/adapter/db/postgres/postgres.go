// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL adapter for the repository
// interfaces of the pkg/core/repo package. The Pool, Conn, and Tx
// types adapt a GORM-managed connection pool to the core
// expectations, while the <entity>rp subpackages implement the
// per-entity repositories over them. Repository implementations are
// generic over the Queryer type constraint, so one query function
// serves both connection-based and transaction-based callers.
package postgres

// DefaultSchema is the database schema which holds the marketplace
// tables. Roles created by the initialization command receive it as
// their default search_path.
const DefaultSchema = "curbweb"
