// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp manages the database schema and roles for the db
// initialization command: creating the marketplace schema and its
// tables, provisioning the admin and normal roles, and updating
// their passwords without sending them in plaintext (see the core
// scram package).
//
// No use case consults this package; it exists for the command layer
// alone, so it exposes plain query functions without a core
// repository interface.
package schemarp

import (
	"context"
	"fmt"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/scram"
)

// ddl lists the marketplace tables in dependency order. The
// reservations table references its covering availability with two
// nullable columns (exactly one is set) and keeps a plain
// parking_space_id column without a foreign key, so a reservation
// row survives the removal of its availability or space.
const ddl = `
CREATE TABLE IF NOT EXISTS hosts (
    hid uuid PRIMARY KEY,
    name text NOT NULL,
    venmo_email text NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS customers (
    cid uuid PRIMARY KEY,
    name text NOT NULL
);
CREATE TABLE IF NOT EXISTS vehicles (
    vid uuid PRIMARY KEY,
    customer_id uuid NOT NULL REFERENCES customers (cid),
    color text NOT NULL DEFAULT '',
    year text NOT NULL DEFAULT '',
    make text NOT NULL DEFAULT '',
    model text NOT NULL DEFAULT '',
    license_plate text NOT NULL DEFAULT '',
    size integer NOT NULL
);
CREATE TABLE IF NOT EXISTS parking_spaces (
    sid uuid PRIMARY KEY,
    host_id uuid NOT NULL REFERENCES hosts (hid),
    name text NOT NULL,
    instructions text NOT NULL DEFAULT '',
    lat double precision NOT NULL,
    lon double precision NOT NULL,
    address text NOT NULL DEFAULT '',
    available_spaces integer NOT NULL CHECK (available_spaces >= 1),
    max_size integer NOT NULL,
    features text NOT NULL DEFAULT '',
    physical_type integer NOT NULL,
    legal_type integer NOT NULL,
    active boolean NOT NULL DEFAULT TRUE,
    created_at timestamptz NOT NULL
);
CREATE TABLE IF NOT EXISTS fixed_availabilities (
    aid uuid PRIMARY KEY,
    parking_space_id uuid NOT NULL
        REFERENCES parking_spaces (sid) ON DELETE CASCADE,
    start_time timestamptz NOT NULL,
    end_time timestamptz NOT NULL,
    price_per_hour integer NOT NULL,
    created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS fixed_availabilities_space
    ON fixed_availabilities (parking_space_id);
CREATE TABLE IF NOT EXISTS repeating_availabilities (
    aid uuid PRIMARY KEY,
    parking_space_id uuid NOT NULL
        REFERENCES parking_spaces (sid) ON DELETE CASCADE,
    all_day boolean NOT NULL,
    start_minute integer,
    end_minute integer,
    weekdays integer NOT NULL,
    price_per_hour integer NOT NULL,
    created_at timestamptz NOT NULL,
    CHECK (all_day OR (start_minute IS NOT NULL AND end_minute IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS repeating_availabilities_space
    ON repeating_availabilities (parking_space_id);
CREATE TABLE IF NOT EXISTS reservations (
    rid uuid PRIMARY KEY,
    vehicle_id uuid NOT NULL REFERENCES vehicles (vid),
    parking_space_id uuid NOT NULL,
    fixed_availability_id uuid
        REFERENCES fixed_availabilities (aid) ON DELETE SET NULL,
    repeating_availability_id uuid
        REFERENCES repeating_availabilities (aid) ON DELETE SET NULL,
    start_time timestamptz NOT NULL,
    end_time timestamptz NOT NULL,
    cancelled boolean NOT NULL DEFAULT FALSE,
    paid_out boolean NOT NULL DEFAULT FALSE,
    cost integer NOT NULL,
    host_income integer NOT NULL,
    payment_method_info text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS reservations_space
    ON reservations (parking_space_id);
CREATE INDEX IF NOT EXISTS reservations_vehicle
    ON reservations (vehicle_id);
`

// CreateSchema tries to create the `schema` schema if it is missing.
//
// Caller is responsible to pass a trusted schema name string.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"CREATE SCHEMA IF NOT EXISTS %q", schema,
	))
	return err
}

// DropCascade drops `schema` schema with cascading, dropping all
// dependent objects recursively. The `schema` must exist,
// otherwise, an error will be returned.
//
// Caller is responsible to pass a trusted schema name string.
func DropCascade[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"DROP SCHEMA %q CASCADE", schema,
	))
	return err
}

// InitTables creates the marketplace tables and their indices in the
// `schema` schema, if they are missing. Pre-existing tables are kept
// untouched, so initialization is idempotent but never migrates an
// old layout.
//
// Caller is responsible to pass a trusted schema name string.
func InitTables(
	ctx context.Context, tx *postgres.Tx, schema string,
) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf(
		"SET LOCAL search_path TO %q", schema,
	)); err != nil {
		return fmt.Errorf("setting search_path: %w", err)
	}
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not exist
// right now. Although the login option is enabled for the created
// role, no specific password will be set for it; use the
// ChangePasswords function for that.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(`DO $$ BEGIN
	IF NOT EXISTS (
		SELECT FROM pg_catalog.pg_roles WHERE rolname = '%[1]s'
	) THEN
		CREATE ROLE %[1]q LOGIN;
	END IF;
END $$`, role))
	return err
}

// GrantPrivileges grants ALL privileges on the `schema` schema and
// its current tables to the `role` role, so it may access the tables
// in that schema and run the marketplace queries.
//
// Caller is responsible to pass trusted schema and role strings.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, schema string, role repo.Role,
) error {
	for _, sql := range []string{
		fmt.Sprintf(
			"GRANT ALL ON SCHEMA %q TO %q", schema, role,
		),
		fmt.Sprintf(
			"GRANT ALL ON ALL TABLES IN SCHEMA %q TO %q",
			schema, role,
		),
	} {
		if _, err := q.Exec(ctx, sql); err != nil {
			return err
		}
	}
	return nil
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context, q Q, schema string, role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %q SET search_path TO %q", role, schema,
	))
	return err
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
//
// The `hasher` will be used for hashing of the `passwords` before
// sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected
// format; PostgreSQL expects SCRAM-SHA-256 by default.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roles []repo.Role,
	passwords []string,
	hasher scram.Hasher,
) error {
	if len(roles) != len(passwords) {
		return fmt.Errorf(
			"roles (%d) and passwords (%d) mismatch",
			len(roles), len(passwords),
		)
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", 15000)
		if err != nil {
			return fmt.Errorf("hashing %q role password: %w", role, err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %q PASSWORD '%s'", role, h,
		)); err != nil {
			return fmt.Errorf("altering %q role: %w", role, err)
		}
	}
	return nil
}
