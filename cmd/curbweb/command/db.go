// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/curbweb/curbweb/pkg/adapter/config"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/schemarp"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init sub-command creates the curbweb
schema and its tables, provisions the unprivileged database role, and
renews its credentials.`,
}

var dropSchema bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema, tables, and roles",
	Long: `Initialize the database schema, tables, and roles.
The database connection information are read from the config file and
the admin role credentials are expected in the .pgpass file of the
configured passwords directory. The curbweb schema and its tables are
created if they are missing and the unprivileged curbweb role is
created and granted access to them.

The unprivileged role credentials are renewed: a fresh random password
is generated, recorded in the .pgpass.new file, and set in the
database within the same transaction which creates the tables. When
the transaction commits, the .pgpass.new file is moved over the
.pgpass file atomically, so an interrupted initialization attempt can
be retried with either passwords file.

With the --drop flag, a pre-existing curbweb schema is dropped with
all of its contents (with cascading) before the initialization.`,
	RunE: initDatabase,
	Args: cobra.NoArgs,
}

func initDatabase(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, cc repo.Conn) error {
		conn, ok := cc.(*postgres.Conn)
		if !ok {
			return fmt.Errorf("conn type: %T is unknown", cc)
		}
		schema := postgres.DefaultSchema
		role := repo.NormalRole + c.Database.RoleSuffix
		if dropSchema {
			if err := schemarp.DropCascade(ctx, conn, schema); err != nil {
				return fmt.Errorf("dropping %q schema: %w", schema, err)
			}
		}
		if err := schemarp.CreateSchema(ctx, conn, schema); err != nil {
			return fmt.Errorf("creating %q schema: %w", schema, err)
		}
		if err := schemarp.CreateRoleIfNotExists(
			ctx, conn, role,
		); err != nil {
			return fmt.Errorf("creating %q role: %w", role, err)
		}
		return cc.Tx(ctx, func(ctx context.Context, t repo.Tx) error {
			tx, ok := t.(*postgres.Tx)
			if !ok {
				return fmt.Errorf("tx type: %T is unknown", t)
			}
			if err := schemarp.InitTables(ctx, tx, schema); err != nil {
				return fmt.Errorf("initializing tables: %w", err)
			}
			if err := schemarp.GrantPrivileges(
				ctx, tx, schema, role,
			); err != nil {
				return fmt.Errorf("granting privileges: %w", err)
			}
			if err := schemarp.SetSearchPath(
				ctx, tx, schema, role,
			); err != nil {
				return fmt.Errorf("setting search_path: %w", err)
			}
			finalizer, err = c.Database.RenewPasswords(
				ctx,
				func(
					ctx context.Context,
					roles []repo.Role,
					passwords []string,
				) error {
					for i := range roles {
						roles[i] += c.Database.RoleSuffix
					}
					return schemarp.ChangePasswords(
						ctx, tx, roles, passwords,
						c.Database.Hasher(),
					)
				},
				repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("renewing role passwords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().BoolVar(
		&dropSchema, "drop", false,
		"drop a pre-existing schema before initialization",
	)
	dbCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dbCmd)
}
