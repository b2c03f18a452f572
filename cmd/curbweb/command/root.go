// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the curbweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database provisioning actions.
//
//	./curbweb [-c /path/of/main/config.yaml]         # start web server
//	./curbweb db init [--drop] [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/curbweb/curbweb/pkg/adapter/config"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/routes"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "curbweb",
	Short: "A curb parking marketplace web backend",
	Long: `A curb parking marketplace web backend which matches
customers looking for a parking spot with hosts listing their unused
driveways, garages, and lots. Hosts describe when each parking space
is open for reservation using one-off or weekly repeating
availability windows. Customers query the vacant spots of a space
over a datetime window, book reservations for their vehicles, and
are charged an availability-priced cost, while hosts accumulate
their income share and settle it with payout requests.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
