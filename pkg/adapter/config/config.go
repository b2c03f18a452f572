// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the curbweb to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated configurations should be passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be accumulated and validated in
// another (possibly non-exported) config struct (or directly in the
// relevant end-component such as a UseCase instance).
package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/config/settings"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/adapter/hash/scram"
	"github.com/curbweb/curbweb/pkg/adapter/payment/stripe"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin"
	"github.com/curbweb/curbweb/pkg/core/payment"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	scrami "github.com/curbweb/curbweb/pkg/core/scram"
	"github.com/curbweb/curbweb/pkg/core/usecase/availuc"
	"github.com/curbweb/curbweb/pkg/core/usecase/resvuc"
	"github.com/curbweb/curbweb/pkg/core/usecase/spacesuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so other layers can change freely while configuration
// files keep loading reliably.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Payment  Payment  // payment gateway settings
	Usecases Usecases // Configuration settings for supported use cases
}

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes unmarshals the data byte slice and loads a Config
// instance assuming that it contains the Config settings. Extra
// items in the data will be ignored and missing items will take
// their default values. Thereafter, loaded Config will be validated
// and normalized in order to ensure that provided settings are
// acceptable.
//
// If some settings should be overridden by environment variables,
// this function is the proper place for that replacement.
func LoadBytes(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values
// with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	settings.Nil2Zero(&c.Gin.Cors)
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Usecases.Reservations.ValidateAndNormalize(); err != nil {
		return fmt.Errorf(
			"validating reservations settings: %w", err,
		)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%#v.ConnectionPool: %w", c.Database, err,
		)
	}
	return p, nil
}

// NewSpacesUseCase instantiates a new parking spaces use case based
// on the settings in the `c` struct.
func (c *Config) NewSpacesUseCase(
	p repo.Pool, s repo.Spaces, a repo.Avails, r repo.Resvs,
) *spacesuc.UseCase {
	return spacesuc.New(p, s, a, r)
}

// NewAvailsUseCase instantiates a new availabilities use case based
// on the settings in the `c` struct.
func (c *Config) NewAvailsUseCase(
	p repo.Pool, a repo.Avails, l repo.SpaceLocks,
) (*availuc.UseCase, error) {
	return availuc.New(p, a, l)
}

// NewResvsUseCase instantiates a new reservations use case based on
// the settings in the `c` struct, including the payment gateway from
// the `c.Payment` settings.
func (c *Config) NewResvsUseCase(
	p repo.Pool,
	r repo.Resvs,
	s repo.Spaces,
	a repo.Avails,
	acc repo.Accounts,
	l repo.SpaceLocks,
) (*resvuc.UseCase, error) {
	gw, err := c.Payment.NewGateway()
	if err != nil {
		return nil, fmt.Errorf("creating payment gateway: %w", err)
	}
	return c.Usecases.Reservations.NewUseCase(p, r, s, a, acc, l, gw)
}

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like curbweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with
	// parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies the database authentication method name.
	// This method indicates how passwords should be hashed and stored
	// in the database, so they may be used by an authentication
	// operation successfully.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// hasher is instantiated based on the AuthMethod, so the db init
	// command may hash role passwords properly (as expected by the
	// DBMS).
	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize validates the database settings and returns
// an error if they were not acceptable. It can also modify settings
// in order to normalize them or replace some zero values with their
// expected default values (if any). So, it takes a pointer receiver
// instead of a non-reference receiver (in contrast to other methods).
func (d *Database) ValidateAndNormalize() error {
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.hasher = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported database authentication method: %q", am,
		)
	}
	return nil
}

// Hasher returns the SCRAM hasher which is instantiated based on the
// AuthMethod setting by the ValidateAndNormalize method. The db init
// command consults it when provisioning role passwords.
func (d Database) Hasher() scrami.Hasher {
	return d.hasher
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// Initially, the .pgpass file in the d.PassDir folder is checked
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If a database connection could be established, created pool and
// nil error will be returned. Otherwise, passwords might have been
// updated during a previous incomplete renewal operation. So the
// .pgpass.new file in the same d.PassDir folder is checked too. If a
// connection could be established successfully, the .pgpass.new will
// be moved to the .pgpass file, so the .pgpass.new file may be
// overwritten safely by the subsequent renewal operations.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	fmt.Printf("failed to connect with %q: %v\n", path, err)
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	fmt.Printf("now, trying to connect with %q\n", newPath)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value. These
// items are directly taken from the `d` settings, but the role name
// which is specified by the `r` argument and the password value
// which is read from the given `path` file. Returned URL has the
// postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in
// addition to the password specifying lines which should conform
// with the pgpass files format with lines like this:
//
//	host:port:dbname:role:password
//
// If the `path` file could be read and a password for the asked `r`
// role could be identified, a URL and a nil error will be returned.
// Otherwise, returned string will be empty and error will describe
// the wrapped error condition.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Database instance.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file (i.e., .pgpass.new
// file in the `d.PassDir` directory), will use the `change` function
// in order to update the passwords of those `roles` in the database
// too. The `change` function argument should perform the update
// operation in a transaction which may or may not be committed when
// the RenewPasswords function returns. In case of a successful
// commitment, the temporary passwords file should be moved over the
// main passwords file (i.e., .pgpass file in the `d.PassDir`
// directory). Keeping the .pgpass file up-to-date, makes it possible
// to use ConnectionPool method again (both if the passwords are or
// are not updated successfully). This final file movement can be
// performed using the returned finalizer function.
//
// The `d.RoleSuffix` will be appended to the given role names too.
// The `change` function must add the same suffix to `roles` roles
// names in order to remain consistent with the in-file recorded
// information.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	p := make([]byte, enc.EncodedLen(len(b))) // for each password
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		enc.Encode(p, b)
		passwords[i] = string(p)
		r = r + d.RoleSuffix
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if
// they are or are not initialized and replace them by their default
// values during the normalization.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
	Cors     *bool // Whether to register a permissive CORS middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if *g.Cors {
		middlewares = append(middlewares, gin.Cors())
	}
	return gin.New(middlewares...)
}

// Payment contains the payment gateway configuration settings.
type Payment struct {
	// StripeKey is the secret API key of the Stripe account which
	// collects the customer charges and funds the host payouts.
	StripeKey string `yaml:"stripe-key"`
}

// NewGateway instantiates the payment gateway which is described by
// the `p` settings.
func (p Payment) NewGateway() (payment.Gateway, error) {
	return stripe.New(p.StripeKey)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Reservations Reservations // reservations use cases settings
}

// Reservations contains the configuration settings for the
// reservations use cases. Fields are defined as pointers, so it is
// possible to detect if they are or are not initialized; a nil value
// asks the use cases layer to apply its own default.
type Reservations struct {
	// ProcessingFeeRate is the proportional payment processing fee,
	// e.g. 0.029 for 2.9%.
	ProcessingFeeRate *float64 `yaml:"processing-fee-rate"`
	// FixedFeeCents is the fixed per-transaction fee in cents.
	FixedFeeCents *int `yaml:"fixed-fee-cents"`
	// HostShare is the host's share of the post-fee amount, e.g. 0.8
	// for 80%.
	HostShare *float64 `yaml:"host-share"`

	// PayoutGrace postpones the payout settlement of a reservation
	// for the given duration after its end.
	PayoutGrace *settings.Duration `yaml:"payout-grace"`
	// MinPayoutGrace is the inclusive minimum acceptable value for
	// the PayoutGrace setting.
	// A missing value indicates that there is no lower bound.
	MinPayoutGrace *settings.Duration `yaml:"payout-grace-minimum"`
	// MaxPayoutGrace is the inclusive maximum acceptable value for
	// the PayoutGrace setting.
	// A missing value indicates that there is no upper bound.
	MaxPayoutGrace *settings.Duration `yaml:"payout-grace-maximum"`
}

// ValidateAndNormalize verifies that the configured payout grace
// falls within its configured boundary values, adjusting it to the
// nearest boundary value otherwise.
func (r *Reservations) ValidateAndNormalize() error {
	if err := settings.VerifyRange(
		&r.PayoutGrace, r.MinPayoutGrace, r.MaxPayoutGrace,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(payout grace=%v, minb=%v, maxb=%v): %w",
			err.Value, r.MinPayoutGrace, r.MaxPayoutGrace, err,
		)
	}
	return nil
}

// NewUseCase instantiates a new reservations use case based on the
// settings in the `r` struct.
func (r Reservations) NewUseCase(
	p repo.Pool,
	rr repo.Resvs,
	s repo.Spaces,
	a repo.Avails,
	acc repo.Accounts,
	l repo.SpaceLocks,
	gw payment.Gateway,
) (*resvuc.UseCase, error) {
	opts := make([]resvuc.Option, 0, 2)
	if rates := r.Rates(); rates != nil {
		opts = append(opts, resvuc.WithRates(*rates))
	}
	if r.PayoutGrace != nil {
		d := time.Duration(*r.PayoutGrace)
		opts = append(opts, resvuc.WithPayoutGrace(d))
	}
	return resvuc.New(p, rr, s, a, acc, l, gw, opts...)
}

// Rates folds the individually-optional pricing settings into one
// schedule.Rates instance, starting from the default rates. A nil
// return value indicates that no pricing setting was configured and
// the use cases layer should keep its own default.
func (r Reservations) Rates() *schedule.Rates {
	if r.ProcessingFeeRate == nil &&
		r.FixedFeeCents == nil &&
		r.HostShare == nil {
		return nil
	}
	rates := schedule.DefaultRates
	if r.ProcessingFeeRate != nil {
		rates.ProcessingFeeRate = *r.ProcessingFeeRate
	}
	if r.FixedFeeCents != nil {
		rates.FixedFeeCents = *r.FixedFeeCents
	}
	if r.HostShare != nil {
		rates.HostShare = *r.HostShare
	}
	return &rates
}
