// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/curbweb/curbweb/pkg/adapter/config"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/accountsrp"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/availrp"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/locksrp"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/resvrp"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres/spacesrp"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/availrs"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/paymentsrs"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/resvrs"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/spacesrs"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/gin-gonic/gin"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries
// on them and accomplish those use cases. Each use case package is
// named like resvuc and each repository package is named like resvrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like resvrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
// Actual instantiation of use case objects are delegated to the
// c Config instance.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	spacesRepo := spacesrp.New()
	availRepo := availrp.New()
	resvRepo := resvrp.New()
	accountsRepo := accountsrp.New()
	locksRepo := locksrp.New()

	spacesUseCase := c.NewSpacesUseCase(p, spacesRepo, availRepo, resvRepo)
	availsUseCase, err := c.NewAvailsUseCase(p, availRepo, locksRepo)
	if err != nil {
		return fmt.Errorf("creating availabilities use case: %w", err)
	}
	resvsUseCase, err := c.NewResvsUseCase(
		p, resvRepo, spacesRepo, availRepo, accountsRepo, locksRepo,
	)
	if err != nil {
		return fmt.Errorf("creating reservations use case: %w", err)
	}
	r := e.Group("/api/curbweb/v1")
	spacesrs.Register(r, spacesUseCase)
	availrs.Register(r, availsUseCase)
	resvrs.Register(r, resvsUseCase)
	paymentsrs.Register(r, resvsUseCase)
	return nil
}
