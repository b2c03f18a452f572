// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package availrs realizes the availabilities resource, allowing the
// fixed and repeating availabilities management REST APIs to be
// accepted and delegated to the availabilities use cases respectively.
package availrs

import (
	"net/http"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/spacesrs"
	"github.com/curbweb/curbweb/pkg/core/usecase/availuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	avails *availuc.UseCase
}

// Register instantiates a resource adapting the availabilities use
// case instance with the relevant REST APIs including:
//  1. POST/GET requests to
//     /api/curbweb/v1/spaces/:sid/fixed-availabilities
//     in order to open a one-off availability window or list them,
//  2. GET/PUT/DELETE requests to
//     /api/curbweb/v1/spaces/:sid/fixed-availabilities/:aid
//     in order to fetch, replace, or close one window,
//  3. the same requests with the repeating-availabilities suffix
//     for the weekly recurring availability windows.
func Register(r *gin.RouterGroup, avails *availuc.UseCase) {
	rs := &resource{avails: avails}
	r.POST("spaces/:sid/fixed-availabilities", rs.CreateFixed)
	r.GET("spaces/:sid/fixed-availabilities", rs.ListFixed)
	r.GET("spaces/:sid/fixed-availabilities/:aid", rs.FetchFixed)
	r.PUT("spaces/:sid/fixed-availabilities/:aid", rs.UpdateFixed)
	r.DELETE("spaces/:sid/fixed-availabilities/:aid", rs.DeleteFixed)
	r.POST("spaces/:sid/repeating-availabilities", rs.CreateRepeating)
	r.GET("spaces/:sid/repeating-availabilities", rs.ListRepeating)
	r.GET("spaces/:sid/repeating-availabilities/:aid", rs.FetchRepeating)
	r.PUT("spaces/:sid/repeating-availabilities/:aid", rs.UpdateRepeating)
	r.DELETE("spaces/:sid/repeating-availabilities/:aid", rs.DeleteRepeating)
}

func (rs *resource) CreateFixed(c *gin.Context) {
	sid, ok := spacesrs.DserSpaceID(c)
	if !ok {
		return
	}
	fa := rs.DserFixedReq(c, sid)
	if fa == nil {
		return
	}
	fa, err := rs.avails.CreateFixed(c, fa)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerFixed(fa))
}

func (rs *resource) ListFixed(c *gin.Context) {
	sid, ok := spacesrs.DserSpaceID(c)
	if !ok {
		return
	}
	fas, err := rs.avails.ListFixed(c, sid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]*FixedResp, len(fas))
	for i, fa := range fas {
		resp[i] = SerFixed(fa)
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) FetchFixed(c *gin.Context) {
	_, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	fa, err := rs.avails.FetchFixed(c, aid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerFixed(fa))
}

func (rs *resource) UpdateFixed(c *gin.Context) {
	sid, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	fa := rs.DserFixedReq(c, sid)
	if fa == nil {
		return
	}
	fa.ID = aid
	fa, err := rs.avails.UpdateFixed(c, fa)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerFixed(fa))
}

func (rs *resource) DeleteFixed(c *gin.Context) {
	_, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	if err := rs.avails.DeleteFixed(c, aid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) CreateRepeating(c *gin.Context) {
	sid, ok := spacesrs.DserSpaceID(c)
	if !ok {
		return
	}
	ra := rs.DserRepeatingReq(c, sid)
	if ra == nil {
		return
	}
	ra, err := rs.avails.CreateRepeating(c, ra)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerRepeating(ra))
}

func (rs *resource) ListRepeating(c *gin.Context) {
	sid, ok := spacesrs.DserSpaceID(c)
	if !ok {
		return
	}
	ras, err := rs.avails.ListRepeating(c, sid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]*RepeatingResp, len(ras))
	for i, ra := range ras {
		resp[i] = SerRepeating(ra)
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) FetchRepeating(c *gin.Context) {
	_, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	ra, err := rs.avails.FetchRepeating(c, aid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerRepeating(ra))
}

func (rs *resource) UpdateRepeating(c *gin.Context) {
	sid, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	ra := rs.DserRepeatingReq(c, sid)
	if ra == nil {
		return
	}
	ra.ID = aid
	ra, err := rs.avails.UpdateRepeating(c, ra)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerRepeating(ra))
}

func (rs *resource) DeleteRepeating(c *gin.Context) {
	_, aid, ok := DserAvailID(c)
	if !ok {
		return
	}
	if err := rs.avails.DeleteRepeating(c, aid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
