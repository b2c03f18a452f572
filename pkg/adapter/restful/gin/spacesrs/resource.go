// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package spacesrs realizes the parking spaces resource, allowing the
// parking spaces management REST APIs to be accepted and delegated to
// the parking spaces use cases respectively.
package spacesrs

import (
	"net/http"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/core/usecase/spacesuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	spaces *spacesuc.UseCase
}

// Register instantiates a resource adapting the parking spaces use
// case instance with the relevant REST APIs including:
//  1. POST request to /api/curbweb/v1/spaces
//     in order to list a new parking space,
//  2. GET request to /api/curbweb/v1/spaces
//     in order to list all parking spaces,
//  3. GET request to /api/curbweb/v1/spaces/:sid
//     in order to fetch one parking space,
//  4. PUT request to /api/curbweb/v1/spaces/:sid
//     in order to replace the mutable fields of a parking space,
//  5. DELETE request to /api/curbweb/v1/spaces/:sid
//     in order to delist a parking space,
//  6. GET request to /api/curbweb/v1/spaces/:sid/vacancy
//     in order to count the vacant spots over a datetime window.
func Register(r *gin.RouterGroup, spaces *spacesuc.UseCase) {
	rs := &resource{spaces: spaces}
	r.POST("spaces", rs.CreateSpace)
	r.GET("spaces", rs.ListSpaces)
	r.GET("spaces/:sid", rs.FetchSpace)
	r.PUT("spaces/:sid", rs.UpdateSpace)
	r.DELETE("spaces/:sid", rs.DeleteSpace)
	r.GET("spaces/:sid/vacancy", rs.FetchVacancy)
}

func (rs *resource) CreateSpace(c *gin.Context) {
	ps := rs.DserSpaceReq(c)
	if ps == nil {
		return
	}
	ps, err := rs.spaces.Create(c, ps)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerSpace(ps))
}

func (rs *resource) ListSpaces(c *gin.Context) {
	pss, err := rs.spaces.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]*SpaceResp, len(pss))
	for i, ps := range pss {
		resp[i] = SerSpace(ps)
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) FetchSpace(c *gin.Context) {
	sid, ok := DserSpaceID(c)
	if !ok {
		return
	}
	ps, err := rs.spaces.Fetch(c, sid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerSpace(ps))
}

func (rs *resource) UpdateSpace(c *gin.Context) {
	sid, ok := DserSpaceID(c)
	if !ok {
		return
	}
	ps := rs.DserSpaceReq(c)
	if ps == nil {
		return
	}
	ps.ID = sid
	ps, err := rs.spaces.Update(c, ps)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerSpace(ps))
}

func (rs *resource) DeleteSpace(c *gin.Context) {
	sid, ok := DserSpaceID(c)
	if !ok {
		return
	}
	if err := rs.spaces.Delete(c, sid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) FetchVacancy(c *gin.Context) {
	sid, ok := DserSpaceID(c)
	if !ok {
		return
	}
	start, end, ok := rs.DserVacancyReq(c)
	if !ok {
		return
	}
	vacant, covered, err := rs.spaces.Vacancy(c, sid, start, end)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, &VacancyResp{Vacant: vacant, Covered: covered})
}
