// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package resvrs realizes the reservations resource, allowing the
// reservations booking and management REST APIs to be accepted and
// delegated to the reservations use cases respectively.
package resvrs

import (
	"net/http"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/spacesrs"
	"github.com/curbweb/curbweb/pkg/core/usecase/resvuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type resource struct {
	resvs *resvuc.UseCase
}

// Register instantiates a resource adapting the reservations use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/curbweb/v1/reservations
//     in order to book a reservation over a datetime window,
//  2. GET request to /api/curbweb/v1/reservations/:rid
//     in order to fetch one reservation,
//  3. PATCH request to /api/curbweb/v1/reservations/:rid
//     in order to cancel a reservation,
//  4. GET request to /api/curbweb/v1/spaces/:sid/reservations
//     in order to list the reservations of a parking space,
//  5. GET request to /api/curbweb/v1/vehicles/:vid/reservations
//     in order to list the reservations of a vehicle.
func Register(r *gin.RouterGroup, resvs *resvuc.UseCase) {
	rs := &resource{resvs: resvs}
	r.POST("reservations", rs.CreateResv)
	r.GET("reservations/:rid", rs.FetchResv)
	r.PATCH("reservations/:rid", rs.UpdateResv)
	r.GET("spaces/:sid/reservations", rs.ListSpaceResvs)
	r.GET("vehicles/:vid/reservations", rs.ListVehicleResvs)
}

func (rs *resource) CreateResv(c *gin.Context) {
	req := rs.DserCreateResvReq(c)
	if req == nil {
		return
	}
	r, err := rs.resvs.Create(
		c,
		req.SpaceID, req.VehicleID,
		req.Start, req.End,
		req.PaymentMethodInfo,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerResv(r))
}

func (rs *resource) FetchResv(c *gin.Context) {
	rid, ok := DserResvID(c)
	if !ok {
		return
	}
	r, err := rs.resvs.Fetch(c, rid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerResv(r))
}

func (rs *resource) UpdateResv(c *gin.Context) {
	rid, ok := DserResvID(c)
	if !ok {
		return
	}
	req := &updateResvReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	// op=cancel is the only supported mutation; the oneof binding
	// rejects anything else before this point.
	r, err := rs.resvs.Cancel(c, rid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerResv(r))
}

func (rs *resource) ListSpaceResvs(c *gin.Context) {
	sid, ok := spacesrs.DserSpaceID(c)
	if !ok {
		return
	}
	req := &listResvReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	resvs, err := rs.resvs.ListBySpace(c, sid, req.Active)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerResvs(resvs))
}

func (rs *resource) ListVehicleResvs(c *gin.Context) {
	vid, ok := dserVehicleID(c)
	if !ok {
		return
	}
	req := &listResvReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	resvs, err := rs.resvs.ListByVehicle(c, vid, req.Active)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerResvs(resvs))
}

type vehicleIDReq struct {
	VehicleID string `uri:"vid" binding:"required,uuid"`
}

func dserVehicleID(c *gin.Context) (uuid.UUID, bool) {
	req := &vehicleIDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return uuid.Nil, false
	}
	vid, err := uuid.Parse(req.VehicleID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "vid", "Path param vid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return vid, true
}
