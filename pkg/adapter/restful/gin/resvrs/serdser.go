// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package resvrs

import (
	"net/http"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type resvIDReq struct {
	ResvID string `uri:"rid" binding:"required,uuid"`
}

// DserResvID deserializes the rid path parameter, returning false
// after serializing a proper error response if it was not a UUID.
func DserResvID(c *gin.Context) (uuid.UUID, bool) {
	req := &resvIDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return uuid.Nil, false
	}
	rid, err := uuid.Parse(req.ResvID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "rid", "Path param rid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return rid, true
}

type rawCreateResvReq struct {
	SpaceID           string `json:"space_id" binding:"required,uuid"`
	VehicleID         string `json:"vehicle_id" binding:"required,uuid"`
	Start             string `json:"start" binding:"required"`
	End               string `json:"end" binding:"required"`
	PaymentMethodInfo string `json:"payment_method_info"`
}

type createResvReq struct {
	SpaceID           uuid.UUID
	VehicleID         uuid.UUID
	Start             time.Time
	End               time.Time
	PaymentMethodInfo string
}

// DserCreateResvReq deserializes the request body of a reservation
// creation request, returning nil after serializing a proper error
// response if it was malformed.
func (rs *resource) DserCreateResvReq(c *gin.Context) *createResvReq {
	req := &rawCreateResvReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	val := &createResvReq{PaymentMethodInfo: req.PaymentMethodInfo}
	var errs map[string][]string
	var err error
	val.SpaceID, err = uuid.Parse(req.SpaceID)
	serdser.Assert(&errs, err == nil, "space_id", "The space_id is not UUID.")
	val.VehicleID, err = uuid.Parse(req.VehicleID)
	serdser.Assert(&errs, err == nil, "vehicle_id", "The vehicle_id is not UUID.")
	if val.Start, err = serdser.ParseTime(req.Start); err != nil {
		serdser.AddErr(&errs, "start", err.Error())
	}
	if val.End, err = serdser.ParseTime(req.End); err != nil {
		serdser.AddErr(&errs, "end", err.Error())
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

type updateResvReq struct {
	Op string `form:"op" binding:"required,oneof=cancel"`
}

type listResvReq struct {
	// Active limits the listing to the non-cancelled reservations.
	Active bool `form:"active"`
}

// ResvResp publishes the reservation fields with the names and
// formats which are expected by the frontend.
type ResvResp struct {
	ID             uuid.UUID `json:"id"`
	VehicleID      uuid.UUID `json:"vehicle_id"`
	ParkingSpaceID uuid.UUID `json:"parking_space_id"`

	AvailabilityKind string    `json:"availability_kind"`
	AvailabilityID   uuid.UUID `json:"availability_id"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Cancelled bool `json:"cancelled"`
	PaidOut   bool `json:"paid_out"`

	Cost       int `json:"cost"`
	HostIncome int `json:"host_income"`

	PaymentMethodInfo string    `json:"payment_method_info"`
	CreatedAt         time.Time `json:"created_at"`
}

// SerResv converts a reservation model to its response
// representation.
func SerResv(r *model.Reservation) *ResvResp {
	return &ResvResp{
		ID:               r.ID,
		VehicleID:        r.VehicleID,
		ParkingSpaceID:   r.ParkingSpaceID,
		AvailabilityKind: r.Covering.Kind.String(),
		AvailabilityID:   r.Covering.AvailabilityID,
		Start:            r.Start,
		End:              r.End,
		Cancelled:        r.Cancelled,
		PaidOut:          r.PaidOut,
		Cost:             r.Cost,
		HostIncome:       r.HostIncome,

		PaymentMethodInfo: r.PaymentMethodInfo,
		CreatedAt:         r.CreatedAt,
	}
}

// SerResvs converts a list of reservation models to their response
// representations.
func SerResvs(resvs []*model.Reservation) []*ResvResp {
	resp := make([]*ResvResp, len(resvs))
	for i, r := range resvs {
		resp[i] = SerResv(r)
	}
	return resp
}
