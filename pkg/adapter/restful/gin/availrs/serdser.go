// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package availrs

import (
	"net/http"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type availIDReq struct {
	SpaceID string `uri:"sid" binding:"required,uuid"`
	AvailID string `uri:"aid" binding:"required,uuid"`
}

// DserAvailID deserializes the sid and aid path parameters, returning
// false after serializing a proper error response if either one was
// not a UUID.
func DserAvailID(c *gin.Context) (sid, aid uuid.UUID, ok bool) {
	req := &availIDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return sid, aid, false
	}
	var errs map[string][]string
	var err error
	sid, err = uuid.Parse(req.SpaceID)
	serdser.Assert(&errs, err == nil, "sid", "Path param sid is not UUID.")
	aid, err = uuid.Parse(req.AvailID)
	serdser.Assert(&errs, err == nil, "aid", "Path param aid is not UUID.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return sid, aid, false
	}
	return sid, aid, true
}

type fixedReq struct {
	Start        string `json:"start" binding:"required"`
	End          string `json:"end" binding:"required"`
	PricePerHour int    `json:"price_per_hour" binding:"required,min=1"`
}

// DserFixedReq deserializes the request body of a fixed availability
// creation or replacement request, returning nil after serializing a
// proper error response if it was malformed. The parking space of
// the availability is identified by the sid path parameter, not by
// the request body.
func (rs *resource) DserFixedReq(
	c *gin.Context, sid uuid.UUID,
) *model.FixedAvailability {
	req := &fixedReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	fa := &model.FixedAvailability{
		ParkingSpaceID: sid,
		PricePerHour:   req.PricePerHour,
	}
	var errs map[string][]string
	var err error
	if fa.Start, err = serdser.ParseTime(req.Start); err != nil {
		serdser.AddErr(&errs, "start", err.Error())
	}
	if fa.End, err = serdser.ParseTime(req.End); err != nil {
		serdser.AddErr(&errs, "end", err.Error())
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return fa
}

type repeatingReq struct {
	AllDay       bool     `json:"all_day"`
	Start        string   `json:"start" binding:"omitempty"`
	End          string   `json:"end" binding:"omitempty"`
	Weekdays     []string `json:"weekdays" binding:"required,min=1"`
	PricePerHour int      `json:"price_per_hour" binding:"required,min=1"`
}

// DserRepeatingReq deserializes the request body of a repeating
// availability creation or replacement request, returning nil after
// serializing a proper error response if it was malformed. The
// completeness of the all_day/start/end combination is validated by
// the use cases layer; this function only rejects values which may
// not be parsed at all.
func (rs *resource) DserRepeatingReq(
	c *gin.Context, sid uuid.UUID,
) *model.RepeatingAvailability {
	req := &repeatingReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	ra := &model.RepeatingAvailability{
		ParkingSpaceID: sid,
		AllDay:         req.AllDay,
		PricePerHour:   req.PricePerHour,
	}
	var errs map[string][]string
	var err error
	if req.Start != "" {
		var td model.TimeOfDay
		if td, err = model.ParseTimeOfDay(req.Start); err != nil {
			serdser.AddErr(&errs, "start", err.Error())
		} else {
			ra.Start = &td
		}
	}
	if req.End != "" {
		var td model.TimeOfDay
		if td, err = model.ParseTimeOfDay(req.End); err != nil {
			serdser.AddErr(&errs, "end", err.Error())
		} else {
			ra.End = &td
		}
	}
	if ra.Weekdays, err = model.ParseWeekdaySet(req.Weekdays); err != nil {
		serdser.AddErr(&errs, "weekdays", err.Error())
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return ra
}

// FixedResp publishes the fixed availability fields with the names
// and formats which are expected by the frontend.
type FixedResp struct {
	ID             uuid.UUID `json:"id"`
	ParkingSpaceID uuid.UUID `json:"parking_space_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	PricePerHour   int       `json:"price_per_hour"`
	CreatedAt      time.Time `json:"created_at"`
}

// SerFixed converts a fixed availability model to its response
// representation.
func SerFixed(fa *model.FixedAvailability) *FixedResp {
	return &FixedResp{
		ID:             fa.ID,
		ParkingSpaceID: fa.ParkingSpaceID,
		Start:          fa.Start,
		End:            fa.End,
		PricePerHour:   fa.PricePerHour,
		CreatedAt:      fa.CreatedAt,
	}
}

// RepeatingResp publishes the repeating availability fields with the
// names and formats which are expected by the frontend. The start and
// end times of day are omitted for the all-day availabilities.
type RepeatingResp struct {
	ID             uuid.UUID `json:"id"`
	ParkingSpaceID uuid.UUID `json:"parking_space_id"`
	AllDay         bool      `json:"all_day"`
	Start          string    `json:"start,omitempty"`
	End            string    `json:"end,omitempty"`
	Weekdays       []string  `json:"weekdays"`
	PricePerHour   int       `json:"price_per_hour"`
	CreatedAt      time.Time `json:"created_at"`
}

// SerRepeating converts a repeating availability model to its
// response representation.
func SerRepeating(ra *model.RepeatingAvailability) *RepeatingResp {
	resp := &RepeatingResp{
		ID:             ra.ID,
		ParkingSpaceID: ra.ParkingSpaceID,
		AllDay:         ra.AllDay,
		Weekdays:       ra.Weekdays.Strings(),
		PricePerHour:   ra.PricePerHour,
		CreatedAt:      ra.CreatedAt,
	}
	if ra.Start != nil {
		resp.Start = ra.Start.String()
	}
	if ra.End != nil {
		resp.End = ra.End.String()
	}
	return resp
}
