// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package spacesrs

import (
	"net/http"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type spaceIDReq struct {
	SpaceID string `uri:"sid" binding:"required,uuid"`
}

type spaceReq struct {
	HostID          string   `json:"host_id" binding:"required,uuid"`
	Name            string   `json:"name" binding:"required"`
	Instructions    string   `json:"instructions"`
	Lat             float64  `json:"lat" binding:"required,latitude"`
	Lon             float64  `json:"lon" binding:"required,longitude"`
	Address         string   `json:"address" binding:"required"`
	AvailableSpaces int      `json:"available_spaces" binding:"required,min=1"`
	MaxSize         string   `json:"max_size" binding:"required"`
	Features        []string `json:"features"`
	PhysicalType    string   `json:"physical_type" binding:"required"`
	LegalType       string   `json:"legal_type" binding:"required"`
	Active          *bool    `json:"active"`
}

func (req *spaceReq) ToModel() (*model.ParkingSpace, map[string][]string) {
	var errs map[string][]string
	ps := &model.ParkingSpace{
		Name:         req.Name,
		Instructions: req.Instructions,
		Coordinate:   model.Coordinate{Lat: req.Lat, Lon: req.Lon},
		Address:      req.Address,

		AvailableSpaces: req.AvailableSpaces,
		Active:          true,
	}
	if req.Active != nil {
		ps.Active = *req.Active
	}
	var err error
	ps.HostID, err = uuid.Parse(req.HostID)
	serdser.Assert(&errs, err == nil, "host_id", "The host_id is not UUID.")
	if ps.MaxSize, err = model.ParseVehicleSize(req.MaxSize); err != nil {
		serdser.AddErr(&errs, "max_size", err.Error())
	}
	if ps.PhysicalType, err = model.ParsePhysicalType(req.PhysicalType); err != nil {
		serdser.AddErr(&errs, "physical_type", err.Error())
	}
	if ps.LegalType, err = model.ParseLegalType(req.LegalType); err != nil {
		serdser.AddErr(&errs, "legal_type", err.Error())
	}
	ps.Features = make([]model.Feature, len(req.Features))
	for i, f := range req.Features {
		ps.Features[i] = model.Feature(f)
	}
	if errs != nil {
		return nil, errs
	}
	return ps, nil
}

// DserSpaceReq deserializes the request body of a parking space
// creation or replacement request, returning nil after serializing a
// proper error response if it was malformed.
func (rs *resource) DserSpaceReq(c *gin.Context) *model.ParkingSpace {
	req := &spaceReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	ps, errs := req.ToModel()
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return ps
}

// DserSpaceID deserializes the sid path parameter, returning false
// after serializing a proper error response if it was not a UUID.
func DserSpaceID(c *gin.Context) (uuid.UUID, bool) {
	req := &spaceIDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return uuid.Nil, false
	}
	sid, err := uuid.Parse(req.SpaceID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "sid", "Path param sid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return sid, true
}

type vacancyReq struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

func (rs *resource) DserVacancyReq(
	c *gin.Context,
) (start, end time.Time, ok bool) {
	req := &vacancyReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return start, end, false
	}
	var errs map[string][]string
	var err error
	if start, err = serdser.ParseTime(req.Start); err != nil {
		serdser.AddErr(&errs, "start", err.Error())
	}
	if end, err = serdser.ParseTime(req.End); err != nil {
		serdser.AddErr(&errs, "end", err.Error())
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return start, end, false
	}
	return start, end, true
}

// SpaceResp publishes the parking space fields with the names and
// formats which are expected by the frontend.
type SpaceResp struct {
	ID              uuid.UUID `json:"id"`
	HostID          uuid.UUID `json:"host_id"`
	Name            string    `json:"name"`
	Instructions    string    `json:"instructions"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Address         string    `json:"address"`
	AvailableSpaces int       `json:"available_spaces"`
	MaxSize         string    `json:"max_size"`
	Features        []string  `json:"features"`
	PhysicalType    string    `json:"physical_type"`
	LegalType       string    `json:"legal_type"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// SerSpace converts a parking space model to its response
// representation.
func SerSpace(ps *model.ParkingSpace) *SpaceResp {
	features := make([]string, len(ps.Features))
	for i, f := range ps.Features {
		features[i] = string(f)
	}
	return &SpaceResp{
		ID:              ps.ID,
		HostID:          ps.HostID,
		Name:            ps.Name,
		Instructions:    ps.Instructions,
		Lat:             ps.Coordinate.Lat,
		Lon:             ps.Coordinate.Lon,
		Address:         ps.Address,
		AvailableSpaces: ps.AvailableSpaces,
		MaxSize:         ps.MaxSize.String(),
		Features:        features,
		PhysicalType:    ps.PhysicalType.String(),
		LegalType:       ps.LegalType.String(),
		Active:          ps.Active,
		CreatedAt:       ps.CreatedAt,
	}
}

// VacancyResp reports the number of vacant spots of a parking space
// over a queried datetime window and whether some availability covers
// that window at all.
type VacancyResp struct {
	Vacant  int  `json:"vacant"`
	Covered bool `json:"covered"`
}
