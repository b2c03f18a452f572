// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsrs realizes the payments resource, allowing the
// reservation charging and host payout REST APIs to be accepted and
// delegated to the reservations use cases respectively.
package paymentsrs

import (
	"net/http"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/resvrs"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/curbweb/curbweb/pkg/core/usecase/resvuc"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type resource struct {
	resvs *resvuc.UseCase
}

// Register instantiates a resource adapting the payment operations of
// the reservations use case instance with the relevant REST APIs
// including:
//  1. POST request to /api/curbweb/v1/reservations/:rid/charges
//     in order to charge a customer for a booked reservation,
//  2. POST request to /api/curbweb/v1/hosts/:hid/payouts
//     in order to settle the accumulated income of a host.
func Register(r *gin.RouterGroup, resvs *resvuc.UseCase) {
	rs := &resource{resvs: resvs}
	r.POST("reservations/:rid/charges", rs.CreateCharge)
	r.POST("hosts/:hid/payouts", rs.CreatePayout)
}

func (rs *resource) CreateCharge(c *gin.Context) {
	rid, ok := resvrs.DserResvID(c)
	if !ok {
		return
	}
	req := &chargeReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	err := rs.resvs.Charge(c, rid, req.CustomerRef, req.Source)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) CreatePayout(c *gin.Context) {
	hid, ok := dserHostID(c)
	if !ok {
		return
	}
	req := &payoutReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	amount, err := rs.resvs.Payout(c, hid, req.VenmoEmail)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, &PayoutResp{Amount: amount})
}
