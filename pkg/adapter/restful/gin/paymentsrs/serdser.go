// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrs

import (
	"net/http"

	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/serdser"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type chargeReq struct {
	// CustomerRef is the payment provider reference of the paying
	// customer, as registered during their onboarding.
	CustomerRef string `json:"customer_ref" binding:"required"`
	// Source optionally overrides the default payment source of the
	// referenced customer with a tokenized card.
	Source string `json:"source"`
}

type hostIDReq struct {
	HostID string `uri:"hid" binding:"required,uuid"`
}

func dserHostID(c *gin.Context) (uuid.UUID, bool) {
	req := &hostIDReq{}
	if ok := serdser.BindUri(c, req); !ok {
		return uuid.Nil, false
	}
	hid, err := uuid.Parse(req.HostID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "hid", "Path param hid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return hid, true
}

type payoutReq struct {
	// VenmoEmail optionally replaces the payout destination address
	// of the host before settling their balance.
	VenmoEmail string `json:"venmo_email" binding:"omitempty,email"`
}

// PayoutResp reports the settled amount (in cents) of a payout
// request. A zero amount indicates that no elapsed reservation was
// awaiting settlement.
type PayoutResp struct {
	Amount int `json:"amount"`
}
