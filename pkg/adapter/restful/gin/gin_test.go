// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/curbweb/curbweb/internal/test/dbcontainer"
	"github.com/curbweb/curbweb/pkg/adapter/config"
	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin"
	"github.com/curbweb/curbweb/pkg/adapter/restful/gin/routes"
	"github.com/curbweb/curbweb/pkg/core/repo"
	"github.com/curbweb/curbweb/pkg/core/schedule"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// These IDs are seeded by the testdata/schema.sql file.
const (
	hostID     = "5c31a811-2ded-4da3-9b37-4a8da32aa25e"
	vehicle1ID = "c1a74d29-ad2b-4a3f-a571-9aae26a49b54"
	vehicle2ID = "2be80a07-24a2-4e8f-9648-0b945076dbe5"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine

	// base anchors all availability and reservation windows in the
	// future, so the expiry checks do not interfere with the tests.
	base time.Time
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
		base: time.Now().UTC().Truncate(time.Minute).Add(24 * time.Hour),
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	sql, err := os.ReadFile("testdata/schema.sql")
	igts.Require().NoError(err, "failed to read schema.sql file")
	err = igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, string(sql))
			return err
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	c := &config.Config{
		Payment: config.Payment{StripeKey: "sk_test_integration"},
	}
	err = routes.Register(igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) request(
	method, path string, reqBody any,
) (int, map[string]any) {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		igts.Require().NoError(err, "marshalling request body")
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(
		method, "/api/curbweb/v1/"+path, body,
	)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	resp := map[string]any{}
	if w.Body.Len() > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		igts.Require().NoError(
			err, "unmarshalling response: %s", w.Body.String(),
		)
	}
	return w.Code, resp
}

func (igts *IntegrationGinTestSuite) requestList(
	method, path string,
) (int, []map[string]any) {
	req := httptest.NewRequest(method, "/api/curbweb/v1/"+path, nil)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	var resp []map[string]any
	if w.Body.Len() > 0 {
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		igts.Require().NoError(
			err, "unmarshalling response: %s", w.Body.String(),
		)
	}
	return w.Code, resp
}

func (igts *IntegrationGinTestSuite) createSpace(
	name string, availableSpaces int,
) string {
	code, resp := igts.request("POST", "spaces", map[string]any{
		"host_id":          hostID,
		"name":             name,
		"lat":              34.0195,
		"lon":              -118.4912,
		"address":          "123 Robertson Blvd",
		"available_spaces": availableSpaces,
		"max_size":         "standard",
		"features":         []string{"illuminated"},
		"physical_type":    "driveway",
		"legal_type":       "residential",
	})
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)
	sid, _ := resp["id"].(string)
	igts.Require().NotEmpty(sid, "created space has no id")
	return sid
}

func (igts *IntegrationGinTestSuite) hour(h float64) string {
	return igts.base.Add(
		time.Duration(h * float64(time.Hour)),
	).Format(time.RFC3339)
}

func (igts *IntegrationGinTestSuite) TestSpacesCRUD() {
	sid := igts.createSpace("CRUD space", 2)

	code, resp := igts.request("GET", "spaces/"+sid, nil)
	igts.Equal(http.StatusOK, code)
	igts.Equal("CRUD space", resp["name"])
	igts.Equal("driveway", resp["physical_type"])
	igts.Equal(float64(2), resp["available_spaces"])

	code, resp = igts.request("PUT", "spaces/"+sid, map[string]any{
		"host_id":          hostID,
		"name":             "Renamed space",
		"lat":              34.0195,
		"lon":              -118.4912,
		"address":          "123 Robertson Blvd",
		"available_spaces": 3,
		"max_size":         "oversized",
		"physical_type":    "garage",
		"legal_type":       "business",
		"active":           false,
	})
	igts.Equal(http.StatusOK, code, "resp: %v", resp)
	igts.Equal("Renamed space", resp["name"])
	igts.Equal(false, resp["active"])

	code, list := igts.requestList("GET", "spaces")
	igts.Equal(http.StatusOK, code)
	found := false
	for _, s := range list {
		if s["id"] == sid {
			found = true
			igts.Equal("Renamed space", s["name"])
		}
	}
	igts.True(found, "space %s is missing in the listing", sid)

	code, _ = igts.request("DELETE", "spaces/"+sid, nil)
	igts.Equal(http.StatusNoContent, code)
	code, _ = igts.request("GET", "spaces/"+sid, nil)
	igts.Equal(http.StatusNotFound, code)
}

func (igts *IntegrationGinTestSuite) TestSpaceValidation() {
	code, _ := igts.request("POST", "spaces", map[string]any{
		"host_id":          hostID,
		"name":             "No capacity",
		"lat":              34.0,
		"lon":              -118.0,
		"address":          "x",
		"available_spaces": 0,
		"max_size":         "standard",
		"physical_type":    "driveway",
		"legal_type":       "residential",
	})
	igts.Equal(http.StatusBadRequest, code)

	code, _ = igts.request("POST", "spaces", map[string]any{
		"host_id":          hostID,
		"name":             "Bad type",
		"lat":              34.0,
		"lon":              -118.0,
		"address":          "x",
		"available_spaces": 1,
		"max_size":         "standard",
		"physical_type":    "rooftop",
		"legal_type":       "residential",
	})
	igts.Equal(http.StatusBadRequest, code)

	code, _ = igts.request("GET", "spaces/not-a-uuid", nil)
	igts.Equal(http.StatusBadRequest, code)
}

func (igts *IntegrationGinTestSuite) TestFixedAvailabilities() {
	sid := igts.createSpace("Fixed windows", 1)
	fixedPath := "spaces/" + sid + "/fixed-availabilities"

	code, resp := igts.request("POST", fixedPath, map[string]any{
		"start": igts.hour(0), "end": igts.hour(6),
		"price_per_hour": 100,
	})
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)
	aid, _ := resp["id"].(string)
	igts.Require().NotEmpty(aid)

	// overlapping and touching windows are both rejected
	code, _ = igts.request("POST", fixedPath, map[string]any{
		"start": igts.hour(5), "end": igts.hour(9),
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusConflict, code)
	code, _ = igts.request("POST", fixedPath, map[string]any{
		"start": igts.hour(6), "end": igts.hour(7),
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusConflict, code)

	// one minute after the end is acceptable again
	code, resp = igts.request("POST", fixedPath, map[string]any{
		"start": igts.base.Add(
			6*time.Hour + time.Minute,
		).Format(time.RFC3339),
		"end":            igts.hour(8),
		"price_per_hour": 150,
	})
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)
	aid2, _ := resp["id"].(string)

	code, list := igts.requestList("GET", fixedPath)
	igts.Equal(http.StatusOK, code)
	igts.Len(list, 2)

	code, resp = igts.request("PUT", fixedPath+"/"+aid, map[string]any{
		"start": igts.hour(0), "end": igts.hour(5),
		"price_per_hour": 120,
	})
	igts.Equal(http.StatusOK, code, "resp: %v", resp)
	igts.Equal(float64(120), resp["price_per_hour"])

	code, _ = igts.request("DELETE", fixedPath+"/"+aid2, nil)
	igts.Equal(http.StatusNoContent, code)

	// an availability which already elapsed cannot be opened
	code, _ = igts.request("POST", fixedPath, map[string]any{
		"start": time.Now().UTC().Add(-2 * time.Hour).
			Format(time.RFC3339),
		"end": time.Now().UTC().Add(-time.Hour).
			Format(time.RFC3339),
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusBadRequest, code)
}

func (igts *IntegrationGinTestSuite) TestRepeatingAvailabilities() {
	sid := igts.createSpace("Repeating windows", 1)
	repPath := "spaces/" + sid + "/repeating-availabilities"

	code, resp := igts.request("POST", repPath, map[string]any{
		"all_day":        true,
		"weekdays":       []string{"Mon", "Tue"},
		"price_per_hour": 100,
	})
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)
	igts.Equal([]any{"Mon", "Tue"}, resp["weekdays"])

	// a shared weekday conflicts with the all-day window
	code, _ = igts.request("POST", repPath, map[string]any{
		"start": "09:00", "end": "17:00",
		"weekdays":       []string{"Tue"},
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusConflict, code)

	code, resp = igts.request("POST", repPath, map[string]any{
		"start": "09:00", "end": "17:00",
		"weekdays":       []string{"Wed"},
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusCreated, code, "resp: %v", resp)
	igts.Equal("09:00", resp["start"])

	// non-all-day windows must carry both times of day
	code, _ = igts.request("POST", repPath, map[string]any{
		"start":          "09:00",
		"weekdays":       []string{"Thu"},
		"price_per_hour": 100,
	})
	igts.Equal(http.StatusBadRequest, code)

	code, list := igts.requestList("GET", repPath)
	igts.Equal(http.StatusOK, code)
	igts.Len(list, 2)
}

func (igts *IntegrationGinTestSuite) TestReservationLifecycle() {
	sid := igts.createSpace("Reservable", 1)
	code, resp := igts.request(
		"POST", "spaces/"+sid+"/fixed-availabilities", map[string]any{
			"start": igts.hour(0), "end": igts.hour(24),
			"price_per_hour": 250,
		},
	)
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)

	code, resp = igts.request("POST", "reservations", map[string]any{
		"space_id":            sid,
		"vehicle_id":          vehicle1ID,
		"start":               igts.hour(1),
		"end":                 igts.hour(2.5),
		"payment_method_info": "Visa ending in 4242",
	})
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)
	rid, _ := resp["id"].(string)
	igts.Require().NotEmpty(rid)
	igts.Equal("fixed", resp["availability_kind"])
	cost := schedule.CustomerPrice(250, 90, schedule.DefaultRates)
	igts.Equal(float64(cost), resp["cost"])
	igts.Equal(
		float64(schedule.HostIncome(cost, schedule.DefaultRates)),
		resp["host_income"],
	)

	// the single spot is taken over the reserved window
	q := url.Values{}
	q.Set("start", igts.hour(1))
	q.Set("end", igts.hour(2))
	code, resp = igts.request(
		"GET", "spaces/"+sid+"/vacancy?"+q.Encode(), nil,
	)
	igts.Equal(http.StatusOK, code)
	igts.Equal(float64(0), resp["vacant"])
	igts.Equal(true, resp["covered"])

	code, _ = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle2ID,
		"start":      igts.hour(2),
		"end":        igts.hour(3),
	})
	igts.Equal(http.StatusConflict, code, "no capacity is left")

	// a disjoint window is fine, but not twice for one vehicle
	code, resp = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle1ID,
		"start":      igts.hour(4),
		"end":        igts.hour(5),
	})
	igts.Equal(http.StatusCreated, code, "resp: %v", resp)
	code, _ = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle1ID,
		"start":      igts.hour(4.5),
		"end":        igts.hour(5.5),
	})
	igts.Equal(http.StatusConflict, code, "vehicle is already booked")

	code, resp = igts.request(
		"PATCH", "reservations/"+rid+"?op=cancel", nil,
	)
	igts.Equal(http.StatusOK, code, "resp: %v", resp)
	igts.Equal(true, resp["cancelled"])

	// cancellation frees the capacity for the conflicting window
	code, resp = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle2ID,
		"start":      igts.hour(2),
		"end":        igts.hour(3),
	})
	igts.Equal(http.StatusCreated, code, "resp: %v", resp)

	code, list := igts.requestList(
		"GET", "spaces/"+sid+"/reservations?active=true",
	)
	igts.Equal(http.StatusOK, code)
	igts.Len(list, 2)
	code, list = igts.requestList(
		"GET", "vehicles/"+vehicle1ID+"/reservations",
	)
	igts.Equal(http.StatusOK, code)
	igts.GreaterOrEqual(len(list), 2)
}

func (igts *IntegrationGinTestSuite) TestReservationRejections() {
	sid := igts.createSpace("Strict windows", 1)
	code, resp := igts.request(
		"POST", "spaces/"+sid+"/fixed-availabilities", map[string]any{
			"start": igts.hour(48), "end": igts.hour(52),
			"price_per_hour": 100,
		},
	)
	igts.Require().Equal(http.StatusCreated, code, "resp: %v", resp)

	// exceeding the availability bounds
	code, _ = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle1ID,
		"start":      igts.hour(50),
		"end":        igts.hour(53),
	})
	igts.Equal(http.StatusBadRequest, code)

	// no availability covers this window at all
	code, _ = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle1ID,
		"start":      igts.hour(100),
		"end":        igts.hour(101),
	})
	igts.Equal(http.StatusNotFound, code)

	// naive datetimes (without a UTC offset) are rejected
	code, _ = igts.request("POST", "reservations", map[string]any{
		"space_id":   sid,
		"vehicle_id": vehicle1ID,
		"start":      "2031-01-01T10:00:00",
		"end":        "2031-01-01T12:00:00",
	})
	igts.Equal(http.StatusBadRequest, code)
}

func (igts *IntegrationGinTestSuite) TestPayments() {
	// fetching an unknown reservation fails before any charge attempt
	code, _ := igts.request(
		"POST",
		fmt.Sprintf("reservations/%s/charges", uuid.New()),
		map[string]any{"customer_ref": "cus_integration"},
	)
	igts.Equal(http.StatusNotFound, code)

	// no elapsed reservation income is awaiting settlement
	code, resp := igts.request(
		"POST", "hosts/"+hostID+"/payouts", map[string]any{},
	)
	igts.Equal(http.StatusOK, code, "resp: %v", resp)
	igts.Equal(float64(0), resp["amount"])

	code, _ = igts.request(
		"POST",
		fmt.Sprintf("hosts/%s/payouts", uuid.New()),
		map[string]any{},
	)
	igts.Equal(http.StatusNotFound, code)
}
