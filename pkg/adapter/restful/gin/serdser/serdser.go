// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the common serialization/deserialization
// helpers which are shared among the resource packages.
package serdser

import (
	"errors"
	"net/http"
	"time"

	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Bind deserializes the request which is represented by the c context
// into the req struct using the b binding (e.g., binding.JSON for a
// request body or binding.Query for the query string). In case of a
// validation error, a proper error response will be serialized and
// false will be returned, asking the caller to return right away.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return respondBindingErr(c, c.ShouldBindWith(req, b))
}

// BindUri deserializes the path parameters of the request which is
// represented by the c context into the req struct based on its uri
// tags, serializing a proper error response and returning false in
// case of a validation error (like the Bind function).
func BindUri(c *gin.Context, req any) bool {
	return respondBindingErr(c, c.ShouldBindUri(req))
}

func respondBindingErr(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// AddErr appends the msgs error messages for the name field to the
// errs field-to-errors mapping, allocating the map if this is its
// first recorded error.
func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

// Assert records the msgs error messages for the name field if the ok
// condition is false, returning the ok condition itself.
func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// ParseTime parses an RFC3339 datetime string. The format mandates an
// explicit UTC offset, so naive datetimes (with no offset at all) are
// rejected instead of being resolved against some server-local zone.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// SerErr serializes the err error as a JSON response. If the error is
// created by (or wraps an error from) the cerr package, its embedded
// HTTP status code will be used. Otherwise, an internal server error
// will be reported.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
