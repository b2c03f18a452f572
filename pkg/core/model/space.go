// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhysicalType specifies the physical kind of a parking space.
type PhysicalType int

// Valid values for the PhysicalType enum.
const (
	PhysicalTypeInvalid PhysicalType = iota // zero value is invalid

	Driveway
	Garage
	Lot
	Structure
	Unpaved
)

// ErrUnknownPhysicalType indicates that a given string may not be
// parsed as a valid/known physical type.
var ErrUnknownPhysicalType = errors.New("unknown physical type")

var physicalTypeNames = [...]string{
	"driveway", "garage", "lot", "structure", "unpaved",
}

// Validate returns nil if the PhysicalType value is valid.
func (p PhysicalType) Validate() error {
	if p < Driveway || p > Unpaved {
		return fmt.Errorf("invalid physical type: %d", int(p))
	}
	return nil
}

// String converts the PhysicalType enum to a string, helping to
// serialize it for transmission to web clients. Invalid physical
// type causes a panic.
func (p PhysicalType) String() string {
	if err := p.Validate(); err != nil {
		panic(err)
	}
	return physicalTypeNames[int(p)-1]
}

// ParsePhysicalType parses the given string and returns a
// PhysicalType, helping to deserialize it when reading a REST API
// request.
func ParsePhysicalType(s string) (PhysicalType, error) {
	for i, name := range physicalTypeNames {
		if name == s {
			return PhysicalType(i + 1), nil
		}
	}
	return PhysicalTypeInvalid, ErrUnknownPhysicalType
}

// LegalType specifies the legal kind of a parking space.
type LegalType int

// Valid values for the LegalType enum.
const (
	LegalTypeInvalid LegalType = iota // zero value is invalid

	Residential
	Business
)

// ErrUnknownLegalType indicates that a given string may not be parsed
// as a valid/known legal type.
var ErrUnknownLegalType = errors.New("unknown legal type")

// Validate returns nil if the LegalType value is valid.
func (l LegalType) Validate() error {
	if l != Residential && l != Business {
		return fmt.Errorf("invalid legal type: %d", int(l))
	}
	return nil
}

// String converts the LegalType enum to a string. Invalid legal type
// causes a panic.
func (l LegalType) String() string {
	switch l {
	case Residential:
		return "residential"
	case Business:
		return "business"
	default:
		panic(fmt.Sprintf("invalid legal type: %d", int(l)))
	}
}

// ParseLegalType parses the given string and returns a LegalType.
func ParseLegalType(s string) (LegalType, error) {
	switch s {
	case "residential":
		return Residential, nil
	case "business":
		return Business, nil
	default:
		return LegalTypeInvalid, ErrUnknownLegalType
	}
}

// Feature names an amenity of a parking space, such as EV charging.
// Features are free-form from the core point of view and are only
// enumerated for serialization purposes.
type Feature string

// Known parking space features.
const (
	EVCharging   Feature = "ev-charging"
	Illuminated  Feature = "illuminated"
	Covered      Feature = "covered"
	Guarded      Feature = "guarded"
	Surveillance Feature = "surveillance"
	Gated        Feature = "gated"
)

// Coordinate represents a geographical location with a latitude and
// longitude.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

// ParkingSpace models a parking location which is listed by a host
// and may hold up to AvailableSpaces simultaneous reservations.
// The AvailableSpaces capacity is a static ceiling; actual vacancy
// for a time window is that ceiling minus the overlapping
// non-cancelled reservations (see the schedule package).
type ParkingSpace struct {
	ID     uuid.UUID // unique identifier of the parking space
	HostID uuid.UUID // the host that the parking space belongs to

	Name         string     // e.g. "123 Robertson" or "Sam's Diner"
	Instructions string     // directions helping customers find the spot
	Coordinate   Coordinate // location of the parking space
	Address      string     // human-readable postal address

	// AvailableSpaces is the number of vehicles which can be parked
	// at the same time. Each individual space is assumed to be
	// positioned such that each vehicle can arrive and leave
	// independently; hosts are instructed to list 1 otherwise.
	AvailableSpaces int

	// MaxSize is the maximum vehicle size the space can support.
	MaxSize VehicleSize

	Features     []Feature
	PhysicalType PhysicalType
	LegalType    LegalType

	Active    bool
	CreatedAt time.Time
}

// Validate checks the field-level invariants of a parking space.
// Cross-entity invariants, such as availability overlaps, are
// validated by the schedule package instead.
func (ps *ParkingSpace) Validate() error {
	switch {
	case ps.Name == "":
		return errors.New("parking space name may not be empty")
	case ps.AvailableSpaces < 1:
		return fmt.Errorf(
			"available spaces (%d) must be at least 1",
			ps.AvailableSpaces,
		)
	}
	if err := ps.MaxSize.Validate(); err != nil {
		return err
	}
	if err := ps.PhysicalType.Validate(); err != nil {
		return err
	}
	return ps.LegalType.Validate()
}
