// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Host represents a user who owns parking spaces and earns income
// from their reservations. Authentication and authorization are out
// of the core scope, so only the marketplace-relevant fields are
// modeled here.
type Host struct {
	ID         uuid.UUID
	Name       string
	VenmoEmail string // payout destination address
}

// Customer represents a user who owns vehicles and books reservations.
type Customer struct {
	ID   uuid.UUID
	Name string
}

// VehicleSize specifies the size class of a vehicle, which parking
// spaces use as their supported ceiling.
type VehicleSize int

// Valid values for the VehicleSize enum, from smallest to largest.
const (
	VehicleSizeInvalid VehicleSize = iota // zero value is invalid

	Motorcycle
	Compact
	Standard
	Oversized
)

// ErrUnknownVehicleSize indicates that a given string may not be
// parsed as a valid/known vehicle size.
var ErrUnknownVehicleSize = errors.New("unknown vehicle size")

var vehicleSizeNames = [...]string{
	"motorcycle", "compact", "standard", "oversized",
}

// Validate returns nil if the VehicleSize value is valid.
func (v VehicleSize) Validate() error {
	if v < Motorcycle || v > Oversized {
		return fmt.Errorf("invalid vehicle size: %d", int(v))
	}
	return nil
}

// String converts the VehicleSize enum to a string. Invalid vehicle
// size causes a panic.
func (v VehicleSize) String() string {
	if err := v.Validate(); err != nil {
		panic(err)
	}
	return vehicleSizeNames[int(v)-1]
}

// ParseVehicleSize parses the given string and returns a VehicleSize.
func ParseVehicleSize(s string) (VehicleSize, error) {
	for i, name := range vehicleSizeNames {
		if name == s {
			return VehicleSize(i + 1), nil
		}
	}
	return VehicleSizeInvalid, ErrUnknownVehicleSize
}

// Vehicle models a customer-owned vehicle. A reservation always
// belongs to exactly one vehicle and a vehicle may not hold two
// overlapping active reservations (it cannot be in two places at
// once).
type Vehicle struct {
	ID         uuid.UUID
	CustomerID uuid.UUID

	Color        string
	Year         string
	Make         string
	Model        string
	LicensePlate string
	Size         VehicleSize
}
