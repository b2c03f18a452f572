package accountsrp

import (
	"context"
	"fmt"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

type gHost struct {
	HID        uuid.UUID `gorm:"primaryKey;type:uuid;column:hid"`
	Name       string
	VenmoEmail string
}

func (gh *gHost) TableName() string {
	return "hosts"
}

func (gh *gHost) Model() *model.Host {
	return &model.Host{
		ID:         gh.HID,
		Name:       gh.Name,
		VenmoEmail: gh.VenmoEmail,
	}
}

type gVehicle struct {
	VID        uuid.UUID `gorm:"primaryKey;type:uuid;column:vid"`
	CustomerID uuid.UUID `gorm:"type:uuid;column:customer_id"`

	Color        string
	Year         string
	Make         string
	VModel       string `gorm:"column:model"`
	LicensePlate string
	Size         int
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() *model.Vehicle {
	return &model.Vehicle{
		ID:           gv.VID,
		CustomerID:   gv.CustomerID,
		Color:        gv.Color,
		Year:         gv.Year,
		Make:         gv.Make,
		Model:        gv.VModel,
		LicensePlate: gv.LicensePlate,
		Size:         model.VehicleSize(gv.Size),
	}
}

func FetchHost[Q postgres.Queryer](ctx context.Context, q Q, hid uuid.UUID) (*model.Host, error) {
	gdb := q.GORM(ctx)
	var gh []gHost
	gdb.Where("hid=?", hid).Find(&gh)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gh); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gh[0].Model(), nil
}

func UpdateHostVenmoEmail[Q postgres.Queryer](ctx context.Context, q Q, hid uuid.UUID, email string) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gHost{}).Where("hid=?", hid).Update(
		"venmo_email", email,
	)
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := tt.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

func FetchVehicle[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gv []gVehicle
	gdb.Where("vid=?", vid).Find(&gv)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gv); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gv[0].Model(), nil
}
