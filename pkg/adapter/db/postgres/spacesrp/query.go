package spacesrp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

type gSpace struct {
	SID    uuid.UUID `gorm:"primaryKey;type:uuid;column:sid"`
	HostID uuid.UUID `gorm:"type:uuid;column:host_id"`

	Name         string
	Instructions string
	Coordinate   model.Coordinate `gorm:"embedded"`
	Address      string

	AvailableSpaces int
	MaxSize         int
	// Features keeps the amenity names as one comma-separated text
	// column, so no array-typed driver support is needed.
	Features     string
	PhysicalType int
	LegalType    int

	Active    bool
	CreatedAt time.Time
}

func (gs *gSpace) TableName() string {
	return "parking_spaces"
}

func (gs *gSpace) Model() *model.ParkingSpace {
	var features []model.Feature
	if gs.Features != "" {
		for _, f := range strings.Split(gs.Features, ",") {
			features = append(features, model.Feature(f))
		}
	}
	return &model.ParkingSpace{
		ID:              gs.SID,
		HostID:          gs.HostID,
		Name:            gs.Name,
		Instructions:    gs.Instructions,
		Coordinate:      gs.Coordinate,
		Address:         gs.Address,
		AvailableSpaces: gs.AvailableSpaces,
		MaxSize:         model.VehicleSize(gs.MaxSize),
		Features:        features,
		PhysicalType:    model.PhysicalType(gs.PhysicalType),
		LegalType:       model.LegalType(gs.LegalType),
		Active:          gs.Active,
		CreatedAt:       gs.CreatedAt,
	}
}

func row(ps *model.ParkingSpace) *gSpace {
	features := make([]string, 0, len(ps.Features))
	for _, f := range ps.Features {
		features = append(features, string(f))
	}
	return &gSpace{
		SID:             ps.ID,
		HostID:          ps.HostID,
		Name:            ps.Name,
		Instructions:    ps.Instructions,
		Coordinate:      ps.Coordinate,
		Address:         ps.Address,
		AvailableSpaces: ps.AvailableSpaces,
		MaxSize:         int(ps.MaxSize),
		Features:        strings.Join(features, ","),
		PhysicalType:    int(ps.PhysicalType),
		LegalType:       int(ps.LegalType),
		Active:          ps.Active,
		CreatedAt:       ps.CreatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, ps *model.ParkingSpace) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	if ps.CreatedAt.IsZero() {
		ps.CreatedAt = time.Now()
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(row(ps)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Fetch[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) (*model.ParkingSpace, error) {
	gdb := q.GORM(ctx)
	var gs []gSpace
	gdb.Where("sid=?", sid).Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gs[0].Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.ParkingSpace, error) {
	gdb := q.GORM(ctx)
	var gs []gSpace
	gdb.Order("created_at").Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	spaces := make([]*model.ParkingSpace, 0, len(gs))
	for i := range gs {
		spaces = append(spaces, gs[i].Model())
	}
	return spaces, nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, ps *model.ParkingSpace) error {
	gdb := q.GORM(ctx)
	// Select lists all mutable columns explicitly, so zero values
	// (e.g. a false active flag) overwrite too.
	tt := gdb.Model(&gSpace{}).Where("sid=?", ps.ID).Select(
		"name", "instructions", "lat", "lon", "address",
		"available_spaces", "max_size", "features",
		"physical_type", "legal_type", "active",
	).Updates(row(ps))
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

func Delete[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("sid=?", sid).Delete(&gSpace{})
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
