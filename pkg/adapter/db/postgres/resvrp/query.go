package resvrp

import (
	"context"
	"fmt"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type gReservation struct {
	RID       uuid.UUID `gorm:"primaryKey;type:uuid;column:rid"`
	VehicleID uuid.UUID `gorm:"type:uuid;column:vehicle_id"`
	// ParkingSpaceID is denormalized so a reservation row survives
	// the removal of its covering availability.
	ParkingSpaceID uuid.UUID `gorm:"type:uuid;column:parking_space_id"`

	// Exactly one of the two availability references is set,
	// encoding the covering kind.
	FixedAvailabilityID     *uuid.UUID `gorm:"type:uuid;column:fixed_availability_id"`
	RepeatingAvailabilityID *uuid.UUID `gorm:"type:uuid;column:repeating_availability_id"`

	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`

	Cancelled bool
	PaidOut   bool

	Cost              int
	HostIncome        int
	PaymentMethodInfo string

	CreatedAt time.Time
}

func (gr *gReservation) TableName() string {
	return "reservations"
}

func (gr *gReservation) Model() *model.Reservation {
	r := &model.Reservation{
		ID:                gr.RID,
		VehicleID:         gr.VehicleID,
		ParkingSpaceID:    gr.ParkingSpaceID,
		Start:             gr.StartTime,
		End:               gr.EndTime,
		Cancelled:         gr.Cancelled,
		PaidOut:           gr.PaidOut,
		Cost:              gr.Cost,
		HostIncome:        gr.HostIncome,
		PaymentMethodInfo: gr.PaymentMethodInfo,
		CreatedAt:         gr.CreatedAt,
	}
	switch {
	case gr.FixedAvailabilityID != nil:
		r.Covering = model.CoveringRef{
			Kind:           model.KindFixed,
			AvailabilityID: *gr.FixedAvailabilityID,
		}
	case gr.RepeatingAvailabilityID != nil:
		r.Covering = model.CoveringRef{
			Kind:           model.KindRepeating,
			AvailabilityID: *gr.RepeatingAvailabilityID,
		}
	}
	return r
}

func row(r *model.Reservation) *gReservation {
	gr := &gReservation{
		RID:               r.ID,
		VehicleID:         r.VehicleID,
		ParkingSpaceID:    r.ParkingSpaceID,
		StartTime:         r.Start,
		EndTime:           r.End,
		Cancelled:         r.Cancelled,
		PaidOut:           r.PaidOut,
		Cost:              r.Cost,
		HostIncome:        r.HostIncome,
		PaymentMethodInfo: r.PaymentMethodInfo,
		CreatedAt:         r.CreatedAt,
	}
	aid := r.Covering.AvailabilityID
	switch r.Covering.Kind {
	case model.KindFixed:
		gr.FixedAvailabilityID = &aid
	case model.KindRepeating:
		gr.RepeatingAvailabilityID = &aid
	}
	return gr
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Reservation) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(row(r)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func Fetch[Q postgres.Queryer](ctx context.Context, q Q, rid uuid.UUID) (*model.Reservation, error) {
	gdb := q.GORM(ctx)
	var gr []gReservation
	gdb.Where("rid=?", rid).Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gr); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gr[0].Model(), nil
}

func ListBySpace[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Where("parking_space_id=?", sid)
	if activeOnly {
		tt = tt.Where("NOT cancelled")
	}
	var gr []gReservation
	tt.Order("start_time").Find(&gr)
	if err := tt.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gr), nil
}

func ListByVehicle[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID, activeOnly bool) ([]*model.Reservation, error) {
	gdb := q.GORM(ctx)
	tt := gdb.Where("vehicle_id=?", vid)
	if activeOnly {
		tt = tt.Where("NOT cancelled")
	}
	var gr []gReservation
	tt.Order("start_time").Find(&gr)
	if err := tt.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gr), nil
}

func Cancel[Q postgres.Queryer](ctx context.Context, q Q, rid uuid.UUID) (*model.Reservation, error) {
	gdb := q.GORM(ctx)
	var gr []gReservation
	gdb.Model(&gr).Clauses(clause.Returning{}).Where(
		"rid=?", rid,
	).Update("cancelled", true)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gr); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gr[0].Model(), nil
}

func MarkPaidOut[Q postgres.Queryer](ctx context.Context, q Q, hid uuid.UUID, before time.Time) ([]*model.Reservation, error) {
	spaces := q.GORM(ctx).Table("parking_spaces").Select(
		"sid",
	).Where("host_id=?", hid)
	gdb := q.GORM(ctx)
	var gr []gReservation
	gdb.Model(&gr).Clauses(clause.Returning{}).Where(
		"parking_space_id IN (?)", spaces,
	).Where(
		"end_time < ? AND NOT cancelled AND NOT paid_out", before,
	).Update("paid_out", true)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gr), nil
}

func models(gr []gReservation) []*model.Reservation {
	rs := make([]*model.Reservation, 0, len(gr))
	for i := range gr {
		rs = append(rs, gr[i].Model())
	}
	return rs
}
