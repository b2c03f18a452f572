package availrp

import (
	"context"
	"fmt"
	"time"

	"github.com/curbweb/curbweb/pkg/adapter/db/postgres"
	"github.com/curbweb/curbweb/pkg/core/cerr"
	"github.com/curbweb/curbweb/pkg/core/model"
	"github.com/google/uuid"
)

type gFixed struct {
	AID            uuid.UUID `gorm:"primaryKey;type:uuid;column:aid"`
	ParkingSpaceID uuid.UUID `gorm:"type:uuid;column:parking_space_id"`

	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`

	PricePerHour int
	CreatedAt    time.Time
}

func (gf *gFixed) TableName() string {
	return "fixed_availabilities"
}

func (gf *gFixed) Model() *model.FixedAvailability {
	return &model.FixedAvailability{
		ID:             gf.AID,
		ParkingSpaceID: gf.ParkingSpaceID,
		Start:          gf.StartTime,
		End:            gf.EndTime,
		PricePerHour:   gf.PricePerHour,
		CreatedAt:      gf.CreatedAt,
	}
}

func fixedRow(fa *model.FixedAvailability) *gFixed {
	return &gFixed{
		AID:            fa.ID,
		ParkingSpaceID: fa.ParkingSpaceID,
		StartTime:      fa.Start,
		EndTime:        fa.End,
		PricePerHour:   fa.PricePerHour,
		CreatedAt:      fa.CreatedAt,
	}
}

type gRepeating struct {
	AID            uuid.UUID `gorm:"primaryKey;type:uuid;column:aid"`
	ParkingSpaceID uuid.UUID `gorm:"type:uuid;column:parking_space_id"`

	AllDay bool
	// StartMinute and EndMinute are minutes since midnight; both are
	// null for all-day availabilities.
	StartMinute *int
	EndMinute   *int

	// Weekdays is a 7-bit set with Sunday at the least significant
	// bit.
	Weekdays int

	PricePerHour int
	CreatedAt    time.Time
}

func (gr *gRepeating) TableName() string {
	return "repeating_availabilities"
}

func (gr *gRepeating) Model() *model.RepeatingAvailability {
	ra := &model.RepeatingAvailability{
		ID:             gr.AID,
		ParkingSpaceID: gr.ParkingSpaceID,
		AllDay:         gr.AllDay,
		Weekdays:       model.WeekdaySetFromMask(gr.Weekdays),
		PricePerHour:   gr.PricePerHour,
		CreatedAt:      gr.CreatedAt,
	}
	if gr.StartMinute != nil {
		t := model.TimeOfDay(*gr.StartMinute)
		ra.Start = &t
	}
	if gr.EndMinute != nil {
		t := model.TimeOfDay(*gr.EndMinute)
		ra.End = &t
	}
	return ra
}

func repeatingRow(ra *model.RepeatingAvailability) *gRepeating {
	gr := &gRepeating{
		AID:            ra.ID,
		ParkingSpaceID: ra.ParkingSpaceID,
		AllDay:         ra.AllDay,
		Weekdays:       ra.Weekdays.Mask(),
		PricePerHour:   ra.PricePerHour,
		CreatedAt:      ra.CreatedAt,
	}
	if ra.Start != nil {
		m := int(*ra.Start)
		gr.StartMinute = &m
	}
	if ra.End != nil {
		m := int(*ra.End)
		gr.EndMinute = &m
	}
	return gr
}

func CreateFixed[Q postgres.Queryer](ctx context.Context, q Q, fa *model.FixedAvailability) error {
	if fa.ID == uuid.Nil {
		fa.ID = uuid.New()
	}
	if fa.CreatedAt.IsZero() {
		fa.CreatedAt = time.Now()
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(fixedRow(fa)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func FetchFixed[Q postgres.Queryer](ctx context.Context, q Q, aid uuid.UUID) (*model.FixedAvailability, error) {
	gdb := q.GORM(ctx)
	var gf []gFixed
	gdb.Where("aid=?", aid).Find(&gf)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gf); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gf[0].Model(), nil
}

func ListFixed[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) ([]*model.FixedAvailability, error) {
	gdb := q.GORM(ctx)
	var gf []gFixed
	gdb.Where("parking_space_id=?", sid).Order("start_time").Find(&gf)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	fas := make([]*model.FixedAvailability, 0, len(gf))
	for i := range gf {
		fas = append(fas, gf[i].Model())
	}
	return fas, nil
}

func UpdateFixed[Q postgres.Queryer](ctx context.Context, q Q, fa *model.FixedAvailability) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gFixed{}).Where("aid=?", fa.ID).Select(
		"start_time", "end_time", "price_per_hour",
	).Updates(fixedRow(fa))
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

func DeleteFixed[Q postgres.Queryer](ctx context.Context, q Q, aid uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("aid=?", aid).Delete(&gFixed{})
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

func CreateRepeating[Q postgres.Queryer](ctx context.Context, q Q, ra *model.RepeatingAvailability) error {
	if ra.ID == uuid.Nil {
		ra.ID = uuid.New()
	}
	if ra.CreatedAt.IsZero() {
		ra.CreatedAt = time.Now()
	}
	gdb := q.GORM(ctx)
	if err := gdb.Create(repeatingRow(ra)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func FetchRepeating[Q postgres.Queryer](ctx context.Context, q Q, aid uuid.UUID) (*model.RepeatingAvailability, error) {
	gdb := q.GORM(ctx)
	var gr []gRepeating
	gdb.Where("aid=?", aid).Find(&gr)
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

func ListRepeating[Q postgres.Queryer](ctx context.Context, q Q, sid uuid.UUID) ([]*model.RepeatingAvailability, error) {
	gdb := q.GORM(ctx)
	var gr []gRepeating
	gdb.Where("parking_space_id=?", sid).Order("created_at").Find(&gr)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ras := make([]*model.RepeatingAvailability, 0, len(gr))
	for i := range gr {
		ras = append(ras, gr[i].Model())
	}
	return ras, nil
}

func UpdateRepeating[Q postgres.Queryer](ctx context.Context, q Q, ra *model.RepeatingAvailability) error {
	gdb := q.GORM(ctx)
	tt := gdb.Model(&gRepeating{}).Where("aid=?", ra.ID).Select(
		"all_day", "start_minute", "end_minute",
		"weekdays", "price_per_hour",
	).Updates(repeatingRow(ra))
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

func DeleteRepeating[Q postgres.Queryer](ctx context.Context, q Q, aid uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("aid=?", aid).Delete(&gRepeating{})
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
