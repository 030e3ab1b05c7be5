package repo

import (
	"context"
	"time"

	"github.com/vpvn/bugreports/internal/modules/model"
	"gorm.io/gorm"
)

// OccasionFilter selects occasions for List, newest first. The cursor applies
// only when both BeforeCreatedAt and BeforeID are set.
type OccasionFilter struct {
	BugID           int64
	ProjectID       string
	OS              string
	BeforeCreatedAt time.Time
	BeforeID        int64
	Limit           int
}

type OccasionRepo interface {
	Create(ctx context.Context, o *model.Occasion) error
	Get(ctx context.Context, id int64) (*model.Occasion, error)
	List(ctx context.Context, f OccasionFilter) ([]*model.Occasion, error)
	Update(ctx context.Context, o *model.Occasion) error
	Delete(ctx context.Context, id int64) error
}

type occasionRepo struct{ db *gorm.DB }

func NewOccasionRepo(db *gorm.DB) OccasionRepo {
	return &occasionRepo{db: db}
}

func (r *occasionRepo) Create(ctx context.Context, o *model.Occasion) error {
	return conn(ctx, r.db).Create(o).Error
}

func (r *occasionRepo) Get(ctx context.Context, id int64) (*model.Occasion, error) {
	var o model.Occasion
	if err := conn(ctx, r.db).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *occasionRepo) List(ctx context.Context, f OccasionFilter) ([]*model.Occasion, error) {
	q := conn(ctx, r.db).Model(&model.Occasion{})
	if f.ProjectID != "" {
		q = q.Joins("JOIN bugs ON bugs.id = occasions.bug_id").
			Where("bugs.project_id = ?", f.ProjectID)
	}
	if f.BugID != 0 {
		q = q.Where("occasions.bug_id = ?", f.BugID)
	}
	if f.OS != "" {
		q = q.Where("occasions.os = ?", f.OS)
	}
	if !f.BeforeCreatedAt.IsZero() && f.BeforeID != 0 {
		q = q.Where(
			"(occasions.ts_add < ?) OR (occasions.ts_add = ? AND occasions.id < ?)",
			f.BeforeCreatedAt, f.BeforeCreatedAt, f.BeforeID,
		)
	}
	q = q.Order("occasions.ts_add DESC, occasions.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var items []*model.Occasion
	return items, q.Select("occasions.*").Find(&items).Error
}

// Update writes the client-facing telemetry of o. BugID, IP and the
// timestamp are fixed at creation.
func (r *occasionRepo) Update(ctx context.Context, o *model.Occasion) error {
	res := conn(ctx, r.db).Model(&model.Occasion{}).Where("id = ?", o.ID).Updates(map[string]any{
		"email":   o.Email,
		"os":      o.OS,
		"details": o.Details,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *occasionRepo) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&model.Occasion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
