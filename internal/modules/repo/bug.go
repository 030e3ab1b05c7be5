package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vpvn/bugreports/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BugFilter selects bugs for List. Zero values mean "no filter"; the cursor
// applies only when both AfterCreatedAt and AfterID are set.
type BugFilter struct {
	ProjectID      string
	AfterCreatedAt time.Time
	AfterID        int64
	Limit          int
}

type BugRepo interface {
	GetOrCreate(ctx context.Context, b *model.Bug) (*model.Bug, bool, error)
	Create(ctx context.Context, b *model.Bug) error
	Get(ctx context.Context, id int64) (*model.Bug, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.Bug, error)
	List(ctx context.Context, f BugFilter) ([]*model.Bug, error)
	Update(ctx context.Context, b *model.Bug) error
	Delete(ctx context.Context, id int64) error
	CountOccasions(ctx context.Context, id int64) (int64, error)
}

type bugRepo struct{ db *gorm.DB }

func NewBugRepo(db *gorm.DB) BugRepo {
	return &bugRepo{db: db}
}

// GetOrCreate inserts b unless a bug with the same BugUUID exists, in which
// case the stored row is returned untouched. The unique index on bug_uuid
// settles concurrent first reports: the losing insert is a no-op and the
// follow-up read returns the winner's row.
func (r *bugRepo) GetOrCreate(ctx context.Context, b *model.Bug) (*model.Bug, bool, error) {
	res := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bug_uuid"}},
			DoNothing: true,
		}).
		Create(b)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return b, true, nil
	}

	existing, err := r.GetByUUID(ctx, b.BugUUID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *bugRepo) Create(ctx context.Context, b *model.Bug) error {
	return conn(ctx, r.db).Create(b).Error
}

func (r *bugRepo) Get(ctx context.Context, id int64) (*model.Bug, error) {
	var b model.Bug
	if err := conn(ctx, r.db).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bugRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Bug, error) {
	var b model.Bug
	if err := conn(ctx, r.db).Where("bug_uuid = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bugRepo) List(ctx context.Context, f BugFilter) ([]*model.Bug, error) {
	q := conn(ctx, r.db).Model(&model.Bug{})
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if !f.AfterCreatedAt.IsZero() && f.AfterID != 0 {
		q = q.Where("(ts_add > ?) OR (ts_add = ? AND id > ?)", f.AfterCreatedAt, f.AfterCreatedAt, f.AfterID)
	}
	q = q.Order("ts_add ASC, id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var items []*model.Bug
	return items, q.Find(&items).Error
}

// Update writes the editable columns of b, including a recomputed bug_uuid.
func (r *bugRepo) Update(ctx context.Context, b *model.Bug) error {
	res := conn(ctx, r.db).Model(&model.Bug{}).Where("id = ?", b.ID).Updates(map[string]any{
		"project_id":     b.ProjectID,
		"bug_uuid":       b.BugUUID,
		"exception_text": b.ExceptionText,
		"description":    b.Description,
		"discussian_url": b.DiscussionURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bugRepo) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&model.Bug{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bugRepo) CountOccasions(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Occasion{}).Where("bug_id = ?", id).Count(&n).Error
	return n, err
}
