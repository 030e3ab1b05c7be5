package repo

import (
	"context"

	"github.com/vpvn/bugreports/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	UpdateName(ctx context.Context, id string, name string) (*model.Project, error)
	Upsert(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return conn(ctx, r.db).Create(p).Error
}

func (r *projectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	if err := conn(ctx, r.db).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]*model.Project, error) {
	var items []*model.Project
	return items, conn(ctx, r.db).Order("id ASC").Find(&items).Error
}

// UpdateName renames a project. The id is the primary key and never changes.
func (r *projectRepo) UpdateName(ctx context.Context, id string, name string) (*model.Project, error) {
	res := conn(ctx, r.db).Model(&model.Project{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Project{ID: id, Name: name}, nil
}

// Upsert creates the project or renames it when the id already exists.
func (r *projectRepo) Upsert(ctx context.Context, p *model.Project) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(p).Error
}

// Delete removes the project; bugs and occasions go with it through
// ON DELETE CASCADE.
func (r *projectRepo) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
