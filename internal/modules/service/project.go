package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vpvn/bugreports/internal/infra/db"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Rename(ctx context.Context, id string, name string) (*model.Project, error)
	Upsert(ctx context.Context, in CreateProjectInput) error
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	r repo.ProjectRepo
}

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

type CreateProjectInput struct {
	ID   string `json:"id" validate:"required,notblank,max=20"`
	Name string `json:"name" validate:"required,notblank,max=150"`
}

type renameInput struct {
	Name string `validate:"required,notblank,max=150"`
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	p := &model.Project{ID: in.ID, Name: in.Name}
	if err := s.r.Create(ctx, p); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("project with id '%s': %w", in.ID, ErrConflict)
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]*model.Project, error) {
	return s.r.List(ctx)
}

func (s *projectService) Rename(ctx context.Context, id string, name string) (*model.Project, error) {
	if err := validateStruct(renameInput{Name: name}); err != nil {
		return nil, err
	}
	p, err := s.r.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectNotFound(id)
		}
		return nil, err
	}
	return p, nil
}

// Upsert creates the project or renames an existing one; used for seeding.
func (s *projectService) Upsert(ctx context.Context, in CreateProjectInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return s.r.Upsert(ctx, &model.Project{ID: in.ID, Name: in.Name})
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	// bugs and their occasions are removed by ON DELETE CASCADE
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projectNotFound(id)
		}
		return err
	}
	return nil
}
