package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/pkg/paging"
	"gorm.io/gorm"
)

type OccasionService interface {
	RecordOccasion(ctx context.Context, in RecordOccasionInput) (*model.Occasion, error)
	Get(ctx context.Context, id int64) (*model.Occasion, error)
	List(ctx context.Context, in ListOccasionsInput) (*ListOccasionsOutput, error)
	Update(ctx context.Context, in UpdateOccasionInput) (*model.Occasion, error)
	Delete(ctx context.Context, id int64) error
}

type occasionService struct {
	r    repo.OccasionRepo
	bugs repo.BugRepo
}

func NewOccasionService(r repo.OccasionRepo, bugs repo.BugRepo) OccasionService {
	return &occasionService{r: r, bugs: bugs}
}

// RecordOccasionInput is one observation of a bug. Empty optional fields are
// stored as NULL.
type RecordOccasionInput struct {
	BugID   int64   `validate:"required"`
	Email   *string `validate:"omitempty,email,max=254"`
	IP      *string `validate:"omitempty,ip"`
	OS      *string `validate:"omitempty,oneof=android win linux"`
	Details *string
}

func (in *RecordOccasionInput) normalize() {
	in.Email = optional(in.Email)
	in.IP = optional(in.IP)
	in.OS = optional(in.OS)
	in.Details = optional(in.Details)
}

// RecordOccasion always inserts a new occasion; occasions are never merged.
func (s *occasionService) RecordOccasion(ctx context.Context, in RecordOccasionInput) (*model.Occasion, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := s.bugs.Get(ctx, in.BugID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "bug", Msg: fmt.Sprintf("invalid pk '%d' - object does not exist", in.BugID)}
		}
		return nil, err
	}

	o := &model.Occasion{
		BugID:   in.BugID,
		Email:   in.Email,
		IP:      in.IP,
		OS:      in.OS,
		Details: in.Details,
	}
	if err := s.r.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create occasion: %w", err)
	}
	return o, nil
}

func (s *occasionService) Get(ctx context.Context, id int64) (*model.Occasion, error) {
	o, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccasionNotFound
		}
		return nil, err
	}
	return o, nil
}

type ListOccasionsInput struct {
	BugID     int64  `json:"bug"`
	ProjectID string `json:"bug__project"`
	OS        string `json:"os" validate:"omitempty,oneof=android win linux"`
	Limit     int    `json:"limit"`
	Cursor    string `json:"cursor"`
}

type ListOccasionsOutput struct {
	Items      []*model.Occasion `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

// List returns occasions newest first.
func (s *occasionService) List(ctx context.Context, in ListOccasionsInput) (*ListOccasionsOutput, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	f := repo.OccasionFilter{BugID: in.BugID, ProjectID: in.ProjectID, OS: in.OS}
	if in.Cursor != "" {
		beforeT, beforeID, err := paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, &ValidationError{Field: "cursor", Msg: err.Error()}
		}
		f.BeforeCreatedAt, f.BeforeID = beforeT, beforeID
	}
	if in.Limit > 0 {
		f.Limit = in.Limit + 1
	}

	items, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &ListOccasionsOutput{Items: items}
	if in.Limit > 0 && len(items) > in.Limit {
		out.HasMore = true
		out.Items = items[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}

// UpdateOccasionInput edits the client-supplied telemetry of an occasion.
// Nil fields are kept; a pointer to "" clears the field.
type UpdateOccasionInput struct {
	ID      int64
	Email   *string
	OS      *string
	Details *string
}

func (s *occasionService) Update(ctx context.Context, in UpdateOccasionInput) (*model.Occasion, error) {
	o, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		o.Email = optional(in.Email)
	}
	if in.OS != nil {
		o.OS = optional(in.OS)
	}
	if in.Details != nil {
		o.Details = optional(in.Details)
	}

	check := RecordOccasionInput{BugID: o.BugID, Email: o.Email, OS: o.OS}
	if err := validateStruct(check); err != nil {
		return nil, err
	}

	if err := s.r.Update(ctx, o); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccasionNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *occasionService) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOccasionNotFound
		}
		return err
	}
	return nil
}
