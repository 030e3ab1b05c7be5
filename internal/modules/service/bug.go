package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vpvn/bugreports/internal/infra/db"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/pkg/paging"
	"gorm.io/gorm"
)

type BugService interface {
	GetOrCreateBug(ctx context.Context, projectID, exceptionText string) (*model.Bug, bool, error)
	Create(ctx context.Context, in CreateBugInput) (*model.Bug, error)
	Get(ctx context.Context, id int64) (*BugDetail, error)
	List(ctx context.Context, in ListBugsInput) (*ListBugsOutput, error)
	Update(ctx context.Context, in UpdateBugInput) (*model.Bug, error)
	Delete(ctx context.Context, id int64) error
}

type bugService struct {
	r        repo.BugRepo
	projects repo.ProjectRepo
}

func NewBugService(r repo.BugRepo, projects repo.ProjectRepo) BugService {
	return &bugService{r: r, projects: projects}
}

// GetOrCreateBug resolves the bug for (projectID, exceptionText), creating it
// on the first report. The project must exist; that is checked before any
// write. created reports whether this call inserted the bug.
func (s *bugService) GetOrCreateBug(ctx context.Context, projectID, exceptionText string) (*model.Bug, bool, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, projectNotFound(projectID)
		}
		return nil, false, fmt.Errorf("lookup project: %w", err)
	}

	bug, created, err := s.r.GetOrCreate(ctx, model.NewBug(projectID, exceptionText))
	if err != nil {
		return nil, false, fmt.Errorf("get or create bug: %w", err)
	}
	return bug, created, nil
}

type CreateBugInput struct {
	ProjectID     string `json:"project" validate:"required,max=20"`
	ExceptionText string `json:"exception_text" validate:"required,notblank"`
	Description   string `json:"description"`
	DiscussionURL string `json:"discussian_url" validate:"omitempty,url,max=200"`
}

// Create registers a bug by hand. Unlike GetOrCreateBug it refuses a second
// bug with the same identity.
func (s *bugService) Create(ctx context.Context, in CreateBugInput) (*model.Bug, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	b := model.NewBug(in.ProjectID, in.ExceptionText)
	b.Description = in.Description
	b.DiscussionURL = in.DiscussionURL
	if err := s.r.Create(ctx, b); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("bug %s: %w", b.BugUUID, ErrConflict)
		}
		return nil, err
	}
	return b, nil
}

type BugDetail struct {
	*model.Bug
	OccasionsCount int64 `json:"occasions_count"`
}

func (s *bugService) Get(ctx context.Context, id int64) (*BugDetail, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBugNotFound
		}
		return nil, err
	}
	n, err := s.r.CountOccasions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BugDetail{Bug: b, OccasionsCount: n}, nil
}

type ListBugsInput struct {
	ProjectID string `json:"project"`
	Limit     int    `json:"limit"`
	Cursor    string `json:"cursor"`
}

type ListBugsOutput struct {
	Items      []*model.Bug `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
}

func (s *bugService) List(ctx context.Context, in ListBugsInput) (*ListBugsOutput, error) {
	f := repo.BugFilter{ProjectID: in.ProjectID}
	if in.Cursor != "" {
		afterT, afterID, err := paging.DecodeCursor(in.Cursor)
		if err != nil {
			return nil, &ValidationError{Field: "cursor", Msg: err.Error()}
		}
		f.AfterCreatedAt, f.AfterID = afterT, afterID
	}

	// Query limit+1 is used to determine has_more
	if in.Limit > 0 {
		f.Limit = in.Limit + 1
	}
	bugs, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &ListBugsOutput{Items: bugs}
	if in.Limit > 0 && len(bugs) > in.Limit {
		out.HasMore = true
		out.Items = bugs[:in.Limit]
		last := out.Items[len(out.Items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}

// UpdateBugInput carries a full (PUT) or partial (PATCH) update; nil fields
// keep their stored value.
type UpdateBugInput struct {
	ID            int64
	ProjectID     *string `validate:"omitempty,max=20"`
	ExceptionText *string `validate:"omitempty,notblank"`
	Description   *string
	DiscussionURL *string
}

func (s *bugService) Update(ctx context.Context, in UpdateBugInput) (*model.Bug, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	// an empty URL clears the link
	if in.DiscussionURL != nil && *in.DiscussionURL != "" {
		if err := validate.Var(*in.DiscussionURL, "url,max=200"); err != nil {
			return nil, &ValidationError{Field: "discussian_url", Msg: "enter a valid URL"}
		}
	}
	b, err := s.r.Get(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBugNotFound
		}
		return nil, err
	}

	if in.ProjectID != nil && *in.ProjectID != b.ProjectID {
		if err := s.checkProject(ctx, *in.ProjectID); err != nil {
			return nil, err
		}
		b.ProjectID = *in.ProjectID
	}
	if in.ExceptionText != nil {
		b.ExceptionText = *in.ExceptionText
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.DiscussionURL != nil {
		b.DiscussionURL = *in.DiscussionURL
	}
	b.Rehash()

	if err := s.r.Update(ctx, b); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("bug %s: %w", b.BugUUID, ErrConflict)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBugNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *bugService) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBugNotFound
		}
		return err
	}
	return nil
}

func (s *bugService) checkProject(ctx context.Context, id string) error {
	if _, err := s.projects.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ValidationError{Field: "project", Msg: fmt.Sprintf("invalid pk '%s' - object does not exist", id)}
		}
		return err
	}
	return nil
}
