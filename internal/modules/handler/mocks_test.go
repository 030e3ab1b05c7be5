package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/modules/service"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Submit(ctx context.Context, in service.SubmitReportInput) (*service.ReportOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportOutput), args.Error(1)
}

func (m *MockReportService) List(ctx context.Context, limit, offset int) ([]repo.ReportRow, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.ReportRow), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context) ([]*model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectService) Rename(ctx context.Context, id string, name string) (*model.Project, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Upsert(ctx context.Context, in service.CreateProjectInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProjectService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBugService struct {
	mock.Mock
}

func (m *MockBugService) GetOrCreateBug(ctx context.Context, projectID, exceptionText string) (*model.Bug, bool, error) {
	args := m.Called(ctx, projectID, exceptionText)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.Bug), args.Bool(1), args.Error(2)
}

func (m *MockBugService) Create(ctx context.Context, in service.CreateBugInput) (*model.Bug, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bug), args.Error(1)
}

func (m *MockBugService) Get(ctx context.Context, id int64) (*service.BugDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BugDetail), args.Error(1)
}

func (m *MockBugService) List(ctx context.Context, in service.ListBugsInput) (*service.ListBugsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListBugsOutput), args.Error(1)
}

func (m *MockBugService) Update(ctx context.Context, in service.UpdateBugInput) (*model.Bug, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bug), args.Error(1)
}

func (m *MockBugService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockOccasionService struct {
	mock.Mock
}

func (m *MockOccasionService) RecordOccasion(ctx context.Context, in service.RecordOccasionInput) (*model.Occasion, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Occasion), args.Error(1)
}

func (m *MockOccasionService) Get(ctx context.Context, id int64) (*model.Occasion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Occasion), args.Error(1)
}

func (m *MockOccasionService) List(ctx context.Context, in service.ListOccasionsInput) (*service.ListOccasionsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListOccasionsOutput), args.Error(1)
}

func (m *MockOccasionService) Update(ctx context.Context, in service.UpdateOccasionInput) (*model.Occasion, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Occasion), args.Error(1)
}

func (m *MockOccasionService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func strPtr(s string) *string { return &s }
