package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/stretchr/testify/mock"
)

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) UpdateName(ctx context.Context, id string, name string) (*model.Project, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Upsert(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBugRepo struct {
	mock.Mock
}

func (m *MockBugRepo) GetOrCreate(ctx context.Context, b *model.Bug) (*model.Bug, bool, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*model.Bug), args.Bool(1), args.Error(2)
}

func (m *MockBugRepo) Create(ctx context.Context, b *model.Bug) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBugRepo) Get(ctx context.Context, id int64) (*model.Bug, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bug), args.Error(1)
}

func (m *MockBugRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Bug, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bug), args.Error(1)
}

func (m *MockBugRepo) List(ctx context.Context, f repo.BugFilter) ([]*model.Bug, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Bug), args.Error(1)
}

func (m *MockBugRepo) Update(ctx context.Context, b *model.Bug) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBugRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBugRepo) CountOccasions(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockOccasionRepo struct {
	mock.Mock
}

func (m *MockOccasionRepo) Create(ctx context.Context, o *model.Occasion) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOccasionRepo) Get(ctx context.Context, id int64) (*model.Occasion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Occasion), args.Error(1)
}

func (m *MockOccasionRepo) List(ctx context.Context, f repo.OccasionFilter) ([]*model.Occasion, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Occasion), args.Error(1)
}

func (m *MockOccasionRepo) Update(ctx context.Context, o *model.Occasion) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOccasionRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) List(ctx context.Context, limit, offset int) ([]repo.ReportRow, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.ReportRow), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	return m.Called(ctx, exchangeName, routingKey, body).Error(0)
}

// passthroughTx runs fn directly and reports whether it was used.
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func strPtr(s string) *string { return &s }
