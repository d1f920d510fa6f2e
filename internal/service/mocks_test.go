package service

import (
	"context"
	"sync"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/realtime"
	"resto-erp-ws/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockRepo[T any, U repository.Patch] struct {
	mock.Mock
	table model.Table
}

func newMockRepo[T any, U repository.Patch](table model.Table) *mockRepo[T, U] {
	return &mockRepo[T, U]{table: table}
}

func (m *mockRepo[T, U]) Table() model.Table { return m.table }

func (m *mockRepo[T, U]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]T)
	return rows, args.Error(1)
}

func (m *mockRepo[T, U]) FindByID(ctx context.Context, id uint) (*T, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *mockRepo[T, U]) FindBy(ctx context.Context, column string, value interface{}) (*T, error) {
	args := m.Called(ctx, column, value)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *mockRepo[T, U]) Create(ctx context.Context, row *T) error {
	return m.Called(ctx, row).Error(0)
}

func (m *mockRepo[T, U]) Update(ctx context.Context, id uint, patch U) (*T, error) {
	args := m.Called(ctx, id, patch)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *mockRepo[T, U]) UpdateWhere(ctx context.Context, id uint, expected map[string]interface{}, patch U) (*T, error) {
	args := m.Called(ctx, id, expected, patch)
	row, _ := args.Get(0).(*T)
	return row, args.Error(1)
}

func (m *mockRepo[T, U]) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type recorder struct {
	mu       sync.Mutex
	changes  []event.Change
	messages [][]byte
}

func (r *recorder) Emit(_ context.Context, c event.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
	return nil
}

func (r *recorder) Publish(msg []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func newRecorder() (*recorder, *Notifier) {
	r := &recorder{}
	return r, NewNotifier(r, r)
}

type staticSource struct {
	snap *realtime.Snapshot
}

func (s staticSource) Snapshot() *realtime.Snapshot { return s.snap }

var (
	anyCtx = mock.Anything
	ctx    = context.Background()
	admin  = Actor{ID: 1, Name: "Admin Pusat"}
)

func outletsWith(ids ...uint) *mockRepo[model.Outlet, model.OutletUpdate] {
	m := newMockRepo[model.Outlet, model.OutletUpdate](model.TableOutlets)
	for _, id := range ids {
		m.On("FindByID", anyCtx, id).Return(&model.Outlet{BaseModel: model.BaseModel{ID: id}, Name: "Outlet", Status: model.OutletOpen}, nil)
	}
	m.On("FindByID", anyCtx, mock.Anything).Return(nil, repository.ErrNotFound)
	return m
}

func ptr[T any](v T) *T { return &v }
