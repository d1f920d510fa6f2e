package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"resto-erp-ws/internal/access"
	"resto-erp-ws/internal/config"
	"resto-erp-ws/internal/middleware"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/realtime"
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOutletService struct{ mock.Mock }

func (m *mockOutletService) CreateOutlet(ctx context.Context, req *service.CreateOutletRequest, actor service.Actor) (*model.Outlet, error) {
	args := m.Called(req, actor)
	o, _ := args.Get(0).(*model.Outlet)
	return o, args.Error(1)
}

func (m *mockOutletService) UpdateOutlet(ctx context.Context, id uint, req *service.UpdateOutletRequest, actor service.Actor) (*model.Outlet, error) {
	args := m.Called(id, req, actor)
	o, _ := args.Get(0).(*model.Outlet)
	return o, args.Error(1)
}

func (m *mockOutletService) DeleteOutlet(ctx context.Context, id uint, actor service.Actor) error {
	return m.Called(id, actor).Error(0)
}

type mockPurchasingService struct {
	mock.Mock
	service.PurchasingService
}

func (m *mockPurchasingService) ApprovePurchaseOrder(ctx context.Context, id uint, actor service.Actor) (*model.PurchaseOrder, error) {
	args := m.Called(id)
	po, _ := args.Get(0).(*model.PurchaseOrder)
	return po, args.Error(1)
}

type stubSyncer struct {
	snap      *realtime.Snapshot
	refreshes int
}

func (s *stubSyncer) Snapshot() *realtime.Snapshot { return s.snap }

func (s *stubSyncer) Refresh(context.Context) *realtime.Snapshot {
	s.refreshes++
	return s.snap
}

// asUser mimics RequireAuth for tests.
func asUser(id uint, name string, role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocal, id)
		c.Locals(middleware.UserNameLocal, name)
		c.Locals(access.RoleLocal, role)
		return c.Next()
	}
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: name required", service.ErrInvalidInput), 400},
		{service.ErrSameOutlet, 400},
		{service.ErrOutletRequired, 400},
		{service.ErrNotFound, 404},
		{fmt.Errorf("%w: #3", service.ErrOutletNotFound), 422},
		{fmt.Errorf("%w: po #1 is Approved", service.ErrInvalidTransition), 409},
		{service.ErrEmailTaken, 409},
		{service.ErrShiftClosed, 409},
		{config.ErrNotConfigured, 503},
		{errors.New("connection refused"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, errorStatus(tt.err), tt.err.Error())
	}
}

func TestOutletHandler_Create(t *testing.T) {
	svc := &mockOutletService{}
	actor := service.Actor{ID: 1, Name: "Admin"}
	svc.On("CreateOutlet", &service.CreateOutletRequest{Name: "Outlet Bogor", Area: "Bogor", Address: "Jl. Pajajaran"}, actor).
		Return(&model.Outlet{BaseModel: model.BaseModel{ID: 4}, Name: "Outlet Bogor", Status: model.OutletOpen}, nil)

	app := fiber.New()
	h := NewOutletHandler(svc)
	app.Post("/outlets", asUser(1, "Admin", model.RoleAdminPusat), h.CreateOutlet)

	status, body := send(t, app, "POST", "/outlets", `{"name":"Outlet Bogor","area":"Bogor","address":"Jl. Pajajaran"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Outlet created", body["message"])
	assert.Equal(t, "Open", body["data"].(map[string]interface{})["status"])

	status, body = send(t, app, "POST", "/outlets", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid JSON", body["error"])
}

func TestOutletHandler_DeleteErrors(t *testing.T) {
	svc := &mockOutletService{}
	svc.On("DeleteOutlet", uint(9), mock.Anything).Return(service.ErrNotFound)

	app := fiber.New()
	h := NewOutletHandler(svc)
	app.Delete("/outlets/:id", h.DeleteOutlet)

	status, _ := send(t, app, "DELETE", "/outlets/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := send(t, app, "DELETE", "/outlets/9", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "record not found", body["error"])
}

func TestPurchasingHandler_ApproveConflict(t *testing.T) {
	svc := &mockPurchasingService{}
	svc.On("ApprovePurchaseOrder", uint(2)).Return(nil, fmt.Errorf("%w: purchase order #2 is Rejected", service.ErrInvalidTransition))

	app := fiber.New()
	app.Post("/orders/:id/approve", NewPurchasingHandler(svc).Approve)

	status, body := send(t, app, "POST", "/orders/2/approve", "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["error"], "Rejected")
}

func TestSnapshotHandler(t *testing.T) {
	syncer := &stubSyncer{snap: &realtime.Snapshot{IsConfigured: true, IsConnected: true, Version: 12}}
	h := NewSnapshotHandler(syncer)

	app := fiber.New()
	app.Get("/snapshot", h.GetSnapshot)
	app.Post("/snapshot/refresh", h.Refresh)

	status, body := send(t, app, "GET", "/snapshot", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(12), body["version"])
	assert.Contains(t, body, "purchase_orders")

	status, _ = send(t, app, "POST", "/snapshot/refresh", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, syncer.refreshes)
}

func TestNavigationHandler(t *testing.T) {
	h := NewNavigationHandler()
	app := fiber.New()
	app.Get("/check", asUser(5, "Sari", model.RoleKasir), h.Check)
	app.Get("/routes", asUser(5, "Sari", model.RoleKasir), h.Routes)
	app.Get("/anon/routes", h.Routes)

	status, body := send(t, app, "GET", "/check?path=/inventory/dashboard", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["allowed"])
	assert.Equal(t, "/pos", body["redirect_to"])
	assert.Equal(t, "/inventory", body["pattern"])

	status, _ = send(t, app, "GET", "/check", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = send(t, app, "GET", "/routes", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []interface{}{"/pos", "/keuangan", "/menu"}, body["routes"])

	status, _ = send(t, app, "GET", "/anon/routes", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRequireBackend(t *testing.T) {
	app := fiber.New()
	app.Get("/down", RequireBackend(config.ErrNotConfigured), func(c *fiber.Ctx) error { return c.SendString("unreachable") })
	app.Get("/up", RequireBackend(nil), func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	status, body := send(t, app, "GET", "/down", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["is_configured"])

	status, _ = send(t, app, "GET", "/up", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestOutletFilter_ScopedUserSeesOwnOutlet(t *testing.T) {
	app := fiber.New()
	app.Get("/f", func(c *fiber.Ctx) error {
		c.Locals(middleware.UserOutletLocal, uint(3))
		id, err := outletFilter(c)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"outlet_id": *id})
	})

	_, body := send(t, app, "GET", "/f?outlet_id=8", "")
	assert.Equal(t, float64(3), body["outlet_id"])
}

type mockFinanceService struct {
	mock.Mock
	service.FinanceService
}

func (m *mockFinanceService) Export(w io.Writer, outletID *uint) error {
	return m.Called(outletID).Error(0)
}

func TestFinanceExport_FailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	svc := &mockFinanceService{}
	svc.On("Export", (*uint)(nil)).Return(errors.New("disk full"))
	app := fiber.New()
	app.Get("/api/v1/keuangan/export", asUser(1, "Admin", model.RoleAdminPusat), NewFinanceHandler(svc).Export)

	status, body := send(t, app, "GET", "/api/v1/keuangan/export", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate Excel", body["error"])
	assert.Contains(t, logs.String(), "disk full")
}
