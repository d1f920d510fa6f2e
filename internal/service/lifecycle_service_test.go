package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurchaseOrder_CreateIsPending(t *testing.T) {
	suppliers := newMockRepo[model.Supplier, model.SupplierUpdate](model.TableSuppliers)
	suppliers.On("FindByID", anyCtx, uint(3)).Return(&model.Supplier{Name: "PT Sumber Pangan"}, nil)
	orders := newMockRepo[model.PurchaseOrder, model.PurchaseOrderUpdate](model.TablePurchaseOrders)
	orders.On("Create", anyCtx, mock.AnythingOfType("*model.PurchaseOrder")).Return(nil)
	_, n := newRecorder()

	po, err := NewPurchasingService(suppliers, orders, outletsWith(1), n).CreatePurchaseOrder(ctx, &CreatePurchaseOrderRequest{
		OutletID: 1, SupplierID: 3, Total: ptr(int64(1500000)),
	}, admin)

	require.NoError(t, err)
	assert.Equal(t, model.POPending, po.Status)
}

func TestPurchaseOrder_UnknownSupplier(t *testing.T) {
	suppliers := newMockRepo[model.Supplier, model.SupplierUpdate](model.TableSuppliers)
	suppliers.On("FindByID", anyCtx, uint(3)).Return(nil, repository.ErrNotFound)
	orders := newMockRepo[model.PurchaseOrder, model.PurchaseOrderUpdate](model.TablePurchaseOrders)
	_, n := newRecorder()

	_, err := NewPurchasingService(suppliers, orders, outletsWith(1), n).CreatePurchaseOrder(ctx, &CreatePurchaseOrderRequest{
		OutletID: 1, SupplierID: 3, Total: ptr(int64(10)),
	}, admin)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestPurchaseOrder_Decisions(t *testing.T) {
	orders := newMockRepo[model.PurchaseOrder, model.PurchaseOrderUpdate](model.TablePurchaseOrders)
	approved := model.POApproved
	orders.On("FindByID", anyCtx, uint(1)).Return(&model.PurchaseOrder{BaseModel: model.BaseModel{ID: 1}, Status: model.POPending}, nil)
	orders.On("FindByID", anyCtx, uint(2)).Return(&model.PurchaseOrder{BaseModel: model.BaseModel{ID: 2}, Status: model.POApproved}, nil)
	orders.On("UpdateWhere", anyCtx, uint(1), map[string]interface{}{"status": model.POPending}, model.PurchaseOrderUpdate{Status: &approved}).
		Return(&model.PurchaseOrder{BaseModel: model.BaseModel{ID: 1}, Status: model.POApproved}, nil)
	rec, n := newRecorder()
	svc := NewPurchasingService(newMockRepo[model.Supplier, model.SupplierUpdate](model.TableSuppliers), orders, outletsWith(), n)

	po, err := svc.ApprovePurchaseOrder(ctx, 1, admin)
	require.NoError(t, err)
	assert.Equal(t, model.POApproved, po.Status)

	_, err = svc.RejectPurchaseOrder(ctx, 2, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, rec.changes, 1)
	orders.AssertNumberOfCalls(t, "UpdateWhere", 1)
}

func TestDistribution_SameOutlet(t *testing.T) {
	repo := newMockRepo[model.Distribution, model.DistributionUpdate](model.TableDistributions)
	_, n := newRecorder()

	_, err := NewDistributionService(repo, outletsWith(1), n).CreateTransfer(ctx, &CreateTransferRequest{
		FromOutletID: 1, ToOutletID: 1, IngredientName: "Beras", Quantity: ptr(25.0),
	}, admin)
	assert.ErrorIs(t, err, ErrSameOutlet)
}

func TestDistribution_Deliver(t *testing.T) {
	repo := newMockRepo[model.Distribution, model.DistributionUpdate](model.TableDistributions)
	delivered := model.DistributionDelivered
	repo.On("FindByID", anyCtx, uint(1)).Return(&model.Distribution{Status: model.DistributionPending}, nil)
	repo.On("FindByID", anyCtx, uint(2)).Return(&model.Distribution{Status: model.DistributionDelivered}, nil)
	repo.On("UpdateWhere", anyCtx, uint(1), map[string]interface{}{"status": model.DistributionPending}, model.DistributionUpdate{Status: &delivered}).
		Return(&model.Distribution{BaseModel: model.BaseModel{ID: 1}, Status: delivered}, nil)
	_, n := newRecorder()
	svc := NewDistributionService(repo, outletsWith(), n)

	d, err := svc.DeliverTransfer(ctx, 1, admin)
	require.NoError(t, err)
	assert.Equal(t, model.DistributionDelivered, d.Status)

	_, err = svc.DeliverTransfer(ctx, 2, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestChecklist_ToggleFlips(t *testing.T) {
	repo := newMockRepo[model.DailyChecklist, model.DailyChecklistUpdate](model.TableDailyChecklists)
	repo.On("FindByID", anyCtx, uint(4)).Return(&model.DailyChecklist{Task: "Cek suhu freezer", Completed: false}, nil)
	done := true
	repo.On("UpdateWhere", anyCtx, uint(4), map[string]interface{}{"completed": false}, model.DailyChecklistUpdate{Completed: &done}).
		Return(&model.DailyChecklist{BaseModel: model.BaseModel{ID: 4}, Task: "Cek suhu freezer", Completed: true}, nil)
	_, n := newRecorder()
	svc := NewOperationsService(repo, newMockRepo[model.ShiftReport, model.ShiftReportUpdate](model.TableShiftReports), outletsWith(), n)

	item, err := svc.ToggleChecklist(ctx, 4, &ToggleChecklistRequest{}, admin)
	require.NoError(t, err)
	assert.True(t, item.Completed)
	repo.AssertExpectations(t)
}

func TestShift_CloseOnce(t *testing.T) {
	shifts := newMockRepo[model.ShiftReport, model.ShiftReportUpdate](model.TableShiftReports)
	closedAt := time.Date(2026, 5, 10, 22, 0, 0, 0, time.UTC)
	closing := int64(2750000)

	open := &model.ShiftReport{EmployeeName: "Budi", OpeningBalance: 500000}
	open.Derive()
	shut := &model.ShiftReport{EmployeeName: "Budi", ClosingBalance: &closing}
	shut.Derive()
	shifts.On("FindByID", anyCtx, uint(1)).Return(open, nil)
	shifts.On("FindByID", anyCtx, uint(2)).Return(shut, nil)
	shifts.On("UpdateWhere", anyCtx, uint(1), map[string]interface{}{"closing_balance": nil}, model.ShiftReportUpdate{ClosingBalance: &closing, ClosedAt: &closedAt}).
		Return(shut, nil)
	_, n := newRecorder()

	svc := NewOperationsService(newMockRepo[model.DailyChecklist, model.DailyChecklistUpdate](model.TableDailyChecklists), shifts, outletsWith(), n).(*operationsService)
	svc.now = func() time.Time { return closedAt }

	r, err := svc.CloseShift(ctx, 1, &CloseShiftRequest{ClosingBalance: &closing}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftClosed, r.Status)

	_, err = svc.CloseShift(ctx, 2, &CloseShiftRequest{ClosingBalance: &closing}, admin)
	assert.ErrorIs(t, err, ErrShiftClosed)
}

func TestShift_OpenDefaultsToNow(t *testing.T) {
	shifts := newMockRepo[model.ShiftReport, model.ShiftReportUpdate](model.TableShiftReports)
	shifts.On("Create", anyCtx, mock.AnythingOfType("*model.ShiftReport")).Return(nil)
	_, n := newRecorder()
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	svc := NewOperationsService(newMockRepo[model.DailyChecklist, model.DailyChecklistUpdate](model.TableDailyChecklists), shifts, outletsWith(2), n).(*operationsService)
	svc.now = func() time.Time { return now }

	r, err := svc.OpenShift(ctx, &OpenShiftRequest{OutletID: 2, EmployeeName: "Budi", OpeningBalance: ptr(int64(500000))}, admin)
	require.NoError(t, err)
	assert.Equal(t, now, r.OpenedAt)
}

func TestCandidate_Pipeline(t *testing.T) {
	repo := newMockRepo[model.Candidate, model.CandidateUpdate](model.TableCandidates)
	repo.On("FindByID", anyCtx, uint(1)).Return(&model.Candidate{Status: model.CandidateApplied}, nil)
	interview := model.CandidateInterview
	repo.On("UpdateWhere", anyCtx, uint(1), map[string]interface{}{"status": model.CandidateApplied}, model.CandidateUpdate{Status: &interview}).
		Return(&model.Candidate{Status: interview}, nil)
	_, n := newRecorder()
	svc := NewRecruitmentService(repo, outletsWith(), n)

	_, err := svc.AdvanceCandidate(ctx, 1, &CandidateStatusRequest{Status: model.CandidateHired}, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	c, err := svc.AdvanceCandidate(ctx, 1, &CandidateStatusRequest{Status: model.CandidateInterview}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.CandidateInterview, c.Status)
}

func TestPromotion_Window(t *testing.T) {
	repo := newMockRepo[model.Promotion, model.PromotionUpdate](model.TablePromotions)
	_, n := newRecorder()
	svc := NewPromotionService(repo, n)
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreatePromotion(ctx, &CreatePromotionRequest{
		Name: "Promo", DiscountType: model.DiscountFixed, DiscountValue: ptr(1000.0),
		StartDate: start, EndDate: start.AddDate(0, 0, -1),
	}, admin)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.CreatePromotion(ctx, &CreatePromotionRequest{
		Name: "Promo", DiscountType: model.DiscountPercentage, DiscountValue: ptr(150.0),
		StartDate: start, EndDate: start,
	}, admin)
	assert.ErrorIs(t, err, ErrPercentageRange)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAsset_StatusStampsMaintenance(t *testing.T) {
	repo := newMockRepo[model.Asset, model.AssetUpdate](model.TableAssets)
	now := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	broken := model.AssetBroken
	repo.On("Update", anyCtx, uint(6), model.AssetUpdate{Status: &broken, LastMaintenance: &now}).
		Return(&model.Asset{Name: "Kompor", Status: broken, LastMaintenance: now}, nil)
	_, n := newRecorder()

	svc := NewMaintenanceService(repo, outletsWith(), n).(*maintenanceService)
	svc.now = func() time.Time { return now }

	a, err := svc.SetAssetStatus(ctx, 6, &AssetStatusRequest{Status: broken}, admin)
	require.NoError(t, err)
	assert.Equal(t, now, a.LastMaintenance)
	repo.AssertExpectations(t)
}

func TestIngredient_UpdateStockDerivesStatus(t *testing.T) {
	repo := newMockRepo[model.Ingredient, model.IngredientUpdate](model.TableIngredients)
	stock := 4.0
	updated := &model.Ingredient{Name: "Minyak Goreng", Stock: stock, MinStock: 5, Unit: "liter"}
	updated.Derive()
	repo.On("Update", anyCtx, uint(3), model.IngredientUpdate{Stock: &stock}).Return(updated, nil)
	_, n := newRecorder()

	ing, err := NewIngredientService(repo, outletsWith(), n).UpdateStock(ctx, 3, &UpdateStockRequest{Stock: &stock}, admin)
	require.NoError(t, err)
	assert.Equal(t, model.IngredientCritical, ing.Status)

	_, err = NewIngredientService(repo, outletsWith(), n).UpdateStock(ctx, 3, &UpdateStockRequest{Stock: ptr(-1.0)}, admin)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEmployee_RequiresExistingOutlet(t *testing.T) {
	repo := newMockRepo[model.Employee, model.EmployeeUpdate](model.TableEmployees)
	_, n := newRecorder()

	_, err := NewEmployeeService(repo, outletsWith(1), n).CreateEmployee(ctx, &CreateEmployeeRequest{
		Name: "Rina", OutletID: 2, Position: "Barista", Salary: ptr(int64(4500000)),
	}, admin)
	assert.ErrorIs(t, err, ErrOutletNotFound)
}

// orderStore holds a single purchase order and applies conditional writes
// atomically. Every FindByID waits until all expected readers have read.
type orderStore struct {
	*mockRepo[model.PurchaseOrder, model.PurchaseOrderUpdate]
	mu    sync.Mutex
	row   model.PurchaseOrder
	reads sync.WaitGroup
}

func (s *orderStore) FindByID(_ context.Context, _ uint) (*model.PurchaseOrder, error) {
	s.mu.Lock()
	row := s.row
	s.mu.Unlock()
	s.reads.Done()
	s.reads.Wait()
	return &row, nil
}

func (s *orderStore) UpdateWhere(_ context.Context, _ uint, expected map[string]interface{}, patch model.PurchaseOrderUpdate) (*model.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if want, ok := expected["status"]; ok && want != s.row.Status {
		return nil, repository.ErrConflict
	}
	if patch.Status != nil {
		s.row.Status = *patch.Status
	}
	row := s.row
	return &row, nil
}

func TestPurchaseOrder_ConcurrentDecisionsOneWins(t *testing.T) {
	store := &orderStore{
		mockRepo: newMockRepo[model.PurchaseOrder, model.PurchaseOrderUpdate](model.TablePurchaseOrders),
		row:      model.PurchaseOrder{BaseModel: model.BaseModel{ID: 9}, Status: model.POPending},
	}
	store.reads.Add(2)
	rec, n := newRecorder()
	svc := NewPurchasingService(newMockRepo[model.Supplier, model.SupplierUpdate](model.TableSuppliers), store, outletsWith(), n)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.ApprovePurchaseOrder(ctx, 9, admin)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.RejectPurchaseOrder(ctx, 9, admin)
	}()
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidTransition)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Len(t, rec.changes, 1)
	assert.Len(t, rec.messages, 1)
	assert.NotEqual(t, model.POPending, store.row.Status)
}

func TestChecklist_ConcurrentToggleRejected(t *testing.T) {
	repo := newMockRepo[model.DailyChecklist, model.DailyChecklistUpdate](model.TableDailyChecklists)
	repo.On("FindByID", anyCtx, uint(4)).Return(&model.DailyChecklist{Task: "Cek suhu freezer"}, nil)
	repo.On("UpdateWhere", anyCtx, uint(4), mock.Anything, mock.Anything).Return(nil, repository.ErrConflict)
	rec, n := newRecorder()
	svc := NewOperationsService(repo, newMockRepo[model.ShiftReport, model.ShiftReportUpdate](model.TableShiftReports), outletsWith(), n)

	_, err := svc.ToggleChecklist(ctx, 4, &ToggleChecklistRequest{}, admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, rec.changes)
}

func TestShift_ConcurrentCloseRejected(t *testing.T) {
	shifts := newMockRepo[model.ShiftReport, model.ShiftReportUpdate](model.TableShiftReports)
	open := &model.ShiftReport{EmployeeName: "Budi"}
	open.Derive()
	shifts.On("FindByID", anyCtx, uint(1)).Return(open, nil)
	shifts.On("UpdateWhere", anyCtx, uint(1), map[string]interface{}{"closing_balance": nil}, mock.Anything).
		Return(nil, repository.ErrConflict)
	rec, n := newRecorder()
	svc := NewOperationsService(newMockRepo[model.DailyChecklist, model.DailyChecklistUpdate](model.TableDailyChecklists), shifts, outletsWith(), n)

	_, err := svc.CloseShift(ctx, 1, &CloseShiftRequest{ClosingBalance: ptr(int64(100))}, admin)
	assert.ErrorIs(t, err, ErrShiftClosed)
	assert.Empty(t, rec.changes)
}

func TestDistribution_DeletedWhileDelivering(t *testing.T) {
	repo := newMockRepo[model.Distribution, model.DistributionUpdate](model.TableDistributions)
	repo.On("FindByID", anyCtx, uint(5)).Return(&model.Distribution{Status: model.DistributionPending}, nil)
	repo.On("UpdateWhere", anyCtx, uint(5), mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	_, n := newRecorder()

	_, err := NewDistributionService(repo, outletsWith(), n).DeliverTransfer(ctx, 5, admin)
	assert.ErrorIs(t, err, ErrNotFound)
}
