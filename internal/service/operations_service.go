package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var ErrShiftClosed = errors.New("shift already closed")

type OperationsService interface {
	CreateChecklist(ctx context.Context, req *CreateChecklistRequest, actor Actor) (*model.DailyChecklist, error)
	ToggleChecklist(ctx context.Context, id uint, req *ToggleChecklistRequest, actor Actor) (*model.DailyChecklist, error)
	OpenShift(ctx context.Context, req *OpenShiftRequest, actor Actor) (*model.ShiftReport, error)
	CloseShift(ctx context.Context, id uint, req *CloseShiftRequest, actor Actor) (*model.ShiftReport, error)
}

type CreateChecklistRequest struct {
	OutletID uint   `json:"outlet_id" validate:"required"`
	Task     string `json:"task" validate:"required"`
	Notes    string `json:"notes"`
}

type ToggleChecklistRequest struct {
	Notes *string `json:"notes"`
}

type OpenShiftRequest struct {
	OutletID       uint       `json:"outlet_id" validate:"required"`
	EmployeeName   string     `json:"employee_name" validate:"required"`
	OpeningBalance *int64     `json:"opening_balance" validate:"required,gte=0"`
	OpenedAt       *time.Time `json:"opened_at"`
	Notes          string     `json:"notes"`
}

type CloseShiftRequest struct {
	ClosingBalance *int64  `json:"closing_balance" validate:"required,gte=0"`
	Notes          *string `json:"notes"`
}

type operationsService struct {
	checklistRepo repository.DailyChecklistRepository
	shiftRepo     repository.ShiftReportRepository
	outletRepo    repository.OutletRepository
	notifier      *Notifier
	now           func() time.Time
}

func NewOperationsService(checklistRepo repository.DailyChecklistRepository, shiftRepo repository.ShiftReportRepository, outletRepo repository.OutletRepository, notifier *Notifier) OperationsService {
	return &operationsService{
		checklistRepo: checklistRepo,
		shiftRepo:     shiftRepo,
		outletRepo:    outletRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *operationsService) CreateChecklist(ctx context.Context, req *CreateChecklistRequest, actor Actor) (*model.DailyChecklist, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	item := &model.DailyChecklist{OutletID: req.OutletID, Task: req.Task, Notes: req.Notes}
	if err := s.checklistRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableDailyChecklists, event.OpInsert, item.ID, actor,
		fmt.Sprintf("added checklist task '%s'", item.Task))
	return item, nil
}

// ToggleChecklist flips the completed flag, optionally replacing the notes.
func (s *operationsService) ToggleChecklist(ctx context.Context, id uint, req *ToggleChecklistRequest, actor Actor) (*model.DailyChecklist, error) {
	item, err := s.checklistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	completed := !item.Completed
	item, err = s.checklistRepo.UpdateWhere(ctx, id, map[string]interface{}{"completed": item.Completed},
		model.DailyChecklistUpdate{Completed: &completed, Notes: req.Notes})
	if err != nil {
		return nil, mapConflict(err, fmt.Errorf("%w: task #%d was toggled concurrently", ErrInvalidTransition, id))
	}

	verb := "reopened"
	if item.Completed {
		verb = "completed"
	}
	s.notifier.Changed(ctx, model.TableDailyChecklists, event.OpUpdate, item.ID, actor,
		fmt.Sprintf("%s task '%s'", verb, item.Task))
	return item, nil
}

func (s *operationsService) OpenShift(ctx context.Context, req *OpenShiftRequest, actor Actor) (*model.ShiftReport, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	openedAt := s.now()
	if req.OpenedAt != nil {
		openedAt = *req.OpenedAt
	}
	shift := &model.ShiftReport{
		OutletID:       req.OutletID,
		EmployeeName:   req.EmployeeName,
		OpeningBalance: *req.OpeningBalance,
		Notes:          req.Notes,
		OpenedAt:       openedAt,
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableShiftReports, event.OpInsert, shift.ID, actor,
		fmt.Sprintf("opened shift for %s with Rp%d", shift.EmployeeName, shift.OpeningBalance))
	return shift, nil
}

// CloseShift records the closing balance once; a closed shift cannot be reclosed.
func (s *operationsService) CloseShift(ctx context.Context, id uint, req *CloseShiftRequest, actor Actor) (*model.ShiftReport, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if shift.Status == model.ShiftClosed {
		return nil, fmt.Errorf("%w: #%d", ErrShiftClosed, id)
	}

	closedAt := s.now()
	shift, err = s.shiftRepo.UpdateWhere(ctx, id, map[string]interface{}{"closing_balance": nil}, model.ShiftReportUpdate{
		ClosingBalance: req.ClosingBalance,
		ClosedAt:       &closedAt,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, mapConflict(err, fmt.Errorf("%w: #%d", ErrShiftClosed, id))
	}

	s.notifier.Changed(ctx, model.TableShiftReports, event.OpUpdate, shift.ID, actor,
		fmt.Sprintf("closed shift of %s with Rp%d", shift.EmployeeName, *shift.ClosingBalance))
	return shift, nil
}
