package service

import (
	"context"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req *CreateEmployeeRequest, actor Actor) (*model.Employee, error)
	SetEmployeeStatus(ctx context.Context, id uint, req *EmployeeStatusRequest, actor Actor) (*model.Employee, error)
}

type CreateEmployeeRequest struct {
	Name     string                 `json:"name" validate:"required"`
	OutletID uint                   `json:"outlet_id" validate:"required"`
	Position string                 `json:"position" validate:"required"`
	Salary   *int64                 `json:"salary" validate:"required,gte=0"`
	Status   model.EmploymentStatus `json:"status" validate:"omitempty,enum"`
}

type EmployeeStatusRequest struct {
	Status model.EmploymentStatus `json:"status" validate:"required,enum"`
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	outletRepo   repository.OutletRepository
	notifier     *Notifier
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, outletRepo repository.OutletRepository, notifier *Notifier) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, outletRepo: outletRepo, notifier: notifier}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest, actor Actor) (*model.Employee, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	emp := &model.Employee{
		Name:     req.Name,
		OutletID: req.OutletID,
		Position: req.Position,
		Salary:   *req.Salary,
		Status:   req.Status,
	}
	if emp.Status == "" {
		emp.Status = model.EmployeeActive
	}
	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableEmployees, event.OpInsert, emp.ID, actor,
		fmt.Sprintf("added employee '%s' as %s", emp.Name, emp.Position))
	return emp, nil
}

// SetEmployeeStatus toggles between Active and Inactive. Employees are never deleted.
func (s *employeeService) SetEmployeeStatus(ctx context.Context, id uint, req *EmployeeStatusRequest, actor Actor) (*model.Employee, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.Update(ctx, id, model.EmployeeUpdate{Status: &req.Status})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableEmployees, event.OpUpdate, emp.ID, actor,
		fmt.Sprintf("set employee '%s' to %s", emp.Name, emp.Status))
	return emp, nil
}
