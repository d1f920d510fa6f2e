package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var ErrEmailTaken = errors.New("email already registered")

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error)
	SetRole(ctx context.Context, id uint, req *SetRoleRequest, actor Actor) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Role     model.Role `json:"role" validate:"required,enum"`
	OutletID *uint      `json:"outlet_id"`
}

type SetRoleRequest struct {
	Role     model.Role `json:"role" validate:"required,enum"`
	OutletID *uint      `json:"outlet_id"`
}

type userService struct {
	userRepo   repository.UserRepository
	outletRepo repository.OutletRepository
	notifier   *Notifier
}

func NewUserService(userRepo repository.UserRepository, outletRepo repository.OutletRepository, notifier *Notifier) UserService {
	return &userService{userRepo: userRepo, outletRepo: outletRepo, notifier: notifier}
}

// scopeOutlet resolves the outlet a role is bound to. Outlet-scoped roles
// need an existing outlet; network-wide roles are never bound.
func (s *userService) scopeOutlet(ctx context.Context, role model.Role, outletID *uint) (*uint, error) {
	if !role.IsOutletScoped() {
		return nil, nil
	}
	if outletID == nil {
		return nil, fmt.Errorf("%w: %s", ErrOutletRequired, role)
	}
	if err := outletExists(ctx, s.outletRepo, *outletID); err != nil {
		return nil, err
	}
	return outletID, nil
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(req); err != nil {
		return nil, err
	}

	outletID, err := s.scopeOutlet(ctx, req.Role, req.OutletID)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindBy(ctx, "email", req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{Name: req.Name, Email: req.Email, Role: req.Role, OutletID: outletID}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableUsers, event.OpInsert, user.ID, actor,
		fmt.Sprintf("granted %s access to %s", user.Role, user.Email))
	return user, nil
}

func (s *userService) SetRole(ctx context.Context, id uint, req *SetRoleRequest, actor Actor) (*model.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	current, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	requested := req.OutletID
	if requested == nil {
		requested = current.OutletID
	}
	outletID, err := s.scopeOutlet(ctx, req.Role, requested)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, id, model.UserUpdate{Role: &req.Role, OutletID: &outletID})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableUsers, event.OpUpdate, user.ID, actor,
		fmt.Sprintf("changed role of %s to %s", user.Email, user.Role))
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindBy(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}
