package service

import (
	"context"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type RecruitmentService interface {
	CreateCandidate(ctx context.Context, req *CreateCandidateRequest, actor Actor) (*model.Candidate, error)
	AdvanceCandidate(ctx context.Context, id uint, req *CandidateStatusRequest, actor Actor) (*model.Candidate, error)
}

type CreateCandidateRequest struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	OutletID uint   `json:"outlet_id" validate:"required"`
}

type CandidateStatusRequest struct {
	Status model.CandidateStatus `json:"status" validate:"required,enum"`
}

type recruitmentService struct {
	candidateRepo repository.CandidateRepository
	outletRepo    repository.OutletRepository
	notifier      *Notifier
}

func NewRecruitmentService(candidateRepo repository.CandidateRepository, outletRepo repository.OutletRepository, notifier *Notifier) RecruitmentService {
	return &recruitmentService{candidateRepo: candidateRepo, outletRepo: outletRepo, notifier: notifier}
}

func (s *recruitmentService) CreateCandidate(ctx context.Context, req *CreateCandidateRequest, actor Actor) (*model.Candidate, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	c := &model.Candidate{Name: req.Name, Position: req.Position, OutletID: req.OutletID, Status: model.CandidateApplied}
	if err := s.candidateRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableCandidates, event.OpInsert, c.ID, actor,
		fmt.Sprintf("registered candidate '%s' for %s", c.Name, c.Position))
	return c, nil
}

func (s *recruitmentService) AdvanceCandidate(ctx context.Context, id uint, req *CandidateStatusRequest, actor Actor) (*model.Candidate, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	c, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !c.Status.CanTransition(req.Status) {
		return nil, fmt.Errorf("%w: candidate #%d cannot move from %s to %s", ErrInvalidTransition, id, c.Status, req.Status)
	}

	from := c.Status
	c, err = s.candidateRepo.UpdateWhere(ctx, id, map[string]interface{}{"status": from}, model.CandidateUpdate{Status: &req.Status})
	if err != nil {
		return nil, mapConflict(err, fmt.Errorf("%w: candidate #%d is no longer %s", ErrInvalidTransition, id, from))
	}

	s.notifier.Changed(ctx, model.TableCandidates, event.OpUpdate, c.ID, actor,
		fmt.Sprintf("moved candidate '%s' to %s", c.Name, c.Status))
	return c, nil
}
