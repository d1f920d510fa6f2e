package handler

import (
	"resto-erp-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecruitmentHandler struct {
	service service.RecruitmentService
}

func NewRecruitmentHandler(s service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{service: s}
}

// POST /api/v1/rekrutmen/candidates
func (h *RecruitmentHandler) CreateCandidate(c *fiber.Ctx) error {
	var req service.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cand, err := h.service.CreateCandidate(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Candidate registered", cand)
}

// PUT /api/v1/rekrutmen/candidates/:id/status
func (h *RecruitmentHandler) Advance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err)
	}
	var req service.CandidateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	cand, err := h.service.AdvanceCandidate(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Candidate updated", cand)
}
