package handler

import (
	"context"

	"resto-erp-ws/internal/realtime"

	"github.com/gofiber/fiber/v2"
)

// Syncer is the part of the sync layer exposed over HTTP.
type Syncer interface {
	Snapshot() *realtime.Snapshot
	Refresh(ctx context.Context) *realtime.Snapshot
}

type SnapshotHandler struct {
	syncer Syncer
}

func NewSnapshotHandler(s Syncer) *SnapshotHandler {
	return &SnapshotHandler{syncer: s}
}

// GET /api/v1/snapshot
func (h *SnapshotHandler) GetSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.syncer.Snapshot())
}

// Refresh re-reads every table. Failures are reported in the snapshot's
// error field, so this always answers 200.
// POST /api/v1/snapshot/refresh
func (h *SnapshotHandler) Refresh(c *fiber.Ctx) error {
	return c.JSON(h.syncer.Refresh(c.UserContext()))
}
