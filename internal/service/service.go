package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
	"resto-erp-ws/pkg/validator"
)

// Error definitions
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOutletNotFound    = errors.New("outlet not found")
	ErrOutletRequired    = errors.New("role requires an outlet")
)

// Actor is the authenticated user performing a mutation.
type Actor struct {
	ID   uint
	Name string
}

// Broadcaster pushes activity messages to connected clients.
type Broadcaster interface {
	Publish(message []byte)
}

// Notifier announces committed mutations: a change event for the sync
// layer and an activity message for connected clients.
type Notifier struct {
	emitter event.Emitter
	hub     Broadcaster
}

func NewNotifier(emitter event.Emitter, hub Broadcaster) *Notifier {
	if emitter == nil {
		emitter = event.Nop
	}
	return &Notifier{emitter: emitter, hub: hub}
}

type activity struct {
	Type    string      `json:"type"`
	Table   model.Table `json:"table"`
	Op      event.Op    `json:"op"`
	ID      uint        `json:"id"`
	User    activityBy  `json:"user"`
	Message string      `json:"message"`
}

type activityBy struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Changed never fails the caller: the row is already committed, and the
// next refresh picks it up even when notification delivery fails.
func (n *Notifier) Changed(ctx context.Context, table model.Table, op event.Op, id uint, actor Actor, message string) {
	if n == nil {
		return
	}
	c := event.Change{Table: table, Op: op, RowID: id, At: time.Now()}
	if err := n.emitter.Emit(ctx, c); err != nil {
		log.Printf("service: change %s %s #%d not delivered: %v", op, table, id, err)
	}

	if n.hub == nil {
		return
	}
	msg, err := json.Marshal(activity{
		Type:    "activity",
		Table:   table,
		Op:      op,
		ID:      id,
		User:    activityBy{ID: actor.ID, Name: actor.Name},
		Message: fmt.Sprintf("%s %s", actor.Name, message),
	})
	if err != nil {
		return
	}
	n.hub.Publish(msg)
}

func validate(req interface{}) error {
	if err := validator.Check(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// mapConflict reports a row that changed between read and conditional write
// as the given lifecycle error.
func mapConflict(err error, conflict error) error {
	if errors.Is(err, repository.ErrConflict) {
		return conflict
	}
	return mapNotFound(err)
}

// outletExists checks a foreign key to outlets.
func outletExists(ctx context.Context, outlets repository.OutletRepository, id uint) error {
	if _, err := outlets.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: #%d", ErrOutletNotFound, id)
		}
		return err
	}
	return nil
}
