package event

import (
	"context"
	"time"

	"resto-erp-ws/internal/model"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Change describes one row mutation on a synchronized table.
type Change struct {
	Table model.Table `json:"table"`
	Op    Op          `json:"op"`
	RowID uint        `json:"id"`
	At    time.Time   `json:"at"`
}

// Emitter publishes changes made by this process.
type Emitter interface {
	Emit(ctx context.Context, c Change) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, c Change) error

func (f EmitterFunc) Emit(ctx context.Context, c Change) error { return f(ctx, c) }

// Nop discards every change.
var Nop Emitter = EmitterFunc(func(context.Context, Change) error { return nil })

type multi []Emitter

// Multi fans a change out to every emitter; all are attempted and the first
// error is returned.
func Multi(emitters ...Emitter) Emitter {
	out := multi{}
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (m multi) Emit(ctx context.Context, c Change) error {
	var first error
	for _, e := range m {
		if err := e.Emit(ctx, c); err != nil && first == nil {
			first = err
		}
	}
	return first
}
