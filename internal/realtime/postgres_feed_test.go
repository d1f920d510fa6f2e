package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestParseNotification(t *testing.T) {
	c, ok := parseNotification(&pgconn.Notification{
		Channel: "purchase_orders_changes",
		Payload: `{"table":"purchase_orders","op":"update","id":12}`,
	})
	assert.True(t, ok)
	assert.Equal(t, model.TablePurchaseOrders, c.Table)
	assert.Equal(t, event.OpUpdate, c.Op)
	assert.Equal(t, uint(12), c.RowID)
	assert.False(t, c.At.IsZero())
}

func TestParseNotification_FallsBackToChannel(t *testing.T) {
	c, ok := parseNotification(&pgconn.Notification{Channel: "cash_flow_changes", Payload: "not json"})
	assert.True(t, ok)
	assert.Equal(t, model.TableCashFlow, c.Table)
	assert.Equal(t, uint(0), c.RowID)
}

func TestParseNotification_UnknownTable(t *testing.T) {
	_, ok := parseNotification(&pgconn.Notification{Channel: "invoices_changes"})
	assert.False(t, ok)
}

func TestPostgresFeed_SubscribeDispatchesPerTable(t *testing.T) {
	feed := NewPostgresFeed("postgres://unused", model.AllTables())

	var got []event.Change
	sub, err := feed.Subscribe(context.Background(), model.TableSales, func(c event.Change) { got = append(got, c) })
	assert.NoError(t, err)

	feed.handlers.dispatch(event.Change{Table: model.TableSales, Op: event.OpInsert})
	feed.handlers.dispatch(event.Change{Table: model.TableAssets, Op: event.OpInsert})
	assert.Len(t, got, 1)

	assert.NoError(t, sub.Close())
	feed.handlers.dispatch(event.Change{Table: model.TableSales, Op: event.OpInsert})
	assert.Len(t, got, 1)
}

func TestPostgresFeed_OnListenIncludesFirstConnect(t *testing.T) {
	feed := NewPostgresFeed("postgres://unused", model.AllTables())
	feed.minBackoff = time.Millisecond
	feed.maxBackoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connects := 0
	feed.listenFn = func(ctx context.Context, onReady func()) error {
		connects++
		onReady()
		if connects == 2 {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}
		return errors.New("connection reset")
	}

	listens := 0
	feed.OnListen = func() { listens++ }

	done := make(chan struct{})
	go func() {
		feed.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed did not stop")
	}
	assert.Equal(t, 2, connects)
	assert.Equal(t, 2, listens)
}
