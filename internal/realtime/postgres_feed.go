package realtime

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresFeed receives table notifications over a dedicated LISTEN
// connection. One channel per table is listened on for the whole run.
type PostgresFeed struct {
	dsn      string
	tables   []model.Table
	handlers handlerSet
	id       string

	// OnListen runs every time LISTEN is in place, the first time included.
	// Notifications sent before that are never delivered.
	OnListen func()

	listenFn func(ctx context.Context, onReady func()) error

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewPostgresFeed(dsn string, tables []model.Table) *PostgresFeed {
	f := &PostgresFeed{
		dsn:        dsn,
		tables:     tables,
		id:         uuid.NewString(),
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
	f.listenFn = f.listen
	return f
}

func (f *PostgresFeed) Subscribe(_ context.Context, table model.Table, handler func(event.Change)) (Subscription, error) {
	return f.handlers.add(table, handler), nil
}

// Run listens until ctx is cancelled, reconnecting with exponential backoff.
func (f *PostgresFeed) Run(ctx context.Context) {
	backoff := f.minBackoff
	for {
		err := f.listenFn(ctx, func() {
			backoff = f.minBackoff
			if f.OnListen != nil {
				f.OnListen()
			}
		})
		if ctx.Err() != nil {
			return
		}
		log.Printf("realtime[%s]: listener stopped: %v, retrying in %s", f.id[:8], err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > f.maxBackoff {
			backoff = f.maxBackoff
		}
	}
}

func (f *PostgresFeed) listen(ctx context.Context, onReady func()) error {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	for _, t := range f.tables {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{t.Channel()}.Sanitize()); err != nil {
			return err
		}
	}
	log.Printf("realtime[%s]: listening on %d channels", f.id[:8], len(f.tables))
	onReady()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		c, ok := parseNotification(n)
		if !ok {
			log.Printf("realtime: ignoring notification on %q", n.Channel)
			continue
		}
		f.handlers.dispatch(c)
	}
}

type notificationPayload struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    uint   `json:"id"`
}

// parseNotification decodes a trigger payload. The table falls back to the
// channel name when the payload is empty or malformed.
func parseNotification(n *pgconn.Notification) (event.Change, bool) {
	c := event.Change{At: time.Now()}

	var p notificationPayload
	if n.Payload != "" && json.Unmarshal([]byte(n.Payload), &p) == nil {
		c.Op = event.Op(strings.ToUpper(p.Op))
		c.RowID = p.ID
	}

	name := p.Table
	if name == "" {
		name = strings.TrimSuffix(n.Channel, "_changes")
	}
	table, err := model.ParseTable(name)
	if err != nil {
		return event.Change{}, false
	}
	c.Table = table
	return c, true
}
