package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/catena/pkg/api"
)

// SQLiteStore stores chain events in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements the interface.
var _ api.EventStore = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS chain_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			execution_id TEXT NOT NULL,
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			node TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_chain_events_execution_id ON chain_events(execution_id, id);
	`)
	return err
}

func (s *SQLiteStore) AppendEvent(ctx context.Context, ev api.ChainEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chain_events (execution_id, at, type, node, detail)
		VALUES (?, ?, ?, ?, ?)`,
		ev.ExecutionID,
		at.UnixNano(),
		string(ev.Type),
		ev.Node,
		ev.Detail,
	)
	return err
}

func (s *SQLiteStore) ListEvents(ctx context.Context, executionID string) ([]api.ChainEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT execution_id, at, type, node, detail
		FROM chain_events
		WHERE execution_id = ?
		ORDER BY id ASC`, executionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.ChainEvent
	for rows.Next() {
		var (
			id     string
			atN    int64
			typ    string
			node   string
			detail string
		)
		if err := rows.Scan(&id, &atN, &typ, &node, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.ChainEvent{
			ExecutionID: id,
			At:          time.Unix(0, atN),
			Type:        api.EventType(typ),
			Node:        node,
			Detail:      detail,
		})
	}
	return out, rows.Err()
}
