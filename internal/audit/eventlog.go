// Package audit is an append-only log of notable domain events, kept in
// the same database as the entities it describes.
package audit

import (
	"context"
	"database/sql"
	"time"
)

const TypeResultCreated = "ResultCreated"

type Event struct {
	Type     string
	Key      string
	DataJSON string
}

type Log struct{ db *sql.DB }

func NewLog(db *sql.DB) *Log { return &Log{db: db} }

// Append writes one event. Callers treat failures as best-effort: a lost
// audit row never fails the request that produced it.
func (l *Log) Append(ctx context.Context, e Event) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
