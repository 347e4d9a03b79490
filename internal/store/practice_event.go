package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO practice_events (
		sequence, created_at, session_id, action, section, topic, score, total
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.Action, data.Section,
		data.Topic, data.Score, data.Total,
	)
	if err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPracticeEvents(ctx context.Context, sessionID string) ([]PracticeEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, created_at, session_id, action, section, topic, score, total
		FROM practice_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}
	defer rows.Close()

	var out []PracticeEvent
	for rows.Next() {
		var e PracticeEvent
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Sequence, &createdAt, &e.SessionID, &e.Action,
			&e.Section, &e.Topic, &e.Score, &e.Total); err != nil {
			return nil, fmt.Errorf("scan practice event: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
