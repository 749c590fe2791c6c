package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	OutboxStatusDead    = "dead"
)

// MaxOutboxRetries is the number of failed publishes after which an event is
// parked as dead and no longer polled.
const MaxOutboxRetries = 10

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent builds a pending event with a fresh id.
func NewOutboxEvent(topic, aggregateType, aggregateID, eventType, requestID string, payload []byte) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}
}

// LastAttempt reports whether one more failure parks the event.
func (e OutboxEvent) LastAttempt() bool {
	return e.RetryCount+1 >= MaxOutboxRetries
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

const (
	insertOutboxSQL = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`

	// Due rows first; a row never retried is due from its creation time.
	listDueOutboxSQL = `
SELECT id::text, COALESCE(request_id, ''), aggregate_type, aggregate_id, event_type,
       topic, payload, status, retry_count, COALESCE(next_retry_at, created_at) AS due_at
FROM outbox_events
WHERE status IN ($1, $2) AND COALESCE(next_retry_at, created_at) <= NOW()
ORDER BY due_at, created_at
LIMIT $3`

	markSentSQL = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

	// Backoff doubles from 5s and stops growing after 8 doublings (~21m).
	markFailedSQL = `
UPDATE outbox_events
SET retry_count = retry_count + 1,
    status = CASE WHEN retry_count + 1 >= $4 THEN $5 ELSE $2 END,
    error_message = LEFT($3, 500),
    next_retry_at = NOW() + POWER(2, LEAST(retry_count, 8)) * INTERVAL '5 seconds',
    updated_at = NOW()
WHERE id = $1`
)

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() execQuerier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutboxSQL,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event %s: %w", event.ID, err)
	}
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.conn().QueryContext(ctx, listDueOutboxSQL, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []OutboxEvent
	for rows.Next() {
		e, err := scanOutboxEvent(rows)
		if err != nil {
			return nil, err
		}
		due = append(due, e)
	}
	return due, rows.Err()
}

func scanOutboxEvent(rows *sql.Rows) (OutboxEvent, error) {
	var e OutboxEvent
	err := rows.Scan(
		&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
		&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
	)
	return e, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, markSentSQL, id, OutboxStatusSent)
	return err
}

// MarkFailed records a failed publish; the MaxOutboxRetries-th failure
// moves the event to dead.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, markFailedSQL, id, OutboxStatusFailed, reason, MaxOutboxRetries, OutboxStatusDead)
	return err
}

// ValidateOutboxEvent reports every missing or invalid field at once.
func ValidateOutboxEvent(event OutboxEvent) error {
	var errs []error
	if event.ID == "" {
		errs = append(errs, errors.New("outbox id is required"))
	}
	if event.Topic == "" {
		errs = append(errs, errors.New("outbox topic is required"))
	}
	if event.AggregateID == "" {
		errs = append(errs, errors.New("outbox aggregate id is required"))
	}
	if len(event.Payload) == 0 {
		errs = append(errs, errors.New("outbox payload is required"))
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
	default:
		errs = append(errs, fmt.Errorf("invalid outbox status: %q", event.Status))
	}
	return errors.Join(errs...)
}
