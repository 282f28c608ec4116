package events

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
)

type ListParams struct {
	UserID string
	Type   *Type
	Page   int
	Size   int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	err = r.db.QueryRow(ctx, `
		INSERT INTO activity_event (user_id, type, data, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`,
		event.UserID, event.Type, event.Data, event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("page", params.Page),
		attribute.Int("size", params.Size),
	)

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, data, timestamp
		FROM activity_event
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		ORDER BY timestamp DESC, id DESC
		LIMIT $3 OFFSET $4;
	`,
		params.UserID, params.Type,
		params.Size, params.Size*params.Page,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Event, error) {
		var e Event
		err := row.Scan(&e.ID, &e.UserID, &e.Type, &e.Data, &e.Timestamp)
		return e, err
	})
}

func (r *Repo) Count(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_event WHERE user_id = $1;`, userID).Scan(&count)
	return count, err
}

// Unpublished returns the oldest events the dispatcher has not delivered yet.
func (r *Repo) Unpublished(ctx context.Context, limit int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.unpublished")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, data, timestamp
		FROM activity_event
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Event, error) {
		var e Event
		err := row.Scan(&e.ID, &e.UserID, &e.Type, &e.Data, &e.Timestamp)
		return e, err
	})
}

func (r *Repo) MarkPublished(ctx context.Context, ids []int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.events.mark-published")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("count", len(ids)))

	_, err = r.db.Exec(ctx, `UPDATE activity_event SET published_at = now() WHERE id = ANY($1);`, ids)
	return err
}
