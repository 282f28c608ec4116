package events

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=events_test

const MaxPageSize = 100

type eventsRepo interface {
	Add(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context, params ListParams) ([]Event, error)
	Count(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo eventsRepo
}

func NewService(repo eventsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// Record stores the event. The Dispatcher publishes it later from the stored row.
func (s *Service) Record(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("type", event.Type.String()))

	if !event.Type.IsValid() {
		return pkg.InvalidInput(fmt.Sprintf("unknown event type [%s]", event.Type))
	}

	if _, err := s.repo.Add(ctx, event); err != nil {
		return fmt.Errorf("add event: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string, page, size int) (_ *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.events.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}
	if page < 0 {
		return nil, pkg.InvalidInput("page must not be negative")
	}
	if size <= 0 || size > MaxPageSize {
		return nil, pkg.InvalidInput(fmt.Sprintf("size must be between 1 and %d", MaxPageSize))
	}

	list, err := s.repo.List(ctx, ListParams{UserID: userID, Page: page, Size: size})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	total, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	return &Page{
		Events: list,
		Total:  total,
	}, nil
}
