package handler

import (
	"context"

	"github.com/WojciechWarchol/java-gmp-rest/internal/application"
	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

// EventServiceInterface はイベントサービスのインターフェース
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*event.Event, error)
	GetEvent(ctx context.Context, id int64) (*event.Event, error)
	GetAllEvents(ctx context.Context, req event.PageRequest) (*event.Page, error)
	GetAllEventsByTitle(ctx context.Context, title string, req event.PageRequest) (*event.Page, error)
	UpdateEvent(ctx context.Context, id int64, input application.UpdateEventInput) (*event.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
