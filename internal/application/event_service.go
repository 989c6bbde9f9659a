package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

// EventService はイベントCRUDのユースケースを提供する
type EventService struct {
	eventRepo event.Repository
}

func NewEventService(eventRepo event.Repository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEventInput はイベント作成の入力
// IDフィールドは持たない（採番は常にストアが行う）
type CreateEventInput struct {
	Title     string
	Place     string
	Speaker   string
	EventType string
	DateTime  time.Time
}

// CreateEvent は新しいイベントを保存し、採番済みのイベントを返す
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*event.Event, error) {
	e := event.NewEvent(input.Title, input.Place, input.Speaker, input.EventType, input.DateTime)
	saved, err := s.eventRepo.Save(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
	}
	return saved, nil
}

// GetEvent はIDからイベントを取得する
// 存在しない場合はevent.ErrEventNotFoundを返す
func (s *EventService) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// GetAllEvents はイベントをページング取得する
func (s *EventService) GetAllEvents(ctx context.Context, req event.PageRequest) (*event.Page, error) {
	return s.eventRepo.FindAll(ctx, req)
}

// GetAllEventsByTitle はタイトルにtitleを含むイベントをページング取得する
func (s *EventService) GetAllEventsByTitle(ctx context.Context, title string, req event.PageRequest) (*event.Page, error) {
	return s.eventRepo.FindByTitleContaining(ctx, title, req)
}

// UpdateEventInput はイベント更新の入力
type UpdateEventInput struct {
	Title     string
	Place     string
	Speaker   string
	EventType string
	DateTime  time.Time
}

// UpdateEvent は既存イベントの全フィールドをinputの値で置き換えて保存する
// 対象が存在しない場合はevent.ErrEventNotFoundを返し、ストアには何も書き込まない
func (s *EventService) UpdateEvent(ctx context.Context, id int64, input UpdateEventInput) (*event.Event, error) {
	found, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found.Overwrite(&event.Event{
		Title:     input.Title,
		Place:     input.Place,
		Speaker:   input.Speaker,
		EventType: input.EventType,
		DateTime:  input.DateTime,
	})

	saved, err := s.eventRepo.Save(ctx, found)
	if err != nil {
		return nil, fmt.Errorf("イベント更新に失敗しました: %w", err)
	}
	return saved, nil
}

// DeleteEvent は指定IDのイベントを削除する
// 存在しないIDの削除は成功として扱う（何度呼んでも結果は同じ）
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	exists, err := s.eventRepo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}
	if !exists {
		return nil
	}

	if err := s.eventRepo.DeleteByID(ctx, id); err != nil {
		// 存在確認後に別リクエストが先に削除したケースも成功扱い
		if errors.Is(err, event.ErrEventNotFound) {
			return nil
		}
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}
	return nil
}
