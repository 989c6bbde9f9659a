package event

import "time"

// Event はイベントエンティティを表す
// IDはストアが採番し、作成後に変わることはない
type Event struct {
	ID        int64
	Title     string
	Place     string
	Speaker   string
	EventType string
	DateTime  time.Time
}

// NewEvent は未採番（ID=0）の新しいイベントを作成する
func NewEvent(title, place, speaker, eventType string, dateTime time.Time) *Event {
	return &Event{
		Title:     title,
		Place:     place,
		Speaker:   speaker,
		EventType: eventType,
		DateTime:  dateTime,
	}
}

// Overwrite はID以外の全フィールドをsrcの値で上書きする
// 部分更新ではなく常に全フィールドの置き換えになる
func (e *Event) Overwrite(src *Event) {
	e.Title = src.Title
	e.Place = src.Place
	e.Speaker = src.Speaker
	e.EventType = src.EventType
	e.DateTime = src.DateTime
}
