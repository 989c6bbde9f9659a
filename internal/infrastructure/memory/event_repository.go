package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

// EventRepository はイベントリポジトリのインメモリ実装
// PostgreSQLなしで動かす開発用途と、常時実行するテストの土台に使う
type EventRepository struct {
	mu     sync.RWMutex
	events map[int64]*event.Event
	nextID int64
}

// NewEventRepository は空のEventRepositoryを作成する
func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[int64]*event.Event)}
}

// FindByID はIDからイベントを取得する
func (r *EventRepository) FindByID(_ context.Context, id int64) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return clone(e), nil
}

// FindAll はイベントをID順でページング取得する
func (r *EventRepository) FindAll(_ context.Context, req event.PageRequest) (*event.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return pageOf(r.sortedByID(), req), nil
}

// FindByTitleContaining はタイトルにtitleを含むイベントをID順でページング取得する
// 大文字小文字は区別する
func (r *EventRepository) FindByTitleContaining(_ context.Context, title string, req event.PageRequest) (*event.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*event.Event, 0)
	for _, e := range r.sortedByID() {
		if strings.Contains(e.Title, title) {
			matched = append(matched, e)
		}
	}
	return pageOf(matched, req), nil
}

// ExistsByID は指定IDのイベントが存在するかを返す
func (r *EventRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.events[id]
	return ok, nil
}

// Save はイベントを保存する
// ID未採番なら連番を採番して登録し、採番済みなら既存レコードを上書きする
func (r *EventRepository) Save(_ context.Context, e *event.Event) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(e)
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if _, ok := r.events[stored.ID]; !ok {
		return nil, event.ErrEventNotFound
	}

	r.events[stored.ID] = stored
	return clone(stored), nil
}

// DeleteByID は指定IDのイベントを削除する
func (r *EventRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return event.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// sortedByID は全イベントをID昇順で返す（呼び出し側でロック取得済みであること）
func (r *EventRepository) sortedByID() []*event.Event {
	all := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// pageOf はID順のスライスから要求ページを切り出す
func pageOf(all []*event.Event, req event.PageRequest) *event.Page {
	total := int64(len(all))

	start := req.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}

	items := make([]*event.Event, 0, end-start)
	for _, e := range all[start:end] {
		items = append(items, clone(e))
	}
	return event.NewPage(items, req, total)
}

// clone は外部からの書き換えがストアに波及しないようコピーを返す
func clone(e *event.Event) *event.Event {
	c := *e
	return &c
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
