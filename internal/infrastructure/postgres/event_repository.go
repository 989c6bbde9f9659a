package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

// eventRow はDBの行を表す構造体
type eventRow struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	Place     string     `db:"place"`
	Speaker   string     `db:"speaker"`
	EventType string     `db:"event_type"`
	DateTime  *time.Time `db:"date_time"`
}

// toEntity はeventRowをEventエンティティに変換する
func (r *eventRow) toEntity() *event.Event {
	var dateTime time.Time
	if r.DateTime != nil {
		dateTime = *r.DateTime
	}
	return &event.Event{
		ID:        r.ID,
		Title:     r.Title,
		Place:     r.Place,
		Speaker:   r.Speaker,
		EventType: r.EventType,
		DateTime:  dateTime,
	}
}

// nullableTime は未設定（ゼロ値）の日時をNULLに写す
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// EventRepository はイベントリポジトリのPostgreSQL実装
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository はEventRepositoryを作成する
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, place, speaker, event_type, date_time`

// FindByID はIDからイベントを取得する
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var row eventRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("イベント取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// FindAll はイベントをID順でページング取得する
func (r *EventRepository) FindAll(ctx context.Context, req event.PageRequest) (*event.Page, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM events`); err != nil {
		return nil, fmt.Errorf("イベント件数取得に失敗しました: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id LIMIT $1 OFFSET $2`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, req.Size, req.Offset()); err != nil {
		return nil, fmt.Errorf("イベント一覧取得に失敗しました: %w", err)
	}
	return toPage(rows, req, total), nil
}

// likeEscaper はLIKEパターンのメタ文字をエスケープする
// 検索語に%や_が含まれていてもワイルドカードではなくリテラルとして一致させる
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindByTitleContaining はタイトルにtitleを含むイベントをID順でページング取得する
// LIKEによる検索のため大文字小文字は区別される
func (r *EventRepository) FindByTitleContaining(ctx context.Context, title string, req event.PageRequest) (*event.Page, error) {
	pattern := likeEscaper.Replace(title)

	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE title LIKE '%' || $1 || '%' ESCAPE '\'`
	if err := r.db.GetContext(ctx, &total, countQuery, pattern); err != nil {
		return nil, fmt.Errorf("イベント件数取得に失敗しました: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE title LIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id LIMIT $2 OFFSET $3`

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, pattern, req.Size, req.Offset()); err != nil {
		return nil, fmt.Errorf("イベント検索に失敗しました: %w", err)
	}
	return toPage(rows, req, total), nil
}

// ExistsByID は指定IDのイベントが存在するかを返す
func (r *EventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("イベント存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// Save はイベントを保存する
// ID未採番（0）ならINSERTしてIDを採番し、採番済みなら全フィールドをUPDATEする
func (r *EventRepository) Save(ctx context.Context, e *event.Event) (*event.Event, error) {
	saved := *e

	if e.ID == 0 {
		query := `
			INSERT INTO events (title, place, speaker, event_type, date_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		err := r.db.QueryRowContext(ctx, query,
			e.Title, e.Place, e.Speaker, e.EventType, nullableTime(e.DateTime),
		).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("イベント作成に失敗しました: %w", err)
		}
		return &saved, nil
	}

	query := `
		UPDATE events
		SET title = $1, place = $2, speaker = $3, event_type = $4, date_time = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		e.Title, e.Place, e.Speaker, e.EventType, nullableTime(e.DateTime), e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("イベント更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("更新結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return nil, event.ErrEventNotFound
	}
	return &saved, nil
}

// DeleteByID は指定IDのイベントを削除する
func (r *EventRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("イベント削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

func toPage(rows []eventRow, req event.PageRequest, total int64) *event.Page {
	items := make([]*event.Event, len(rows))
	for i := range rows {
		items[i] = rows[i].toEntity()
	}
	return event.NewPage(items, req, total)
}

// インターフェースを満たしているか確認
var _ event.Repository = (*EventRepository)(nil)
