package event

import "context"

// Repository はイベントの永続化操作のインターフェース
// 実装は infrastructure/postgres（sqlx）と infrastructure/memory にある
type Repository interface {
	// FindByID はIDからイベントを取得する
	// 存在しない場合はErrEventNotFoundを返す
	FindByID(ctx context.Context, id int64) (*Event, error)

	// FindAll はイベントをID順でページング取得する
	// 総件数もあわせて返す
	FindAll(ctx context.Context, req PageRequest) (*Page, error)

	// FindByTitleContaining はタイトルにtitleを含むイベントをID順でページング取得する
	// 大文字小文字の扱いはストア依存
	FindByTitleContaining(ctx context.Context, title string, req PageRequest) (*Page, error)

	// ExistsByID は指定IDのイベントが存在するかを返す
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save はイベントを保存する
	// ID未採番（0）なら新規作成してIDを採番し、採番済みなら全フィールドを上書き保存する
	// 保存後のイベントを返す
	Save(ctx context.Context, e *Event) (*Event, error)

	// DeleteByID は指定IDのイベントを削除する
	// 削除対象が存在しない場合はErrEventNotFoundを返す
	DeleteByID(ctx context.Context, id int64) error
}
