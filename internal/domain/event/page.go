package event

// ページングの既定値と上限
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// PageRequest は取得するページの位置（0始まり）とサイズを表す
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest は補正済みのPageRequestを作成する
// 負のページ番号は0に、0以下のサイズはDefaultPageSizeに、
// MaxPageSizeを超えるサイズはMaxPageSizeに補正される
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = DefaultPageNumber
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Number: number, Size: size}
}

// Offset は先頭から読み飛ばす件数を返す
func (r PageRequest) Offset() int {
	return r.Number * r.Size
}

// Page はページング取得した結果と件数メタデータを表す
type Page struct {
	Items         []*Event
	Number        int
	Size          int
	TotalElements int64
}

// NewPage は取得結果と総件数からPageを作成する
func NewPage(items []*Event, req PageRequest, total int64) *Page {
	return &Page{
		Items:         items,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages は総ページ数を返す
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// HasPrevious は前のページが存在するかを返す
func (p *Page) HasPrevious() bool {
	return p.Number > 0
}

// HasNext は次のページが存在するかを返す
func (p *Page) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

// IsFirst は現在のページが先頭ページかを返す
func (p *Page) IsFirst() bool {
	return !p.HasPrevious()
}

// IsLast は現在のページが最終ページかを返す
// 結果が0件の場合も最終ページとみなす
func (p *Page) IsLast() bool {
	return !p.HasNext()
}
