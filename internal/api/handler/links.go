package handler

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

// Link は関連リソースを指すハイパーメディアリンク
type Link struct {
	Href string `json:"href"`
}

// Links はリンク名からリンクへのマップ
type Links map[string]Link

const eventsBasePath = "/api/events"

// eventSelfLinks は単一イベントのselfリンクを組み立てる
func eventSelfLinks(id int64) Links {
	return Links{"self": {Href: eventPath(id)}}
}

func eventPath(id int64) string {
	return fmt.Sprintf("%s/%d", eventsBasePath, id)
}

// pageURL は既知のルートパスに対するページングクエリ付きURLを組み立てる
// リフレクションによる逆引きはせず、明示的なテンプレーティングで済ませる
func pageURL(basePath string, number, size int, extra url.Values) string {
	q := url.Values{}
	for key, values := range extra {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("pageNumber", strconv.Itoa(number))
	q.Set("pageSize", strconv.Itoa(size))
	return basePath + "?" + q.Encode()
}

// pageLinks はページング結果のナビゲーションリンクを組み立てる
// firstとselfは常に付与し、prev/nextは該当ページが存在する場合のみ、
// lastは複数ページありかつ現在ページが最終ページでない場合のみ付与する
// extraに渡したクエリパラメータ（タイトル検索の検索語など）は全リンクに引き継がれる
func pageLinks(basePath string, p *event.Page, extra url.Values) Links {
	links := Links{
		"first": {Href: pageURL(basePath, 0, p.Size, extra)},
		"self":  {Href: pageURL(basePath, p.Number, p.Size, extra)},
	}
	if p.HasPrevious() {
		links["prev"] = Link{Href: pageURL(basePath, p.Number-1, p.Size, extra)}
	}
	if p.HasNext() {
		links["next"] = Link{Href: pageURL(basePath, p.Number+1, p.Size, extra)}
	}
	if p.TotalPages() > 1 && !p.IsLast() {
		links["last"] = Link{Href: pageURL(basePath, p.TotalPages()-1, p.Size, extra)}
	}
	return links
}
