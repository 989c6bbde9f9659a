package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/WojciechWarchol/java-gmp-rest/internal/application"
	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
}

func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest は作成・更新リクエストのボディ
// IDフィールドを持たないため、ボディにidが含まれていても無視される
type EventRequest struct {
	Title     string `json:"title" example:"Goカンファレンス2026"`
	Place     string `json:"place" example:"東京国際フォーラム"`
	Speaker   string `json:"speaker" example:"佐藤太郎"`
	EventType string `json:"eventType" example:"conference"`
	DateTime  string `json:"dateTime" example:"2026-09-01T10:00:00Z"`
}

// EventResponse は単一イベントのレスポンス
// 未設定の日時はキーを落とさずnullで返す
type EventResponse struct {
	ID        int64   `json:"id" example:"1"`
	Title     string  `json:"title" example:"Goカンファレンス2026"`
	Place     string  `json:"place" example:"東京国際フォーラム"`
	Speaker   string  `json:"speaker" example:"佐藤太郎"`
	EventType string  `json:"eventType" example:"conference"`
	DateTime  *string `json:"dateTime" example:"2026-09-01T10:00:00Z"`
	Links     Links   `json:"_links"`
}

// PageMetadata はページング結果の件数メタデータ
type PageMetadata struct {
	Size          int   `json:"size" example:"10"`
	Number        int   `json:"number" example:"0"`
	TotalElements int64 `json:"totalElements" example:"25"`
	TotalPages    int   `json:"totalPages" example:"3"`
}

// PagedEventsResponse はページング取得のレスポンス
type PagedEventsResponse struct {
	Events []*EventResponse `json:"events"`
	Page   PageMetadata     `json:"page"`
	Links  Links            `json:"_links"`
}

func toEventResponse(e *event.Event) *EventResponse {
	resp := &EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Place:     e.Place,
		Speaker:   e.Speaker,
		EventType: e.EventType,
		Links:     eventSelfLinks(e.ID),
	}
	if !e.DateTime.IsZero() {
		formatted := e.DateTime.Format(time.RFC3339)
		resp.DateTime = &formatted
	}
	return resp
}

func toPagedEventsResponse(p *event.Page, basePath string, extra url.Values) *PagedEventsResponse {
	events := make([]*EventResponse, len(p.Items))
	for i, e := range p.Items {
		events[i] = toEventResponse(e)
	}
	return &PagedEventsResponse{
		Events: events,
		Page: PageMetadata{
			Size:          p.Size,
			Number:        p.Number,
			TotalElements: p.TotalElements,
			TotalPages:    p.TotalPages(),
		},
		Links: pageLinks(basePath, p, extra),
	}
}

// pathID はパスパラメータからイベントIDを取り出す
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "IDの形式が不正です")
	}
	return id, nil
}

// pageRequest はクエリパラメータからPageRequestを組み立てる
// 未指定や数値でない値は既定値（ページ0、サイズ10）になる
func pageRequest(c echo.Context) event.PageRequest {
	number, err := strconv.Atoi(c.QueryParam("pageNumber"))
	if err != nil {
		number = event.DefaultPageNumber
	}
	size, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil {
		size = event.DefaultPageSize
	}
	return event.NewPageRequest(number, size)
}

// parseDateTime はリクエストの日時文字列をパースする
// 空文字は未設定（ゼロ値）として扱う
func parseDateTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func notFoundError(id int64) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("イベントが見つかりません: id=%d", id))
}

// GetByID godoc
// @Summary イベントを取得
// @Description 指定IDのイベントを取得します
// @Tags events
// @Produce json
// @Param id path int true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	e, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return notFoundError(id)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List godoc
// @Summary イベント一覧を取得
// @Description イベントをページング取得します
// @Tags events
// @Produce json
// @Param pageNumber query int false "ページ番号（0始まり）" default(0)
// @Param pageSize query int false "ページサイズ" default(10)
// @Success 200 {object} PagedEventsResponse
// @Router /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	req := pageRequest(c)

	page, err := h.eventService.GetAllEvents(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toPagedEventsResponse(page, eventsBasePath, nil))
}

// titleQuery はタイトル検索のクエリパラメータ
type titleQuery struct {
	Title string `query:"title" validate:"required"`
}

// ListByTitle godoc
// @Summary イベントをタイトルで検索
// @Description タイトルに検索語を含むイベントをページング取得します
// @Tags events
// @Produce json
// @Param title query string true "タイトルの検索語"
// @Param pageNumber query int false "ページ番号（0始まり）" default(0)
// @Param pageSize query int false "ページサイズ" default(10)
// @Success 200 {object} PagedEventsResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events/byTitle [get]
func (h *EventHandler) ListByTitle(c echo.Context) error {
	var q titleQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	req := pageRequest(c)

	page, err := h.eventService.GetAllEventsByTitle(c.Request().Context(), q.Title, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// 検索語は全ナビゲーションリンクに引き継ぐ
	extra := url.Values{"title": []string{q.Title}}
	return c.JSON(http.StatusOK, toPagedEventsResponse(page, eventsBasePath+"/byTitle", extra))
}

// Create godoc
// @Summary イベントを作成
// @Description 新しいイベントを作成します。ボディのidは無視され、IDはストアが採番します
// @Tags events
// @Accept json
// @Produce json
// @Param request body EventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日時の形式が不正です")
	}

	e, err := h.eventService.CreateEvent(c.Request().Context(), application.CreateEventInput{
		Title:     req.Title,
		Place:     req.Place,
		Speaker:   req.Speaker,
		EventType: req.EventType,
		DateTime:  dateTime,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderLocation, eventPath(e.ID))
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// Update godoc
// @Summary イベントを更新
// @Description 指定IDのイベントの全フィールドをボディの値で置き換えます
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "イベントID"
// @Param request body EventRequest true "イベント情報"
// @Success 200 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日時の形式が不正です")
	}

	e, err := h.eventService.UpdateEvent(c.Request().Context(), id, application.UpdateEventInput{
		Title:     req.Title,
		Place:     req.Place,
		Speaker:   req.Speaker,
		EventType: req.EventType,
		DateTime:  dateTime,
	})
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return notFoundError(id)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// Delete godoc
// @Summary イベントを削除
// @Description 指定IDのイベントを削除します。存在しないIDでも204を返します
// @Tags events
// @Param id path int true "イベントID"
// @Success 204
// @Failure 400 {object} api.ErrorResponse
// @Router /api/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.eventService.DeleteEvent(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
