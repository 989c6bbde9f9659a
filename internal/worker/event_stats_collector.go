package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/WojciechWarchol/java-gmp-rest/internal/domain/event"
	"github.com/WojciechWarchol/java-gmp-rest/internal/pkg/logger"
	"github.com/WojciechWarchol/java-gmp-rest/internal/pkg/metrics"
)

// EventCounter はイベントの総件数を数えられるインターフェース
type EventCounter interface {
	GetAllEvents(ctx context.Context, req event.PageRequest) (*event.Page, error)
}

// EventStatsCollector はイベント件数を定期的にメトリクスへ反映するワーカー
type EventStatsCollector struct {
	eventService EventCounter
	metrics      *metrics.Metrics
	interval     time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewEventStatsCollector は新しいコレクターを作成
func NewEventStatsCollector(es EventCounter, m *metrics.Metrics, interval time.Duration) *EventStatsCollector {
	return &EventStatsCollector{
		eventService: es,
		metrics:      m,
		interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start はコレクターを開始
func (c *EventStatsCollector) Start(ctx context.Context) {
	logger.Info("イベント統計コレクター開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("イベント統計コレクター停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("イベント統計コレクター停止（シグナル受信）")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

// Stop はコレクターを停止
func (c *EventStatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// collect は現在のイベント総数をゲージに反映
func (c *EventStatsCollector) collect(ctx context.Context) {
	log := logger.Get()

	// 件数メタデータだけ欲しいのでサイズ1で取得
	page, err := c.eventService.GetAllEvents(ctx, event.NewPageRequest(0, 1))
	if err != nil {
		log.Error("イベント件数の取得失敗", zap.Error(err))
		return
	}

	c.metrics.EventsTotal.Set(float64(page.TotalElements))
	log.Debug("イベント件数を更新", zap.Int64("total", page.TotalElements))
}
