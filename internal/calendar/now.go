package calendar

import (
	"context"
	"time"
)

// DefaultRefreshInterval 当前时间指示线刷新间隔
const DefaultRefreshInterval = 60 * time.Second

// NowIndicator 当前时间指示线
type NowIndicator struct {
	At     time.Time `json:"at"`
	Offset float64   `json:"offset"`
}

// ComputeNowIndicator 与事件使用同一纵向规则计算当前时刻的位置
func ComputeNowIndicator(now time.Time, rowHeight float64) NowIndicator {
	return NowIndicator{At: now, Offset: VerticalOffset(now, rowHeight)}
}

// NowTicker 按固定间隔重新计算指示线
type NowTicker struct {
	Interval  time.Duration
	RowHeight float64
	Clock     func() time.Time
}

// Run 立即推送一次，之后每个间隔推送一次，直到 ctx 结束
func (t *NowTicker) Run(ctx context.Context, fn func(NowIndicator)) error {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	clock := t.Clock
	if clock == nil {
		clock = time.Now
	}

	fn(ComputeNowIndicator(clock(), t.RowHeight))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(ComputeNowIndicator(clock(), t.RowHeight))
		}
	}
}
