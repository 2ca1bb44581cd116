package calendar

import "time"

const (
	DefaultDayStripBatch     = 30
	DefaultDayStripThreshold = 7

	// DayStripLimit 日期条长度硬上限（一年），配置不限或更大时也不超过该值
	DayStripLimit = 366
)

// EffectiveDayStripMax 配置上限与 DayStripLimit 取较小者；configured <= 0 视为不限
func EffectiveDayStripMax(configured int) int {
	if configured <= 0 || configured > DayStripLimit {
		return DayStripLimit
	}
	return configured
}

// DayStrip 横向日期选择条
//
// 可见位置接近尾部时追加一批日期；头部从不裁剪，长度随滚动只增不减。
// Max > 0 时总长度不超过 Max。
type DayStrip struct {
	Batch     int
	Threshold int
	Max       int

	dates []time.Time
}

// NewDayStrip 从 seed 当天开始生成首批日期
func NewDayStrip(seed time.Time, batch, threshold, max int) *DayStrip {
	if batch <= 0 {
		batch = DefaultDayStripBatch
	}
	if threshold < 0 {
		threshold = DefaultDayStripThreshold
	}
	s := &DayStrip{Batch: batch, Threshold: threshold, Max: max}
	s.dates = make([]time.Time, 0, batch)
	s.appendFrom(StartOfDay(seed))
	return s
}

// Dates 当前全部日期（只读副本）
func (s *DayStrip) Dates() []time.Time {
	out := make([]time.Time, len(s.dates))
	copy(out, s.dates)
	return out
}

// Len 当前长度
func (s *DayStrip) Len() int {
	return len(s.dates)
}

// OnScroll 可见下标进入尾部阈值时追加一批，返回本次追加数量
func (s *DayStrip) OnScroll(visibleIndex int) int {
	if visibleIndex < len(s.dates)-s.Threshold-1 {
		return 0
	}
	last := s.dates[len(s.dates)-1]
	return s.appendFrom(last.AddDate(0, 0, 1))
}

func (s *DayStrip) appendFrom(from time.Time) int {
	n := s.Batch
	if s.Max > 0 && len(s.dates)+n > s.Max {
		n = s.Max - len(s.dates)
	}
	for i := 0; i < n; i++ {
		s.dates = append(s.dates, from.AddDate(0, 0, i))
	}
	if n < 0 {
		return 0
	}
	return n
}
