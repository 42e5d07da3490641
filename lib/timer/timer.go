package timer

import (
	"fmt"
	"strings"
	"time"
)

// MarkPoint is a named stage of a request
type MarkPoint struct {
	tag   string
	delta time.Duration
}

// XTimer records the stages of a single request
type XTimer struct {
	bornTime   time.Time
	latestTime time.Time
	points     []*MarkPoint
}

func NewXTimer() *XTimer {
	now := time.Now()
	return &XTimer{
		bornTime:   now,
		latestTime: now,
	}
}

// Mark closes the current stage under tag
func (t *XTimer) Mark(tag string) {
	now := time.Now()
	t.points = append(t.points, &MarkPoint{
		tag:   tag,
		delta: now.Sub(t.latestTime),
	})
	t.latestTime = now
}

// Total returns the time elapsed since the timer was created
func (t *XTimer) Total() time.Duration {
	return time.Since(t.bornTime)
}

// Print formats every stage and the total cost in milliseconds
func (t *XTimer) Print() string {
	msg := make([]string, 0, len(t.points)+1)
	for _, point := range t.points {
		msg = append(msg, fmt.Sprintf("%s:%.2fms", point.tag, toMs(point.delta)))
	}
	msg = append(msg, fmt.Sprintf("total:%.2fms", toMs(t.Total())))
	return strings.Join(msg, ",")
}

func toMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
