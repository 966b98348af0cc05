package upstream

import (
	"Revamp/pkg/log"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// newBreaker 连续失败 threshold 次后熔断 cooldown 时长，关闭状态下每个 window 清零计数
func newBreaker(name string, threshold int, window, cooldown time.Duration) *gobreaker.CircuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    window,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.L.Warn("upstream circuit state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
}
