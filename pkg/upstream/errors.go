package upstream

import (
	"errors"
	"fmt"
)

var (
	ErrCircuitOpen = errors.New("upstream circuit open")
	ErrEmpty       = errors.New("empty response from upstream")
)

// BlockedError 上游返回非 200，通常是被 WAF 拦截
type BlockedError struct {
	Status      int
	ContentType string
	Preview     string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("upstream blocked or failed: status %d", e.Status)
}

// InvalidError 返回了非 JSON 或结构不符
type InvalidError struct {
	Reason      string
	ContentType string
	Preview     string
}

func (e *InvalidError) Error() string {
	return "invalid upstream response: " + e.Reason
}

// Status 上游 http 状态码，非 BlockedError 时返回 0
func Status(err error) int {
	var be *BlockedError
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
