package favorites

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated = errors.New("Not authenticated")
	ErrNotFound         = errors.New("Not found")
	// ErrNotPermutation 重排列表不是当前记录的一个排列
	ErrNotPermutation = fmt.Errorf("reorder must contain every favorite exactly once: %w", ErrNotFound)
	ErrAlreadyFavorite = errors.New("Zone already in favorites")
	// ErrPending 记录还在等待服务端确认
	ErrPending = errors.New("Favorite is still being saved")
)

// RemoteError 远端返回非 2xx
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("remote rejected request: status %d: %s", e.Status, e.Message)
}

// TransportError 网络或解析失败
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// OpError 一次变更失败后返回给视图层的错误，Msg 可直接展示
type OpError struct {
	Op  string
	Msg string
	Err error
}

func (e *OpError) Error() string { return e.Msg }

func (e *OpError) Unwrap() error { return e.Err }

type Kind int

const (
	KindNone Kind = iota
	KindNotAuthenticated
	KindNotFound
	KindConflict
	KindRemoteRejected
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRemoteRejected:
		return "remote_rejected"
	default:
		return "transport_failure"
	}
}

// KindOf 对错误分类
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var re *RemoteError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return KindNotAuthenticated
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyFavorite), errors.Is(err, ErrPending):
		return KindConflict
	case errors.As(err, &re):
		return KindRemoteRejected
	default:
		return KindTransportFailure
	}
}

// Message 返回可展示的错误信息
func Message(err error) string {
	if err == nil {
		return ""
	}
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Msg
	}
	return err.Error()
}

// opFailed 远端失败时优先使用服务端给出的信息，否则使用通用信息
func opFailed(op string, err error, fallback string) *OpError {
	msg := fallback
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		msg = re.Message
	}
	return &OpError{Op: op, Msg: msg, Err: err}
}
