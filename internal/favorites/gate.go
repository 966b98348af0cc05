package favorites

import (
	"Revamp/pkg/log"
	"context"

	"go.uber.org/zap"
)

// SignIn 会话从未登录切换到已登录。每个会话只拉取一次列表，失败不自动重试。
func (e *Engine) SignIn(ctx context.Context, cred Credential) error {
	if !cred.Valid() {
		return ErrNotAuthenticated
	}
	e.mu.Lock()
	e.cred = &cred
	if e.fetched {
		e.mu.Unlock()
		return nil
	}
	e.fetched = true
	e.mu.Unlock()

	return e.Refresh(ctx)
}

// SignOut 清空列表并重置拉取标记，下次登录会重新拉取
func (e *Engine) SignOut() {
	e.mu.Lock()
	e.cred = nil
	e.fetched = false
	e.loading = false
	e.err = nil
	e.epoch++
	e.mu.Unlock()

	e.store.Clear()
}

// Refresh 从远端重新拉取完整列表
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.cred == nil {
		e.mu.Unlock()
		return ErrNotAuthenticated
	}
	cred, epoch := *e.cred, e.epoch
	e.loading = true
	e.err = nil
	e.mu.Unlock()

	records, err := e.remote.List(ctx, cred)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch != epoch {
		return nil
	}
	e.loading = false
	if err != nil {
		oe := opFailed("list", err, msgLoadFailed)
		e.err = oe
		log.L.Warn("load favorites", zap.Error(err))
		return oe
	}
	e.store.Load(records)
	return nil
}
