package favorites

import (
	"Revamp/pkg/log"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	msgAddFailed     = "Failed to add favorite"
	msgRemoveFailed  = "Failed to remove favorite"
	msgReorderFailed = "Failed to reorder"
	msgLoadFailed    = "Failed to load favorites"
)

// Engine 乐观更新引擎：先改本地 Store，再调用远端，失败时回滚。
// 各操作之间不排队，同时发生的写操作以最后一次写入为准。
type Engine struct {
	remote Remote
	store  *Store
	clock  func() time.Time

	mu      sync.Mutex
	cred    *Credential
	epoch   uint64
	fetched bool
	loading bool
	err     error
}

type Option func(*Engine)

// WithClock 替换时间来源
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithStore 使用已有的 Store
func WithStore(s *Store) Option {
	return func(e *Engine) { e.store = s }
}

func NewEngine(remote Remote, opts ...Option) *Engine {
	e := &Engine{
		remote: remote,
		store:  NewStore(),
		clock:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Store() *Store { return e.store }

// List 当前收藏列表
func (e *Engine) List() []Record { return e.store.List() }

// Find 区域是否已收藏
func (e *Engine) Find(zoneCode string) (Record, bool) { return e.store.Find(zoneCode) }

// Err 最近一次失败，对应列表级别的错误提示
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Add 收藏一个区域
func (e *Engine) Add(ctx context.Context, zoneCode string, zoneDescription *string) error {
	cred, epoch, ok := e.session()
	if !ok {
		return ErrNotAuthenticated
	}

	ts := e.clock()
	placeholder, err := e.store.appendPlaceholder(func(order int) Record {
		return Record{
			ID:              newTempID(),
			ZoneCode:        zoneCode,
			ZoneDescription: zoneDescription,
			DisplayOrder:    order,
			TimesUsed:       0,
			CreatedAt:       ts,
			UpdatedAt:       ts,
		}
	})
	if err != nil {
		return err
	}

	saved, err := e.remote.Create(ctx, cred, CreateRequest{
		ZoneCode:        zoneCode,
		ZoneDescription: zoneDescription,
	})
	if err != nil {
		e.store.remove(placeholder.ID)
		return e.fail(epoch, opFailed("add", err, msgAddFailed))
	}

	if !e.store.swap(placeholder.ID, saved) {
		log.L.Debug("favorite placeholder gone before confirmation",
			zap.String("zone_code", zoneCode), zap.String("id", saved.ID.String()))
	}
	return nil
}

// Remove 取消收藏
func (e *Engine) Remove(ctx context.Context, id ID) error {
	cred, epoch, ok := e.session()
	if !ok {
		return ErrNotAuthenticated
	}
	if id.IsTemporary() {
		if _, found := e.store.Get(id); !found {
			return ErrNotFound
		}
		return ErrPending
	}

	removed, found := e.store.remove(id)
	if !found {
		return ErrNotFound
	}

	if err := e.remote.Delete(ctx, cred, id); err != nil {
		if e.current(epoch) {
			e.store.restore(removed)
		}
		return e.fail(epoch, opFailed("remove", err, msgRemoveFailed))
	}
	return nil
}

// Reorder 按给定顺序重排，ordered 必须是当前记录的一个排列
func (e *Engine) Reorder(ctx context.Context, ordered []Record) error {
	cred, epoch, ok := e.session()
	if !ok {
		return ErrNotAuthenticated
	}

	ids := make([]ID, 0, len(ordered))
	for _, r := range ordered {
		if r.ID.IsTemporary() {
			return ErrPending
		}
		ids = append(ids, r.ID)
	}

	prev, err := e.store.reorder(ids)
	if err != nil {
		return err
	}

	items := make([]OrderItem, 0, len(ids))
	for i, id := range ids {
		items = append(items, OrderItem{ID: id, DisplayOrder: i})
	}
	if err := e.remote.Reorder(ctx, cred, items); err != nil {
		if e.current(epoch) {
			e.store.Replace(prev)
		}
		return e.fail(epoch, opFailed("reorder", err, msgReorderFailed))
	}
	return nil
}

// RecordUsage 记录一次使用。使用次数只是统计数据，失败时既不回滚也不报错。
func (e *Engine) RecordUsage(ctx context.Context, id ID) {
	cred, _, ok := e.session()
	if !ok || id.IsTemporary() {
		return
	}
	timesUsed, err := e.remote.Use(ctx, cred, id)
	if err != nil {
		log.L.Debug("record favorite usage", zap.String("id", id.String()), zap.Error(err))
		return
	}
	ts := e.clock()
	e.store.update(id, func(r *Record) {
		r.TimesUsed = timesUsed
		r.LastUsed = &ts
	})
}

// Toggle 已收藏则取消，否则收藏
func (e *Engine) Toggle(ctx context.Context, zoneCode string, zoneDescription *string) error {
	if existing, ok := e.store.Find(zoneCode); ok {
		return e.Remove(ctx, existing.ID)
	}
	return e.Add(ctx, zoneCode, zoneDescription)
}

func (e *Engine) session() (Credential, uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cred == nil {
		return Credential{}, e.epoch, false
	}
	return *e.cred, e.epoch, true
}

// current 会话没有在远端调用期间被切换
func (e *Engine) current(epoch uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cred != nil && e.epoch == epoch
}

func (e *Engine) fail(epoch uint64, err *OpError) error {
	e.mu.Lock()
	if e.epoch == epoch {
		e.err = err
	}
	e.mu.Unlock()
	log.L.Info("favorite mutation failed", zap.String("op", err.Op), zap.String("msg", err.Msg), zap.Error(err.Err))
	return err
}
