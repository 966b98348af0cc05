package favorites

import (
	"sort"
	"sync"
)

// Snapshot Store 某一时刻的只读副本
type Snapshot struct {
	records []Record
}

// Records 返回快照内容的拷贝
func (s Snapshot) Records() []Record {
	return cloneAll(s.records)
}

func (s Snapshot) Len() int { return len(s.records) }

// Store 当前会话的收藏列表，只在内存中，不访问网络。
// 写操作只由 Engine 调用。
type Store struct {
	mu      sync.RWMutex
	records []Record
}

func NewStore() *Store {
	return &Store{records: make([]Record, 0)}
}

// Load 用远端拉取的完整列表替换当前内容
func (s *Store) Load(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cloneAll(records)
}

// Find 按区域编码查找，未收藏时返回 false
func (s *Store) Find(zoneCode string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexByCode(zoneCode); i >= 0 {
		return s.records[i].clone(), true
	}
	return Record{}, false
}

// Get 按 ID 查找
func (s *Store) Get(id ID) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexByID(id); i >= 0 {
		return s.records[i].clone(), true
	}
	return Record{}, false
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{records: cloneAll(s.records)}
}

// Replace 原样恢复到某个快照
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cloneAll(snap.records)
}

// List 按当前顺序返回所有记录
func (s *Store) List() []Record {
	return s.Snapshot().records
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Clear() {
	s.Load(nil)
}

// appendPlaceholder 在锁内检查区域唯一性并追加占位记录，display_order 取当前数量
func (s *Store) appendPlaceholder(build func(order int) Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := build(len(s.records))
	if s.indexByCode(r.ZoneCode) >= 0 {
		return Record{}, ErrAlreadyFavorite
	}
	s.records = append(s.records, r)
	return r.clone(), nil
}

// swap 用服务端返回的记录替换占位记录；占位记录已不存在时不做任何事
func (s *Store) swap(id ID, r Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	s.records[i] = r.clone()
	return true
}

func (s *Store) remove(id ID) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return Record{}, false
	}
	r := s.records[i]
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	return r, true
}

// restore 放回被删除的记录并按 display_order 升序稳定排序
func (s *Store) restore(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexByID(r.ID) >= 0 {
		return
	}
	s.records = append(s.records, r.clone())
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].DisplayOrder < s.records[j].DisplayOrder
	})
}

// reorder 校验 ids 是当前记录的一个排列，然后按新顺序重排并重写 display_order。
// 返回重排之前的快照用于回滚。
func (s *Store) reorder(ids []ID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) != len(s.records) {
		return Snapshot{}, ErrNotPermutation
	}
	seen := make(map[ID]struct{}, len(ids))
	next := make([]Record, 0, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			return Snapshot{}, ErrNotPermutation
		}
		seen[id] = struct{}{}
		j := s.indexByID(id)
		if j < 0 {
			return Snapshot{}, ErrNotPermutation
		}
		r := s.records[j].clone()
		r.DisplayOrder = i
		next = append(next, r)
	}
	prev := Snapshot{records: s.records}
	s.records = next
	return prev, nil
}

func (s *Store) update(id ID, fn func(r *Record)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return false
	}
	fn(&s.records[i])
	return true
}

func (s *Store) indexByID(id ID) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) indexByCode(zoneCode string) int {
	for i := range s.records {
		if s.records[i].ZoneCode == zoneCode {
			return i
		}
	}
	return -1
}

func cloneAll(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.clone())
	}
	return out
}
