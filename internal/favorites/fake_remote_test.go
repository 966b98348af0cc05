package favorites

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeRemote 内存中的远端服务，行为与 /favorites 接口一致
type fakeRemote struct {
	mu      sync.Mutex
	records []Record
	seq     int
	token   string

	listErr    error
	createErr  error
	deleteErr  error
	reorderErr error
	useErr     error

	// before 在每次远端调用前执行，用于观察乐观写入后的本地状态
	before func(op string)

	calls      []string
	lastOrder  []OrderItem
	listCalled int
}

func newFakeRemote(token string, records ...Record) *fakeRemote {
	f := &fakeRemote{token: token}
	for _, r := range records {
		f.records = append(f.records, r)
		f.seq++
	}
	return f
}

func (f *fakeRemote) enter(op string, cred Credential) error {
	if f.before != nil {
		f.before(op)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if cred.Token != f.token {
		return &RemoteError{Status: 401, Message: "Could not validate credentials"}
	}
	return nil
}

func (f *fakeRemote) List(_ context.Context, cred Credential) ([]Record, error) {
	if err := f.enter("list", cred); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalled++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return cloneAll(f.records), nil
}

func (f *fakeRemote) Create(_ context.Context, cred Credential, req CreateRequest) (Record, error) {
	if err := f.enter("create", cred); err != nil {
		return Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return Record{}, f.createErr
	}
	for _, r := range f.records {
		if r.ZoneCode == req.ZoneCode {
			return Record{}, &RemoteError{Status: 400, Message: "Zone already in favorites"}
		}
	}
	f.seq++
	ts := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	r := Record{
		ID:              ServerID(fmt.Sprintf("srv-%d", f.seq)),
		UserID:          7,
		ZoneCode:        req.ZoneCode,
		ZoneDescription: req.ZoneDescription,
		DisplayOrder:    len(f.records),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRemote) Delete(_ context.Context, cred Credential, id ID) error {
	if err := f.enter("delete", cred); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &RemoteError{Status: 404, Message: "Favorite zone not found"}
}

func (f *fakeRemote) Reorder(_ context.Context, cred Credential, order []OrderItem) error {
	if err := f.enter("reorder", cred); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOrder = append([]OrderItem(nil), order...)
	return f.reorderErr
}

func (f *fakeRemote) Use(_ context.Context, cred Credential, id ID) (int, error) {
	if err := f.enter("use", cred); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.useErr != nil {
		return 0, f.useErr
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].TimesUsed++
			return f.records[i].TimesUsed, nil
		}
	}
	return 0, &RemoteError{Status: 404, Message: "Favorite zone not found"}
}

func (f *fakeRemote) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func strPtr(s string) *string { return &s }

func rec(id, code string, order int) Record {
	ts := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return Record{
		ID:           ServerID(id),
		ZoneCode:     code,
		DisplayOrder: order,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}
