package favorites

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const token = "token-1"

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func signedIn(t *testing.T, remote *fakeRemote) *Engine {
	t.Helper()
	e := NewEngine(remote, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, e.SignIn(context.Background(), Credential{Token: token}))
	return e
}

func zoneCodes(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ZoneCode)
	}
	return out
}

func orders(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, fmt.Sprintf("%s=%d", r.ID, r.DisplayOrder))
	}
	return out
}

func TestEngine_AddRequiresSession(t *testing.T) {
	remote := newFakeRemote(token)
	e := NewEngine(remote)

	err := e.Add(context.Background(), "Z1", nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, KindNotAuthenticated, KindOf(err))
	assert.Zero(t, e.Store().Len())
	assert.Zero(t, remote.callCount("create"))
}

func TestEngine_AddReplacesPlaceholderWithServerRecord(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)

	require.NoError(t, e.Add(context.Background(), "Z1", strPtr("Lot Z1")))

	got := e.List()
	require.Len(t, got, 1)
	assert.Equal(t, ServerID("srv-1"), got[0].ID)
	assert.False(t, got[0].Pending(), "no temporary id remains")
	assert.Equal(t, "Z1", got[0].ZoneCode)
	assert.Equal(t, "Lot Z1", got[0].Description())
	assert.Equal(t, 0, got[0].DisplayOrder)
	assert.Equal(t, 0, got[0].TimesUsed)
	assert.Equal(t, int64(7), got[0].UserID, "server record is taken verbatim")
}

func TestEngine_AddIsAppliedBeforeRemoteCall(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := signedIn(t, remote)

	var seen []Record
	remote.before = func(op string) {
		if op == "create" {
			seen = e.List()
		}
	}
	require.NoError(t, e.Add(context.Background(), "B", nil))

	require.Len(t, seen, 2)
	placeholder := seen[1]
	assert.True(t, placeholder.ID.IsTemporary())
	assert.Equal(t, 1, placeholder.DisplayOrder)
	assert.Zero(t, placeholder.TimesUsed)
	assert.Nil(t, placeholder.LastUsed)
	assert.Equal(t, fixedNow, placeholder.CreatedAt)
	assert.Equal(t, fixedNow, placeholder.UpdatedAt)
}

func TestEngine_AddFailureLeavesNoPlaceholder(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
		kind    Kind
	}{
		{
			name:    "server message",
			err:     &RemoteError{Status: 400, Message: "Zone already in favorites"},
			message: "Zone already in favorites",
			kind:    KindRemoteRejected,
		},
		{
			name:    "no server message",
			err:     &RemoteError{Status: 500},
			message: "Failed to add favorite",
			kind:    KindRemoteRejected,
		},
		{
			name:    "transport",
			err:     &TransportError{Op: "POST /favorites/", Err: errors.New("connection refused")},
			message: "Failed to add favorite",
			kind:    KindTransportFailure,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remote := newFakeRemote(token, rec("srv-1", "A", 0))
			e := signedIn(t, remote)
			before := e.Store().Snapshot()
			remote.createErr = tc.err

			err := e.Add(context.Background(), "B", nil)
			require.Error(t, err)
			assert.Equal(t, tc.message, Message(err))
			assert.Equal(t, tc.kind, KindOf(err))
			assert.Equal(t, before.Records(), e.List())
			assert.Equal(t, err, e.Err())
		})
	}
}

func TestEngine_AddSameZoneTwiceIsRejected(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)
	ctx := context.Background()

	require.NoError(t, e.Add(ctx, "Z1", nil))
	err := e.Add(ctx, "Z1", nil)
	require.ErrorIs(t, err, ErrAlreadyFavorite)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, []string{"Z1"}, zoneCodes(e.List()))
	assert.Equal(t, 1, remote.callCount("create"))
}

func TestEngine_RemoveRestoresRecordOnFailure(t *testing.T) {
	a, b := rec("srv-1", "A", 0), rec("srv-2", "B", 1)
	remote := newFakeRemote(token, a, b)
	e := signedIn(t, remote)
	remote.deleteErr = &RemoteError{Status: 500}

	var during []Record
	remote.before = func(op string) {
		if op == "delete" {
			during = e.List()
		}
	}

	err := e.Remove(context.Background(), a.ID)
	require.Error(t, err)
	assert.Equal(t, "Failed to remove favorite", Message(err))
	assert.Equal(t, []string{"B"}, zoneCodes(during), "removal is optimistic")
	assert.Equal(t, []string{"srv-1=0", "srv-2=1"}, orders(e.List()))
}

func TestEngine_RemoveSuccess(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0), rec("srv-2", "B", 1))
	e := signedIn(t, remote)

	require.NoError(t, e.Remove(context.Background(), ServerID("srv-1")))
	assert.Equal(t, []string{"B"}, zoneCodes(e.List()))
	assert.Equal(t, 1, remote.callCount("delete"))
}

func TestEngine_RemoveUnknownID(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := signedIn(t, remote)

	err := e.Remove(context.Background(), ServerID("srv-9"))
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, e.Store().Len())
	assert.Zero(t, remote.callCount("delete"))
}

func TestEngine_ReorderSuccess(t *testing.T) {
	a, b, c := rec("srv-1", "A", 0), rec("srv-2", "B", 1), rec("srv-3", "C", 2)
	remote := newFakeRemote(token, a, b, c)
	e := signedIn(t, remote)

	require.NoError(t, e.Reorder(context.Background(), []Record{c, a, b}))

	assert.Equal(t, []string{"srv-3=0", "srv-1=1", "srv-2=2"}, orders(e.List()))
	assert.Equal(t, []OrderItem{
		{ID: c.ID, DisplayOrder: 0},
		{ID: a.ID, DisplayOrder: 1},
		{ID: b.ID, DisplayOrder: 2},
	}, remote.lastOrder)
}

func TestEngine_ReorderFailureRestoresSnapshot(t *testing.T) {
	a, b, c := rec("srv-1", "A", 0), rec("srv-2", "B", 1), rec("srv-3", "C", 2)
	remote := newFakeRemote(token, a, b, c)
	e := signedIn(t, remote)
	before := e.Store().Snapshot()
	remote.reorderErr = &TransportError{Op: "PATCH /favorites/reorder", Err: context.DeadlineExceeded}

	var during []string
	remote.before = func(op string) {
		if op == "reorder" {
			during = orders(e.List())
		}
	}

	err := e.Reorder(context.Background(), []Record{b, c, a})
	require.Error(t, err)
	assert.Equal(t, "Failed to reorder", Message(err))
	assert.Equal(t, []string{"srv-2=0", "srv-3=1", "srv-1=2"}, during)
	if diff := cmp.Diff(before.Records(), e.List(), cmp.AllowUnexported(ID{})); diff != "" {
		t.Fatalf("store not restored (-want +got):\n%s", diff)
	}
}

func TestEngine_ReorderRequiresPermutation(t *testing.T) {
	a, b := rec("srv-1", "A", 0), rec("srv-2", "B", 1)
	remote := newFakeRemote(token, a, b)
	e := signedIn(t, remote)

	err := e.Reorder(context.Background(), []Record{b})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"srv-1=0", "srv-2=1"}, orders(e.List()))
	assert.Zero(t, remote.callCount("reorder"))
}

func TestEngine_RecordUsage(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := signedIn(t, remote)
	ctx := context.Background()

	e.RecordUsage(ctx, ServerID("srv-1"))
	e.RecordUsage(ctx, ServerID("srv-1"))

	got, ok := e.Store().Get(ServerID("srv-1"))
	require.True(t, ok)
	assert.Equal(t, 2, got.TimesUsed)
	require.NotNil(t, got.LastUsed)
	assert.Equal(t, fixedNow, *got.LastUsed)
}

func TestEngine_RecordUsageFailureIsSilent(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := signedIn(t, remote)
	remote.useErr = &RemoteError{Status: 500, Message: "boom"}

	e.RecordUsage(context.Background(), ServerID("srv-1"))

	got, _ := e.Store().Get(ServerID("srv-1"))
	assert.Zero(t, got.TimesUsed)
	assert.Nil(t, got.LastUsed)
	assert.NoError(t, e.Err())
}

func TestEngine_ToggleDelegates(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)
	ctx := context.Background()

	require.NoError(t, e.Toggle(ctx, "Z1", strPtr("Lot Z1")))
	_, ok := e.Find("Z1")
	require.True(t, ok)

	require.NoError(t, e.Toggle(ctx, "Z1", strPtr("Lot Z1")))
	_, ok = e.Find("Z1")
	assert.False(t, ok, "second toggle removes rather than duplicates")
	assert.Equal(t, 1, remote.callCount("create"))
	assert.Equal(t, 1, remote.callCount("delete"))
}

func TestEngine_PendingRecordCannotBeRemoved(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)

	var removeErr error
	remote.before = func(op string) {
		if op != "create" {
			return
		}
		r, ok := e.Find("Z1")
		require.True(t, ok)
		removeErr = e.Remove(context.Background(), r.ID)
	}
	require.NoError(t, e.Add(context.Background(), "Z1", nil))
	assert.ErrorIs(t, removeErr, ErrPending)
	assert.Equal(t, []string{"Z1"}, zoneCodes(e.List()))
}

func TestEngine_AddRemoveSequenceKeepsZoneSetUnique(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)
	ctx := context.Background()

	want := map[string]bool{}
	steps := []struct {
		add  bool
		zone string
	}{
		{true, "A"}, {true, "B"}, {true, "C"}, {false, "B"}, {true, "D"}, {false, "A"}, {true, "B"},
	}
	for _, s := range steps {
		if s.add {
			require.NoError(t, e.Add(ctx, s.zone, nil))
			want[s.zone] = true
			continue
		}
		r, ok := e.Find(s.zone)
		require.True(t, ok)
		require.NoError(t, e.Remove(ctx, r.ID))
		delete(want, s.zone)
	}

	got := map[string]bool{}
	for _, r := range e.List() {
		assert.False(t, got[r.ZoneCode], "duplicate zone %s", r.ZoneCode)
		got[r.ZoneCode] = true
	}
	assert.Equal(t, want, got)
}

func TestEngine_ConcurrentAdds(t *testing.T) {
	remote := newFakeRemote(token)
	e := signedIn(t, remote)
	ctx := context.Background()

	var wg conc.WaitGroup
	for i := 0; i < 20; i++ {
		zone := fmt.Sprintf("Z%d", i%10)
		wg.Go(func() {
			_ = e.Toggle(ctx, zone, nil)
		})
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, r := range e.List() {
		assert.False(t, seen[r.ZoneCode], "duplicate zone %s", r.ZoneCode)
		seen[r.ZoneCode] = true
	}
}

func TestEngine_SignInFetchesOncePerSession(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := NewEngine(remote)
	ctx := context.Background()

	require.NoError(t, e.SignIn(ctx, Credential{Token: token}))
	require.NoError(t, e.SignIn(ctx, Credential{Token: token}))
	assert.Equal(t, 1, remote.listCalled)
	assert.Equal(t, []string{"A"}, zoneCodes(e.List()))

	e.SignOut()
	assert.Zero(t, e.Store().Len())
	err := e.Add(ctx, "B", nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, e.SignIn(ctx, Credential{Token: token}))
	assert.Equal(t, 2, remote.listCalled, "sign-in after sign-out fetches again")
}

func TestEngine_SignInFetchFailureSetsError(t *testing.T) {
	remote := newFakeRemote(token)
	remote.listErr = &RemoteError{Status: 503}
	e := NewEngine(remote)
	ctx := context.Background()

	err := e.SignIn(ctx, Credential{Token: token})
	require.Error(t, err)
	assert.Equal(t, "Failed to load favorites", Message(e.Err()))
	assert.False(t, e.Loading())

	remote.listErr = nil
	require.NoError(t, e.SignIn(ctx, Credential{Token: token}))
	assert.Equal(t, 1, remote.callCount("list"), "no automatic retry")

	require.NoError(t, e.Refresh(ctx))
	assert.NoError(t, e.Err())
}

func TestEngine_SignInRejectsEmptyCredential(t *testing.T) {
	e := NewEngine(newFakeRemote(token))
	require.ErrorIs(t, e.SignIn(context.Background(), Credential{}), ErrNotAuthenticated)
}

func TestEngine_SignOutDuringRemoveDoesNotRestore(t *testing.T) {
	remote := newFakeRemote(token, rec("srv-1", "A", 0))
	e := signedIn(t, remote)
	remote.deleteErr = &RemoteError{Status: 500}
	remote.before = func(op string) {
		if op == "delete" {
			e.SignOut()
		}
	}

	require.Error(t, e.Remove(context.Background(), ServerID("srv-1")))
	assert.Zero(t, e.Store().Len())
	assert.NoError(t, e.Err())
}
