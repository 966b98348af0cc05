package session

import (
	"Revamp/internal/favorites"
	"Revamp/pkg/apiclient"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	users    map[string]string // email -> password
	tokens   map[string]string // token -> email
	meErr    error
	loginErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]string{}, tokens: map[string]string{}}
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (apiclient.Token, error) {
	if f.loginErr != nil {
		return apiclient.Token{}, f.loginErr
	}
	if pw, ok := f.users[email]; !ok || pw != password {
		return apiclient.Token{}, &favorites.RemoteError{Status: 401, Message: "Incorrect email or password"}
	}
	tok := "tok-" + email
	f.tokens[tok] = email
	return apiclient.Token{AccessToken: tok, TokenType: "bearer"}, nil
}

func (f *fakeAuth) Register(_ context.Context, req apiclient.RegisterRequest) (apiclient.User, error) {
	if _, ok := f.users[req.Email]; ok {
		return apiclient.User{}, &favorites.RemoteError{Status: 400, Message: "Email or username already registered"}
	}
	f.users[req.Email] = req.Password
	return apiclient.User{ID: int64(len(f.users)), Email: req.Email, Username: req.Username}, nil
}

func (f *fakeAuth) Me(_ context.Context, token string) (apiclient.User, error) {
	if f.meErr != nil {
		return apiclient.User{}, f.meErr
	}
	email, ok := f.tokens[token]
	if !ok {
		return apiclient.User{}, &favorites.RemoteError{Status: 401, Message: "Could not validate credentials"}
	}
	return apiclient.User{ID: 1, Email: email, Username: email}, nil
}

type recorder struct {
	signIns  []favorites.Credential
	signOuts int
	err      error
}

func (r *recorder) SignIn(_ context.Context, cred favorites.Credential) error {
	r.signIns = append(r.signIns, cred)
	return r.err
}

func (r *recorder) SignOut() { r.signOuts++ }

func TestSession_LoginNotifiesListener(t *testing.T) {
	auth := newFakeAuth()
	auth.users["a@ucdavis.edu"] = "secret123"
	tokens := &MemoryTokenStore{}
	rec := &recorder{}
	s := New(auth, tokens, rec)

	require.NoError(t, s.Login(context.Background(), "a@ucdavis.edu", "secret123"))

	assert.True(t, s.Authenticated())
	cred, ok := s.Credential()
	require.True(t, ok)
	assert.Equal(t, "tok-a@ucdavis.edu", cred.Token)
	assert.Equal(t, []favorites.Credential{cred}, rec.signIns)
	saved, _ := tokens.Load()
	assert.Equal(t, cred.Token, saved)
}

func TestSession_LoginFailureMessage(t *testing.T) {
	auth := newFakeAuth()
	rec := &recorder{}
	s := New(auth, &MemoryTokenStore{}, rec)

	err := s.Login(context.Background(), "nobody@ucdavis.edu", "x")
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", err.Error())
	assert.False(t, s.Authenticated())
	assert.Empty(t, rec.signIns)

	auth.loginErr = &favorites.TransportError{Op: "POST /auth/login", Err: errors.New("dial tcp: refused")}
	err = s.Login(context.Background(), "nobody@ucdavis.edu", "x")
	assert.Equal(t, "Network error. Please try again.", err.Error())
}

func TestSession_RegisterThenLogin(t *testing.T) {
	auth := newFakeAuth()
	rec := &recorder{}
	s := New(auth, &MemoryTokenStore{}, rec)

	require.NoError(t, s.Register(context.Background(), "b@ucdavis.edu", "pw-12345", "Bee"))
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "b@ucdavis.edu", u.Username, "username defaults to email")
	assert.Len(t, rec.signIns, 1)

	err := s.Register(context.Background(), "b@ucdavis.edu", "pw-12345", "Bee")
	assert.Equal(t, "Email or username already registered", err.Error())
}

func TestSession_ListenerErrorDoesNotFailLogin(t *testing.T) {
	auth := newFakeAuth()
	auth.users["a@ucdavis.edu"] = "pw"
	rec := &recorder{err: errors.New("fetch failed")}
	s := New(auth, &MemoryTokenStore{}, rec)

	require.NoError(t, s.Login(context.Background(), "a@ucdavis.edu", "pw"))
	assert.True(t, s.Authenticated())
}

func TestSession_RestoreDropsRejectedToken(t *testing.T) {
	auth := newFakeAuth()
	tokens := &MemoryTokenStore{token: "stale"}
	rec := &recorder{}
	s := New(auth, tokens, rec)

	require.NoError(t, s.Restore(context.Background()))
	assert.False(t, s.Authenticated())
	saved, _ := tokens.Load()
	assert.Empty(t, saved)
	assert.Empty(t, rec.signIns)
}

func TestSession_RestoreKeepsTokenOnNetworkError(t *testing.T) {
	auth := newFakeAuth()
	auth.meErr = &favorites.TransportError{Op: "GET /auth/me", Err: errors.New("timeout")}
	tokens := &MemoryTokenStore{token: "tok-a"}
	s := New(auth, tokens)

	err := s.Restore(context.Background())
	require.Error(t, err)
	saved, _ := tokens.Load()
	assert.Equal(t, "tok-a", saved)
}

func TestSession_RestoreValidToken(t *testing.T) {
	auth := newFakeAuth()
	auth.tokens["tok-a"] = "a@ucdavis.edu"
	rec := &recorder{}
	s := New(auth, &MemoryTokenStore{token: "tok-a"}, rec)

	require.NoError(t, s.Restore(context.Background()))
	assert.True(t, s.Authenticated())
	assert.Equal(t, []favorites.Credential{{Token: "tok-a"}}, rec.signIns)
}

func TestSession_LogoutNotifiesListener(t *testing.T) {
	auth := newFakeAuth()
	auth.users["a@ucdavis.edu"] = "pw"
	tokens := &MemoryTokenStore{}
	rec := &recorder{}
	s := New(auth, tokens, rec)
	require.NoError(t, s.Login(context.Background(), "a@ucdavis.edu", "pw"))

	s.Logout()

	assert.False(t, s.Authenticated())
	_, ok := s.Credential()
	assert.False(t, ok)
	assert.Equal(t, 1, rec.signOuts)
	saved, _ := tokens.Load()
	assert.Empty(t, saved)
}

func TestFileTokenStore(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "token")}

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save("abc"))
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	tok, _ = store.Load()
	assert.Empty(t, tok)
}
