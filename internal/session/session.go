package session

import (
	"Revamp/internal/favorites"
	"Revamp/pkg/apiclient"
	"Revamp/pkg/log"
	"context"
	"errors"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgLoginAfterReg  = "Registration successful but login failed"
	msgNetwork        = "Network error. Please try again."
)

// Authenticator 远端认证接口
type Authenticator interface {
	Login(ctx context.Context, email, password string) (apiclient.Token, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (apiclient.User, error)
	Me(ctx context.Context, token string) (apiclient.User, error)
}

// Listener 接收会话的登录/退出切换，收藏引擎实现了这个接口
type Listener interface {
	SignIn(ctx context.Context, cred favorites.Credential) error
	SignOut()
}

// Error 认证失败，Msg 可直接展示
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Session 客户端登录态。凭证只从这里显式传给 Listener。
type Session struct {
	auth      Authenticator
	tokens    TokenStore
	listeners []Listener

	mu    sync.Mutex
	token string
	user  *apiclient.User
}

func New(auth Authenticator, tokens TokenStore, listeners ...Listener) *Session {
	return &Session{auth: auth, tokens: tokens, listeners: listeners}
}

// Restore 读取保存的 token 并向 /auth/me 校验，401/403 时丢弃 token
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		var re *favorites.RemoteError
		if errors.As(err, &re) && (re.Status == http.StatusUnauthorized || re.Status == http.StatusForbidden) {
			log.L.Info("saved token rejected, clearing", zap.Int("status", re.Status))
			_ = s.tokens.Clear()
			return nil
		}
		return &Error{Msg: msgNetwork, Err: err}
	}

	s.signIn(ctx, token, user)
	return nil
}

// Login 邮箱密码登录
func (s *Session) Login(ctx context.Context, email, password string) error {
	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return authError(err, msgLoginFailed)
	}
	if err := s.tokens.Save(tok.AccessToken); err != nil {
		log.L.Warn("save token", zap.Error(err))
	}

	user, err := s.auth.Me(ctx, tok.AccessToken)
	if err != nil {
		return authError(err, msgLoginFailed)
	}
	s.signIn(ctx, tok.AccessToken, user)
	return nil
}

// Register 注册后立即登录，用户名使用邮箱
func (s *Session) Register(ctx context.Context, email, password, fullName string) error {
	user, err := s.auth.Register(ctx, apiclient.RegisterRequest{
		Email:    email,
		Username: email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return authError(err, msgRegisterFailed)
	}

	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		var re *favorites.RemoteError
		if errors.As(err, &re) && re.Message != "" {
			return &Error{Msg: re.Message, Err: err}
		}
		return &Error{Msg: msgLoginAfterReg, Err: err}
	}
	if err := s.tokens.Save(tok.AccessToken); err != nil {
		log.L.Warn("save token", zap.Error(err))
	}
	s.signIn(ctx, tok.AccessToken, user)
	return nil
}

// Logout 清除 token 并通知 Listener
func (s *Session) Logout() {
	if err := s.tokens.Clear(); err != nil {
		log.L.Warn("clear token", zap.Error(err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	for _, l := range s.listeners {
		l.SignOut()
	}
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Session) User() (apiclient.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return apiclient.User{}, false
	}
	return *s.user, true
}

// Credential 当前凭证，未登录时返回 false
func (s *Session) Credential() (favorites.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.token == "" {
		return favorites.Credential{}, false
	}
	return favorites.Credential{Token: s.token}, true
}

func (s *Session) signIn(ctx context.Context, token string, user apiclient.User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	cred := favorites.Credential{Token: token}
	for _, l := range s.listeners {
		// 拉取失败由 Listener 自己记录，不影响登录结果
		if err := l.SignIn(ctx, cred); err != nil {
			log.L.Warn("session listener sign-in", zap.Error(err))
		}
	}
}

func authError(err error, fallback string) error {
	var re *favorites.RemoteError
	if errors.As(err, &re) {
		if re.Message != "" {
			return &Error{Msg: re.Message, Err: err}
		}
		return &Error{Msg: fallback, Err: err}
	}
	return &Error{Msg: msgNetwork, Err: err}
}
