package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore 保存登录 token，对应浏览器里的 localStorage
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore 把 token 写在本地文件里，权限 0600
type FileTokenStore struct {
	Path string
}

// DefaultTokenPath 用户配置目录下的 revamp/token
func DefaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "revamp", "token")
}

func (f *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryTokenStore 不落盘
type MemoryTokenStore struct {
	token string
}

func (m *MemoryTokenStore) Load() (string, error) { return m.token, nil }

func (m *MemoryTokenStore) Save(token string) error {
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.token = ""
	return nil
}
