package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/hbjs97/mise/internal/shell"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 오류")

// Settings는 mise 전역 설정 파일(config.toml)의 최상위 구조체다.
type Settings struct {
	Version      int    `toml:"version"`
	Status       *bool  `toml:"status"`
	DefaultShell string `toml:"default_shell"`
	NoHookEnv    bool   `toml:"no_hook_env"`
	CacheTTLDays int    `toml:"cache_ttl_days"`
}

// DefaultPath는 XDG 설정 디렉토리 아래의 기본 설정 파일 경로다.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "mise", "config.toml")
}

// Load는 config.toml을 파싱하여 Settings를 반환한다.
// 파일이 없으면 기본값을 반환한다.
func Load(path string) (*Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.applyDefaults()
			return &s, nil
		}
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save는 Settings를 TOML로 기록한다. 상위 디렉토리는 0700, 파일은 0600으로 만든다.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// IsStatus는 hook-env에 --status를 붙일지 여부를 반환한다.
func (s *Settings) IsStatus() bool {
	if s.Status == nil {
		return false
	}
	return *s.Status
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Status == nil {
		f := false
		s.Status = &f
	}
	if s.CacheTTLDays == 0 {
		s.CacheTTLDays = 30
	}
}

// CacheTTL은 프로젝트 설정 캐시의 유효 기간이다.
func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLDays) * 24 * time.Hour
}

func (s *Settings) validate() error {
	if s.Version != 1 {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 version %d", ErrConfig, s.Version)
	}
	if s.CacheTTLDays < 0 {
		return fmt.Errorf("config.Load: %w: cache_ttl_days는 0 이상이어야 합니다", ErrConfig)
	}
	if s.DefaultShell != "" {
		if _, err := shell.Get(s.DefaultShell); err != nil {
			return fmt.Errorf("config.Load: %w: default_shell: %v", ErrConfig, err)
		}
	}
	return nil
}
