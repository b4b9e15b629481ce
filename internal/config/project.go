package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/mise/internal/cache"
	"github.com/hbjs97/mise/internal/shell"
)

// ProjectFileNames는 한 디렉토리 안에서 확인하는 프로젝트 설정 파일 이름이다.
// 앞쪽이 우선한다.
var ProjectFileNames = []string{"mise.toml", ".mise.toml"}

// 세션 변수는 프로젝트 [env]에서 덮어쓸 수 없다.
var reservedKeys = map[string]bool{
	"PATH":             true,
	"MISE_SHELL":       true,
	"__MISE_ORIG_PATH": true,
	"__MISE_DIFF":      true,
	"__MISE_WATCH":     true,
}

// ProjectFile은 mise.toml 한 개의 내용이다.
type ProjectFile struct {
	Path    string         `toml:"-"`
	Env     map[string]any `toml:"env"`
	EnvPath []string       `toml:"env_path"`
}

// EnvConfig는 cwd에서 루트까지의 프로젝트 파일을 병합한 결과다.
type EnvConfig struct {
	// Set은 설정할 변수와 값이다.
	Set map[string]string
	// Unset은 제거할 변수 목록이다 (정렬됨).
	Unset []string
	// Path는 PATH 앞에 붙일 디렉토리 목록이다. 첫 항목이 PATH의 맨 앞이 된다.
	Path []string
	// Files는 병합에 사용된 파일 목록이다 (가까운 순).
	Files []string
}

// FindProjectFiles는 dir에서 루트까지 올라가며 프로젝트 설정 파일을 찾는다.
// 가까운 파일이 먼저 온다.
func FindProjectFiles(dir string) []string {
	var files []string
	dir = filepath.Clean(dir)
	for {
		for _, name := range ProjectFileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				files = append(files, p)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return files
		}
		dir = parent
	}
}

// LoadProject는 프로젝트 설정 파일 하나를 파싱한다.
func LoadProject(path string) (*ProjectFile, error) {
	var pf ProjectFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("config.LoadProject: %w: %s: %v", ErrConfig, path, err)
	}
	pf.Path = path
	return &pf, nil
}

// LoadEnv는 dir 기준으로 프로젝트 설정을 찾아 병합한다.
// 같은 키는 가까운 파일이 이기고, env_path는 가까운 순으로 이어 붙인다.
func LoadEnv(dir string) (*EnvConfig, error) {
	return LoadEnvCached(dir, nil, 0)
}

// LoadEnvCached는 LoadEnv와 같지만, 바뀌지 않은 파일은 c에서 꺼내 쓴다.
// c가 nil이면 캐시 없이 동작한다.
func LoadEnvCached(dir string, c *cache.Cache, ttl time.Duration) (*EnvConfig, error) {
	cfg := &EnvConfig{Set: make(map[string]string)}
	seen := make(map[string]bool)

	for _, path := range FindProjectFiles(dir) {
		entry, err := fileEnv(path, c, ttl)
		if err != nil {
			return nil, err
		}
		cfg.Files = append(cfg.Files, path)

		keys := make([]string, 0, len(entry.Set)+len(entry.Unset))
		for k := range entry.Set {
			keys = append(keys, k)
		}
		keys = append(keys, entry.Unset...)
		sort.Strings(keys)

		for _, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			if v, ok := entry.Set[k]; ok {
				cfg.Set[k] = v
			} else {
				cfg.Unset = append(cfg.Unset, k)
			}
		}

		for _, p := range entry.EnvPath {
			cfg.Path = append(cfg.Path, expandPath(p, filepath.Dir(path)))
		}
	}
	sort.Strings(cfg.Unset)
	return cfg, nil
}

// fileEnv는 설정 파일 하나를 정규화한다. 캐시 hit이면 파싱하지 않는다.
func fileEnv(path string, c *cache.Cache, ttl time.Duration) (*cache.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config.LoadEnv: %w", err)
	}
	stamp := cache.Stamp(info)
	if e, ok := c.Lookup(path, stamp, ttl); ok {
		return e, nil
	}

	pf, err := LoadProject(path)
	if err != nil {
		return nil, err
	}
	entry := &cache.Entry{Stamp: stamp, Set: make(map[string]string), EnvPath: pf.EnvPath}
	for k, raw := range pf.Env {
		if err := checkKey(path, k); err != nil {
			return nil, err
		}
		v, set, err := envValue(raw)
		if err != nil {
			return nil, fmt.Errorf("config.LoadEnv: %w: %s: env.%s: %v", ErrConfig, path, k, err)
		}
		if set {
			entry.Set[k] = v
		} else {
			entry.Unset = append(entry.Unset, k)
		}
	}
	sort.Strings(entry.Unset)

	if c != nil {
		c.Set(path, *entry)
	}
	return entry, nil
}

func checkKey(path, key string) error {
	if err := shell.ValidateKey(key); err != nil {
		return fmt.Errorf("config.LoadEnv: %w: %s: %v", ErrConfig, path, err)
	}
	if reservedKeys[key] {
		if key == "PATH" {
			return fmt.Errorf("config.LoadEnv: %w: %s: env.PATH 대신 env_path를 사용하세요", ErrConfig, path)
		}
		return fmt.Errorf("config.LoadEnv: %w: %s: env.%s는 예약된 변수입니다", ErrConfig, path, key)
	}
	return nil
}

// envValue는 [env] 값 하나를 해석한다. false는 unset을 뜻한다.
func envValue(v any) (string, bool, error) {
	switch val := v.(type) {
	case string:
		return val, true, nil
	case int64:
		return strconv.FormatInt(val, 10), true, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	case bool:
		if val {
			return "", false, errors.New("true는 허용되지 않습니다 (문자열 또는 false)")
		}
		return "", false, nil
	default:
		return "", false, fmt.Errorf("지원하지 않는 값 타입 %T", v)
	}
}

// expandPath는 ~와 상대 경로를 설정 파일 위치 기준으로 풀어낸다.
func expandPath(p, base string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}
