package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Cache는 프로젝트 설정 파일의 파싱 결과 캐시다.
// hook-env는 prompt마다 실행되므로 바뀌지 않은 파일은 다시 파싱하지 않는다.
type Cache struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`

	dirty bool
}

// Entry는 설정 파일 하나의 정규화된 내용이다.
type Entry struct {
	Stamp    string            `json:"stamp"`
	Set      map[string]string `json:"set,omitempty"`
	Unset    []string          `json:"unset,omitempty"`
	EnvPath  []string          `json:"env_path,omitempty"`
	CachedAt string            `json:"cached_at"`
}

// DefaultPath는 XDG 캐시 디렉토리 아래의 캐시 파일 경로다.
func DefaultPath() string {
	return filepath.Join(xdg.CacheHome, "mise", "env-cache.json")
}

// New는 빈 캐시를 생성한다.
func New() *Cache {
	return &Cache{Version: 1, Entries: make(map[string]Entry)}
}

// Stamp는 파일 내용이 바뀌었는지 판단하는 값이다 (mtime + size).
func Stamp(info os.FileInfo) string {
	return strconv.FormatInt(info.ModTime().UnixNano(), 10) + ":" + strconv.FormatInt(info.Size(), 10)
}

// Load는 캐시 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 캐시 반환 (graceful).
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Load: %w", err)
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil || c.Version != 1 {
		return New(), nil
	}
	if c.Entries == nil {
		c.Entries = make(map[string]Entry)
	}
	return &c, nil
}

// Lookup은 설정 파일 경로로 캐시를 조회한다. stamp가 같고 TTL 안이어야 hit.
func (c *Cache) Lookup(path, stamp string, ttl time.Duration) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.Entries[path]
	if !ok || e.Stamp != stamp {
		return nil, false
	}
	cached, err := time.Parse(time.RFC3339, e.CachedAt)
	if err != nil {
		return nil, false
	}
	if ttl > 0 && time.Since(cached) > ttl {
		return nil, false
	}
	return &e, true
}

// Set은 캐시 항목을 추가하거나 갱신한다.
func (c *Cache) Set(path string, entry Entry) {
	if entry.CachedAt == "" {
		entry.CachedAt = time.Now().UTC().Format(time.RFC3339)
	}
	c.Entries[path] = entry
	c.dirty = true
}

// Prune은 더 이상 존재하지 않는 파일의 항목을 제거한다.
func (c *Cache) Prune() {
	for path := range c.Entries {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			delete(c.Entries, path)
			c.dirty = true
		}
	}
}

// Dirty는 Load 이후 바뀐 내용이 있는지 확인한다.
func (c *Cache) Dirty() bool {
	return c.dirty
}

// Save는 캐시를 JSON 파일로 저장한다 (0600 권한).
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	c.dirty = false
	return nil
}
