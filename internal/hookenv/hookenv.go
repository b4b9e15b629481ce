// Package hookenv computes the environment changes applied at each prompt.
//
// The previous run's changes are recorded in __MISE_DIFF so that leaving a
// project restores exactly what was there before, and PATH is always rebuilt
// from the snapshot taken at activation so it never grows.
package hookenv

import (
	"os"
	"sort"
	"strings"

	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/logging"
	"github.com/hbjs97/mise/internal/shell"
)

// 세션 변수 이름.
const (
	DiffKey     = "__MISE_DIFF"
	OrigPathKey = "__MISE_ORIG_PATH"
	ShellKey    = "MISE_SHELL"
	PathKey     = "PATH"
)

// Result는 Compute 결과다.
type Result struct {
	Mutations []shell.Mutation
	// Changes는 사람이 읽는 변경 요약이다 ("+FOO", "-BAR", "~PATH").
	Changes []string
}

// Env는 KEY=VALUE 목록을 map으로 바꾼다. 같은 키가 여러 번 나오면 마지막이 이긴다.
func Env(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// Compute는 현재 환경과 프로젝트 설정으로부터 적용할 변경 목록을 만든다.
func Compute(env map[string]string, cfg *config.EnvConfig) Result {
	logger := logging.Get("hookenv")

	prev, err := DecodeDiff(env[DiffKey])
	if err != nil {
		logger.Warn().Err(err).Msg("__MISE_DIFF를 해석할 수 없어 무시합니다")
		prev = &Diff{}
	}
	if cfg == nil {
		cfg = &config.EnvConfig{}
	}

	wanted := make(map[string]bool, len(cfg.Set)+len(cfg.Unset))
	for k := range cfg.Set {
		wanted[k] = true
	}
	for _, k := range cfg.Unset {
		wanted[k] = true
	}

	var res Result
	next := &Diff{Keys: make(map[string]Original)}

	// 더 이상 원하지 않는 키는 원래 상태로 되돌린다.
	for _, k := range sortedKeys(prev.Keys) {
		if wanted[k] {
			continue
		}
		res.restore(env, k, prev.Keys[k])
	}

	for _, k := range sortedKeys(wanted) {
		orig, ok := prev.Keys[k]
		if !ok {
			cur, had := env[k]
			orig = Original{Had: had, Value: cur}
		}
		next.Keys[k] = orig

		cur, had := env[k]
		if v, set := cfg.Set[k]; set {
			if !had || cur != v {
				res.Mutations = append(res.Mutations, shell.Set(k, v))
				res.Changes = append(res.Changes, "+"+k)
			}
			continue
		}
		if had {
			res.Mutations = append(res.Mutations, shell.Unset(k))
			res.Changes = append(res.Changes, "-"+k)
		}
	}

	if len(cfg.Path) > 0 || len(prev.Path) > 0 {
		base := basePath(env)
		want := joinPath(append(append([]string{}, cfg.Path...), base)...)
		if len(cfg.Path) == 0 {
			want = base
		}
		if env[PathKey] != want {
			res.Mutations = append(res.Mutations, shell.Set(PathKey, base))
			for i := len(cfg.Path) - 1; i >= 0; i-- {
				res.Mutations = append(res.Mutations, shell.Prepend(PathKey, cfg.Path[i]))
			}
			res.Changes = append(res.Changes, "~"+PathKey)
		}
		next.Path = cfg.Path
	}

	if len(next.Keys) == 0 {
		next.Keys = nil
	}
	switch {
	case !next.Empty():
		encoded, err := next.Encode()
		if err != nil {
			logger.Error().Err(err).Msg("diff 인코딩 실패")
			break
		}
		if env[DiffKey] != encoded {
			res.Mutations = append(res.Mutations, shell.Set(DiffKey, encoded))
		}
	case hasKey(env, DiffKey):
		res.Mutations = append(res.Mutations, shell.Unset(DiffKey))
	}

	logger.Debug().Strs("changes", res.Changes).Int("mutations", len(res.Mutations)).Msg("hook-env computed")
	return res
}

// Reverse는 __MISE_DIFF에 기록된 모든 변경을 되돌리는 목록을 만든다.
func Reverse(env map[string]string) Result {
	prev, err := DecodeDiff(env[DiffKey])
	if err != nil {
		logger := logging.Get("hookenv")
		logger.Warn().Err(err).Msg("__MISE_DIFF를 해석할 수 없어 무시합니다")
		prev = &Diff{}
	}

	var res Result
	for _, k := range sortedKeys(prev.Keys) {
		res.restore(env, k, prev.Keys[k])
	}
	if len(prev.Path) > 0 {
		if orig, ok := env[OrigPathKey]; ok && env[PathKey] != orig {
			res.Mutations = append(res.Mutations, shell.Set(PathKey, orig))
			res.Changes = append(res.Changes, "~"+PathKey)
		}
	}
	if hasKey(env, DiffKey) {
		res.Mutations = append(res.Mutations, shell.Unset(DiffKey))
	}
	return res
}

func (r *Result) restore(env map[string]string, key string, orig Original) {
	cur, had := env[key]
	switch {
	case orig.Had && (!had || cur != orig.Value):
		r.Mutations = append(r.Mutations, shell.Set(key, orig.Value))
		r.Changes = append(r.Changes, "~"+key)
	case !orig.Had && had:
		r.Mutations = append(r.Mutations, shell.Unset(key))
		r.Changes = append(r.Changes, "-"+key)
	}
}

// basePath는 activate 시점의 PATH다. 스냅샷이 없으면 현재 PATH를 쓴다.
func basePath(env map[string]string) string {
	if orig, ok := env[OrigPathKey]; ok {
		return orig
	}
	return env[PathKey]
}

func joinPath(parts ...string) string {
	return strings.Join(parts, string(os.PathListSeparator))
}

func hasKey(env map[string]string, key string) bool {
	_, ok := env[key]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
