package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrUnknownShell는 registry에 없는 셸 이름을 요청했을 때의 sentinel error다.
var ErrUnknownShell = errors.New("unknown shell")

// ActivateOptions는 activate 스크립트 생성 옵션이다.
type ActivateOptions struct {
	// Exe는 wrapper와 hook이 호출할 mise 실행 파일 경로다.
	Exe string
	// Flags는 hook-env 호출 뒤에 그대로 덧붙는다 (예: " --status").
	Flags string
	// NoHookEnv가 true면 hook 등록 없이 wrapper 함수만 출력한다.
	NoHookEnv bool
}

// Shell은 하나의 셸 문법에 대한 스크립트 생성기다.
type Shell interface {
	// Name은 registry 이름이자 hook-env -s 에 넘기는 값이다.
	Name() string

	// Escape는 s를 이 셸의 literal 따옴표 안에 넣을 수 있는 형태로 바꾼다.
	Escape(s string) string

	// Quote는 Escape 결과를 literal 따옴표로 감싼다.
	Quote(s string) string

	// Activate는 wrapper 함수, hook 함수, hook 등록, 최초 hook 호출을 출력한다.
	Activate(opts ActivateOptions) string

	// Deactivate는 Activate가 설치할 수 있는 모든 것을 제거한다.
	// activate 전에 평가해도 에러가 나지 않아야 한다.
	Deactivate() string

	// SetEnv는 key를 value로 설정하는 한 줄을 출력한다.
	SetEnv(key, value string) string

	// PrependEnv는 value + 경로 구분자 + 현재 key 값을 key에 설정하는 한 줄을 출력한다.
	PrependEnv(key, value string) string

	// UnsetEnv는 key를 환경에서 제거하는 한 줄을 출력한다.
	UnsetEnv(key string) string
}

var registry = map[string]Shell{
	"bash":       Bash{},
	"zsh":        Zsh{},
	"fish":       Fish{},
	"pwsh":       Pwsh{},
	"powershell": Pwsh{},
	"xonsh":      Xonsh{},
}

// Get은 이름에 해당하는 Shell을 반환한다. 모르는 이름이면 ErrUnknownShell.
func Get(name string) (Shell, error) {
	sh, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("shell.Get: %w: %q (지원: %s)", ErrUnknownShell, name, strings.Join(Names(), ", "))
	}
	return sh, nil
}

// Names는 지원하는 셸의 대표 이름 목록을 정렬해서 반환한다. alias는 제외한다.
func Names() []string {
	seen := make(map[string]bool, len(registry))
	var names []string
	for _, sh := range registry {
		if seen[sh.Name()] {
			continue
		}
		seen[sh.Name()] = true
		names = append(names, sh.Name())
	}
	sort.Strings(names)
	return names
}

// execute는 정적 템플릿을 실행한다. 템플릿과 데이터 타입이 고정이므로
// 실패는 프로그래밍 오류다.
func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("shell: %s 템플릿 실행 실패: %v", t.Name(), err))
	}
	return b.String()
}
