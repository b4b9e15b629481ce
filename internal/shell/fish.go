package shell

import (
	"fmt"
	"text/template"
)

// Fish는 fish 스크립트 생성기다. 이벤트 핸들러는 함수 이름에 묶이므로
// 같은 이름으로 다시 정의하면 교체될 뿐 중복 등록되지 않는다.
type Fish struct{}

var _ Shell = Fish{}

func (Fish) Name() string { return "fish" }

func (Fish) Escape(s string) string { return escapeFish(s) }

func (Fish) Quote(s string) string { return "'" + escapeFish(s) + "'" }

func (f Fish) key(key string) string {
	if validKey(key) {
		return key
	}
	return f.Quote(key)
}

func (f Fish) SetEnv(key, value string) string {
	return fmt.Sprintf("set -gx %s %s\n", f.key(key), f.Quote(value))
}

// PrependEnv는 command substitution 없이 한 문자열로 이어 붙인다. "$PATH"처럼
// quote된 path 변수는 ':'로 합쳐지고, 대입할 때 fish가 다시 ':' 기준으로 나눈다.
func (f Fish) PrependEnv(key, value string) string {
	k := f.key(key)
	return fmt.Sprintf("set -gx %s %s':'\"$%s\"\n", k, f.Quote(value), k)
}

func (f Fish) UnsetEnv(key string) string {
	return fmt.Sprintf("set -e %s\n", f.key(key))
}

type fishData struct {
	Exe   string
	Flags string
}

const fishWrapper = `set -gx MISE_SHELL fish
if not set -q __MISE_ORIG_PATH
    set -gx __MISE_ORIG_PATH $PATH
end

function mise
    if test (count $argv) -eq 0
        command {{.Exe}}
        return
    end
    if contains -- --help $argv
        command {{.Exe}} $argv
        return
    end

    set -l __mise_command $argv[1]
    set -e argv[1]
    switch $__mise_command
        case deactivate shell sh
            if contains -- -h $argv
                command {{.Exe}} $__mise_command $argv
                return
            end
            command {{.Exe}} $__mise_command $argv | source
            return
    end

    command {{.Exe}} $__mise_command $argv
    set -l __mise_status $status
    if functions -q __mise_env_eval
        __mise_env_eval
    end
    return $__mise_status
end
`

const fishHook = `
function __mise_env_eval --on-event fish_prompt --description 'Update mise environment'
    command {{.Exe}} hook-env{{.Flags}} -s fish | source
end

function __mise_cd_hook --on-variable PWD --description 'Update mise environment on directory change'
    if functions -q __mise_env_eval
        __mise_env_eval
    end
end

__mise_env_eval
`

var (
	fishWrapperTmpl = template.Must(template.New("fish_wrapper").Parse(fishWrapper))
	fishHookTmpl    = template.Must(template.New("fish_hook").Parse(fishHook))
)

func (f Fish) Activate(opts ActivateOptions) string {
	data := fishData{Exe: f.Quote(opts.Exe), Flags: opts.Flags}
	out := execute(fishWrapperTmpl, data)
	if !opts.NoHookEnv {
		out += execute(fishHookTmpl, data)
	}
	return out
}

func (Fish) Deactivate() string {
	return `functions --erase __mise_env_eval
functions --erase __mise_cd_hook
functions --erase mise
set -e MISE_SHELL
set -e __MISE_ORIG_PATH
set -e __MISE_DIFF
set -e __MISE_WATCH
`
}
