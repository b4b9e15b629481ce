package shell

import (
	"fmt"
	"text/template"
)

// posix는 bash와 zsh가 공유하는 escape 및 환경변수 출력 규칙이다.
type posix struct{}

func (posix) Escape(s string) string { return escapePosix(s) }

func (posix) Quote(s string) string { return "'" + escapePosix(s) + "'" }

// SetEnv는 export KEY='value' 를 출력한다. 식별자가 아닌 key는 아무것도 대입하지
// 않고 stderr에 알린 뒤 실패하는 줄로 바뀐다.
func (p posix) SetEnv(key, value string) string {
	if !validKey(key) {
		return p.rejectKey(key)
	}
	return fmt.Sprintf("export %s=%s\n", key, p.Quote(value))
}

func (p posix) PrependEnv(key, value string) string {
	if !validKey(key) {
		return p.rejectKey(key)
	}
	return fmt.Sprintf("export %s=%s:\"${%s-}\"\n", key, p.Quote(value), key)
}

func (p posix) UnsetEnv(key string) string {
	if !validKey(key) {
		return "unset -v " + p.Quote(key) + "\n"
	}
	return fmt.Sprintf("unset %s\n", key)
}

// rejectKey는 key 안의 '='를 셸이 대입으로 해석하지 못하게 export를 쓰지 않는다.
func (p posix) rejectKey(key string) string {
	return "printf 'mise: invalid environment variable name: %s\\n' " + p.Quote(key) + " >&2; false\n"
}

type posixData struct {
	Name        string
	Exe         string
	Flags       string
	HookDefined string
}

// posixPrelude는 세션 marker와 원래 PATH snapshot이다. 재평가해도 snapshot은 덮어쓰지 않는다.
const posixPrelude = `export MISE_SHELL={{.Name}}
if [ -z "${__MISE_ORIG_PATH+x}" ]; then
  export __MISE_ORIG_PATH="$PATH"
fi
`

// posixWrapper는 mise 함수다. --help는 그대로 위임하고, deactivate/shell/sh는
// stdout을 eval하며, 나머지는 실행 후 hook을 부르고 원래 종료 코드를 돌려준다.
const posixWrapper = `
mise() {
  local __mise_arg
  if [ "$#" -eq 0 ]; then
    command {{.Exe}}
    return $?
  fi
  for __mise_arg in "$@"; do
    if [ "$__mise_arg" = "--help" ]; then
      command {{.Exe}} "$@"
      return $?
    fi
  done

  local __mise_command="$1"
  shift
  case "$__mise_command" in
  deactivate|shell|sh)
    for __mise_arg in "$@"; do
      if [ "$__mise_arg" = "-h" ]; then
        command {{.Exe}} "$__mise_command" "$@"
        return $?
      fi
    done
    eval "$(command {{.Exe}} "$__mise_command" "$@")"
    return $?
    ;;
  esac

  command {{.Exe}} "$__mise_command" "$@"
  local __mise_status=$?
  if {{.HookDefined}}; then
    _mise_hook
  fi
  return $__mise_status
}
`

// posixHookFunc는 hook 함수다. prompt hook으로도 불리므로 직전 종료 코드를 보존한다.
const posixHookFunc = `
_mise_hook() {
  local __mise_previous_status=$?
  eval "$(command {{.Exe}} hook-env{{.Flags}} -s {{.Name}})"
  return $__mise_previous_status
}
`

var posixWrapperTmpl = template.Must(template.New("posix_wrapper").Parse(posixPrelude + posixWrapper))
