package shell

import "text/template"

// Bash는 bash 스크립트 생성기다.
// bash에는 chpwd가 없으므로 디렉토리 변경은 다음 PROMPT_COMMAND에서 반영된다.
type Bash struct{ posix }

var _ Shell = Bash{}

func (Bash) Name() string { return "bash" }

const bashHookRegistration = `if [ -z "${__mise_bash_hooked:-}" ]; then
  __mise_bash_hooked=1
  if [[ ";${PROMPT_COMMAND:-};" != *";_mise_hook;"* ]]; then
    PROMPT_COMMAND="_mise_hook${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
  fi
fi
_mise_hook
`

var bashHookTmpl = template.Must(template.New("bash_hook").Parse(posixHookFunc + bashHookRegistration))

func (b Bash) Activate(opts ActivateOptions) string {
	data := posixData{
		Name:        b.Name(),
		Exe:         b.Quote(opts.Exe),
		Flags:       opts.Flags,
		HookDefined: `[ "$(type -t _mise_hook 2>/dev/null)" = function ]`,
	}
	out := execute(posixWrapperTmpl, data)
	if !opts.NoHookEnv {
		out += execute(bashHookTmpl, data)
	}
	return out
}

// Deactivate는 PROMPT_COMMAND에서 ';'로 구분된 항목 중 정확히 _mise_hook인 것만
// 걷어내고, 비게 되면 변수를 지운다.
func (Bash) Deactivate() string {
	return `if [ -n "${PROMPT_COMMAND:-}" ]; then
  __mise_prompt_command=";$PROMPT_COMMAND;"
  while [[ "$__mise_prompt_command" == *";_mise_hook;"* ]]; do
    __mise_prompt_command="${__mise_prompt_command//";_mise_hook;"/";"}"
  done
  __mise_prompt_command="${__mise_prompt_command#";"}"
  PROMPT_COMMAND="${__mise_prompt_command%";"}"
  unset __mise_prompt_command
  if [ -z "$PROMPT_COMMAND" ]; then
    unset PROMPT_COMMAND
  fi
fi
unset __mise_bash_hooked
unset -f _mise_hook
unset -f mise
unset MISE_SHELL
unset __MISE_ORIG_PATH
unset __MISE_DIFF
unset __MISE_WATCH
`
}
