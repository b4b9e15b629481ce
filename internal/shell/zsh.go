package shell

import "text/template"

// Zsh는 zsh 스크립트 생성기다. precmd_functions와 chpwd_functions에 등록한다.
type Zsh struct{ posix }

var _ Shell = Zsh{}

func (Zsh) Name() string { return "zsh" }

// 배열에 _mise_hook이 이미 있으면 다시 넣지 않는다. 기존 hook은 뒤에 그대로 남는다.
const zshHookRegistration = `typeset -ag precmd_functions
if (( ! ${precmd_functions[(I)_mise_hook]} )); then
  precmd_functions=(_mise_hook ${precmd_functions[@]})
fi
typeset -ag chpwd_functions
if (( ! ${chpwd_functions[(I)_mise_hook]} )); then
  chpwd_functions=(_mise_hook ${chpwd_functions[@]})
fi
_mise_hook
`

var zshHookTmpl = template.Must(template.New("zsh_hook").Parse(posixHookFunc + zshHookRegistration))

func (z Zsh) Activate(opts ActivateOptions) string {
	data := posixData{
		Name:        z.Name(),
		Exe:         z.Quote(opts.Exe),
		Flags:       opts.Flags,
		HookDefined: "(( ${+functions[_mise_hook]} ))",
	}
	out := execute(posixWrapperTmpl, data)
	if !opts.NoHookEnv {
		out += execute(zshHookTmpl, data)
	}
	return out
}

func (Zsh) Deactivate() string {
	return `if (( ${+precmd_functions} )); then
  precmd_functions=(${precmd_functions:#_mise_hook})
fi
if (( ${+chpwd_functions} )); then
  chpwd_functions=(${chpwd_functions:#_mise_hook})
fi
unfunction _mise_hook 2>/dev/null
unfunction mise 2>/dev/null
unset MISE_SHELL
unset __MISE_ORIG_PATH
unset __MISE_DIFF
unset __MISE_WATCH
`
}
