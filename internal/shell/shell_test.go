package shell_test

import (
	"strings"
	"testing"

	"github.com/hbjs97/mise/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExe = "/some/dir/mise"

func testOpts() shell.ActivateOptions {
	return shell.ActivateOptions{Exe: testExe, Flags: " --status"}
}

func TestGet_KnownShells(t *testing.T) {
	for _, name := range []string{"bash", "zsh", "fish", "pwsh", "xonsh"} {
		sh, err := shell.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sh.Name())
	}
}

func TestGet_PowershellAlias(t *testing.T) {
	sh, err := shell.Get("PowerShell")
	require.NoError(t, err)
	assert.Equal(t, "pwsh", sh.Name())
}

func TestGet_Unknown(t *testing.T) {
	sh, err := shell.Get("tcsh")
	assert.Nil(t, sh)
	assert.ErrorIs(t, err, shell.ErrUnknownShell)
	assert.Contains(t, err.Error(), "tcsh")
}

func TestNames_ExcludesAliases(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "pwsh", "xonsh", "zsh"}, shell.Names())
}

func TestSetEnv_Posix(t *testing.T) {
	assert.Equal(t, "export FOO='1'\n", shell.Bash{}.SetEnv("FOO", "1"))
	assert.Equal(t, "export FOO='1'\n", shell.Zsh{}.SetEnv("FOO", "1"))
}

func TestSetEnv_Pwsh(t *testing.T) {
	assert.Equal(t, "$Env:FOO = \"1\"\n", shell.Pwsh{}.SetEnv("FOO", "1"))
}

func TestSetEnv_Fish(t *testing.T) {
	assert.Equal(t, "set -gx FOO '1'\n", shell.Fish{}.SetEnv("FOO", "1"))
}

func TestSetEnv_Xonsh(t *testing.T) {
	assert.Equal(t, "${...}['FOO'] = '1'\n", shell.Xonsh{}.SetEnv("FOO", "1"))
}

func TestSetEnv_QuotesHostileValue(t *testing.T) {
	out := shell.Bash{}.SetEnv("FOO", "'; rm -rf ~; echo '")
	assert.Equal(t, `export FOO=''\''; rm -rf ~; echo '\'''`+"\n", out)
}

func TestSetEnv_PosixInvalidKeyIsRejected(t *testing.T) {
	out := shell.Bash{}.SetEnv("A;B", "x")
	assert.Equal(t, "printf 'mise: invalid environment variable name: %s\\n' 'A;B' >&2; false\n", out)
	assert.NotContains(t, out, "export")
	assert.NotContains(t, shell.Zsh{}.PrependEnv("PATH=/tmp", "x"), "export")
}

func TestSetEnv_PwshInvalidKeyIsBraced(t *testing.T) {
	out := shell.Pwsh{}.SetEnv("A}B", "x")
	assert.Equal(t, "${Env:A`}B} = \"x\"\n", out)
}

func TestPrependEnv_Posix(t *testing.T) {
	out := shell.Bash{}.PrependEnv("PATH", "/some/dir:/2/dir")
	assert.Equal(t, "export PATH='/some/dir:/2/dir':\"${PATH-}\"\n", out)
}

func TestPrependEnv_Pwsh(t *testing.T) {
	out := shell.Pwsh{}.PrependEnv("PATH", "/some/dir:/2/dir")
	assert.Equal(t, "$Env:PATH = \"/some/dir:/2/dir\" + [IO.Path]::PathSeparator + $Env:PATH\n", out)
}

func TestPrependEnv_Fish(t *testing.T) {
	out := shell.Fish{}.PrependEnv("PATH", "/some/dir:/2/dir")
	assert.Equal(t, "set -gx PATH '/some/dir:/2/dir'':'\"$PATH\"\n", out)

	// 줄바꿈이 든 값도 한 literal로 남아야 한다.
	out = shell.Fish{}.PrependEnv("FOO", "a\nb")
	assert.Equal(t, "set -gx FOO 'a\nb'':'\"$FOO\"\n", out)
	assert.NotContains(t, out, "(")
}

func TestPrependEnv_Xonsh(t *testing.T) {
	out := shell.Xonsh{}.PrependEnv("PATH", "/some/dir")
	assert.Equal(t, "${...}['PATH'] = '/some/dir' + __import__('os').pathsep + ${...}.detype().get('PATH', '')\n", out)
}

func TestUnsetEnv(t *testing.T) {
	tests := []struct {
		sh   shell.Shell
		want string
	}{
		{shell.Bash{}, "unset FOO\n"},
		{shell.Zsh{}, "unset FOO\n"},
		{shell.Fish{}, "set -e FOO\n"},
		{shell.Pwsh{}, "Remove-Item -LiteralPath \"Env:FOO\" -ErrorAction SilentlyContinue\n"},
		{shell.Xonsh{}, "${...}.pop('FOO', None)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.sh.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sh.UnsetEnv("FOO"))
		})
	}
}

// delegationLines는 실행 파일을 직접 호출하는 줄만 골라낸다.
func delegationLines(sh shell.Shell, script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		switch sh.(type) {
		case shell.Pwsh:
			if strings.HasPrefix(trimmed, "& \"") || strings.HasPrefix(trimmed, "return & \"") {
				lines = append(lines, trimmed)
			}
		case shell.Xonsh:
			if strings.Contains(trimmed, "subprocess.run([") {
				lines = append(lines, trimmed)
			}
		default:
			if strings.HasPrefix(trimmed, "command ") || strings.Contains(trimmed, "$(command ") || strings.Contains(trimmed, "| source") {
				lines = append(lines, trimmed)
			}
		}
	}
	return lines
}

func TestActivate_ExeInEveryDelegation(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			out := sh.Activate(testOpts())

			lines := delegationLines(sh, out)
			require.NotEmpty(t, lines)
			for _, line := range lines {
				if sh.Name() == "xonsh" {
					// xonsh는 exe 변수를 한 번 정의하고 재사용한다.
					assert.True(t, strings.Contains(line, "[exe") || strings.Contains(line, "'"+testExe+"'"), line)
					continue
				}
				assert.Contains(t, line, testExe, line)
			}
		})
	}
}

func TestActivate_HookInvocationCarriesFlags(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			out := sh.Activate(testOpts())

			found := false
			for _, line := range strings.Split(out, "\n") {
				if !strings.Contains(line, "hook-env") {
					continue
				}
				found = true
				assert.Contains(t, line, testExe)
				assert.Contains(t, line, "--status")
				assert.Contains(t, line, "-s")
				assert.Contains(t, line, name)
			}
			assert.True(t, found, "hook-env 호출이 없다")
		})
	}
}

func TestActivate_SetsSessionMarkerAndPathSnapshot(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			out := sh.Activate(testOpts())
			assert.Contains(t, out, "MISE_SHELL")
			assert.Contains(t, out, "__MISE_ORIG_PATH")
			assert.Less(t, strings.Index(out, "MISE_SHELL"), strings.Index(out, "_mise"))
		})
	}
}

func TestActivate_NoHookEnvOmitsHook(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			opts := testOpts()
			opts.NoHookEnv = true
			out := sh.Activate(opts)
			assert.NotContains(t, out, "hook-env")
			assert.Contains(t, out, testExe)
		})
	}
}

func TestActivate_DeactivationFamilyIsEvaluated(t *testing.T) {
	assert.Contains(t, shell.Bash{}.Activate(testOpts()), "deactivate|shell|sh)")
	assert.Contains(t, shell.Bash{}.Activate(testOpts()), `eval "$(command '/some/dir/mise' "$__mise_command" "$@")"`)
	assert.Contains(t, shell.Fish{}.Activate(testOpts()), "case deactivate shell sh")
	assert.Contains(t, shell.Pwsh{}.Activate(testOpts()), "{ $_ -in 'deactivate', 'shell', 'sh' }")
	assert.Contains(t, shell.Pwsh{}.Activate(testOpts()), "| Out-String | Invoke-Expression")
	assert.Contains(t, shell.Xonsh{}.Activate(testOpts()), "if command in ('deactivate', 'shell', 'sh'):")
}

func TestActivate_WrapperRestoresExitStatusAfterHook(t *testing.T) {
	tests := []struct {
		sh            shell.Shell
		capture, hook string
		restore       string
	}{
		{shell.Bash{}, "local __mise_status=$?", "type -t _mise_hook", "return $__mise_status"},
		{shell.Zsh{}, "local __mise_status=$?", "${+functions[_mise_hook]}", "return $__mise_status"},
		{shell.Fish{}, "set -l __mise_status $status", "functions -q __mise_env_eval", "return $__mise_status"},
		{shell.Pwsh{}, "$status = $LASTEXITCODE", `Test-Path -Path Function:\_mise_hook`, "$global:LASTEXITCODE = $status"},
		{shell.Xonsh{}, "status = subprocess.run", "globals().get('_mise_hook')", "return status"},
	}
	for _, tt := range tests {
		t.Run(tt.sh.Name(), func(t *testing.T) {
			out := tt.sh.Activate(testOpts())
			capture := strings.Index(out, tt.capture)
			hook := strings.Index(out[capture+1:], tt.hook)
			restore := strings.Index(out[capture+1:], tt.restore)
			require.NotEqual(t, -1, capture)
			require.NotEqual(t, -1, hook)
			require.NotEqual(t, -1, restore)
			assert.Less(t, hook, restore)
		})
	}
}

func TestActivate_HelpIsDelegatedBeforeEvaluation(t *testing.T) {
	for _, name := range shell.Names() {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			out := sh.Activate(testOpts())
			help := strings.Index(out, "--help")
			deact := strings.Index(out, "deactivate")
			require.NotEqual(t, -1, help)
			assert.Less(t, help, deact)
		})
	}
}

func TestActivate_Zsh_RegistersBothTriggersWithGuard(t *testing.T) {
	out := shell.Zsh{}.Activate(testOpts())
	assert.Contains(t, out, "if (( ! ${precmd_functions[(I)_mise_hook]} )); then")
	assert.Contains(t, out, "precmd_functions=(_mise_hook ${precmd_functions[@]})")
	assert.Contains(t, out, "if (( ! ${chpwd_functions[(I)_mise_hook]} )); then")
	assert.Contains(t, out, "chpwd_functions=(_mise_hook ${chpwd_functions[@]})")
	assert.True(t, strings.HasSuffix(out, "_mise_hook\n"))
}

func TestActivate_Fish_RegistersBothTriggers(t *testing.T) {
	out := shell.Fish{}.Activate(testOpts())
	assert.Contains(t, out, "--on-event fish_prompt")
	assert.Contains(t, out, "--on-variable PWD")
	assert.Contains(t, out, "command '/some/dir/mise' hook-env --status -s fish | source")
	assert.True(t, strings.HasSuffix(out, "__mise_env_eval\n"))
}

func TestActivate_Pwsh_ChainsPreviousHooks(t *testing.T) {
	out := shell.Pwsh{}.Activate(testOpts())
	assert.Contains(t, out, "[Delegate]::Combine($global:__mise_pwsh_previous_chpwd_function, $_mise_chpwd_hook)")
	assert.Contains(t, out, "if (-not $global:__mise_pwsh_chpwd_hooked) {")
	assert.Contains(t, out, "if (-not $global:__mise_pwsh_previous_prompt_function) {")
	assert.Contains(t, out, "& $global:__mise_pwsh_previous_prompt_function")
	assert.Contains(t, out, "$MyInvocation.Statement.Substring($MyInvocation.OffsetInLine - 1)")
	assert.Contains(t, out, `& "/some/dir/mise" hook-env --status -s pwsh`)
}

func TestActivate_Xonsh_SplitsFlagsIntoArgs(t *testing.T) {
	out := shell.Xonsh{}.Activate(shell.ActivateOptions{Exe: testExe, Flags: " --status -q"})
	assert.Contains(t, out, "subprocess.run(['/some/dir/mise', 'hook-env', '--status', '-q', '-s', 'xonsh']")
	assert.Contains(t, out, "_mise_event.discard(_mise_handler)")
}

func TestActivate_QuotesExecutablePath(t *testing.T) {
	exe := "/opt/it's here/mise"
	assert.Contains(t, shell.Bash{}.Activate(shell.ActivateOptions{Exe: exe}), `command '/opt/it'\''s here/mise'`)
	assert.Contains(t, shell.Fish{}.Activate(shell.ActivateOptions{Exe: exe}), `command '/opt/it\'s here/mise'`)
	assert.Contains(t, shell.Pwsh{}.Activate(shell.ActivateOptions{Exe: `C:\$dir\mise.exe`}), "& \"C:\\`$dir\\mise.exe\"")
}

func TestDeactivate_RemovesEverythingActivateInstalls(t *testing.T) {
	removals := map[string][]string{
		"bash":  {"unset -f mise", "unset -f _mise_hook", `//";_mise_hook;"/";"}`, "unset __mise_bash_hooked", "unset MISE_SHELL", "unset __MISE_DIFF", "unset __MISE_WATCH", "unset __MISE_ORIG_PATH"},
		"zsh":   {"unfunction mise", "unfunction _mise_hook", "${precmd_functions:#_mise_hook}", "${chpwd_functions:#_mise_hook}", "unset MISE_SHELL", "unset __MISE_DIFF"},
		"fish":  {"functions --erase mise", "functions --erase __mise_env_eval", "functions --erase __mise_cd_hook", "set -e MISE_SHELL", "set -e __MISE_DIFF"},
		"pwsh":  {`Function:\mise`, `Function:\_mise_hook`, "LocationChangedAction = $global:__mise_pwsh_previous_chpwd_function", `Function:\global:prompt`, "Env:MISE_SHELL", "Env:__MISE_DIFF", "Env:__MISE_WATCH"},
		"xonsh": {"aliases.pop('mise', None)", "globals().pop('_mise_hook', None)", "_mise_event.discard", "'MISE_SHELL'", "'__MISE_DIFF'"},
	}
	for name, want := range removals {
		t.Run(name, func(t *testing.T) {
			sh, err := shell.Get(name)
			require.NoError(t, err)
			out := sh.Deactivate()
			for _, w := range want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestDeactivate_PwshIsNonFatal(t *testing.T) {
	for _, line := range strings.Split(strings.TrimSpace(shell.Pwsh{}.Deactivate()), "\n") {
		if strings.HasPrefix(line, "Remove-") {
			assert.Contains(t, line, "-ErrorAction SilentlyContinue", line)
		}
	}
}
