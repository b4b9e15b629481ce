package shell

import (
	"fmt"
	"text/template"
)

// Pwsh는 PowerShell 스크립트 생성기다. literal은 double quote + backtick escape를 쓴다.
type Pwsh struct{}

var _ Shell = Pwsh{}

func (Pwsh) Name() string { return "pwsh" }

func (Pwsh) Escape(s string) string { return escapePwsh(s) }

func (Pwsh) Quote(s string) string { return `"` + escapePwsh(s) + `"` }

// envVar는 $Env:KEY 참조다. 식별자가 아니면 ${Env:...} 형태로 감싼다.
func (Pwsh) envVar(key string) string {
	if validKey(key) {
		return "$Env:" + key
	}
	return "${Env:" + escapePwshBraced(key) + "}"
}

func (p Pwsh) SetEnv(key, value string) string {
	return fmt.Sprintf("%s = %s\n", p.envVar(key), p.Quote(value))
}

func (p Pwsh) PrependEnv(key, value string) string {
	v := p.envVar(key)
	return fmt.Sprintf("%s = %s + [IO.Path]::PathSeparator + %s\n", v, p.Quote(value), v)
}

func (p Pwsh) UnsetEnv(key string) string {
	return fmt.Sprintf("Remove-Item -LiteralPath %s -ErrorAction SilentlyContinue\n", p.Quote("Env:"+key))
}

type pwshData struct {
	Exe   string
	Flags string
}

// pwshWrapper는 $MyInvocation에서 입력된 줄을 다시 파싱한다. PowerShell은 함수에
// 넘기기 전에 인자를 나눠 버려서 quote 정보가 사라지기 때문이다.
const pwshWrapper = `$env:MISE_SHELL = "pwsh"
if (-not (Test-Path -Path Env:__MISE_ORIG_PATH)) {
    $env:__MISE_ORIG_PATH = $env:PATH
}

function mise {
    $code = [System.Management.Automation.Language.Parser]::ParseInput($MyInvocation.Statement.Substring($MyInvocation.OffsetInLine - 1), [ref]$null, [ref]$null)
    $myLine = $code.Find({ $args[0].CommandElements }, $true).CommandElements | ForEach-Object { $_.ToString() } | Join-String -Separator ' '
    $command, [array]$arguments = Invoke-Expression ('Write-Output -- ' + $myLine)

    if ($null -eq $arguments) {
        & {{.Exe}}
        return
    }

    $command = $arguments[0]
    if ($arguments.Length -gt 1) {
        $arguments = $arguments[1..($arguments.Length - 1)]
    }
    else {
        $arguments = @()
    }

    if ($command -eq '--help' -or $arguments -contains '--help') {
        return & {{.Exe}} $command $arguments
    }

    switch ($command) {
        { $_ -in 'deactivate', 'shell', 'sh' } {
            if ($arguments -contains '-h') {
                & {{.Exe}} $command $arguments
            }
            else {
                & {{.Exe}} $command $arguments | Out-String | Invoke-Expression -ErrorAction SilentlyContinue
            }
        }
        default {
            & {{.Exe}} $command $arguments
            $status = $LASTEXITCODE
            if (Test-Path -Path Function:\_mise_hook) {
                _mise_hook
            }
            $global:LASTEXITCODE = $status
        }
    }
}
`

const pwshHook = `
function _mise_hook {
    if ($env:MISE_SHELL -eq "pwsh") {
        $previousExitCode = $global:LASTEXITCODE
        & {{.Exe}} hook-env{{.Flags}} -s pwsh | Out-String | Invoke-Expression -ErrorAction SilentlyContinue
        $global:LASTEXITCODE = $previousExitCode
    }
}

if (-not $global:__mise_pwsh_chpwd_hooked) {
    $global:__mise_pwsh_chpwd_hooked = $true
    $_mise_chpwd_hook = [EventHandler[System.Management.Automation.LocationChangedEventArgs]] {
        param([object] $source, [System.Management.Automation.LocationChangedEventArgs] $eventArgs)
        end {
            if (Test-Path -Path Function:\_mise_hook) {
                _mise_hook
            }
        }
    }
    $global:__mise_pwsh_previous_chpwd_function = $ExecutionContext.SessionState.InvokeCommand.LocationChangedAction
    if ($global:__mise_pwsh_previous_chpwd_function) {
        $ExecutionContext.SessionState.InvokeCommand.LocationChangedAction = [Delegate]::Combine($global:__mise_pwsh_previous_chpwd_function, $_mise_chpwd_hook)
    }
    else {
        $ExecutionContext.SessionState.InvokeCommand.LocationChangedAction = $_mise_chpwd_hook
    }
}

if (-not $global:__mise_pwsh_previous_prompt_function) {
    $global:__mise_pwsh_previous_prompt_function = $function:prompt
    function global:prompt {
        if (Test-Path -Path Function:\_mise_hook) {
            _mise_hook
        }
        & $global:__mise_pwsh_previous_prompt_function
    }
}

_mise_hook
`

var (
	pwshWrapperTmpl = template.Must(template.New("pwsh_wrapper").Parse(pwshWrapper))
	pwshHookTmpl    = template.Must(template.New("pwsh_hook").Parse(pwshHook))
)

func (p Pwsh) Activate(opts ActivateOptions) string {
	data := pwshData{Exe: p.Quote(opts.Exe), Flags: opts.Flags}
	out := execute(pwshWrapperTmpl, data)
	if !opts.NoHookEnv {
		out += execute(pwshHookTmpl, data)
	}
	return out
}

// Deactivate는 이전 LocationChangedAction과 prompt를 되돌린다. 이전 값이 없었으면
// LocationChangedAction은 $null로 비워진다.
func (Pwsh) Deactivate() string {
	return `if ($global:__mise_pwsh_chpwd_hooked) {
    $ExecutionContext.SessionState.InvokeCommand.LocationChangedAction = $global:__mise_pwsh_previous_chpwd_function
}
if ($global:__mise_pwsh_previous_prompt_function) {
    Set-Item -Path Function:\global:prompt -Value $global:__mise_pwsh_previous_prompt_function
}
Remove-Variable -Name __mise_pwsh_chpwd_hooked, __mise_pwsh_previous_chpwd_function, __mise_pwsh_previous_prompt_function -Scope Global -ErrorAction SilentlyContinue
Remove-Item -Path Function:\mise -ErrorAction SilentlyContinue
Remove-Item -Path Function:\_mise_hook -ErrorAction SilentlyContinue
Remove-Item -Path Env:MISE_SHELL -ErrorAction SilentlyContinue
Remove-Item -Path Env:__MISE_ORIG_PATH -ErrorAction SilentlyContinue
Remove-Item -Path Env:__MISE_DIFF -ErrorAction SilentlyContinue
Remove-Item -Path Env:__MISE_WATCH -ErrorAction SilentlyContinue
`
}
