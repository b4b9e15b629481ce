package shell

import (
	"fmt"
	"strings"
	"text/template"
)

// Xonsh는 xonsh 스크립트 생성기다. 환경은 ${...}, hook은 xonsh events로 다룬다.
type Xonsh struct{}

var _ Shell = Xonsh{}

func (Xonsh) Name() string { return "xonsh" }

func (Xonsh) Escape(s string) string { return escapePython(s) }

func (Xonsh) Quote(s string) string { return "'" + escapePython(s) + "'" }

func (x Xonsh) SetEnv(key, value string) string {
	return fmt.Sprintf("${...}[%s] = %s\n", x.Quote(key), x.Quote(value))
}

func (x Xonsh) PrependEnv(key, value string) string {
	k := x.Quote(key)
	return fmt.Sprintf("${...}[%s] = %s + __import__('os').pathsep + ${...}.detype().get(%s, '')\n", k, x.Quote(value), k)
}

func (x Xonsh) UnsetEnv(key string) string {
	return fmt.Sprintf("${...}.pop(%s, None)\n", x.Quote(key))
}

type xonshData struct {
	Exe      string
	FlagArgs string
}

const xonshWrapper = `import subprocess

${...}['MISE_SHELL'] = 'xonsh'
if '__MISE_ORIG_PATH' not in ${...}:
    ${...}['__MISE_ORIG_PATH'] = ${...}.detype().get('PATH', '')

def _mise(args):
    exe = {{.Exe}}
    if not args:
        return subprocess.run([exe]).returncode
    if '--help' in args:
        return subprocess.run([exe] + args).returncode
    command, rest = args[0], args[1:]
    if command in ('deactivate', 'shell', 'sh'):
        if '-h' in rest:
            return subprocess.run([exe] + args).returncode
        proc = subprocess.run([exe] + args, stdout=subprocess.PIPE, text=True)
        if proc.stdout:
            execx(proc.stdout)
        return proc.returncode
    status = subprocess.run([exe] + args).returncode
    hook = globals().get('_mise_hook')
    if hook is not None:
        hook()
    return status

aliases['mise'] = _mise
`

const xonshHook = `
def _mise_hook(**kwargs):
    proc = subprocess.run([{{.Exe}}, 'hook-env'{{.FlagArgs}}, '-s', 'xonsh'], stdout=subprocess.PIPE, text=True)
    if proc.stdout:
        execx(proc.stdout)

for _mise_event in (events.on_pre_prompt, events.on_chdir):
    for _mise_handler in [h for h in _mise_event if getattr(h, '__name__', '') == '_mise_hook']:
        _mise_event.discard(_mise_handler)
    _mise_event(_mise_hook)

_mise_hook()
`

var (
	xonshWrapperTmpl = template.Must(template.New("xonsh_wrapper").Parse(xonshWrapper))
	xonshHookTmpl    = template.Must(template.New("xonsh_hook").Parse(xonshHook))
)

// Activate는 opts.Flags를 공백으로 나눠 subprocess 인자 목록에 넣는다.
func (x Xonsh) Activate(opts ActivateOptions) string {
	var flagArgs strings.Builder
	for _, f := range strings.Fields(opts.Flags) {
		flagArgs.WriteString(", ")
		flagArgs.WriteString(x.Quote(f))
	}
	data := xonshData{Exe: x.Quote(opts.Exe), FlagArgs: flagArgs.String()}
	out := execute(xonshWrapperTmpl, data)
	if !opts.NoHookEnv {
		out += execute(xonshHookTmpl, data)
	}
	return out
}

func (Xonsh) Deactivate() string {
	return `for _mise_event in (events.on_pre_prompt, events.on_chdir):
    for _mise_handler in [h for h in _mise_event if getattr(h, '__name__', '') == '_mise_hook']:
        _mise_event.discard(_mise_handler)
aliases.pop('mise', None)
globals().pop('_mise_hook', None)
globals().pop('_mise', None)
for _mise_key in ('MISE_SHELL', '__MISE_ORIG_PATH', '__MISE_DIFF', '__MISE_WATCH'):
    ${...}.pop(_mise_key, None)
`
}
