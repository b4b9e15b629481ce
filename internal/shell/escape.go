package shell

import (
	"fmt"
	"strings"
)

// 모든 escape 함수는 따옴표 "안쪽"에 들어갈 문자열을 반환한다.
// 따옴표로 감싸는 것은 항상 호출자(Quote) 몫이다.

// escapePosix는 bash/zsh single quote literal용이다.
// single quote 안에서는 ' 외에 특수 문자가 없으므로 '를 닫고 \'로 넣은 뒤 다시 연다.
func escapePosix(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	return strings.ReplaceAll(s, "'", `'\''`)
}

var fishReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// escapeFish는 fish single quote literal용이다. \\ 와 \' 만 해석된다.
func escapeFish(s string) string {
	if !strings.ContainsAny(s, `\'`) {
		return s
	}
	return fishReplacer.Replace(s)
}

// pwshSpecial은 PowerShell double quote literal 안에서 의미가 있는 문자다.
// U+201C, U+201D, U+201E는 PowerShell이 " 로 취급한다.
const pwshSpecial = "`\"$\t\n\r\x00“”„"

// escapePwsh는 PowerShell double quote literal용이다.
// 제어 문자는 backtick 시퀀스로, backtick/따옴표/$ 는 backtick을 앞에 붙인다.
func escapePwsh(s string) string {
	if !strings.ContainsAny(s, pwshSpecial) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteString("`t")
		case '\n':
			b.WriteString("`n")
		case '\r':
			b.WriteString("`r")
		case 0:
			b.WriteString("`0")
		case '`', '"', '$', '“', '”', '„':
			b.WriteByte('`')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapePwshBraced는 ${Env:...} 형태의 변수 이름 안쪽용이다.
func escapePwshBraced(s string) string {
	if !strings.ContainsAny(s, "`{}") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '`' || r == '{' || r == '}' {
			b.WriteByte('`')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapePython은 xonsh(Python) single quote literal용이다.
func escapePython(s string) string {
	clean := true
	for _, r := range s {
		if r == '\\' || r == '\'' || r < 0x20 || r == 0x7f {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\'':
			b.WriteString(`\'`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
