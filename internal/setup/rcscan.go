package setup

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/mise/internal/shell"
	"mvdan.cc/sh/v3/syntax"
)

// HasActivation은 rc 파일에 mise 활성화가 이미 들어 있는지 확인한다.
// 파일이 없으면 false다.
func HasActivation(shellName, rcPath string) bool {
	data, err := os.ReadFile(rcPath)
	if err != nil {
		return false
	}
	content := string(data)
	if strings.Contains(content, Marker) {
		return true
	}

	sh, err := shell.Get(shellName)
	if err == nil && (sh.Name() == "bash" || sh.Name() == "zsh") {
		if found, ok := posixActivates(content); ok {
			return found
		}
	}
	return lineActivates(content)
}

// posixActivates는 rc 파일을 파싱해 `mise activate` 호출을 찾는다.
// 두 번째 반환값은 파싱 성공 여부다.
func posixActivates(content string) (bool, bool) {
	f, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(content), "")
	if err != nil {
		return false, false
	}
	found := false
	syntax.Walk(f, func(node syntax.Node) bool {
		if found {
			return false
		}
		call, ok := node.(*syntax.CallExpr)
		if !ok || len(call.Args) < 2 {
			return true
		}
		name := call.Args[0].Lit()
		if name != "" && filepath.Base(name) == "mise" && call.Args[1].Lit() == "activate" {
			found = true
			return false
		}
		return true
	})
	return found, true
}

// lineActivates는 주석이 아닌 줄에서 "mise activate"를 찾는다.
func lineActivates(content string) bool {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "mise activate") {
			return true
		}
	}
	return false
}
