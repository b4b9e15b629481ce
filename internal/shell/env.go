package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidKey는 환경변수 이름이 식별자 규칙을 벗어날 때의 sentinel error다.
var ErrInvalidKey = errors.New("invalid environment variable name")

// Kind는 환경변수 변경 종류다.
type Kind int

const (
	// KindSet은 값을 그대로 설정한다.
	KindSet Kind = iota
	// KindPrepend는 값을 경로 구분자와 함께 현재 값 앞에 붙인다.
	KindPrepend
	// KindUnset은 변수를 제거한다.
	KindUnset
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindPrepend:
		return "prepend"
	case KindUnset:
		return "unset"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mutation은 환경변수 변경 하나다.
type Mutation struct {
	Key   string
	Value string
	Kind  Kind
}

// Set은 KindSet Mutation을 만든다.
func Set(key, value string) Mutation { return Mutation{Key: key, Value: value, Kind: KindSet} }

// Prepend는 KindPrepend Mutation을 만든다.
func Prepend(key, value string) Mutation {
	return Mutation{Key: key, Value: value, Kind: KindPrepend}
}

// Unset은 KindUnset Mutation을 만든다.
func Unset(key string) Mutation { return Mutation{Key: key, Kind: KindUnset} }

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateKey는 key가 모든 셸에서 그대로 쓸 수 있는 식별자인지 확인한다.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("shell.ValidateKey: %w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Render는 mutations를 sh 문법으로 한 줄씩 출력한다.
// key 검증을 먼저 모두 끝내므로, 실패하면 스크립트는 한 줄도 만들어지지 않는다.
func Render(sh Shell, mutations []Mutation) (string, error) {
	for _, m := range mutations {
		if err := ValidateKey(m.Key); err != nil {
			return "", err
		}
	}
	var b strings.Builder
	for _, m := range mutations {
		switch m.Kind {
		case KindSet:
			b.WriteString(sh.SetEnv(m.Key, m.Value))
		case KindPrepend:
			b.WriteString(sh.PrependEnv(m.Key, m.Value))
		case KindUnset:
			b.WriteString(sh.UnsetEnv(m.Key))
		default:
			return "", fmt.Errorf("shell.Render: 알 수 없는 mutation 종류: %s", m.Kind)
		}
	}
	return b.String(), nil
}

func validKey(key string) bool {
	return keyPattern.MatchString(key)
}
