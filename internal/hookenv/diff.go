package hookenv

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Original은 hook-env가 처음 건드리기 전 변수 상태다.
type Original struct {
	Had   bool   `json:"had"`
	Value string `json:"orig,omitempty"`
}

// Diff는 마지막 hook-env 실행이 세션에 적용한 변경 기록이다.
// __MISE_DIFF 변수에 인코딩되어 셸과 함께 살아간다.
type Diff struct {
	Keys map[string]Original `json:"keys,omitempty"`
	Path []string            `json:"path,omitempty"`
}

// Empty는 기록된 변경이 없는지 확인한다.
func (d *Diff) Empty() bool {
	return d == nil || (len(d.Keys) == 0 && len(d.Path) == 0)
}

// Encode는 Diff를 셸 변수에 넣을 수 있는 base64(JSON) 문자열로 만든다.
func (d *Diff) Encode() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("hookenv.Encode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeDiff는 __MISE_DIFF 값을 해석한다. 빈 문자열은 빈 Diff다.
func DecodeDiff(s string) (*Diff, error) {
	d := &Diff{}
	if s == "" {
		return d, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hookenv.DecodeDiff: %w", err)
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("hookenv.DecodeDiff: %w", err)
	}
	return d, nil
}
