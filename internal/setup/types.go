package setup

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunShellSelect는 셸 선택 UI를 표시한다. detected가 기본 선택값이다.
	RunShellSelect(names []string, detected string) (string, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}

// Result는 setup 한 번의 결과다.
type Result struct {
	Shell  string
	RCPath string
	// Installed가 false면 이미 설치되어 있었거나 사용자가 취소한 것이다.
	Installed bool
	// AlreadyPresent는 rc 파일에 활성화 줄이 이미 있었는지 여부다.
	AlreadyPresent bool
}
