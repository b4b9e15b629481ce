package cli

import (
	"errors"
)

// ExitCode는 mise의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitUnknownShell는 지원하지 않는 셸이다.
	ExitUnknownShell ExitCode = 2
	// ExitInvalidKey는 잘못된 환경변수 이름이다.
	ExitInvalidKey ExitCode = 3
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrUnknownShell):
		return ExitUnknownShell
	case errors.Is(err, ErrInvalidKey):
		return ExitInvalidKey
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
