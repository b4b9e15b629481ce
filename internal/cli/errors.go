package cli

import (
	"errors"

	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/shell"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrUnknownShell는 지원하지 않는 셸 이름일 때의 sentinel error다.
	ErrUnknownShell = shell.ErrUnknownShell
	// ErrInvalidKey는 환경변수 이름이 잘못되었을 때의 sentinel error다.
	ErrInvalidKey = shell.ErrInvalidKey
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)

// ErrNotActivated는 활성화된 셸 세션이 필요한 명령을 그 밖에서 실행했을 때의 sentinel error다.
var ErrNotActivated = errors.New("mise가 활성화되지 않은 셸입니다")
