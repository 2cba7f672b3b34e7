package gles

import "github.com/1broseidon/wlframe/internal/platform"

// glClientWaitSync return values.
const (
	glAlreadySignaled    = 0x911A
	glTimeoutExpired     = 0x911B
	glConditionSatisfied = 0x911C
	glWaitFailed         = 0x911D
)

func waitResult(code uint32) platform.WaitResult {
	switch code {
	case glAlreadySignaled:
		return platform.WaitAlreadySignaled
	case glConditionSatisfied:
		return platform.WaitConditionSatisfied
	case glTimeoutExpired:
		return platform.WaitTimeoutExpired
	default:
		return platform.WaitFailed
	}
}
