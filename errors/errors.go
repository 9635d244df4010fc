package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrChannelClosed           = fmt.Errorf("channel closed")
	ErrSendInterrupted         = fmt.Errorf("send interrupted")
	ErrAcceptInterrupted       = fmt.Errorf("accept interrupted")
	ErrConnectInterrupted      = fmt.Errorf("connect interrupted")
	ErrConnectRetriesExhausted = fmt.Errorf("connection retries exhausted")

	ErrInvalidConfig    = fmt.Errorf("invalid configuration")
	ErrInvalidArguments = fmt.Errorf("invalid arguments")
	ErrLaunchFailed     = fmt.Errorf("player process failed")
	ErrPlayerShutdown   = fmt.Errorf("player shut down")
	ErrExchangeFailed   = fmt.Errorf("exchange failed")
)

// Is and Join let callers use both these sentinels and stdlib errors
// without importing two packages named errors.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }
