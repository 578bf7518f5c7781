package pipeline

import "errors"

// Sentinel errors for external formatter runs. None of them escapes
// Dispatcher.FormatBlock: they classify the warning logged before the block
// falls back to its original content.
var (
	ErrToolNotFound  = errors.New("code formatter not found")
	ErrToolFailed    = errors.New("code formatter failed")
	ErrToolIO        = errors.New("code formatter I/O error")
	ErrToolTimeout   = errors.New("code formatter timed out")
	ErrInvalidOutput = errors.New("code formatter output is not valid UTF-8")
)
