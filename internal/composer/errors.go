package composer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPass is returned for a step naming no registered pass
	ErrUnknownPass = errors.New("unknown pass")
	// ErrInvalidStep is returned for a passes entry of the wrong shape
	ErrInvalidStep = errors.New("invalid pass entry")
)

// ConfigError reports a problem with one entry of a passes list
type ConfigError struct {
	// Pass is the pass name, empty when the entry had none
	Pass string
	// Line is the 1-indexed line of the entry in its config file, or 0
	Line int
	Err  error
}

func (e *ConfigError) Error() string {
	var where string
	if e.Line > 0 {
		where = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Pass == "" {
		return fmt.Sprintf("%s%v", where, e.Err)
	}
	return fmt.Sprintf("%spass %q: %v", where, e.Pass, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
