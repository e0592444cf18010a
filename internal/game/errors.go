package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid game config")

// ProtocolError is the panic value for caller bugs: committing unplaceable
// cells, or driving gameplay before Start.
type ProtocolError struct {
	Op    string
	Phase Phase
	Msg   string
}

func (e *ProtocolError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("game: %s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("game: %s not allowed in phase %s", e.Op, e.Phase)
}
