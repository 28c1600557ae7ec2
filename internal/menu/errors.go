package menu

import (
	"errors"
	"fmt"
)

// ErrContract marks programming errors such as inserting an unsupported entry
// into a menu. Operations that detect one panic with a *ContractError.
var ErrContract = errors.New("menu contract violation")

// ContractError describes a rejected tree mutation.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrContract, e.Op, e.Reason)
}

func (e *ContractError) Unwrap() error { return ErrContract }

func violate(op, reason string) {
	panic(&ContractError{Op: op, Reason: reason})
}
