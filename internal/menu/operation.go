package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperation is wrapped by ParseOperation for names outside the
// supported set.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation enumerates the capabilities a11yfy exposes.
type Operation int

const (
	OpMenu Operation = iota
	OpFocus
	OpShowAndFocus
	OpValidate
	OpTables
)

var operationNames = []string{
	OpMenu:         "menu",
	OpFocus:        "focus",
	OpShowAndFocus: "showAndFocus",
	OpValidate:     "validate",
	OpTables:       "tables",
}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

// Operations lists every supported operation.
func Operations() []Operation {
	return []Operation{OpMenu, OpFocus, OpShowAndFocus, OpValidate, OpTables}
}

// ParseOperation resolves an operation name, case-insensitively.
func ParseOperation(name string) (Operation, error) {
	trimmed := strings.TrimSpace(name)
	for _, op := range Operations() {
		if strings.EqualFold(op.String(), trimmed) {
			return op, nil
		}
	}
	return OpMenu, fmt.Errorf("%w: method %q does not exist on a11yfy", ErrUnknownOperation, name)
}
