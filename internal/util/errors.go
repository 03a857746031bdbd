package util

import "fmt"

// WrapWithOp wraps an error with operation context
func WrapWithOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
