package errors

import (
	"fmt"
)

// Wrap annotates err with message, keeping it matchable with errors.Is/As.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
