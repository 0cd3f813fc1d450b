package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique-index violation. The
// emp_id generator and the serial-number assigner both treat this as "lost
// the race, retry with the next candidate".
//
// TranslateError maps driver errors to gorm.ErrDuplicatedKey for postgres;
// the string checks cover the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
