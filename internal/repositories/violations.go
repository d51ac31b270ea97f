package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ViolationKind classifies storage-layer constraint failures.
type ViolationKind string

const (
	ViolationUniqueness ViolationKind = "uniqueness"
	ViolationCheck      ViolationKind = "check"
	ViolationForeignKey ViolationKind = "foreign_key"
	ViolationNotNull    ViolationKind = "not_null"
)

// ConstraintViolation is a write rejected by the storage layer. Every
// mutating repository method surfaces constraint failures as this type, so
// callers can tell which rule failed without parsing driver errors.
type ConstraintViolation struct {
	Kind       ViolationKind
	Constraint string
	cause      error
}

func (v *ConstraintViolation) Error() string {
	if v.Constraint != "" {
		return fmt.Sprintf("%s violation on %s", v.Kind, v.Constraint)
	}
	return fmt.Sprintf("%s violation", v.Kind)
}

func (v *ConstraintViolation) Unwrap() error {
	return v.cause
}

// Postgres error codes for constraint violations (class 23)
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// translateConstraintError maps postgres and sqlite driver errors into the
// ConstraintViolation taxonomy. Errors that are not constraint failures are
// returned unchanged.
func translateConstraintError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return &ConstraintViolation{Kind: ViolationUniqueness, Constraint: pqErr.Constraint, cause: err}
		case pgCheckViolation:
			return &ConstraintViolation{Kind: ViolationCheck, Constraint: pqErr.Constraint, cause: err}
		case pgForeignKeyViolation:
			return &ConstraintViolation{Kind: ViolationForeignKey, Constraint: pqErr.Constraint, cause: err}
		case pgNotNullViolation:
			return &ConstraintViolation{Kind: ViolationNotNull, Constraint: pqErr.Column, cause: err}
		}
		return err
	}

	// SQLite (used by the test helper) reports constraints as message text
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &ConstraintViolation{Kind: ViolationUniqueness, Constraint: sqliteConstraintName(msg), cause: err}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &ConstraintViolation{Kind: ViolationCheck, Constraint: sqliteConstraintName(msg), cause: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &ConstraintViolation{Kind: ViolationForeignKey, cause: err}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &ConstraintViolation{Kind: ViolationNotNull, Constraint: sqliteConstraintName(msg), cause: err}
	}

	return err
}

func sqliteConstraintName(msg string) string {
	idx := strings.LastIndex(msg, "failed: ")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(msg[idx+len("failed: "):])
}

// IsConstraintViolation reports whether err is any constraint violation,
// returning it for inspection.
func IsConstraintViolation(err error) (*ConstraintViolation, bool) {
	var violation *ConstraintViolation
	if errors.As(err, &violation) {
		return violation, true
	}
	return nil, false
}

func isViolationOfKind(err error, kind ViolationKind) bool {
	violation, ok := IsConstraintViolation(err)
	return ok && violation.Kind == kind
}

func IsUniquenessViolation(err error) bool {
	return isViolationOfKind(err, ViolationUniqueness)
}

func IsCheckViolation(err error) bool {
	return isViolationOfKind(err, ViolationCheck)
}

func IsForeignKeyViolation(err error) bool {
	return isViolationOfKind(err, ViolationForeignKey)
}

func IsNotNullViolation(err error) bool {
	return isViolationOfKind(err, ViolationNotNull)
}
