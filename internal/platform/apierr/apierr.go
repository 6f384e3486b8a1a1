package apierr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Code is the stable, caller-visible failure category.
type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeUserNotFound      Code = "user_not_found"
	CodePhotoNotFound     Code = "photo_not_found"
	CodeNotFound          Code = "not_found"
	CodeUnauthorized      Code = "unauthorized"
	CodeNotAuthenticated  Code = "not_authenticated"
	CodeDuplicateLogin    Code = "duplicate_login"
	CodeInvalidCredential Code = "invalid_credential"
	CodeInternal          Code = "internal"
)

type Error struct {
	Code    Code
	Op      string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	op := strings.TrimSpace(e.Op)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s", op, msg)
	case msg != "":
		return msg
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, op, message string, cause error) *Error {
	return &Error{Code: code, Op: strings.TrimSpace(op), Message: strings.TrimSpace(message), Cause: cause}
}

// Validation reports a missing or malformed input field.
func Validation(op, field, message string) *Error {
	e := New(CodeValidation, op, message, nil)
	e.Field = field
	return e
}

func UserNotFound(op string, id fmt.Stringer) *Error {
	return New(CodeUserNotFound, op, fmt.Sprintf("user %s not found", id), nil)
}

func PhotoNotFound(op string, id fmt.Stringer) *Error {
	return New(CodePhotoNotFound, op, fmt.Sprintf("photo %s not found", id), nil)
}

func Unauthorized(op, message string) *Error {
	return New(CodeUnauthorized, op, message, nil)
}

func NotAuthenticated(op string) *Error {
	return New(CodeNotAuthenticated, op, "no active session", nil)
}

func DuplicateLogin(op, loginName string) *Error {
	e := New(CodeDuplicateLogin, op, fmt.Sprintf("login name %q already exists", loginName), nil)
	e.Field = "login_name"
	return e
}

// InvalidCredential never says which of login name or password was wrong.
func InvalidCredential(op string) *Error {
	return New(CodeInvalidCredential, op, "invalid login name or password", nil)
}

func Internal(op string, cause error) *Error {
	return New(CodeInternal, op, "", cause)
}

// CodeOf extracts the code, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsUniqueViolation recognizes duplicate-key failures from postgres, sqlite and gorm's translator.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}

// FromStore keeps typed errors and classifies everything else as internal.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return New(CodeInternal, op, "request cancelled", err)
	}
	return Internal(op, err)
}

// Status maps a code to the HTTP status used at the API boundary.
func Status(code Code) int {
	switch code {
	case CodeValidation, CodeUserNotFound, CodeNotAuthenticated, CodeInvalidCredential:
		return http.StatusBadRequest
	case CodePhotoNotFound, CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeDuplicateLogin:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
