// Package apperr holds the error taxonomy shared by the scheduling core,
// the repositories and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindInvalidSchedule       Kind = "INVALID_SCHEDULE"
	KindInvalidTime           Kind = "INVALID_TIME"
	KindInvalidArgument       Kind = "INVALID_ARGUMENT"
	KindNotFound              Kind = "NOT_FOUND"
	KindConflict              Kind = "CONFLICT"
	KindRepositoryUnavailable Kind = "REPOSITORY_UNAVAILABLE"
)

// Error carries enough context (field, schedule, resource) for a caller to
// render a message without re-deriving it.
type Error struct {
	Kind       Kind
	Field      string
	ScheduleID string
	Resource   string
	ID         string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(e.Kind)))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Resource != "" {
		fmt.Fprintf(&b, " (%s", e.Resource)
		if e.ID != "" {
			fmt.Fprintf(&b, " %s", e.ID)
		}
		b.WriteString(")")
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " [field=%s]", e.Field)
	}
	if e.ScheduleID != "" {
		fmt.Fprintf(&b, " [schedule=%s]", e.ScheduleID)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so errors.Is(err, ErrNotFound) works for any NotFound.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidSchedule       = &Error{Kind: KindInvalidSchedule}
	ErrInvalidTime           = &Error{Kind: KindInvalidTime}
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
	ErrRepositoryUnavailable = &Error{Kind: KindRepositoryUnavailable}
)

func InvalidSchedule(scheduleID, field, msg string) *Error {
	return &Error{Kind: KindInvalidSchedule, ScheduleID: scheduleID, Field: field, Message: msg}
}

func InvalidTime(field string, value int) *Error {
	return &Error{Kind: KindInvalidTime, Field: field, Message: fmt.Sprintf("%s out of range: %d", field, value)}
}

func InvalidArgument(field, msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Field: field, Message: msg}
}

func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, ID: id, Message: "not found"}
}

func Conflict(resource, id, msg string) *Error {
	return &Error{Kind: KindConflict, Resource: resource, ID: id, Message: msg}
}

func Unavailable(op string, err error) *Error {
	return &Error{Kind: KindRepositoryUnavailable, Message: op, Err: err}
}

// WithSchedule returns a copy of err tagged with scheduleID when err is an
// *Error without one; other errors are returned unchanged.
func WithSchedule(err error, scheduleID string) error {
	var e *Error
	if !errors.As(err, &e) || e.ScheduleID != "" {
		return err
	}
	cp := *e
	cp.ScheduleID = scheduleID
	return &cp
}

// HTTPStatus maps an error onto a response status.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
	switch e.Kind {
	case KindInvalidSchedule, KindInvalidTime, KindInvalidArgument:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindRepositoryUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
