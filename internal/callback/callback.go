// Package callback defines the typed actions carried by prompt affordances.
// The wire form is a compact delimited tag; it is parsed and validated once
// here, before any identifier reaches business logic.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Kind string

const (
	// KindSelfReport is a member's own present/absent reply.
	KindSelfReport Kind = "report"
	// KindEditRequest is a reviewer picking one roster position to edit.
	KindEditRequest Kind = "edit"
	// KindSetStatus is a reviewer setting one member's status directly.
	KindSetStatus Kind = "set"
	// KindConfirmAll commits every resolved record of an occurrence.
	KindConfirmAll Kind = "confirm"
)

var (
	ErrUnknownAction = errors.New("unknown action tag")
	ErrMalformed     = errors.New("malformed action payload")
)

type Action struct {
	Kind      Kind   `validate:"required,oneof=report edit set confirm"`
	Status    string `validate:"omitempty,oneof=present absent"`
	StudentID uint   `validate:"omitempty,min=1"`
	SubjectID uint   `validate:"required,min=1"`
	Position  int    `validate:"omitempty,min=1"`
	ClassTime time.Time
}

var validate = validator.New()

// Encode renders the wire form:
//
//	report:<status>:<subject>:<student>
//	edit:<position>:<subject>:<unix>
//	set:<status>:<student>:<subject>:<unix>
//	confirm:<subject>:<unix>
func (a Action) Encode() string {
	switch a.Kind {
	case KindSelfReport:
		return fmt.Sprintf("report:%s:%d:%d", a.Status, a.SubjectID, a.StudentID)
	case KindEditRequest:
		return fmt.Sprintf("edit:%d:%d:%d", a.Position, a.SubjectID, a.ClassTime.Unix())
	case KindSetStatus:
		return fmt.Sprintf("set:%s:%d:%d:%d", a.Status, a.StudentID, a.SubjectID, a.ClassTime.Unix())
	case KindConfirmAll:
		return fmt.Sprintf("confirm:%d:%d", a.SubjectID, a.ClassTime.Unix())
	}
	return ""
}

func Parse(data string) (Action, error) {
	parts := strings.Split(data, ":")
	var a Action
	var err error
	switch Kind(parts[0]) {
	case KindSelfReport:
		if len(parts) != 4 {
			return a, ErrMalformed
		}
		a.Kind = KindSelfReport
		a.Status = parts[1]
		if a.SubjectID, err = parseID(parts[2]); err != nil {
			return a, err
		}
		if a.StudentID, err = parseID(parts[3]); err != nil {
			return a, err
		}
		if a.Status == "" || a.StudentID == 0 {
			return a, ErrMalformed
		}
	case KindEditRequest:
		if len(parts) != 4 {
			return a, ErrMalformed
		}
		a.Kind = KindEditRequest
		if a.Position, err = strconv.Atoi(parts[1]); err != nil {
			return a, ErrMalformed
		}
		if a.SubjectID, err = parseID(parts[2]); err != nil {
			return a, err
		}
		if a.ClassTime, err = parseUnix(parts[3]); err != nil {
			return a, err
		}
		if a.Position < 1 {
			return a, ErrMalformed
		}
	case KindSetStatus:
		if len(parts) != 5 {
			return a, ErrMalformed
		}
		a.Kind = KindSetStatus
		a.Status = parts[1]
		if a.StudentID, err = parseID(parts[2]); err != nil {
			return a, err
		}
		if a.SubjectID, err = parseID(parts[3]); err != nil {
			return a, err
		}
		if a.ClassTime, err = parseUnix(parts[4]); err != nil {
			return a, err
		}
		if a.Status == "" || a.StudentID == 0 {
			return a, ErrMalformed
		}
	case KindConfirmAll:
		if len(parts) != 3 {
			return a, ErrMalformed
		}
		a.Kind = KindConfirmAll
		if a.SubjectID, err = parseID(parts[1]); err != nil {
			return a, err
		}
		if a.ClassTime, err = parseUnix(parts[2]); err != nil {
			return a, err
		}
	default:
		return a, ErrUnknownAction
	}

	if err := validate.Struct(a); err != nil {
		return a, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return a, nil
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, ErrMalformed
	}
	return uint(n), nil
}

func parseUnix(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}, ErrMalformed
	}
	return time.Unix(n, 0).UTC(), nil
}
