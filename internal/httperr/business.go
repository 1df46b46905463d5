package httperr

import (
	"errors"
	"fmt"
	"strings"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Workflow errors
// ===============================

// CapacityExceededError rejects an assignment against a technician that
// already holds the maximum number of active appointments. Current and
// Limit are surfaced so the caller can pick another technician.
type CapacityExceededError struct {
	Current int
	Limit   int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity_exceeded: %d/%d active appointments", e.Current, e.Limit)
}

func CapacityExceeded(current, limit int) error {
	return CapacityExceededError{Current: current, Limit: limit}
}

func AsCapacityExceeded(err error) (CapacityExceededError, bool) {
	var ce CapacityExceededError
	ok := errors.As(err, &ce)
	return ce, ok
}

// InvalidStateError rejects a workflow operation invoked against an
// appointment that is not in a required source state.
type InvalidStateError struct {
	Current  string
	Required []string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("invalid_state: current %q, required %s",
		e.Current, strings.Join(e.Required, "|"))
}

func InvalidState[S ~string](current S, required ...S) error {
	req := make([]string, 0, len(required))
	for _, r := range required {
		req = append(req, string(r))
	}
	return InvalidStateError{Current: string(current), Required: req}
}

func AsInvalidState(err error) (InvalidStateError, bool) {
	var ie InvalidStateError
	ok := errors.As(err, &ie)
	return ie, ok
}
