package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	var illegal *IllegalTransitionError
	if errors.As(err, &illegal) {
		return http.StatusConflict
	}

	var ineligible *RefundIneligibleError
	if errors.As(err, &ineligible) {
		return http.StatusUnprocessableEntity
	}

	var gateway *GatewayError
	if errors.As(err, &gateway) {
		return http.StatusBadGateway
	}

	if errors.Is(err, ErrAuthenticity) {
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

// ErrAuthenticity marks an inbound payload whose origin could not be verified.
// Handlers reject it without touching any state.
var ErrAuthenticity = errors.New("payload authenticity could not be verified")

// ErrDuplicateDelivery marks a benign re-delivery of an already-applied event.
// Callers treat it as success and skip side effects.
var ErrDuplicateDelivery = errors.New("duplicate delivery, already applied")

// ErrCodeExhausted marks a unique-code generator that ran out of attempts.
var ErrCodeExhausted = errors.New("unique code generation attempts exhausted")

// IllegalTransitionError is raised when a status change violates the legal
// lifecycle path. It always signals a logic error in the caller, never a
// benign race, and is logged at error level.
type IllegalTransitionError struct {
	Entity  string
	From    string
	To      string
	Current string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition %s -> %s (current status %s)", e.Entity, e.From, e.To, e.Current)
}

func IllegalTransition(entity, from, to, current string) error {
	return &IllegalTransitionError{
		Entity:  entity,
		From:    from,
		To:      to,
		Current: current,
	}
}

// Closed set of reasons a refund can be declined. Surfaced to the caller verbatim.
const (
	RefundReasonNotPaid          = "NotPaid"
	RefundReasonAlreadyCompleted = "AlreadyCompleted"
	RefundReasonInProgress       = "RefundInProgress"
	RefundReasonPastCutoff       = "PastCutoff"
)

type RefundIneligibleError struct {
	Reason string
}

func (e *RefundIneligibleError) Error() string {
	return "refund ineligible: " + e.Reason
}

func RefundIneligible(reason string) error {
	return &RefundIneligibleError{Reason: reason}
}

// GatewayError wraps a transient failure from the external payment provider.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func Gateway(op string, err error) error {
	return &GatewayError{Op: op, Err: err}
}
