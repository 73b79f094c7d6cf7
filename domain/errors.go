package domain

import "errors"

type ErrorCode string

const (
	CodeValidation        ErrorCode = "validation"
	CodeDuplicateRelation ErrorCode = "duplicate_relation"
	CodeRelationNotFound  ErrorCode = "relation_not_found"
	CodeSelfReference     ErrorCode = "self_reference"
	CodeNotFound          ErrorCode = "not_found"
	CodePermissionDenied  ErrorCode = "permission_denied"
	CodeUnauthorized      ErrorCode = "unauthorized"
)

// Error is an expected, caller-recoverable failure. Anything that is not an
// *Error reaching the boundary is a server fault.
type Error struct {
	Code    ErrorCode
	Field   string
	Message string

	category bool
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Is lets errors.Is match any error against the category sentinel of its code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.category && t.Code == e.Code
}

func newCategory(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, category: true}
}

func NewError(code ErrorCode, field, message string) error {
	return &Error{Code: code, Field: field, Message: message}
}

func NewValidationError(field, message string) error {
	return NewError(CodeValidation, field, message)
}

func NewNotFoundError(message string) error {
	return NewError(CodeNotFound, "", message)
}

func NewPermissionDeniedError(message string) error {
	return NewError(CodePermissionDenied, "", message)
}

func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// Category sentinels.
var (
	ErrValidation             = newCategory(CodeValidation, "invalid input")
	ErrDuplicateRelation      = newCategory(CodeDuplicateRelation, "relation already exists")
	ErrRelationNotFound       = newCategory(CodeRelationNotFound, "relation does not exist")
	ErrSelfReferenceForbidden = newCategory(CodeSelfReference, "cannot reference yourself")
	ErrNotFound               = newCategory(CodeNotFound, "not found")
	ErrPermissionDenied       = newCategory(CodePermissionDenied, "permission denied")
	ErrUnauthorized           = newCategory(CodeUnauthorized, "authentication credentials were not provided")
)
