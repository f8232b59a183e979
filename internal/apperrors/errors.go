package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an entry with the same reference already exists for a date.
var ErrDuplicate = errors.New("duplicate reference detected")

// ErrPeriodLocked indicates an attempted write against a closed accounting period.
var ErrPeriodLocked = errors.New("period is closed")

// ErrUnbalanced indicates that a journal entry's debits and credits do not balance.
var ErrUnbalanced = errors.New("journal entry does not balance")

// ErrUnsupportedDocType indicates a document type with no mapping template.
var ErrUnsupportedDocType = errors.New("unsupported document type")
