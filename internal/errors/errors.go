// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ErrCampaignNotFound is a sentinel error for unknown campaign ids.
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ValidationError reports required fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func NewValidation(fields ...string) error {
	return &ValidationError{Fields: fields}
}

// StorageError wraps filesystem or database failures from the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
