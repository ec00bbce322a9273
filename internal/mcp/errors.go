package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
)

// APIError is the error reported to MCP clients in a tool result.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, version.ErrVersionNotFound):
		return &APIError{Code: "VERSION_NOT_FOUND", Message: "version not found", RecoveryHint: "Call list_versions for valid ids"}
	case errors.Is(err, version.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "project_id and non-empty content are required"}
	case errors.Is(err, rule.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "rule must not be empty"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
