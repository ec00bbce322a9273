package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidPayload indicates the imported dossier is not a JSON object.
	ErrInvalidPayload = errors.New("invalid dossier payload")
)
