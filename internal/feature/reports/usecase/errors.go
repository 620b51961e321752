// Package usecase implements the business logic for the reports feature.
package usecase

import "errors"

var (
	// ErrUnknownView is returned when a view name does not match any report view.
	ErrUnknownView = errors.New("unknown report view")

	// ErrRetrieval is returned when the company documents could not be fetched.
	// No partial result accompanies it.
	ErrRetrieval = errors.New("failed to retrieve companies")
)
