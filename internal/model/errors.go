package model

import "errors"

// Common errors used across the application
var (
	// Member errors
	ErrMemberNotFound = errors.New("member not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Assignment errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadyCheckedIn   = errors.New("member is already checked in for this game")

	// Check-in errors
	ErrInvalidPayload = errors.New("payload does not contain a member name")
)
