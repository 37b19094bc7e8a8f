package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Mission errors
	ErrMsgMissionNotFound   = "mission not found"
	ErrMsgMissionNotActive  = "mission is not in progress"
	ErrMsgMissionLocked     = "mission is locked"
	ErrMsgInvalidTransition = "invalid mission status transition"
	ErrMsgInvalidUnit       = "invalid unit type"
	ErrMsgInvalidQuantity   = "quantity must be a positive number"
	ErrMsgUnsupportedAction = "unsupported action"

	// Market errors
	ErrMsgSkinNotFound     = "skin not found"
	ErrMsgSkinNotOwned     = "skin is not owned"
	ErrMsgSkinAlreadyOwned = "skin is already owned"
	ErrMsgInsufficientXP   = "not enough XP"

	// Memo errors
	ErrMsgPlanNotFound = "plan not found"
	ErrMsgInvalidPlan  = "invalid plan"

	// Session errors
	ErrMsgUserNotFound = "user not found"
	ErrMsgNotLoggedIn  = "not logged in"

	// Remote endpoint errors
	ErrMsgAuthFailed        = "authentication failed"
	ErrMsgMalformedResponse = "unrecognized response format"
	ErrMsgUnavailable       = "remote endpoint unavailable"

	// Persistence errors
	ErrMsgStaleSnapshot    = "snapshot is older than the stored version"
	ErrMsgSnapshotNotFound = "no saved snapshot"
	ErrMsgDatabaseError    = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrMissionNotFound   = errors.New(ErrMsgMissionNotFound)
	ErrMissionNotActive  = errors.New(ErrMsgMissionNotActive)
	ErrMissionLocked     = errors.New(ErrMsgMissionLocked)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrInvalidUnit       = errors.New(ErrMsgInvalidUnit)
	ErrInvalidQuantity   = errors.New(ErrMsgInvalidQuantity)
	ErrUnsupportedAction = errors.New(ErrMsgUnsupportedAction)

	ErrSkinNotFound     = errors.New(ErrMsgSkinNotFound)
	ErrSkinNotOwned     = errors.New(ErrMsgSkinNotOwned)
	ErrSkinAlreadyOwned = errors.New(ErrMsgSkinAlreadyOwned)
	ErrInsufficientXP   = errors.New(ErrMsgInsufficientXP)

	ErrPlanNotFound = errors.New(ErrMsgPlanNotFound)
	ErrInvalidPlan  = errors.New(ErrMsgInvalidPlan)

	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
	ErrNotLoggedIn  = errors.New(ErrMsgNotLoggedIn)

	ErrAuthFailed        = errors.New(ErrMsgAuthFailed)
	ErrMalformedResponse = errors.New(ErrMsgMalformedResponse)
	ErrUnavailable       = errors.New(ErrMsgUnavailable)

	ErrStaleSnapshot    = errors.New(ErrMsgStaleSnapshot)
	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)
	ErrDatabaseError    = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
