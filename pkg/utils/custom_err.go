package utils

import "errors"

var (
	ErrCommunityNotFound = errors.New("community not found")
	ErrCommunityExists   = errors.New("community slug already exists")
	ErrSessionMismatch   = errors.New("checkout session reference mismatch")
	ErrSessionUnpaid     = errors.New("checkout session not paid")
	ErrSpaceMismatch     = errors.New("space id does not match community")
	ErrUnknownPrice      = errors.New("price does not match a configured plan")
	ErrPlanNotOffered    = errors.New("plan not offered")
	ErrSpaceUnavailable  = errors.New("space not resolvable on platform")
	ErrMemberAccess      = errors.New("no platform membership")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDatabaseError     = errors.New("database error")
)
