package domain

import "errors"

var (
	ErrNotFound      = errors.New("donation not found")
	ErrNotAvailable  = errors.New("donation is not available")
	ErrNotClaimed    = errors.New("donation is not claimed")
	ErrWrongCode     = errors.New("wrong pickup code")
	ErrNotOwner      = errors.New("not the donor of this donation")
	ErrNotClaimer    = errors.New("not the claimer of this donation")
	ErrNotVerified   = errors.New("food photo has not passed AI verification")
	ErrUserBanned    = errors.New("user is banned")
	ErrInvalidStatus = errors.New("invalid donation status")
)
