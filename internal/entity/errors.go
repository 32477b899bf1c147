package entity

import "errors"

// Domain errors for accounts, the word corpus and quiz rounds.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already taken")
	ErrMissingCredentials = errors.New("please fill in both fields")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("not logged in")

	ErrCorpusUnavailable = errors.New("word corpus unavailable")
	ErrCorpusMalformed   = errors.New("word corpus malformed")

	ErrNoFormatsEnabled  = errors.New("no question types enabled in settings")
	ErrInvalidTask       = errors.New("could not find the current word")
	ErrAnswerPending     = errors.New("answer the current question first")
	ErrNotAwaitingAnswer = errors.New("no question is waiting for an answer")
	ErrInvalidSelection  = errors.New("invalid selection")

	ErrInvalidSetting    = errors.New("invalid setting")
	ErrUnsupportedDriver = errors.New("unsupported store driver")
)
