package repository

import "context"

// Keys of the persistent key-value store.
const (
	KeyCurrentUser      = "currentUser"
	KeyUserData         = "userData"
	KeyAppSettings      = "appSettings"
	KeyChallengeStarted = "challengeStarted"
	KeyStepIndex        = "stepIndex"
	KeyWordIndex        = "wordIndex"
	KeyCurrentWord      = "currentWord"
)

// SessionKeys are removed on logout.
var SessionKeys = []string{KeyCurrentUser, KeyChallengeStarted, KeyStepIndex, KeyWordIndex, KeyCurrentWord}

// KeyValueStore abstracts the string key-value persistence the application
// keeps its state in, so usecases stay storage agnostic.
type KeyValueStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}
