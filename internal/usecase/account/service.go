// Package account keeps user credentials, per-user progress, settings and the
// session resume state in the key-value store.
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/repository"
)

// Service is the session/account store.
type Service struct {
	store   repository.KeyValueStore
	session *entity.SessionState
	logger  logrus.FieldLogger

	// unreadable holds records of the last read that failed to decode. They
	// are written back untouched so one bad record never erases the others.
	unreadable map[string]json.RawMessage
}

// NewService constructs the account service around the shared session state.
func NewService(store repository.KeyValueStore, session *entity.SessionState, logger logrus.FieldLogger) *Service {
	return &Service{store: store, session: session, logger: logger}
}

// Signup creates an account and logs the new user in. An existing username
// is rejected with entity.ErrUserAlreadyExists and nothing is written.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if username == "" || password == "" {
		return entity.ErrMissingCredentials
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return entity.ErrUserAlreadyExists
	}
	if _, ok := s.unreadable[username]; ok {
		return entity.ErrUserAlreadyExists
	}

	users[username] = entity.NewUserAccount(password)
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}
	s.logger.WithField("user", username).Info("account created")
	return s.setCurrentUser(ctx, username)
}

// Login checks the credentials verbatim and makes username the active user.
func (s *Service) Login(ctx context.Context, username, password string) error {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)
	if username == "" || password == "" {
		return entity.ErrMissingCredentials
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	acct, ok := users[username]
	if !ok || acct.Password != password {
		return entity.ErrInvalidCredentials
	}
	return s.setCurrentUser(ctx, username)
}

func (s *Service) setCurrentUser(ctx context.Context, username string) error {
	if err := s.store.Set(ctx, repository.KeyCurrentUser, username); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	s.session.CurrentUser = username
	return nil
}

// Logout clears the active user and the session resume keys.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, repository.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.session.CurrentUser = ""
	s.session.Reset()
	return nil
}

// RequireLogin returns the active username or entity.ErrNotLoggedIn.
func (s *Service) RequireLogin(ctx context.Context) (string, error) {
	user, ok, err := s.store.Get(ctx, repository.KeyCurrentUser)
	if err != nil {
		return "", fmt.Errorf("read current user: %w", err)
	}
	if !ok || user == "" {
		return "", entity.ErrNotLoggedIn
	}
	s.session.CurrentUser = user
	return user, nil
}

// Account returns the stored account of username.
func (s *Service) Account(ctx context.Context, username string) (*entity.UserAccount, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	acct, ok := users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUserNotFound, username)
	}
	return acct, nil
}

// SaveAccount replaces the stored account of username.
func (s *Service) SaveAccount(ctx context.Context, username string, acct *entity.UserAccount) error {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	acct.Normalize()
	users[username] = acct
	return s.saveUsers(ctx, users)
}

// Usernames lists the stored accounts in sorted order.
func (s *Service) Usernames(ctx context.Context) ([]string, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Migrate folds legacy counters into the canonical schema and returns the
// usernames that changed.
func (s *Service) Migrate(ctx context.Context) ([]string, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	migrated := migrateUsers(users)
	if len(migrated) > 0 {
		if err := s.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		s.logger.WithField("users", migrated).Info("migrated stored accounts")
	}
	return migrated, nil
}

// loadUsers reads userData, migrating legacy accounts and writing them back once.
func (s *Service) loadUsers(ctx context.Context) (map[string]*entity.UserAccount, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	if migrated := migrateUsers(users); len(migrated) > 0 {
		if err := s.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		s.logger.WithField("users", migrated).Info("migrated stored accounts")
	}
	return users, nil
}

func (s *Service) readUsers(ctx context.Context) (map[string]*entity.UserAccount, error) {
	users := map[string]*entity.UserAccount{}
	s.unreadable = nil
	raw, ok, err := s.store.Get(ctx, repository.KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("read user data: %w", err)
	}
	if !ok {
		return users, nil
	}

	var records map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.WithError(err).Warn("stored user data is malformed, treating as empty")
		return users, nil
	}
	for name, rec := range records {
		var acct *entity.UserAccount
		if err := json.Unmarshal(rec, &acct); err != nil {
			s.logger.WithError(err).WithField("user", name).Warn("stored account is malformed, keeping it untouched")
			if s.unreadable == nil {
				s.unreadable = map[string]json.RawMessage{}
			}
			s.unreadable[name] = rec
			continue
		}
		if acct != nil {
			users[name] = acct
		}
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users map[string]*entity.UserAccount) error {
	records := make(map[string]json.RawMessage, len(users)+len(s.unreadable))
	for name, rec := range s.unreadable {
		records[name] = rec
	}
	for name, acct := range users {
		data, err := json.Marshal(acct)
		if err != nil {
			return fmt.Errorf("encode account %s: %w", name, err)
		}
		records[name] = data
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}
	if err := s.store.Set(ctx, repository.KeyUserData, string(data)); err != nil {
		return fmt.Errorf("save user data: %w", err)
	}
	return nil
}
