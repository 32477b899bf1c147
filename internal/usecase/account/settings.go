package account

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/repository"
)

// Scope selects which settings layer an update writes to.
type Scope string

const (
	ScopeUser Scope = "user"
	ScopeApp  Scope = "app"
)

// SettingKeys lists the keys UpdateSettings accepts.
var SettingKeys = []string{"multipleChoice", "matching", "formMatch", "wordThreshold", "progressTargetWords", "theme"}

// Settings resolves the active user's settings: the user's own layer over the
// app-wide layer over the defaults, key by key. Read failures fall back to
// the defaults.
func (s *Service) Settings(ctx context.Context) entity.Settings {
	resolved := s.appSettings(ctx).Apply(entity.DefaultSettings())

	user, ok, err := s.store.Get(ctx, repository.KeyCurrentUser)
	if err != nil {
		s.logger.WithError(err).Warn("read current user for settings")
		return resolved
	}
	if !ok || user == "" {
		return resolved
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("read user settings")
		return resolved
	}
	if acct, ok := users[user]; ok {
		resolved = acct.Settings.Apply(resolved)
	}
	return resolved
}

func (s *Service) appSettings(ctx context.Context) *entity.SettingsPatch {
	raw, ok, err := s.store.Get(ctx, repository.KeyAppSettings)
	if err != nil {
		s.logger.WithError(err).Warn("read app settings")
		return nil
	}
	if !ok {
		return nil
	}
	var patch entity.SettingsPatch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		s.logger.WithError(err).Warn("stored app settings are malformed, using defaults")
		return nil
	}
	return &patch
}

// UpdateSettings sets one key in the chosen layer.
func (s *Service) UpdateSettings(ctx context.Context, scope Scope, key, value string) error {
	switch scope {
	case ScopeUser:
		user, err := s.RequireLogin(ctx)
		if err != nil {
			return err
		}
		acct, err := s.Account(ctx, user)
		if err != nil {
			return err
		}
		if acct.Settings == nil {
			acct.Settings = &entity.SettingsPatch{}
		}
		if err := setKey(acct.Settings, key, value); err != nil {
			return err
		}
		return s.SaveAccount(ctx, user, acct)
	case ScopeApp:
		patch := s.appSettings(ctx)
		if patch == nil {
			patch = &entity.SettingsPatch{}
		}
		if err := setKey(patch, key, value); err != nil {
			return err
		}
		data, err := json.Marshal(patch)
		if err != nil {
			return fmt.Errorf("encode app settings: %w", err)
		}
		if err := s.store.Set(ctx, repository.KeyAppSettings, string(data)); err != nil {
			return fmt.Errorf("save app settings: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown scope %q", entity.ErrInvalidSetting, scope)
	}
}

func setKey(p *entity.SettingsPatch, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "multipleChoice", "matching", "formMatch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", entity.ErrInvalidSetting, key)
		}
		switch key {
		case "multipleChoice":
			p.MultipleChoice = entity.NewFlexBool(b)
		case "matching":
			p.Matching = entity.NewFlexBool(b)
		default:
			p.FormMatch = entity.NewFlexBool(b)
		}
	case "wordThreshold", "progressTargetWords":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", entity.ErrInvalidSetting, key)
		}
		v := entity.FlexInt(n)
		if key == "wordThreshold" {
			p.WordThreshold = &v
			p.ProgressTarget = nil
		} else {
			p.ProgressTargetWords = &v
		}
	case "theme":
		t, ok := entity.ParseTheme(value)
		if !ok {
			return fmt.Errorf("%w: unknown theme %q", entity.ErrInvalidSetting, value)
		}
		name := string(t)
		p.Theme = &name
	default:
		return fmt.Errorf("%w: unknown key %q", entity.ErrInvalidSetting, key)
	}
	return nil
}
