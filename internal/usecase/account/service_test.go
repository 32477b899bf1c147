package account

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "github.com/bluemanta7/MantaMind/internal/adapter/repository"
	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/repository"
)

func newTestService(t *testing.T, seed map[string]string) (*Service, *adapterrepo.MemoryStore) {
	t.Helper()
	store := adapterrepo.NewMemoryStore()
	for k, v := range seed {
		require.NoError(t, store.Set(context.Background(), k, v))
	}
	logger, _ := test.NewNullLogger()
	return NewService(store, &entity.SessionState{}, logger), store
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil)

	require.NoError(t, svc.Signup(ctx, "  ada ", " secret "))

	user, err := svc.RequireLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", user)

	acct, err := svc.Account(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "secret", acct.Password)
	assert.Empty(t, acct.LearnedWords)
	assert.Zero(t, acct.BestStreak)

	raw, _, _ := store.Get(ctx, repository.KeyUserData)
	assert.JSONEq(t, `{"ada":{"password":"secret","learnedWords":[],"inProgressWords":[],"wordStreaks":{},"currentStreak":0,"bestStreak":0}}`, raw)
}

func TestSignup_DuplicateIsNonMutating(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil)
	require.NoError(t, svc.Signup(ctx, "ada", "secret"))
	require.NoError(t, svc.Logout(ctx))
	before, err := store.List(ctx)
	require.NoError(t, err)

	err = svc.Signup(ctx, "ada", "other")

	require.ErrorIs(t, err, entity.ErrUserAlreadyExists)
	after, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSignup_MissingCredentials(t *testing.T) {
	svc, _ := newTestService(t, nil)
	assert.ErrorIs(t, svc.Signup(context.Background(), "ada", "   "), entity.ErrMissingCredentials)
	assert.ErrorIs(t, svc.Login(context.Background(), "", "x"), entity.ErrMissingCredentials)
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, map[string]string{
		repository.KeyUserData:         `{"ada":{"password":"secret"}}`,
		repository.KeyChallengeStarted: "true",
		repository.KeyStepIndex:        "1",
	})

	require.ErrorIs(t, svc.Login(ctx, "ada", "Secret"), entity.ErrInvalidCredentials)
	require.ErrorIs(t, svc.Login(ctx, "bob", "secret"), entity.ErrInvalidCredentials)
	_, err := svc.RequireLogin(ctx)
	require.ErrorIs(t, err, entity.ErrNotLoggedIn)

	require.NoError(t, svc.Login(ctx, "ada", "secret"))
	assert.Equal(t, "ada", svc.session.CurrentUser)

	require.NoError(t, svc.Logout(ctx))
	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{repository.KeyUserData}, keys(all))
	assert.Empty(t, svc.session.CurrentUser)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestMalformedUserDataIsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	store := adapterrepo.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repository.KeyUserData, `{not json`))
	svc := NewService(store, &entity.SessionState{}, logger)

	_, err := svc.Account(ctx, "ada")
	require.ErrorIs(t, err, entity.ErrUserNotFound)
	require.NoError(t, svc.Signup(ctx, "ada", "pw"))
	assert.NotEmpty(t, hook.AllEntries())
}

func TestOneBadAccountDoesNotEraseOthers(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	store := adapterrepo.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repository.KeyUserData, `{
		"alice":{"password":"a","learnedWords":["lucid"],"bestStreak":5},
		"bob":{"password":"b","settings":{"multipleChoice":"false","matching":"true"}},
		"dave":{"password":"d","bestStreak":"x"}
	}`))
	svc := NewService(store, &entity.SessionState{}, logger)

	require.NoError(t, svc.Signup(ctx, "carol", "c"))

	alice, err := svc.Account(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, alice.IsLearned("lucid"))
	assert.Equal(t, 5, alice.BestStreak)

	_, err = svc.Account(ctx, "carol")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	require.NoError(t, svc.Login(ctx, "bob", "b"))
	got := svc.Settings(ctx)
	assert.False(t, got.MultipleChoice)
	assert.True(t, got.Matching)

	raw, _, _ := store.Get(ctx, repository.KeyUserData)
	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 4)
	assert.JSONEq(t, `{"password":"d","bestStreak":"x"}`, string(stored["dave"]))

	require.ErrorIs(t, svc.Signup(ctx, "dave", "other"), entity.ErrUserAlreadyExists)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestLegacyAccountsAreMigratedOnce(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, map[string]string{
		repository.KeyUserData: `{
			"ada": {"password":"pw","learnedWords":["lucid","lucid"],"inProgressWords":["lucid","zeal"],
			        "wordStreaks":{"lucid":3,"zeal":1},"wordProgress":{"zeal":2,"lucid":1,"abate":4},
			        "currentStreak":5,"bestStreak":2},
			"bob": {"password":"pw","learnedWords":[],"inProgressWords":[],"wordStreaks":{},"currentStreak":0,"bestStreak":0}
		}`,
	})

	migrated, err := svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, migrated)

	acct, err := svc.Account(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"lucid": 3, "zeal": 2, "abate": 4}, acct.WordStreaks)
	assert.Equal(t, []string{"lucid"}, acct.LearnedWords)
	assert.Equal(t, []string{"zeal"}, acct.InProgressWords)
	assert.Equal(t, 5, acct.BestStreak)
	assert.Nil(t, acct.WordProgress)

	raw, _, _ := store.Get(ctx, repository.KeyUserData)
	assert.NotContains(t, raw, "wordProgress")

	migrated, err = svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Empty(t, migrated)
}

func TestSettingsResolution(t *testing.T) {
	ctx := context.Background()
	defaults := entity.DefaultSettings()

	tests := []struct {
		name   string
		app    string
		user   string
		mutate func(*entity.Settings)
	}{
		{name: "defaults", mutate: func(*entity.Settings) {}},
		{
			name:   "app layer",
			app:    `{"matching":true,"wordThreshold":"5","theme":"red"}`,
			mutate: func(s *entity.Settings) { s.Matching = true; s.WordThreshold = 5; s.Theme = entity.ThemeRed },
		},
		{
			name:   "user wins per key",
			app:    `{"matching":true,"wordThreshold":5,"progressTargetWords":20}`,
			user:   `{"wordThreshold":2,"multipleChoice":false}`,
			mutate: func(s *entity.Settings) { s.Matching = true; s.WordThreshold = 2; s.ProgressTargetWords = 20; s.MultipleChoice = false },
		},
		{
			name:   "legacy progressTarget",
			user:   `{"progressTarget":"4"}`,
			mutate: func(s *entity.Settings) { s.WordThreshold = 4 },
		},
		{
			name:   "legacy key ignored when wordThreshold present",
			user:   `{"progressTarget":4,"wordThreshold":6}`,
			mutate: func(s *entity.Settings) { s.WordThreshold = 6 },
		},
		{
			name:   "garbage values fall back",
			app:    `{"wordThreshold":"abc","progressTargetWords":-3,"theme":"neon"}`,
			mutate: func(*entity.Settings) {},
		},
		{name: "malformed app settings", app: `[`, mutate: func(*entity.Settings) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := map[string]string{repository.KeyCurrentUser: "ada"}
			user := `{"password":"pw"}`
			if tt.user != "" {
				user = `{"password":"pw","settings":` + tt.user + `}`
			}
			seed[repository.KeyUserData] = `{"ada":` + user + `}`
			if tt.app != "" {
				seed[repository.KeyAppSettings] = tt.app
			}
			svc, _ := newTestService(t, seed)

			want := defaults
			tt.mutate(&want)
			assert.Equal(t, want, svc.Settings(ctx))
		})
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, nil)

	require.ErrorIs(t, svc.UpdateSettings(ctx, ScopeUser, "matching", "true"), entity.ErrNotLoggedIn)
	require.NoError(t, svc.UpdateSettings(ctx, ScopeApp, "progressTargetWords", "12"))
	require.NoError(t, svc.Signup(ctx, "ada", "pw"))
	require.NoError(t, svc.UpdateSettings(ctx, ScopeUser, "formMatch", "true"))
	require.NoError(t, svc.UpdateSettings(ctx, ScopeUser, "theme", "Dark"))

	got := svc.Settings(ctx)
	assert.True(t, got.FormMatch)
	assert.Equal(t, 12, got.ProgressTargetWords)
	assert.Equal(t, entity.ThemeDark, got.Theme)

	raw, _, _ := store.Get(ctx, repository.KeyAppSettings)
	var app map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &app))
	assert.Equal(t, map[string]any{"progressTargetWords": float64(12)}, app)

	for _, bad := range [][2]string{{"wordThreshold", "0"}, {"matching", "maybe"}, {"theme", "neon"}, {"volume", "3"}} {
		assert.ErrorIs(t, svc.UpdateSettings(ctx, ScopeUser, bad[0], bad[1]), entity.ErrInvalidSetting, bad[0])
	}
	assert.ErrorIs(t, svc.UpdateSettings(ctx, Scope("global"), "matching", "true"), entity.ErrInvalidSetting)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	word := &entity.VocabEntry{Word: "lucid", Definition: "clear"}

	require.NoError(t, svc.SaveSession(ctx, &entity.SessionState{ChallengeStarted: true, StepIndex: 2, WordIndex: 4, CurrentWord: word}))
	st, err := svc.LoadSession(ctx)
	require.NoError(t, err)
	assert.True(t, st.ChallengeStarted)
	assert.Equal(t, 2, st.StepIndex)
	assert.Equal(t, 4, st.WordIndex)
	assert.Equal(t, word, st.CurrentWord)

	require.NoError(t, svc.SaveSession(ctx, &entity.SessionState{}))
	st, err = svc.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.CurrentWord)
	assert.False(t, st.ChallengeStarted)
}

func TestLoadSession_ToleratesGarbage(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		repository.KeyCurrentUser:      "ada",
		repository.KeyChallengeStarted: "yes",
		repository.KeyStepIndex:        "7",
		repository.KeyWordIndex:        "x",
		repository.KeyCurrentWord:      "{",
	})

	st, err := svc.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.SessionState{CurrentUser: "ada"}, *st)
}

func TestUsernamesSorted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)
	require.NoError(t, svc.Signup(ctx, "zoe", "pw"))
	require.NoError(t, svc.Signup(ctx, "ada", "pw"))

	names, err := svc.Usernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada", "zoe"}, names)
}
