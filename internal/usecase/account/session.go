package account

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/repository"
)

// LoadSession fills the shared session state from the store. Missing or
// unparsable values become their defaults.
func (s *Service) LoadSession(ctx context.Context) (*entity.SessionState, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	st := s.session
	st.CurrentUser = all[repository.KeyCurrentUser]
	st.ChallengeStarted = all[repository.KeyChallengeStarted] == "true"
	st.StepIndex = atoiOrZero(all[repository.KeyStepIndex])
	st.WordIndex = atoiOrZero(all[repository.KeyWordIndex])
	st.CurrentWord = nil
	if raw, ok := all[repository.KeyCurrentWord]; ok {
		var e entity.VocabEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil || e.Word == "" {
			s.logger.WithError(err).Warn("stored current word is malformed, ignoring")
		} else {
			st.CurrentWord = &e
		}
	}
	st.ClampStep()
	return st, nil
}

// SaveSession writes the resume state of st.
func (s *Service) SaveSession(ctx context.Context, st *entity.SessionState) error {
	values := map[string]string{
		repository.KeyChallengeStarted: strconv.FormatBool(st.ChallengeStarted),
		repository.KeyStepIndex:        strconv.Itoa(st.StepIndex),
		repository.KeyWordIndex:        strconv.Itoa(st.WordIndex),
	}
	if st.CurrentWord != nil {
		data, err := json.Marshal(st.CurrentWord)
		if err != nil {
			return fmt.Errorf("encode current word: %w", err)
		}
		values[repository.KeyCurrentWord] = string(data)
	} else if err := s.store.Delete(ctx, repository.KeyCurrentWord); err != nil {
		return fmt.Errorf("clear current word: %w", err)
	}

	for _, key := range []string{repository.KeyChallengeStarted, repository.KeyStepIndex, repository.KeyWordIndex, repository.KeyCurrentWord} {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := s.store.Set(ctx, key, v); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
