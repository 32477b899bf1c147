package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/pkg/validator"
)

const maxCorpusBytes = 16 << 20

// Loader fetches the corpus from an ordered list of candidate sources.
type Loader struct {
	sources []string
	timeout time.Duration
	client  *http.Client
	rng     *rand.Rand
	logger  logrus.FieldLogger
}

// NewLoader constructs a loader. A zero timeout leaves HTTP requests bounded
// only by ctx.
func NewLoader(sources []string, timeout time.Duration, rng *rand.Rand, logger logrus.FieldLogger) *Loader {
	return &Loader{
		sources: append([]string(nil), sources...),
		timeout: timeout,
		client:  http.DefaultClient,
		rng:     rng,
		logger:  logger,
	}
}

// Load tries each source in turn and returns the first usable corpus,
// shuffled and augmented. When every source fails the error wraps
// entity.ErrCorpusUnavailable together with each source's failure.
func (l *Loader) Load(ctx context.Context) (*Corpus, error) {
	errs := []error{entity.ErrCorpusUnavailable}
	for _, src := range l.sources {
		entries, err := l.loadSource(ctx, src)
		if err != nil {
			l.logger.WithError(err).WithField("source", src).Warn("corpus source failed")
			errs = append(errs, fmt.Errorf("%s: %w", src, err))
			continue
		}

		Shuffle(l.rng, entries)
		for i := range entries {
			if added := AugmentForms(&entries[i]); len(added) > 0 {
				l.logger.WithFields(logrus.Fields{"word": entries[i].Word, "added": len(added)}).Debug("augmented forms")
			}
		}
		l.logger.WithFields(logrus.Fields{"source": src, "entries": len(entries)}).Info("corpus loaded")
		return New(entries), nil
	}
	return nil, errors.Join(errs...)
}

func (l *Loader) loadSource(ctx context.Context, src string) ([]entity.VocabEntry, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = l.fetch(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data, l.logger)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCorpusBytes))
}

// Decode parses a corpus document: either a bare array of entries or an
// object with a "words" array. Invalid entries and repeated words are dropped;
// a document left with no entries is entity.ErrCorpusMalformed.
func Decode(data []byte, logger logrus.FieldLogger) ([]entity.VocabEntry, error) {
	var raw []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrCorpusMalformed, err)
		}
	} else {
		var doc struct {
			Words []json.RawMessage `json:"words"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrCorpusMalformed, err)
		}
		raw = doc.Words
	}

	seen := make(map[string]bool, len(raw))
	entries := make([]entity.VocabEntry, 0, len(raw))
	for i, r := range raw {
		var e entity.VocabEntry
		if err := json.Unmarshal(r, &e); err != nil {
			logger.WithError(err).WithField("index", i).Warn("skipping undecodable corpus entry")
			continue
		}
		e.Word = strings.TrimSpace(e.Word)
		if err := validator.ValidateStruct(e); err != nil {
			logger.WithError(err).WithField("index", i).Warn("skipping invalid corpus entry")
			continue
		}
		key := strings.ToLower(e.Word)
		if seen[key] {
			logger.WithField("word", e.Word).Warn("skipping duplicate corpus word")
			continue
		}
		seen[key] = true
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no usable entries", entity.ErrCorpusMalformed)
	}
	return entries, nil
}
