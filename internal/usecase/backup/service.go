// Package backup exports and imports the key-value store as NDJSON.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/bluemanta7/MantaMind/internal/repository"
)

const (
	formatVersion = 1
	recordMeta    = "meta"
	recordKV      = "kv"
)

var errNoKeysSelected = errors.New("backup: no keys selected")

// ProgressReporter receives callbacks while records are written or applied.
type ProgressReporter interface {
	Start(total int)
	Increment(delta int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)     {}
func (noopProgress) Increment(int) {}
func (noopProgress) Finish()       {}

// Service copies the store to and from a portable stream.
type Service struct {
	store repository.KeyValueStore
	now   func() time.Time
}

// NewService constructs a backup service over store.
func NewService(store repository.KeyValueStore) *Service {
	return &Service{store: store, now: time.Now}
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	keys     []string
	reporter ProgressReporter
}

// WithKeys restricts export to the provided keys.
func WithKeys(keys []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(keys) == 0 {
			return
		}
		cfg.keys = append([]string{}, keys...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export or import.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	keys     []string
	reporter ProgressReporter
}

// WithImportKeys restricts import to the provided keys.
func WithImportKeys(keys []string) ImportOption {
	return func(cfg *importConfig) {
		if len(keys) == 0 {
			return
		}
		cfg.keys = append([]string{}, keys...)
	}
}

// WithImportProgress registers a reporter for import.
func WithImportProgress(reporter ProgressReporter) ImportOption {
	return func(cfg *importConfig) {
		cfg.reporter = reporter
	}
}

type record struct {
	Type       string     `json:"type"`
	Version    int        `json:"version,omitempty"`
	ExportedAt *time.Time `json:"exported_at,omitempty"`
	Keys       []string   `json:"keys,omitempty"`
	Checksum   string     `json:"checksum,omitempty"`
	Key        string     `json:"key,omitempty"`
	Value      *string    `json:"value,omitempty"`
}

// Export writes a meta record followed by one kv record per key, sorted by key.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list store: %w", err)
	}
	if len(cfg.keys) > 0 {
		all = lo.PickByKeys(all, cfg.keys)
		if len(all) == 0 {
			return errNoKeysSelected
		}
	}
	keys := lo.Keys(all)
	sort.Strings(keys)

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.now().UTC()
	meta := record{
		Type:       recordMeta,
		Version:    formatVersion,
		ExportedAt: &now,
		Keys:       keys,
		Checksum:   checksum(keys, all),
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	reporter.Start(len(keys))
	for _, k := range keys {
		v := all[k]
		if err := writeRecord(writer, record{Type: recordKV, Key: k, Value: &v}); err != nil {
			return err
		}
		reporter.Increment(1)
	}
	reporter.Finish()
	return writer.Flush()
}

// Import reads a stream written by Export, verifies it, then upserts every
// selected key. Nothing is written when the stream is invalid. It returns
// the number of keys written.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (int, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     record
		values   = map[string]string{}
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("read backup: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec record
			if err := json.Unmarshal(line, &rec); err != nil {
				return 0, fmt.Errorf("decode record: %w", err)
			}

			switch rec.Type {
			case recordMeta:
				metaSeen = true
				meta = rec
			case recordKV:
				if rec.Key == "" || rec.Value == nil {
					return 0, errors.New("backup: kv record without key or value")
				}
				values[rec.Key] = *rec.Value
			default:
				return 0, fmt.Errorf("backup: unknown record type %q", rec.Type)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return 0, errors.New("backup: missing meta record")
	}
	if meta.Version != formatVersion {
		return 0, fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}
	keys := lo.Keys(values)
	sort.Strings(keys)
	if meta.Checksum != "" && meta.Checksum != checksum(keys, values) {
		return 0, errors.New("backup: checksum mismatch")
	}

	if len(cfg.keys) > 0 {
		keys = lo.Intersect(keys, lo.Uniq(cfg.keys))
		sort.Strings(keys)
		if len(keys) == 0 {
			return 0, errNoKeysSelected
		}
	}

	reporter.Start(len(keys))
	for _, k := range keys {
		if err := s.store.Set(ctx, k, values[k]); err != nil {
			return 0, fmt.Errorf("write %s: %w", k, err)
		}
		reporter.Increment(1)
	}
	reporter.Finish()
	return len(keys), nil
}

func checksum(keys []string, values map[string]string) string {
	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(values[k]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
