package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/daybook/pkg/logutils"
	"tableflip.dev/daybook/pkg/state"
)

const (
	// StateKey is the diskv key holding the whole snapshot.
	StateKey = "state"

	corruptPrefix = "corrupt"
	corruptLayout = "20060102T150405.000000000"
	tempDir       = ".tmp"
)

// Persistence loads and saves the state snapshot.
type Persistence interface {
	// Load returns the stored snapshot, or the empty state when nothing is
	// stored or the stored payload cannot be decoded.
	Load(ctx context.Context) (*state.Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *state.Snapshot) error
	// Watch streams change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// BackupLister is implemented by persistence that sets aside corrupt
// payloads instead of discarding them.
type BackupLister interface {
	Backups(ctx context.Context) []string
}

// Option configures the diskv persistence.
type Option func(*persistence)

// WithLogger sets the logger for load warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(p *persistence) { p.log = logutils.Component(log, "store") }
}

// WithClock overrides the clock used to name corrupt backups.
func WithClock(clock func() time.Time) Option {
	return func(p *persistence) { p.clock = clock }
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		clock:    time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	clock    func() time.Time
	log      zerolog.Logger
}

// read bypasses the diskv cache so writes by other processes are seen.
func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *persistence) Load(ctx context.Context) (*state.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := p.read(StateKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state.Empty(), nil
		}
		return nil, fmt.Errorf("store: read %s: %w", StateKey, err)
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return state.Empty(), nil
	}

	snap, err := decode(val)
	if err != nil {
		backup := p.backup(val)
		p.log.Warn().Err(err).Str("backup", backup).Msg("stored state is corrupt, starting empty")
		return state.Empty(), nil
	}
	if dropped := snap.Normalize(); len(dropped) > 0 {
		names := make([]string, len(dropped))
		for i, id := range dropped {
			names[i] = string(id)
		}
		p.log.Warn().Strs("categories", names).Msg("dropped unknown categories")
	}
	return snap, nil
}

// decode shallow-merges the payload onto the empty state; absent top-level
// keys keep their defaults.
func decode(val []byte) (*state.Snapshot, error) {
	snap := state.Empty()
	if err := json.Unmarshal(val, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// backup copies an undecodable payload aside and returns its key.
func (p *persistence) backup(val []byte) string {
	key := fmt.Sprintf("%s-%s", corruptPrefix, strings.ReplaceAll(p.clock().UTC().Format(corruptLayout), ".", ""))
	if err := p.d.Write(key, val); err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("backup corrupt state")
		return ""
	}
	return key
}

func (p *persistence) Save(ctx context.Context, snap *state.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil {
		snap = state.Empty()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	if err := p.d.Write(StateKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", StateKey, err)
	}
	return nil
}

// Backups lists the keys of corrupt payloads set aside by Load.
func (p *persistence) Backups(ctx context.Context) []string {
	var keys []string
	for key := range p.d.KeysPrefix(corruptPrefix+"-", ctx.Done()) {
		keys = append(keys, key)
	}
	return keys
}

// keyToPathTransform maps `a-b-c` to the file c under directory a/b.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
