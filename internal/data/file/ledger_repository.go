package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// LedgerRepository implements the ledger.Repository interface with a single JSON document on disk
type LedgerRepository struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewLedgerRepository creates a new file-backed ledger repository.
// Pass afero.NewOsFs() to use the real filesystem.
func NewLedgerRepository(logger *slog.Logger, fsys afero.Fs, path string) ledger.Repository {
	return &LedgerRepository{
		fs:     fsys,
		path:   path,
		logger: logger,
	}
}

// Load reads and decodes the whole data file.
// Returns ErrLedgerMissing if the file does not exist.
func (r *LedgerRepository) Load(ctx context.Context) (*ledger.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ledger.ErrLedgerMissing
		}
		r.logger.Error("Failed to read data file", "path", r.path, "error", err)
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var l ledger.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		r.logger.Error("Failed to decode data file", "path", r.path, "error", err)
		return nil, fmt.Errorf("failed to decode data file: %w", err)
	}

	if l.Entries == nil {
		l.Entries = []ledger.Entry{}
	}
	return &l, nil
}

// Save overwrites the data file with l.
// The document is written to a temporary file in the same directory and renamed over the old one,
// so readers never observe a half-written ledger.
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if l.Entries == nil {
		l = &ledger.Ledger{StartingBalance: l.StartingBalance, Entries: []ledger.Entry{}}
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		r.logger.Error("Failed to create data directory", "dir", dir, "error", err)
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := afero.TempFile(r.fs, dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		r.logger.Error("Failed to create temporary data file", "dir", dir, "error", err)
		return fmt.Errorf("failed to create temporary data file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = r.fs.Remove(tmpName)
		r.logger.Error("Failed to write temporary data file", "path", tmpName, "error", err)
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("failed to close data file: %w", err)
	}

	if err := r.fs.Rename(tmpName, r.path); err != nil {
		_ = r.fs.Remove(tmpName)
		r.logger.Error("Failed to replace data file", "path", r.path, "error", err)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	r.logger.Debug("Ledger saved", "path", r.path, "entries", len(l.Entries))
	return nil
}
