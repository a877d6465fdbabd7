package checkpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/facebookgo/atomicfile"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
)

var _ pkgcheckpoint.Store = (*FileStore)(nil)

// FileStore keeps the checkpoint in a small JSON file replaced atomically on every save.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	return &FileStore{path: path, log: log}, nil
}

func (f *FileStore) Load(ctx context.Context) (uint64, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read checkpoint file: %w", err)
	}

	var state pkgcheckpoint.State
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, false, fmt.Errorf("failed to parse checkpoint file %s: %w", f.path, err)
	}

	return state.NextBlock, true, nil
}

func (f *FileStore) Save(ctx context.Context, next uint64) error {
	data, err := json.Marshal(pkgcheckpoint.State{NextBlock: next, UpdatedAt: time.Now().Unix()})
	if err != nil {
		return err
	}

	file, err := atomicfile.New(f.path, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open checkpoint file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Abort()
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Abort()
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	f.log.Debugf("saved checkpoint: next block %d", next)
	return nil
}
