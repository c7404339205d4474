package renamer

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/Nomadcxx/jellyrename/internal/logging"
	"github.com/Nomadcxx/jellyrename/internal/naming"
	"github.com/Nomadcxx/jellyrename/internal/prompt"
)

// IsMediaFile reports whether path has one of the scanned extensions.
func (r *Renamer) IsMediaFile(path string) bool {
	return r.scanner.IsVideoFile(path)
}

// HandleFile processes a single file reported by watch mode. Canonical names,
// including the ones this tool just produced, are skipped quietly.
func (r *Renamer) HandleFile(ctx context.Context, path string) error {
	if naming.IsCanonicalFilename(filepath.Base(path)) {
		r.log.Debug("renamer", "Ignoring canonical file", logging.F("file", path))
		return nil
	}

	f, ok := r.scanner.Stat(path)
	if !ok {
		r.log.Debug("renamer", "File gone or not a video", logging.F("file", path))
		return nil
	}

	outcome := r.Process(ctx, f)
	if errors.Is(outcome.Err, prompt.ErrInterrupted) || errors.Is(outcome.Err, prompt.ErrInputClosed) {
		return outcome.Err
	}
	return nil
}
