package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devEvents/internal/config"
)

// Local writes objects below Dir. The HTTP server exposes that directory
// under BaseURL.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(cfg config.LocalUpload) *Local {
	return &Local{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (l *Local) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	const op = "uploader.Local.Put"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(l.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return l.baseURL + "/" + key, nil
}
