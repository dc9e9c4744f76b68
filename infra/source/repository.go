package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/infra/logger"
)

const (
	SourceCache  = "cache"
	SourceRemote = "remote"

	maxErrorBody = 512
)

// Repository loads sessions from the cache file or the API.
type Repository struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
	source string
}

// Option configures a Repository.
type Option func(*Repository)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Repository) { r.client = c }
}

// WithLogger overrides the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// NewRepository creates a Repository. cfg is expected to have defaults
// applied.
func NewRepository(cfg Config, opts ...Option) *Repository {
	r := &Repository{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		log:    logger.New("source"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Source reports where the last successful load read from.
func (r *Repository) Source() string { return r.source }

// Load returns all sessions, scheduled or not. An existing cache file is
// used as is and no request is made.
func (r *Repository) Load(ctx context.Context) ([]model.Session, error) {
	body, err := os.ReadFile(r.cfg.CacheFile)
	switch {
	case err == nil:
		r.log.Infof("using cached sessions from %s", r.cfg.CacheFile)
		sessions, err := r.decode(body)
		if err != nil {
			return nil, fmt.Errorf("cache %s: %w", r.cfg.CacheFile, err)
		}
		r.source = SourceCache
		return sessions, nil
	case errors.Is(err, fs.ErrNotExist):
		return r.Refresh(ctx)
	default:
		return nil, fmt.Errorf("read cache: %w", err)
	}
}

// Refresh downloads the sessions regardless of the cache and replaces the
// cache file with the response body.
func (r *Repository) Refresh(ctx context.Context) ([]model.Session, error) {
	body, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := r.decode(body)
	if err != nil {
		return nil, fmt.Errorf("api response: %w", err)
	}
	if err := writeFileAtomic(r.cfg.CacheFile, body); err != nil {
		return nil, fmt.Errorf("write cache: %w", err)
	}
	r.log.Infof("cached %d sessions in %s", len(sessions), r.cfg.CacheFile)
	r.source = SourceRemote
	return sessions, nil
}

func (r *Repository) decode(body []byte) ([]model.Session, error) {
	return model.DecodeSessions(body, model.DecodeOptions{Language: r.cfg.RoomLanguage})
}

func (r *Repository) fetch(ctx context.Context) ([]byte, error) {
	if r.cfg.APIURL == "" {
		return nil, ErrNoAPIURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.APIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", r.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	r.log.Infof("downloading sessions from %s", r.cfg.APIURL)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{URL: r.cfg.APIURL, StatusCode: resp.StatusCode, Body: string(b)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
