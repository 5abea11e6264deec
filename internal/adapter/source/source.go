// Package source fetches raw polygon documents for each category from a
// local directory or an HTTP file host.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sensori-ai/farm-sectors/internal/config"
	"github.com/sensori-ai/farm-sectors/internal/domain"
)

// maxDocumentSize caps a single category document.
var maxDocumentSize int64 = 32 << 20

var (
	errNoPath           = errors.New("no source path configured")
	errDocumentTooLarge = errors.New("document too large")
)

// New builds the source selected by cfg.SourceKind.
func New(cfg *config.Config, logger *slog.Logger) (Source, error) {
	switch cfg.SourceKind {
	case config.SourceFile:
		return NewFileSource(cfg.SourceDir, cfg.SourcePaths), nil
	case config.SourceHTTP:
		return NewHTTPSource(cfg.SourceBaseURL, cfg.SourcePaths, cfg.SourceTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.SourceKind)
	}
}

// Source is satisfied by FileSource and HTTPSource.
type Source interface {
	Fetch(ctx context.Context, category domain.Category) ([]byte, error)
	CheckReadiness(ctx context.Context) error
}

// FileSource reads category documents from a directory.
type FileSource struct {
	dir   string
	paths map[domain.Category]string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string, paths map[domain.Category]string) *FileSource {
	return &FileSource{dir: dir, paths: copyPaths(paths)}
}

// Fetch reads the document for category.
func (s *FileSource) Fetch(_ context.Context, category domain.Category) ([]byte, error) {
	p, err := s.path(category)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %s document: %w", category, err)
	}
	defer f.Close()

	data, err := readDocument(f, category)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// CheckReadiness verifies that every configured document exists.
func (s *FileSource) CheckReadiness(_ context.Context) error {
	for c := range s.paths {
		p, err := s.path(c)
		if err != nil {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s document: %w", c, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s document %s is a directory", c, p)
		}
	}
	return nil
}

func (s *FileSource) path(category domain.Category) (string, error) {
	rel := s.paths[category]
	if rel == "" {
		return "", fmt.Errorf("%s: %w", category, errNoPath)
	}
	return filepath.Join(s.dir, rel), nil
}

// HTTPSource downloads category documents from a static file host.
type HTTPSource struct {
	baseURL    string
	paths      map[domain.Category]string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSource creates an HTTPSource for baseURL.
func NewHTTPSource(baseURL string, paths map[domain.Category]string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		paths:   copyPaths(paths),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the document for category. Any status other than 200 is
// an error.
func (s *HTTPSource) Fetch(ctx context.Context, category domain.Category) ([]byte, error) {
	u, err := s.url(category)
	if err != nil {
		return nil, err
	}
	resp, err := s.doRequest(ctx, http.MethodGet, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readDocument(resp.Body, category)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched polygon document", "category", category, "bytes", len(data))
	return data, nil
}

// CheckReadiness sends a HEAD request for every configured document.
func (s *HTTPSource) CheckReadiness(ctx context.Context) error {
	for c := range s.paths {
		u, err := s.url(c)
		if err != nil {
			continue
		}
		resp, err := s.doRequest(ctx, http.MethodHead, u)
		if err != nil {
			return err
		}
		resp.Body.Close()
	}
	return nil
}

func (s *HTTPSource) url(category domain.Category) (string, error) {
	rel := s.paths[category]
	if rel == "" {
		return "", fmt.Errorf("%s: %w", category, errNoPath)
	}
	u, err := url.JoinPath(s.baseURL, rel)
	if err != nil {
		return "", fmt.Errorf("build %s url: %w", category, err)
	}
	return u, nil
}

func (s *HTTPSource) doRequest(ctx context.Context, method, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, fullURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("source error: %s %s: status %d: %s", method, fullURL, resp.StatusCode, body)
	}
	return resp, nil
}

func copyPaths(paths map[domain.Category]string) map[domain.Category]string {
	out := make(map[domain.Category]string, len(paths))
	for c, p := range paths {
		if p != "" {
			out[c] = p
		}
	}
	return out
}

// readDocument reads at most maxDocumentSize bytes. A longer document is an
// error rather than a truncated payload.
func readDocument(r io.Reader, category domain.Category) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s document: %w", category, err)
	}
	if int64(len(data)) > maxDocumentSize {
		return nil, fmt.Errorf("read %s document: %w: exceeds %d bytes", category, errDocumentTooLarge, maxDocumentSize)
	}
	return data, nil
}
