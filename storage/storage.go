// Package storage persists workflow results as markdown documents with
// their generated images saved alongside.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avelar/contentforge/workflow"
)

const timeLayout = "20060102_150405"

// Store writes result documents under a base directory. Images go to
// an images/ subdirectory and are referenced from the markdown by
// relative path.
type Store struct {
	dir    string
	log    *slog.Logger
	client *http.Client
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for persistence warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithHTTPClient sets the client used to download image URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// New creates a store rooted at dir. The directory is created on first
// save, not here.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		log:    slog.Default(),
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveResult writes the result as a markdown document and returns its
// path. The generated image is materialized to images/ first so the
// document references a local file; if that fails the document keeps
// the original reference and the failure is logged as a warning rather
// than failing the save.
func (s *Store) SaveResult(ctx context.Context, result *workflow.Result) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	imageRef := result.GeneratedImage
	if imageRef != "" {
		local, err := s.saveImage(ctx, imageRef, result.Metadata.WorkflowID)
		if err != nil {
			s.log.Warn("failed to save image, keeping original reference",
				"workflow_id", result.Metadata.WorkflowID, "error", err)
		} else {
			imageRef = local
		}
	}

	name := fmt.Sprintf("content_%s_%s.md",
		shortID(result.Metadata.WorkflowID),
		result.Metadata.Timestamp.Format(timeLayout))
	path := filepath.Join(s.dir, name)

	doc, err := renderMarkdown(result, imageRef)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	return path, nil
}

// saveImage materializes an image reference (URL, data URL, or raw
// base64) into the images/ subdirectory and returns the relative path
// for markdown embedding.
func (s *Store) saveImage(ctx context.Context, ref, workflowID string) (string, error) {
	imagesDir := filepath.Join(s.dir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}

	name := fmt.Sprintf("image_%s_%s.png", shortID(workflowID), time.Now().Format(timeLayout))
	path := filepath.Join(imagesDir, name)

	var data []byte
	var err error
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = s.download(ctx, ref)
	case strings.HasPrefix(ref, "data:image"):
		_, payload, found := strings.Cut(ref, ",")
		if !found {
			return "", fmt.Errorf("malformed data URL")
		}
		data, err = base64.StdEncoding.DecodeString(payload)
	default:
		data, err = base64.StdEncoding.DecodeString(ref)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return filepath.Join("images", name), nil
}

func (s *Store) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
