// Package ingest loads risk records from local files and remote endpoints.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
)

// FileSource loads records from a local CSV or JSON file, dispatching on
// the file extension.
type FileSource struct {
	Path string
}

// NewFileSource creates a record source for a local file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file.
func (s *FileSource) Load(_ context.Context) ([]schema.Record, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".json":
		return DecodeJSON(file)
	case ".csv":
		return DecodeCSV(file)
	default:
		return nil, fmt.Errorf("unsupported data file extension: %s", filepath.Ext(s.Path))
	}
}

// RemoteSource fetches records as JSON from an HTTP endpoint.
type RemoteSource struct {
	URL    string
	Client *http.Client
}

// NewRemoteSource creates a record source for a remote JSON endpoint.
func NewRemoteSource(url string) *RemoteSource {
	return &RemoteSource{
		URL:    url,
		Client: &http.Client{Timeout: contract.DefaultFetchTimeout},
	}
}

// Load fetches and decodes the endpoint response.
func (s *RemoteSource) Load(ctx context.Context) ([]schema.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d from %s", resp.StatusCode, s.URL)
	}
	return DecodeJSON(resp.Body)
}
