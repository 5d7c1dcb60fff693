package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource(t *testing.T) {
	t.Run("json file", func(t *testing.T) {
		path := writeTempFile(t, "records.json", `[{"memberId": "M1", "isActive": true}]`)
		records, err := NewFileSource(path).Load(context.Background())
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("csv file", func(t *testing.T) {
		path := writeTempFile(t, "records.csv", "memberId,isActive\nM1,true\n")
		records, err := NewFileSource(path).Load(context.Background())
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("extension case-insensitive", func(t *testing.T) {
		path := writeTempFile(t, "records.JSON", `[]`)
		_, err := NewFileSource(path).Load(context.Background())
		assert.NoError(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempFile(t, "records.xml", "<records/>")
		_, err := NewFileSource(path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource("/nonexistent/records.json").Load(context.Background())
		assert.Error(t, err)
	})
}

func TestRemoteSource(t *testing.T) {
	t.Run("fetches and decodes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"memberId": "M1", "isActive": true}]`))
		}))
		defer server.Close()

		records, err := NewRemoteSource(server.URL).Load(context.Background())
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "M1", records[0].MemberID)
	})

	t.Run("non-200 fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewRemoteSource(server.URL).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("unreachable endpoint fails", func(t *testing.T) {
		_, err := NewRemoteSource("http://127.0.0.1:1/records").Load(context.Background())
		assert.Error(t, err)
	})
}
