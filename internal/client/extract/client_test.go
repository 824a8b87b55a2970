package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreview/internal/domain"
)

func TestClient_Submit(t *testing.T) {
	var gotPath, gotFilename string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(file)
		gotBody = buf.Bytes()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"job_id": "J42"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	out, err := c.Submit(context.Background(), "agreement.pdf", "application/pdf",
		bytes.NewReader([]byte("%PDF-1.4 content")))
	require.NoError(t, err)

	assert.Equal(t, "J42", out.JobID)
	assert.Equal(t, "/pdf/extract-and-format/", gotPath)
	assert.Equal(t, "agreement.pdf", gotFilename)
	assert.Equal(t, []byte("%PDF-1.4 content"), gotBody)
}

func TestClient_Submit_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Submit(context.Background(), "a.pdf", "application/pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_Submit_MissingJobID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Submit(context.Background(), "a.pdf", "application/pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_Submit_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.Submit(context.Background(), "a.pdf", "application/pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrTransport)
}
