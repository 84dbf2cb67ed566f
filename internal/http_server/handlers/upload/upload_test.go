package upload

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, uploadDir, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(log, uploadDir)

	body, contentType := multipartBody(t, filename, content)

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec
}

func requireDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "transient upload files must be removed")
}

func TestUpload_CSV(t *testing.T) {
	dir := t.TempDir()

	rec := post(t, dir, "list.csv", "a@x.com\nskip-me\nb@y.com\n")

	assert.Equal(t, http.StatusOK, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, got.Emails)

	requireDirEmpty(t, dir)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()

	rec := post(t, dir, "list.pdf", "a@x.com")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	requireDirEmpty(t, dir)
}

func TestUpload_CorruptSpreadsheet(t *testing.T) {
	dir := t.TempDir()

	// Parse failure aborts the upload, but the spooled file still goes.
	rec := post(t, dir, "list.xlsx", "not a spreadsheet")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	requireDirEmpty(t, dir)
}

func TestUpload_NoFile(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(log, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "No file uploaded", got.Message)
}
