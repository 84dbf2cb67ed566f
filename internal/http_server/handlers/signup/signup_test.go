package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailblast/internal/auth"
)

type fakeRegistrar struct {
	err   error
	calls int
}

func (f *fakeRegistrar) RegisterNewUser(ctx context.Context, email, pass string) (int64, error) {
	f.calls++

	if f.err != nil {
		return 0, f.err
	}

	return 1, nil
}

func post(t *testing.T, registrar *fakeRegistrar, body string) *httptest.ResponseRecorder {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(log, validator.New(), registrar)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec
}

func TestSignup_OK(t *testing.T) {
	rec := post(t, &fakeRegistrar{}, `{"email":"a@x.com","password":"password123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
}

func TestSignup_AlreadyExists(t *testing.T) {
	rec := post(t, &fakeRegistrar{err: auth.ErrUserExists}, `{"email":"a@x.com","password":"password123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	assert.Equal(t, "User already exists", got.Message)
}

func TestSignup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"password":"password123"}`},
		{name: "bad email", body: `{"email":"not-an-email","password":"password123"}`},
		{name: "short password", body: `{"email":"a@x.com","password":"abc"}`},
		{name: "malformed json", body: `{"email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registrar := &fakeRegistrar{}
			rec := post(t, registrar, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, registrar.calls, "invalid request must not reach business logic")
		})
	}
}
