package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyDisabledAcceptsEverything(t *testing.T) {
	ts := NewTurnstile(&config.Config{})
	assert.False(t, ts.Enabled())

	ok, err := ts.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseForm()) {
			return
		}
		assert.Equal(t, "/turnstile/v0/siteverify", r.URL.Path)
		assert.Equal(t, "shh", r.PostForm.Get("secret"))
		assert.Equal(t, "203.0.113.9", r.PostForm.Get("remoteip"))

		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("response") == "good" {
			w.Write([]byte(`{"success":true,"hostname":"learnhub.test"}`))
			return
		}
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	ts := NewTurnstile(&config.Config{TurnstileSecretKey: "shh"})
	ts.client.SetBaseURL(srv.URL)

	ok, err := ts.Verify(context.Background(), "good", "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ts.Verify(context.Background(), "forged", "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ts.Verify(context.Background(), "", "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, ok)
}
