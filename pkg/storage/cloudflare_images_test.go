package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestImages(t *testing.T, handler http.HandlerFunc) *CloudflareImages {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.CloudflareImages.AccountID = "acc"
	cfg.CloudflareImages.Token = "tok"
	cfg.CloudflareImages.Hash = "hash"

	c := NewCloudflareImages(cfg, zap.NewNop())
	c.client.SetBaseURL(srv.URL).SetRetryCount(0)
	return c
}

func TestCloudflareImagesUpload(t *testing.T) {
	c := newTestImages(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acc/images/v1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		body, _ := io.ReadAll(file)
		assert.Equal(t, "avatar.png", header.Filename)
		assert.Equal(t, "png-bytes", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"result":{"id":"img_1","variants":[]}}`))
	})

	id, variants, err := c.Upload(context.Background(), strings.NewReader("png-bytes"), "avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "img_1", id)
	assert.Equal(t, []string{
		"https://imagedelivery.net/hash/img_1/public",
		"https://imagedelivery.net/hash/img_1/thumbnail",
	}, variants)
}

func TestCloudflareImagesUploadErrors(t *testing.T) {
	c := newTestImages(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"code":5400,"message":"bad image"}]}`))
	})

	_, _, err := c.Upload(context.Background(), strings.NewReader(""), "empty.png")
	assert.Error(t, err)

	_, _, err = c.Upload(context.Background(), strings.NewReader("x"), "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestCloudflareImagesDelete(t *testing.T) {
	c := newTestImages(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/accounts/acc/images/v1/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, c.Delete(context.Background(), "img_1"))
	assert.Error(t, c.Delete(context.Background(), "missing"))
}

func TestLectureVideoKey(t *testing.T) {
	key := LectureVideoKey(12, "Intro.MP4")
	assert.True(t, strings.HasPrefix(key, "lectures/12/"))
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "lectures/12/"), ".mp4"), 36)
}
