package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sefazor/learnhub-backend/internal/config"
	"go.uber.org/zap"
)

const (
	VariantPublic    = "public"
	VariantThumbnail = "thumbnail"

	cloudflareAPI = "https://api.cloudflare.com/client/v4"
)

// CloudflareImages hosts avatars and course thumbnails.
type CloudflareImages struct {
	accountID   string
	accountHash string
	client      *resty.Client
	log         *zap.Logger
}

type CloudflareImageResponse struct {
	Success bool `json:"success"`
	Result  struct {
		ID       string   `json:"id"`
		Variants []string `json:"variants"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func NewCloudflareImages(cfg *config.Config, log *zap.Logger) *CloudflareImages {
	client := resty.New().
		SetBaseURL(cloudflareAPI).
		SetAuthToken(cfg.CloudflareImages.Token).
		SetTimeout(5 * time.Minute).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &CloudflareImages{
		accountID:   cfg.CloudflareImages.AccountID,
		accountHash: cfg.CloudflareImages.Hash,
		client:      client,
		log:         log,
	}
}

func (c *CloudflareImages) Upload(ctx context.Context, reader io.Reader, filename string) (string, []string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", nil, errors.New("empty file, size is 0 bytes")
	}

	var result CloudflareImageResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"requireSignedURLs": "false",
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/accounts/%s/images/v1", c.accountID))
	if err != nil {
		return "", nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		return "", nil, fmt.Errorf("cloudflare returned non-OK status: %d, response: %s", resp.StatusCode(), resp.String())
	}
	if !result.Success {
		return "", nil, fmt.Errorf("cloudflare returned error: %v", result.Errors)
	}

	c.log.Debug("uploaded image", zap.String("image_id", result.Result.ID), zap.Int("size", len(data)))

	variantURLs := []string{
		c.GetVariantURL(result.Result.ID, VariantPublic),
		c.GetVariantURL(result.Result.ID, VariantThumbnail),
	}
	return result.Result.ID, variantURLs, nil
}

func (c *CloudflareImages) Delete(ctx context.Context, imageID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/accounts/%s/images/v1/%s", c.accountID, imageID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("failed to delete image: %d", resp.StatusCode())
	}
	return nil
}

func (c *CloudflareImages) GetPublicURL(imageID string) string {
	return c.GetVariantURL(imageID, VariantPublic)
}

func (c *CloudflareImages) GetVariantURL(imageID string, variant string) string {
	return fmt.Sprintf("https://imagedelivery.net/%s/%s/%s", c.accountHash, imageID, variant)
}

func (c *CloudflareImages) GetThumbnailURL(imageID string) string {
	return c.GetVariantURL(imageID, VariantThumbnail)
}
