package captcha

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sefazor/learnhub-backend/internal/config"
)

const turnstileBaseURL = "https://challenges.cloudflare.com"

type TurnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
	Challenge  string   `json:"challenge_ts"`
	Action     string   `json:"action"`
}

// Turnstile verifies Cloudflare Turnstile tokens. Without a secret key every
// token is accepted.
type Turnstile struct {
	client *resty.Client
	secret string
}

func NewTurnstile(cfg *config.Config) *Turnstile {
	client := resty.New().
		SetBaseURL(turnstileBaseURL).
		SetTimeout(5 * time.Second)

	return &Turnstile{
		client: client,
		secret: cfg.TurnstileSecretKey,
	}
}

func (t *Turnstile) Enabled() bool {
	return t.secret != ""
}

// Verify checks if the provided token is valid.
func (t *Turnstile) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !t.Enabled() {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := map[string]string{
		"secret":   t.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	var result TurnstileResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		Post("/turnstile/v0/siteverify")
	if err != nil {
		return false, fmt.Errorf("turnstile request failed: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("turnstile returned %s", resp.Status())
	}

	return result.Success, nil
}
