package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
)

var ErrInvalidSignature = errors.New("invalid stripe signature")

// Currencies Stripe charges without a minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// ToMinorUnits converts a major-unit price to the integer amount Stripe expects.
func ToMinorUnits(amount float64, currency string) int64 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(amount int64, currency string) float64 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return float64(amount)
	}
	return float64(amount) / 100
}

type CheckoutParams struct {
	UserID        uint
	CourseID      uint
	Title         string
	ImageURL      string
	CustomerEmail string
	Amount        float64
	Currency      string
	SuccessURL    string
	CancelURL     string
}

type CheckoutResult struct {
	SessionID string
	URL       string
}

type StripeService struct {
	secretKey     string
	webhookSecret string
}

func NewStripeService(cfg *config.Config) *StripeService {
	stripe.Key = cfg.Stripe.SecretKey
	return &StripeService{
		secretKey:     cfg.Stripe.SecretKey,
		webhookSecret: cfg.Stripe.WebhookSecret,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutResult, error) {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(p.Title),
	}
	if p.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{p.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(p.Currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(ToMinorUnits(p.Amount, p.Currency)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	params.Context = ctx

	params.AddMetadata("user_id", strconv.FormatUint(uint64(p.UserID), 10))
	params.AddMetadata("course_id", strconv.FormatUint(uint64(p.CourseID), 10))

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifiesSignatures reports whether a webhook secret is configured.
func (s *StripeService) VerifiesSignatures() bool {
	return s.webhookSecret != ""
}

// ConstructEvent authenticates and parses a webhook body. Without a webhook
// secret the body is parsed as-is.
func (s *StripeService) ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	if s.webhookSecret == "" {
		var event stripe.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return stripe.Event{}, fmt.Errorf("failed to parse webhook body: %w", err)
		}
		return event, nil
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}
