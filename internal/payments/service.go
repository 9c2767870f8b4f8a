package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUpstream        Code = "UPSTREAM"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUpstream(msg string) *APIError { return &APIError{Code: CodeUpstream, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeUpstream:
			return 502
		default:
			return 500
		}
	}
	return 500
}

// IntentCreator is the slice of the payment processor we use. The real
// implementation wraps the Stripe client.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type stripeCreator struct{ api *client.API }

func NewStripeCreator(secretKey string) IntentCreator {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeCreator{api: api}
}

func (s *stripeCreator) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// ===== Service =====

type Service struct {
	intents IntentCreator
}

func NewService(intents IntentCreator) *Service {
	return &Service{intents: intents}
}

// CreatePaymentIntent charges in USD cents. The card confirmation happens
// on the frontend with the returned client secret.
func (s *Service) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", ErrInvalid("price must be > 0")
	}

	amount := int64(math.Round(price * 100))
	secret, err := s.intents.CreateIntent(ctx, amount, "usd")
	if err != nil {
		var api *APIError
		if errors.As(err, &api) {
			return "", err
		}
		return "", ErrUpstream("payment processor unavailable")
	}
	return secret, nil
}
