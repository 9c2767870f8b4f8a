package assets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Clock & ID =====
type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ===== Store interface =====

type Store interface {
	Insert(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, q AssetSearchQuery) ([]Asset, error)
	Update(ctx context.Context, id string, in UpdateAssetRequest) (*Asset, error)
	DeleteGuarded(ctx context.Context, id string) error
}

// ===== Service =====

type Service struct {
	store Store
	clock Clock
	id    IDGen
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: realClock{}, id: ulidGen{}}
}

func (s *Service) CreateAsset(ctx context.Context, req CreateAssetRequest) (AssetResponse, error) {
	if strings.TrimSpace(req.AssetName) == "" || strings.TrimSpace(req.CompanyName) == "" {
		return AssetResponse{}, ErrInvalid("assetName and companyName are required")
	}
	if req.AssetType != TypeReturnable && req.AssetType != TypeNonReturnable {
		return AssetResponse{}, ErrInvalid("assetType must be returnable or non-returnable")
	}
	if req.AssetQuantity < 0 {
		return AssetResponse{}, ErrInvalid("assetQuantity must be >= 0")
	}

	now := s.clock.Now()
	a := &Asset{
		AssetID:       s.id.NewULID(now),
		AssetName:     req.AssetName,
		AssetType:     req.AssetType,
		AssetQuantity: req.AssetQuantity,
		CompanyName:   req.CompanyName,
		DateAdded:     now,
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return AssetResponse{}, err
	}
	return a.toDTO(), nil
}

func (s *Service) GetAsset(ctx context.Context, id string) (AssetResponse, error) {
	if id == "" {
		return AssetResponse{}, ErrInvalid("asset id is required")
	}
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return AssetResponse{}, err
	}
	return a.toDTO(), nil
}

func (s *Service) ListAssets(ctx context.Context, q AssetSearchQuery) ([]AssetResponse, error) {
	list, err := s.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]AssetResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id string, req UpdateAssetRequest) (AssetResponse, error) {
	if id == "" {
		return AssetResponse{}, ErrInvalid("asset id is required")
	}
	if req.AssetType != nil && *req.AssetType != TypeReturnable && *req.AssetType != TypeNonReturnable {
		return AssetResponse{}, ErrInvalid("assetType must be returnable or non-returnable")
	}
	if req.AssetQuantity != nil && *req.AssetQuantity < 0 {
		return AssetResponse{}, ErrInvalid("assetQuantity must be >= 0")
	}
	a, err := s.store.Update(ctx, id, req)
	if err != nil {
		return AssetResponse{}, err
	}
	return a.toDTO(), nil
}

// DeleteAsset removes an asset unless an open request still references it.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalid("asset id is required")
	}
	return s.store.DeleteGuarded(ctx, id)
}
