package custom_requests

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

// ===== Error model (same shape as assets/requests) =====
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
	Insert(ctx context.Context, r *CustomRequest) error
	GetByID(ctx context.Context, id string) (*CustomRequest, error)
	List(ctx context.Context, f CustomRequestFilter) ([]CustomRequest, error)
	SetStatus(ctx context.Context, id, status string, actionDate time.Time) error
	Update(ctx context.Context, id string, in UpdateCustomRequestRequest) error
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

func (s *Service) CreateCustomRequest(ctx context.Context, req CreateCustomRequestRequest) (CustomRequestResponse, error) {
	if strings.TrimSpace(req.AssetName) == "" {
		return CustomRequestResponse{}, ErrInvalid("assetName is required")
	}
	if strings.TrimSpace(req.EmployeeEmail) == "" {
		return CustomRequestResponse{}, ErrInvalid("employeeEmail is required")
	}
	if req.AssetPrice < 0 {
		return CustomRequestResponse{}, ErrInvalid("assetPrice must be >= 0")
	}

	now := s.clock.Now()
	r := &CustomRequest{
		CustomRequestID:  s.id.NewULID(now),
		AssetName:        req.AssetName,
		AssetType:        req.AssetType,
		AssetPrice:       req.AssetPrice,
		EmployeeEmail:    req.EmployeeEmail,
		EmployeeName:     req.EmployeeName,
		RequesterCompany: req.RequesterCompany,
		RequestDate:      now,
		Status:           StatusPending,
	}
	r.AssetImage = toNullString(req.AssetImage)
	r.RequestReason = toNullString(req.RequestReason)
	r.RequestInfo = toNullString(req.RequestInfo)

	if err := s.store.Insert(ctx, r); err != nil {
		return CustomRequestResponse{}, err
	}
	return r.toDTO(), nil
}

func (s *Service) ListCustomRequests(ctx context.Context, f CustomRequestFilter) ([]CustomRequestResponse, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]CustomRequestResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

// ManageCustomRequest updates the status only. Custom requests have no
// linked asset, so there is no inventory side effect here.
func (s *Service) ManageCustomRequest(ctx context.Context, id string, req ManageCustomRequestRequest) (CustomRequestResponse, error) {
	if id == "" {
		return CustomRequestResponse{}, ErrInvalid("custom request id is required")
	}
	switch req.NewStatus {
	case StatusApproved, StatusRejected:
	default:
		return CustomRequestResponse{}, ErrInvalid("newStatus must be approved or rejected")
	}

	actionDate := s.clock.Now()
	if req.ActionDate != "" {
		parsed, err := parseDate(req.ActionDate)
		if err != nil {
			return CustomRequestResponse{}, ErrInvalid("actionDate must be YYYY-MM-DD or RFC3339")
		}
		actionDate = parsed
	}

	if err := s.store.SetStatus(ctx, id, req.NewStatus, actionDate); err != nil {
		return CustomRequestResponse{}, err
	}
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return CustomRequestResponse{}, err
	}
	return r.toDTO(), nil
}

func (s *Service) UpdateCustomRequest(ctx context.Context, id string, req UpdateCustomRequestRequest) (CustomRequestResponse, error) {
	if id == "" {
		return CustomRequestResponse{}, ErrInvalid("custom request id is required")
	}
	if req.AssetPrice != nil && *req.AssetPrice < 0 {
		return CustomRequestResponse{}, ErrInvalid("assetPrice must be >= 0")
	}
	if err := s.store.Update(ctx, id, req); err != nil {
		return CustomRequestResponse{}, err
	}
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return CustomRequestResponse{}, err
	}
	return r.toDTO(), nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func toNullString(v *string) sql.NullString {
	if v != nil && *v != "" {
		return sql.NullString{String: *v, Valid: true}
	}
	return sql.NullString{}
}
