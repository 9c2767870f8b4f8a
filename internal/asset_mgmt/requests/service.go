package requests

import (
	"context"
	"crypto/rand"
	"database/sql"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
)

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
	Insert(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, f RequestFilter) ([]Request, error)
	Delete(ctx context.Context, id string) error
	ExecTransition(ctx context.Context, t Transition) (*Request, error)
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

func (s *Service) CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error) {
	if strings.TrimSpace(req.AssetID) == "" {
		return RequestResponse{}, ErrInvalid("assetId is required")
	}
	if strings.TrimSpace(req.UserEmail) == "" || strings.TrimSpace(req.UserName) == "" {
		return RequestResponse{}, ErrInvalid("userEmail and userName are required")
	}

	now := s.clock.Now()
	r := &Request{
		RequestID:        s.id.NewULID(now),
		AssetID:          req.AssetID,
		AssetName:        req.AssetName,
		AssetType:        req.AssetType,
		UserEmail:        req.UserEmail,
		UserName:         req.UserName,
		RequesterCompany: req.RequesterCompany,
		RequestDate:      now,
		Status:           StatusPending,
	}
	if req.RequestNote != nil && *req.RequestNote != "" {
		r.RequestNote = sql.NullString{String: *req.RequestNote, Valid: true}
	}

	if err := s.store.Insert(ctx, r); err != nil {
		return RequestResponse{}, err
	}
	return r.toDTO(), nil
}

func (s *Service) ListRequests(ctx context.Context, f RequestFilter) ([]RequestResponse, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RequestResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (RequestResponse, error) {
	if id == "" {
		return RequestResponse{}, ErrInvalid("request id is required")
	}
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return r.toDTO(), nil
}

// TransitionRequest applies a manager decision (approve / reject / return)
// together with its inventory side effect. An optimistic-check miss is
// retried once before surfacing.
func (s *Service) TransitionRequest(ctx context.Context, requestID string, req ManageRequestRequest) (RequestResponse, error) {
	if requestID == "" {
		return RequestResponse{}, ErrInvalid("request id is required")
	}
	switch req.NewStatus {
	case StatusApproved, StatusRejected, StatusReturned:
	default:
		return RequestResponse{}, ErrInvalid("newStatus must be approved, rejected or returned")
	}

	actionDate, err := s.parseActionDate(req.ActionDate)
	if err != nil {
		return RequestResponse{}, err
	}

	t := Transition{
		RequestID:  requestID,
		NewStatus:  req.NewStatus,
		ActionDate: actionDate,
		AssetID:    req.AssetID,
	}

	r, err := s.store.ExecTransition(ctx, t)
	if IsCode(err, CodeConcurrentModification) {
		r, err = s.store.ExecTransition(ctx, t)
	}
	if err != nil {
		return RequestResponse{}, err
	}
	return r.toDTO(), nil
}

func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalid("request id is required")
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) parseActionDate(v string) (time.Time, error) {
	if v == "" {
		return s.clock.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalid("actionDate must be YYYY-MM-DD or RFC3339")
}
