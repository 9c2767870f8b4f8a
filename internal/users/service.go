package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ===== Error model (same shape as the asset_mgmt packages) =====
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

// ===== Store interface =====

type Store interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u *User) error
	List(ctx context.Context, f UserFilter) ([]User, error)
	UpdateProfile(ctx context.Context, email string, in UpdateProfileRequest) error
	UpdateCompany(ctx context.Context, email, userCompany, companyImage string) error
	UpdateCompanyBulk(ctx context.Context, emails []string, userCompany, companyImage string) (int64, error)
	IncrementEmployeeLimit(ctx context.Context, email string, delta int) error
}

// ===== Service =====

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	store Store
	clock Clock
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: realClock{}}
}

// CreateUser registers a user once per email. A duplicate create is a
// no-op; the second return value reports whether a row was inserted.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, bool, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return UserResponse{}, false, ErrInvalid("email and name are required")
	}
	if req.EmployeeLimit < 0 {
		return UserResponse{}, false, ErrInvalid("employeeLimit must be >= 0")
	}

	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return UserResponse{}, false, err
	}
	if existing != nil {
		return existing.toDTO(), false, nil
	}

	role := req.Role
	if role == "" {
		role = RoleRequester
	}

	u := &User{
		Email:         req.Email,
		Name:          req.Name,
		Role:          role,
		EmployeeLimit: req.EmployeeLimit,
		CreatedAt:     s.clock.Now(),
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		u.DateOfBirth = sql.NullString{String: *req.DateOfBirth, Valid: true}
	}
	if req.UserCompany != nil && *req.UserCompany != "" {
		u.UserCompany = sql.NullString{String: *req.UserCompany, Valid: true}
	}
	if req.CompanyImage != nil && *req.CompanyImage != "" {
		u.CompanyImage = sql.NullString{String: *req.CompanyImage, Valid: true}
	}

	if err := s.store.Insert(ctx, u); err != nil {
		return UserResponse{}, false, err
	}
	return u.toDTO(), true, nil
}

func (s *Service) CheckUser(ctx context.Context, email string) (UserResponse, error) {
	if email == "" {
		return UserResponse{}, ErrInvalid("email is required")
	}
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return UserResponse{}, err
	}
	if u == nil {
		return UserResponse{}, ErrNotFound("user not found")
	}
	return u.toDTO(), nil
}

func (s *Service) FindUsers(ctx context.Context, f UserFilter) ([]UserResponse, error) {
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].toDTO())
	}
	return out, nil
}

func (s *Service) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (UserResponse, error) {
	if email == "" {
		return UserResponse{}, ErrInvalid("email is required")
	}
	if err := s.store.UpdateProfile(ctx, email, req); err != nil {
		return UserResponse{}, err
	}
	return s.CheckUser(ctx, email)
}

func (s *Service) ManageTeamMember(ctx context.Context, email string, req ManageTeamMemberRequest) (UserResponse, error) {
	if email == "" {
		return UserResponse{}, ErrInvalid("email is required")
	}
	if err := s.store.UpdateCompany(ctx, email, req.UserCompany, req.CompanyImage); err != nil {
		return UserResponse{}, err
	}
	return s.CheckUser(ctx, email)
}

func (s *Service) ManageMultipleMembers(ctx context.Context, req ManageMultipleMemberRequest) (int64, error) {
	if len(req.Emails) == 0 {
		return 0, ErrInvalid("emails is required")
	}
	return s.store.UpdateCompanyBulk(ctx, req.Emails, req.UserCompany, req.CompanyImage)
}

// IncreaseEmployeeLimit adds the purchased seats to the current limit.
// The addition happens in the database so concurrent purchases cannot
// lose an increment.
func (s *Service) IncreaseEmployeeLimit(ctx context.Context, email string, req IncreaseLimitRequest) (UserResponse, error) {
	if email == "" {
		return UserResponse{}, ErrInvalid("email is required")
	}
	if req.EmployeeLimit <= 0 {
		return UserResponse{}, ErrInvalid("employeeLimit must be > 0")
	}
	if err := s.store.IncrementEmployeeLimit(ctx, email, req.EmployeeLimit); err != nil {
		return UserResponse{}, err
	}
	return s.CheckUser(ctx, email)
}
