package users

import (
	"database/sql"
	"time"
)

const (
	RoleRequester = "requester"
	RoleManager   = "manager"
	RoleAdmin     = "admin"
)

// User is keyed by email. employee_limit is a seat count owned by
// managers; it is only ever incremented (admin action).
type User struct {
	Email         string
	Name          string
	DateOfBirth   sql.NullString
	Role          string
	UserCompany   sql.NullString
	CompanyImage  sql.NullString
	EmployeeLimit int
	CreatedAt     time.Time
}

type UserFilter struct {
	UserCompany string
	Role        string
}
