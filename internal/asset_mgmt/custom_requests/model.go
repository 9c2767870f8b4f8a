package custom_requests

import (
	"database/sql"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// CustomRequest is a purchase request for an item that is not in the asset
// catalog. It shares the request lifecycle but never touches inventory.
type CustomRequest struct {
	CustomRequestID  string
	AssetName        string
	AssetType        string
	AssetPrice       float64
	AssetImage       sql.NullString
	RequestReason    sql.NullString
	RequestInfo      sql.NullString
	EmployeeEmail    string
	EmployeeName     string
	RequesterCompany string
	RequestDate      time.Time
	Status           string
	ActionDate       sql.NullTime
}

type CustomRequestFilter struct {
	CompanySearch string
	EmailSearch   string
}
