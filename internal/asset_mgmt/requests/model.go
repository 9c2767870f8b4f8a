package requests

import (
	"database/sql"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusReturned = "returned"
)

// Request is one row of the requests table. asset_name/asset_type are
// snapshots taken at request time; asset_id is a weak reference.
type Request struct {
	RequestID        string
	AssetID          string
	AssetName        string
	AssetType        string
	UserEmail        string
	UserName         string
	RequesterCompany string
	RequestNote      sql.NullString
	RequestDate      time.Time
	Status           string
	ActionDate       sql.NullTime
}

// Search conditions for the request list.
type RequestFilter struct {
	NameSearch     string // case-insensitive substring on user_name
	EmailSearch    string
	CompanySearch  string
	StatusSearch   string
	TypeSearch     string
	ItemNameSearch string // exact match on asset_name, case-insensitive
}

// Transition is the manager decision applied to a request together with
// its inventory side effect.
type Transition struct {
	RequestID  string
	NewStatus  string
	ActionDate time.Time
	AssetID    string
}
