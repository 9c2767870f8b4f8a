package assets

import "time"

const (
	TypeReturnable    = "returnable"
	TypeNonReturnable = "non-returnable"
)

// Asset is one row of the assets table.
type Asset struct {
	AssetID       string
	AssetName     string
	AssetType     string
	AssetQuantity int
	CompanyName   string
	DateAdded     time.Time
}

// Search conditions for the asset list.
type AssetSearchQuery struct {
	TypeField      string
	Search         string // case-insensitive substring on asset_name
	CompanySearch  string
	QuantityStatus string // "available" | "outOfStock"
	SortOrder      string // "1" asc / "-1" desc on quantity
}
