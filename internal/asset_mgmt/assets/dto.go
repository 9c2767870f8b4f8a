package assets

import "time"

// ===== Requests =====

type CreateAssetRequest struct {
	AssetName     string `json:"assetName" binding:"required"`
	AssetType     string `json:"assetType" binding:"required"`
	AssetQuantity int    `json:"assetQuantity"`
	CompanyName   string `json:"companyName" binding:"required"`
}

type UpdateAssetRequest struct {
	AssetName     *string `json:"assetName,omitempty"`
	AssetType     *string `json:"assetType,omitempty"`
	AssetQuantity *int    `json:"assetQuantity,omitempty"`
}

// ===== Responses =====

type AssetResponse struct {
	AssetID       string    `json:"assetId"`
	AssetName     string    `json:"assetName"`
	AssetType     string    `json:"assetType"`
	AssetQuantity int       `json:"assetQuantity"`
	CompanyName   string    `json:"companyName"`
	DateAdded     time.Time `json:"dateAdded"`
}

func (a *Asset) toDTO() AssetResponse {
	return AssetResponse{
		AssetID:       a.AssetID,
		AssetName:     a.AssetName,
		AssetType:     a.AssetType,
		AssetQuantity: a.AssetQuantity,
		CompanyName:   a.CompanyName,
		DateAdded:     a.DateAdded,
	}
}
