package requests

import "time"

// ===== Requests =====

type CreateRequestRequest struct {
	AssetID          string  `json:"assetId" binding:"required"`
	AssetName        string  `json:"assetName" binding:"required"`
	AssetType        string  `json:"assetType" binding:"required"`
	UserEmail        string  `json:"userEmail" binding:"required"`
	UserName         string  `json:"userName" binding:"required"`
	RequesterCompany string  `json:"requesterCompany"`
	RequestNote      *string `json:"requestNote,omitempty"`
}

type ManageRequestRequest struct {
	NewStatus  string `json:"newStatus" binding:"required"`
	ActionDate string `json:"actionDate"`
	AssetID    string `json:"assetId"`
}

// ===== Responses =====

type RequestResponse struct {
	RequestID        string     `json:"requestId"`
	AssetID          string     `json:"assetId"`
	AssetName        string     `json:"assetName"`
	AssetType        string     `json:"assetType"`
	UserEmail        string     `json:"userEmail"`
	UserName         string     `json:"userName"`
	RequesterCompany string     `json:"requesterCompany"`
	RequestNote      *string    `json:"requestNote,omitempty"`
	RequestDate      time.Time  `json:"requestDate"`
	Status           string     `json:"status"`
	ActionDate       *time.Time `json:"actionDate,omitempty"`
}

func (r *Request) toDTO() RequestResponse {
	resp := RequestResponse{
		RequestID:        r.RequestID,
		AssetID:          r.AssetID,
		AssetName:        r.AssetName,
		AssetType:        r.AssetType,
		UserEmail:        r.UserEmail,
		UserName:         r.UserName,
		RequesterCompany: r.RequesterCompany,
		RequestDate:      r.RequestDate,
		Status:           r.Status,
	}
	if r.RequestNote.Valid {
		val := r.RequestNote.String
		resp.RequestNote = &val
	}
	if r.ActionDate.Valid {
		val := r.ActionDate.Time
		resp.ActionDate = &val
	}
	return resp
}
