package custom_requests

import "time"

// ===== Requests =====

type CreateCustomRequestRequest struct {
	AssetName        string  `json:"assetName" binding:"required"`
	AssetType        string  `json:"assetType" binding:"required"`
	AssetPrice       float64 `json:"assetPrice"`
	AssetImage       *string `json:"assetImage,omitempty"`
	RequestReason    *string `json:"requestReason,omitempty"`
	RequestInfo      *string `json:"requestInfo,omitempty"`
	EmployeeEmail    string  `json:"employeeEmail" binding:"required"`
	EmployeeName     string  `json:"employeeName" binding:"required"`
	RequesterCompany string  `json:"requesterCompany"`
}

type ManageCustomRequestRequest struct {
	NewStatus  string `json:"newStatus" binding:"required"`
	ActionDate string `json:"actionDate"`
}

type UpdateCustomRequestRequest struct {
	AssetName     *string  `json:"assetName,omitempty"`
	AssetType     *string  `json:"assetType,omitempty"`
	AssetPrice    *float64 `json:"assetPrice,omitempty"`
	AssetImage    *string  `json:"assetImage,omitempty"`
	RequestReason *string  `json:"requestReason,omitempty"`
	RequestInfo   *string  `json:"requestInfo,omitempty"`
}

// ===== Responses =====

type CustomRequestResponse struct {
	CustomRequestID  string     `json:"customRequestId"`
	AssetName        string     `json:"assetName"`
	AssetType        string     `json:"assetType"`
	AssetPrice       float64    `json:"assetPrice"`
	AssetImage       *string    `json:"assetImage,omitempty"`
	RequestReason    *string    `json:"requestReason,omitempty"`
	RequestInfo      *string    `json:"requestInfo,omitempty"`
	EmployeeEmail    string     `json:"employeeEmail"`
	EmployeeName     string     `json:"employeeName"`
	RequesterCompany string     `json:"requesterCompany"`
	RequestDate      time.Time  `json:"requestDate"`
	Status           string     `json:"status"`
	ActionDate       *time.Time `json:"actionDate,omitempty"`
}

func (r *CustomRequest) toDTO() CustomRequestResponse {
	resp := CustomRequestResponse{
		CustomRequestID:  r.CustomRequestID,
		AssetName:        r.AssetName,
		AssetType:        r.AssetType,
		AssetPrice:       r.AssetPrice,
		EmployeeEmail:    r.EmployeeEmail,
		EmployeeName:     r.EmployeeName,
		RequesterCompany: r.RequesterCompany,
		RequestDate:      r.RequestDate,
		Status:           r.Status,
	}
	if r.AssetImage.Valid {
		val := r.AssetImage.String
		resp.AssetImage = &val
	}
	if r.RequestReason.Valid {
		val := r.RequestReason.String
		resp.RequestReason = &val
	}
	if r.RequestInfo.Valid {
		val := r.RequestInfo.String
		resp.RequestInfo = &val
	}
	if r.ActionDate.Valid {
		val := r.ActionDate.Time
		resp.ActionDate = &val
	}
	return resp
}
