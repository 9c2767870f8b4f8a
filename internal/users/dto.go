package users

import "time"

// ===== Requests =====

type CreateUserRequest struct {
	Email         string  `json:"email" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	DateOfBirth   *string `json:"dateOfBirth,omitempty"`
	Role          string  `json:"role"`
	UserCompany   *string `json:"userCompany,omitempty"`
	CompanyImage  *string `json:"companyImage,omitempty"`
	EmployeeLimit int     `json:"employeeLimit"`
}

type UpdateProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}

type ManageTeamMemberRequest struct {
	UserCompany  string `json:"userCompany"`
	CompanyImage string `json:"companyImage"`
}

type ManageMultipleMemberRequest struct {
	Emails       []string `json:"emails" binding:"required"`
	UserCompany  string   `json:"userCompany"`
	CompanyImage string   `json:"companyImage"`
}

type IncreaseLimitRequest struct {
	EmployeeLimit int `json:"employeeLimit" binding:"required"`
}

// ===== Responses =====

type UserResponse struct {
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	DateOfBirth   *string   `json:"dateOfBirth,omitempty"`
	Role          string    `json:"role"`
	UserCompany   *string   `json:"userCompany,omitempty"`
	CompanyImage  *string   `json:"companyImage,omitempty"`
	EmployeeLimit int       `json:"employeeLimit"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u *User) toDTO() UserResponse {
	resp := UserResponse{
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmployeeLimit: u.EmployeeLimit,
		CreatedAt:     u.CreatedAt,
	}
	if u.DateOfBirth.Valid {
		val := u.DateOfBirth.String
		resp.DateOfBirth = &val
	}
	if u.UserCompany.Valid {
		val := u.UserCompany.String
		resp.UserCompany = &val
	}
	if u.CompanyImage.Valid {
		val := u.CompanyImage.String
		resp.CompanyImage = &val
	}
	return resp
}
