package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: sign-up is open (it happens before a token exists),
// team management is for managers, seat limits are admin-only.
func RegisterRoutes(public, authed, managers, admins gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	public.POST("/users", h.CreateUser)

	authed.GET("/checkuser", h.CheckUser)
	authed.PUT("/users/:email", h.UpdateProfile)

	managers.GET("/find-users", h.FindUsers)
	managers.PUT("/manage-team-member/:email", h.ManageTeamMember)
	managers.PUT("/manage-multiple-member", h.ManageMultipleMembers)

	admins.PUT("/adminusers/:email", h.IncreaseEmployeeLimit)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, created, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	if !created {
		// duplicate sign-in, not an error: the frontend posts the profile
		// on every login
		c.JSON(http.StatusOK, gin.H{"message": "user already exists"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CheckUser(c *gin.Context) {
	res, err := h.svc.CheckUser(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) FindUsers(c *gin.Context) {
	f := UserFilter{
		UserCompany: c.Query("userCompany"),
		Role:        c.Query("role"),
	}
	res, err := h.svc.FindUsers(c.Request.Context(), f)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateProfile(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ManageTeamMember(c *gin.Context) {
	var req ManageTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.ManageTeamMember(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ManageMultipleMembers(c *gin.Context) {
	var req ManageMultipleMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	n, err := h.svc.ManageMultipleMembers(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": n})
}

func (h *Handler) IncreaseEmployeeLimit(c *gin.Context) {
	var req IncreaseLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.IncreaseEmployeeLimit(c.Request.Context(), c.Param("email"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ===== error DTO =====

type errDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiErr(code Code, msg string) errDTO {
	var e errDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func apiErrFrom(err error) errDTO {
	if api, ok := err.(*APIError); ok {
		return apiErr(api.Code, api.Message)
	}
	return apiErr(CodeInternal, err.Error())
}
