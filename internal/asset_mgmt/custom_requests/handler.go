package custom_requests

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: requesters own their custom requests, managers decide.
func RegisterRoutes(authed, managers gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	authed.GET("/allcustomrequests", h.ListCustomRequests)
	authed.POST("/create-custom-request", h.CreateCustomRequest)
	authed.PUT("/update-custom-request/:id", h.UpdateCustomRequest)

	managers.PUT("/manage-custom-request/:id", h.ManageCustomRequest)
}

func (h *Handler) ListCustomRequests(c *gin.Context) {
	f := CustomRequestFilter{
		CompanySearch: c.Query("companySearch"),
		EmailSearch:   c.Query("emailSearch"),
	}

	res, err := h.svc.ListCustomRequests(c.Request.Context(), f)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"singleResult": res})
}

func (h *Handler) CreateCustomRequest(c *gin.Context) {
	var req CreateCustomRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateCustomRequest(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ManageCustomRequest(c *gin.Context) {
	var req ManageCustomRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.ManageCustomRequest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateCustomRequest(c *gin.Context) {
	var req UpdateCustomRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateCustomRequest(c.Request.Context(), c.Param("id"), req)
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
