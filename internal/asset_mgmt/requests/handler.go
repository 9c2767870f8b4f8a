package requests

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: requesters list and create, managers decide and delete.
func RegisterRoutes(authed, managers gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	authed.GET("/allrequests", h.ListRequests)
	authed.POST("/create-request", h.CreateRequest)

	managers.PUT("/manage-request/:id", h.ManageRequest)
	managers.DELETE("/delete-request/:id", h.DeleteRequest)
}

func (h *Handler) ListRequests(c *gin.Context) {
	f := RequestFilter{
		NameSearch:     c.Query("nameSearch"),
		EmailSearch:    c.Query("emailSearch"),
		CompanySearch:  c.Query("companySearch"),
		StatusSearch:   c.Query("statusSearch"),
		TypeSearch:     c.Query("typeSearch"),
		ItemNameSearch: c.Query("itemNameSearch"),
	}

	res, err := h.svc.ListRequests(c.Request.Context(), f)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	// the frontend expects the list wrapped in singleResult
	c.JSON(http.StatusOK, gin.H{"singleResult": res})
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateRequest(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ManageRequest(c *gin.Context) {
	var req ManageRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.TransitionRequest(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteRequest(c *gin.Context) {
	if err := h.svc.DeleteRequest(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
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
