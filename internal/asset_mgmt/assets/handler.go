package assets

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: reads for any signed-in user, writes for managers.
func RegisterRoutes(authed, managers gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	authed.GET("/assets", h.ListAssets)
	authed.GET("/asset/:id", h.GetAsset)

	managers.POST("/create-asset", h.CreateAsset)
	managers.PUT("/update-asset/:id", h.UpdateAsset)
	managers.DELETE("/delete-asset/:id", h.DeleteAsset)
}

func (h *Handler) ListAssets(c *gin.Context) {
	q := AssetSearchQuery{
		TypeField:      c.Query("typeField"),
		Search:         c.Query("search"),
		CompanySearch:  c.Query("companySearch"),
		QuantityStatus: c.Query("quantityStatus"),
		SortOrder:      c.Query("sortOrder"),
	}

	res, err := h.svc.ListAssets(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetAsset(c *gin.Context) {
	res, err := h.svc.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateAsset(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.Header("Location", "/asset/"+res.AssetID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.UpdateAsset(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	if err := h.svc.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
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
