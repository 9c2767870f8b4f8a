package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// Seat packages are bought by managers.
func RegisterRoutes(managers gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	managers.POST("/create-payment-intent", h.CreatePaymentIntent)
}

type CreateIntentRequest struct {
	Price float64 `json:"price" binding:"required"`
}

func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiErr(CodeInvalidArgument, "invalid json"))
		return
	}

	secret, err := h.svc.CreatePaymentIntent(c.Request.Context(), req.Price)
	if err != nil {
		c.JSON(toHTTPStatus(err), apiErrFrom(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
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
