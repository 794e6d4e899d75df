package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	pricedomain "github.com/capstore/capstore/internal/price/domain"
)

type setPriceRequest struct {
	Value   string `json:"value"`
	StartAt string `json:"start_at"`
}

func (s *Server) SetProductPrice(c *gin.Context) {
	var req setPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	value, err := decimal.NewFromString(strings.TrimSpace(req.Value))
	if err != nil {
		AbortWithError(c, newValidationError("value", "invalid_value", "invalid value"))
		return
	}

	startAt, err := parseOptionalTime(req.StartAt)
	if err != nil {
		AbortWithError(c, newValidationError("start_at", "invalid_start", "invalid start"))
		return
	}

	resp, err := s.priceSvc.SetPrice(c.Request.Context(), pricedomain.SetPriceRequest{
		ProductID: strings.TrimSpace(c.Param("id")),
		Value:     value,
		StartAt:   startAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductPrices(c *gin.Context) {
	resp, err := s.priceSvc.History(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPriceValidationError(err error) bool {
	switch err {
	case pricedomain.ErrInvalidID,
		pricedomain.ErrInvalidValue,
		pricedomain.ErrInvalidStart:
		return true
	default:
		return false
	}
}
