package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	stockdomain "github.com/capstore/capstore/internal/stock/domain"
)

type createStockRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (s *Server) CreateStock(c *gin.Context) {
	var req createStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.stockSvc.Create(c.Request.Context(), stockdomain.CreateRequest{
		ProductID: strings.TrimSpace(req.ProductID),
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductStocks(c *gin.Context) {
	resp, err := s.stockSvc.ListByProduct(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStockByID(c *gin.Context) {
	resp, err := s.stockSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStock(c *gin.Context) {
	if err := s.stockSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isStockValidationError(err error) bool {
	switch err {
	case stockdomain.ErrInvalidID,
		stockdomain.ErrInvalidSize,
		stockdomain.ErrInvalidColor:
		return true
	default:
		return false
	}
}
