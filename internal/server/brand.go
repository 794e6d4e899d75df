package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
)

type createBrandRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateBrand(c *gin.Context) {
	var req createBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.brandSvc.Create(c.Request.Context(), branddomain.CreateRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBrands(c *gin.Context) {
	resp, err := s.brandSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBrandByID(c *gin.Context) {
	resp, err := s.brandSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteBrand(c *gin.Context) {
	if err := s.brandSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isBrandValidationError(err error) bool {
	switch err {
	case branddomain.ErrInvalidName,
		branddomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
