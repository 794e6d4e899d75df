package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	mediadomain "github.com/capstore/capstore/internal/media/domain"
)

func (s *Server) AddProductPhoto(c *gin.Context) {
	var req mediadomain.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ProductID = strings.TrimSpace(c.Param("id"))

	resp, err := s.mediaSvc.AddPhoto(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProductPhotos(c *gin.Context) {
	resp, err := s.mediaSvc.ListPhotos(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProductPhoto(c *gin.Context) {
	if err := s.mediaSvc.DeletePhoto(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) CreateLink(c *gin.Context) {
	var req mediadomain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.mediaSvc.CreateLink(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLinks(c *gin.Context) {
	resp, err := s.mediaSvc.ListLinks(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLink(c *gin.Context) {
	if err := s.mediaSvc.DeleteLink(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isMediaValidationError(err error) bool {
	switch err {
	case mediadomain.ErrInvalidID, mediadomain.ErrInvalidURL:
		return true
	default:
		return false
	}
}
