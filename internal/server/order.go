package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	orderdomain "github.com/capstore/capstore/internal/order/domain"
)

type createOrderItem struct {
	StockID  string `json:"stock_id"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	Address string            `json:"address"`
	Total   string            `json:"total"`
	Items   []createOrderItem `json:"items"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	total, err := decimal.NewFromString(strings.TrimSpace(req.Total))
	if err != nil {
		AbortWithError(c, newValidationError("total", "invalid_total", "invalid total"))
		return
	}

	items := make([]orderdomain.CreateItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdomain.CreateItem{
			StockID:  strings.TrimSpace(item.StockID),
			Quantity: item.Quantity,
		})
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		Address: strings.TrimSpace(req.Address),
		Total:   total,
		Items:   items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	resp, err := s.orderSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidID,
		orderdomain.ErrInvalidAddress,
		orderdomain.ErrInvalidTotal,
		orderdomain.ErrNoItems,
		orderdomain.ErrInvalidQuantity:
		return true
	default:
		return false
	}
}
