package public

import (
	"errors"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取当前购物车（登录用户优先，其次会话购物车）
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.GetCart(cartIdentity(c))
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch cart", err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	cart, message, err := h.CartService.AddItem(cartIdentity(c), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "Product not found", nil)
		case errors.Is(err, service.ErrStockInsufficient):
			respondError(c, response.CodeBadRequest, "Not enough stock", nil)
		case errors.Is(err, service.ErrInvalidParams):
			respondError(c, response.CodeBadRequest, "Invalid request", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update cart", err)
		}
		return
	}
	response.SuccessWithMsg(c, message, cart)
}

// RemoveCartItem 从购物车减一件商品（数量归零时移除该行）
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	cart, message, err := h.CartService.RemoveItem(cartIdentity(c), req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, response.CodeNotFound, "Cart not found", nil)
		case errors.Is(err, service.ErrCartItemNotFound):
			respondError(c, response.CodeNotFound, "Item not in cart", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to update cart", err)
		}
		return
	}
	response.SuccessWithMsg(c, message, cart)
}
