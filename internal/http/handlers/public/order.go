package public

import (
	"errors"
	"strconv"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrder 结算下单
// 前置条件不满足时返回成功响应但携带 redirect_to，前端据此引导补全。
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	result, err := h.OrderService.PlaceOrder(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			respondError(c, response.CodeUnauthorized, "Authentication required", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrOrderCreateFailed):
			respondError(c, response.CodeInternal, "Failed to create order", err)
		default:
			respondError(c, response.CodeInternal, "Failed to create order", err)
		}
		return
	}

	data := gin.H{
		"success":     result.Success,
		"message":     result.Message,
		"redirect_to": result.RedirectTo,
	}
	if result.Order != nil {
		data["order"] = result.Order
	}
	response.Success(c, data)
}

// GetOrder 获取订单详情（仅本人或管理员可见）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "Invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(orderID), uid, isAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "Order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch order", err)
		return
	}
	response.Success(c, order)
}

// GetMyOrders 获取当前用户订单列表
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListUserOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}
