package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseBoolNullable(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "Invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	isPaid, err := parseBoolNullable(strings.TrimSpace(c.Query("is_paid")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid is_paid filter", err)
		return
	}
	isDelivered, err := parseBoolNullable(strings.TrimSpace(c.Query("is_delivered")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid is_delivered filter", err)
		return
	}
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid created_from filter", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "Invalid created_to filter", err)
		return
	}

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, perr := strconv.ParseUint(raw, 10, 64); perr == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListAdminOrders(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		IsPaid:      isPaid,
		IsDelivered: isDelivered,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrder(orderID, 0, true)
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

// AdminMarkOrderPaid 货到付款订单人工落账
func (h *Handler) AdminMarkOrderPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.SettlementService.MarkCODPaid(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			respondError(c, response.CodeBadRequest, "Order is already paid", nil)
		case errors.Is(err, service.ErrPaymentMethodInvalid):
			respondError(c, response.CodeBadRequest, "Order is not cash on delivery", nil)
		case errors.Is(err, service.ErrStockInsufficient):
			respondError(c, response.CodeBadRequest, "Not enough stock to settle order", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to mark order paid", err)
		}
		return
	}

	requestLog(c).Infow("admin_order_marked_paid", "order_id", order.ID, "order_no", order.OrderNo)
	response.Success(c, order)
}

// AdminMarkOrderDelivered 标记订单已发货/送达
func (h *Handler) AdminMarkOrderDelivered(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.SettlementService.MarkOrderDelivered(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrOrderNotPaid):
			respondError(c, response.CodeBadRequest, "Order is not paid yet", nil)
		case errors.Is(err, service.ErrAlreadyDelivered):
			respondError(c, response.CodeBadRequest, "Order is already delivered", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to mark order delivered", err)
		}
		return
	}
	response.Success(c, order)
}

// AdminDeleteOrder 删除未支付订单
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.OrderService.DeleteOrder(orderID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "Order not found", nil)
		case errors.Is(err, service.ErrOrderPaidUndeletable):
			respondError(c, response.CodeBadRequest, "Paid orders cannot be deleted", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to delete order", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
