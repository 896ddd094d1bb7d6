package public

import (
	"errors"
	"strconv"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/payment/paypal"
	"github.com/prostore-go/internal/payment/stripe"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var paymentCommonErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "Order not found"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeBadRequest, msg: "Order is already paid"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "Payment method not available for this order"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "Not enough stock to settle order"},
	{target: paypal.ErrConfigInvalid, code: response.CodeInternal, msg: "Payment channel misconfigured"},
	{target: paypal.ErrAuthFailed, code: response.CodeInternal, msg: "Payment gateway authentication failed"},
	{target: paypal.ErrRequestFailed, code: response.CodeBadRequest, msg: "Payment gateway request failed"},
	{target: paypal.ErrResponseInvalid, code: response.CodeBadRequest, msg: "Payment gateway response invalid"},
	{target: stripe.ErrConfigInvalid, code: response.CodeInternal, msg: "Payment channel misconfigured"},
	{target: stripe.ErrRequestFailed, code: response.CodeBadRequest, msg: "Payment gateway request failed"},
	{target: stripe.ErrResponseInvalid, code: response.CodeBadRequest, msg: "Payment gateway response invalid"},
}

var paymentSettleErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentMismatch, code: response.CodeBadRequest, msg: "Payment does not match this order"},
	{target: service.ErrPaymentNotCompleted, code: response.CodeBadRequest, msg: "Payment is not completed yet"},
}

func parseOrderIDParam(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "Invalid order id", nil)
		return 0, false
	}
	return uint(orderID), true
}

// CreatePayPalOrder 为订单创建 PayPal 支付
func (h *Handler) CreatePayPalOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	result, err := h.PaymentService.CreatePayPalOrder(c.Request.Context(), orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "Failed to create payment")
		return
	}
	response.Success(c, gin.H{
		"paypal_order_id": result.RemoteOrderID,
		"approval_url":    result.ApprovalURL,
	})
}

// ApprovePayPalOrderRequest PayPal 捕获请求
type ApprovePayPalOrderRequest struct {
	PayPalOrderID string `json:"paypal_order_id" binding:"required"`
}

// ApprovePayPalOrder 捕获 PayPal 支付并落账
func (h *Handler) ApprovePayPalOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	var req ApprovePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	order, err := h.PaymentService.ApprovePayPalOrder(c.Request.Context(), orderID, uid, req.PayPalOrderID)
	if err != nil {
		rules := append(append([]mappedHandlerError{}, paymentSettleErrorRules...), paymentCommonErrorRules...)
		respondWithMappedError(c, err, rules, response.CodeInternal, "Failed to settle payment")
		return
	}
	response.Success(c, order)
}

// CreateStripeIntent 为订单创建 Stripe PaymentIntent
func (h *Handler) CreateStripeIntent(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	result, err := h.PaymentService.CreateStripeIntent(c.Request.Context(), orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, paymentCommonErrorRules, response.CodeInternal, "Failed to create payment")
		return
	}
	response.Success(c, gin.H{
		"intent_id":     result.IntentID,
		"client_secret": result.ClientSecret,
	})
}

// ReconcileStripePaymentRequest Stripe 对账请求
type ReconcileStripePaymentRequest struct {
	IntentID string `json:"intent_id" binding:"required"`
}

// ReconcileStripePayment 按 PaymentIntent 状态对账并落账
func (h *Handler) ReconcileStripePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}

	var req ReconcileStripePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	order, err := h.PaymentService.ReconcileStripePayment(c.Request.Context(), orderID, uid, req.IntentID)
	if err != nil {
		rules := append(append([]mappedHandlerError{}, paymentSettleErrorRules...), paymentCommonErrorRules...)
		respondWithMappedError(c, err, rules, response.CodeInternal, "Failed to settle payment")
		return
	}
	response.Success(c, order)
}
