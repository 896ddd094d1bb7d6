package service

import "errors"

// 业务错误定义，由各服务返回并在 handler 层映射为响应码。
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailExists          = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrWeakPassword         = errors.New("password does not meet policy")
	ErrProductNotFound      = errors.New("product not found")
	ErrSlugExists           = errors.New("product slug already exists")
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrAddressMissing       = errors.New("shipping address missing")
	ErrAddressInvalid       = errors.New("shipping address incomplete")
	ErrPaymentMethodMissing = errors.New("payment method missing")
	ErrPaymentMethodInvalid = errors.New("payment method not supported")
	ErrStockInsufficient    = errors.New("insufficient stock")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderAlreadyPaid     = errors.New("order already paid")
	ErrOrderNotPaid         = errors.New("order is not paid")
	ErrAlreadyDelivered     = errors.New("order already delivered")
	ErrOrderPaidUndeletable = errors.New("paid order cannot be deleted")
	ErrPaymentMismatch      = errors.New("payment does not match order")
	ErrPaymentNotCompleted  = errors.New("payment is not completed")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidParams        = errors.New("invalid parameters")
	ErrRatingInvalid        = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound       = errors.New("review not found")
)
