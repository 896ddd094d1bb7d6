package constants

// 支付方式常量
const (
	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

// PaymentMethods 支持的支付方式集合
var PaymentMethods = []string{
	PaymentMethodPayPal,
	PaymentMethodStripe,
	PaymentMethodCashOnDelivery,
}

// IsValidPaymentMethod 校验支付方式是否受支持
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// 支付结果状态常量
const (
	PaymentStatusCreated   = "CREATED"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusCOD       = "COD"
)

// 结算页跳转目标常量
const (
	RedirectCart            = "/cart"
	RedirectShippingAddress = "/shipping-address"
	RedirectPaymentMethod   = "/payment-method"
	RedirectOrderDetail     = "/orders/%d"
)

// 用户角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 队列与任务常量
const (
	QueueDefault          = "default"
	TaskOrderReceiptEmail = "order:receipt_email"
)

// 会话购物车与分页常量
const (
	SessionCartCookie       = "session_cart_id"
	SessionCartCookieMaxAge = 30 * 24 * 3600
	DefaultCurrency         = "USD"
	DefaultPageSize         = 10
	MaxPageSize             = 100
)
