package service

import (
	"context"
	"strings"

	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/payment/paypal"
	"github.com/prostore-go/internal/payment/stripe"
	"github.com/prostore-go/internal/repository"
)

// PayPalOrderResult 创建 PayPal 订单返回
type PayPalOrderResult struct {
	RemoteOrderID string `json:"remote_order_id"`
	ApprovalURL   string `json:"approval_url,omitempty"`
}

// StripeIntentResult 创建 Stripe PaymentIntent 返回
type StripeIntentResult struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

// PaymentService 支付服务，按订单支付方式分发到具体渠道。
type PaymentService struct {
	orderRepo  repository.OrderRepository
	settlement *SettlementService
	cfg        *config.PaymentConfig
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	orderRepo repository.OrderRepository,
	settlement *SettlementService,
	cfg *config.PaymentConfig,
) *PaymentService {
	return &PaymentService{
		orderRepo:  orderRepo,
		settlement: settlement,
		cfg:        cfg,
	}
}

// CreatePayPalOrder 为订单创建 PayPal 远端订单
// 远端订单 ID 暂存到 payment_result，捕获阶段据此对账。
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, orderID uint, userID uint) (*PayPalOrderResult, error) {
	order, err := s.loadPayableOrder(orderID, userID, constants.PaymentMethodPayPal)
	if err != nil {
		return nil, err
	}

	cfg := s.paypalConfig()
	if cfg == nil {
		return nil, ErrPaymentMethodInvalid
	}

	created, err := paypal.CreateOrder(ctx, cfg, paypal.CreateInput{
		OrderNo:     order.OrderNo,
		OrderID:     order.ID,
		Amount:      order.TotalPrice.String(),
		Currency:    s.paypalCurrency(),
		Description: "Order " + order.OrderNo,
	})
	if err != nil {
		return nil, err
	}

	pending := models.PaymentResult{
		ProviderRef: created.OrderID,
		Status:      constants.PaymentStatusCreated,
		PricePaid:   "0",
	}
	pendingJSON, err := pending.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePaymentResult(order.ID, pendingJSON); err != nil {
		return nil, err
	}

	return &PayPalOrderResult{
		RemoteOrderID: created.OrderID,
		ApprovalURL:   created.ApprovalURL,
	}, nil
}

// ApprovePayPalOrder 捕获 PayPal 订单并落账
// 捕获结果必须对应创建阶段暂存的远端订单，防止串单。
func (s *PaymentService) ApprovePayPalOrder(ctx context.Context, orderID uint, userID uint, remoteOrderID string) (*models.Order, error) {
	order, err := s.loadPayableOrder(orderID, userID, constants.PaymentMethodPayPal)
	if err != nil {
		return nil, err
	}

	cfg := s.paypalConfig()
	if cfg == nil {
		return nil, ErrPaymentMethodInvalid
	}

	capture, err := paypal.CaptureOrder(ctx, cfg, remoteOrderID)
	if err != nil {
		return nil, err
	}

	stored := order.PaymentResult()
	if stored == nil || stored.ProviderRef == "" || stored.ProviderRef != capture.OrderID {
		return nil, ErrPaymentMismatch
	}
	if !strings.EqualFold(capture.Status, paypal.StatusCompleted) {
		return nil, ErrPaymentNotCompleted
	}

	return s.settlement.MarkOrderPaid(order.ID, models.PaymentResult{
		ProviderRef: capture.OrderID,
		Status:      constants.PaymentStatusCompleted,
		PayerEmail:  capture.PayerEmail,
		PricePaid:   capture.Amount,
	})
}

// CreateStripeIntent 为订单创建 Stripe PaymentIntent
func (s *PaymentService) CreateStripeIntent(ctx context.Context, orderID uint, userID uint) (*StripeIntentResult, error) {
	order, err := s.loadPayableOrder(orderID, userID, constants.PaymentMethodStripe)
	if err != nil {
		return nil, err
	}

	cfg := s.stripeConfig()
	if cfg == nil {
		return nil, ErrPaymentMethodInvalid
	}

	intent, err := stripe.CreatePaymentIntent(ctx, cfg, stripe.CreateInput{
		OrderID:     order.ID,
		Amount:      order.TotalPrice.String(),
		Currency:    s.stripeCurrency(),
		Description: "Order " + order.OrderNo,
	})
	if err != nil {
		return nil, err
	}

	pending := models.PaymentResult{
		ProviderRef: intent.IntentID,
		Status:      intent.Status,
		PricePaid:   "0",
	}
	pendingJSON, err := pending.ToJSON()
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePaymentResult(order.ID, pendingJSON); err != nil {
		return nil, err
	}

	return &StripeIntentResult{
		IntentID:     intent.IntentID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ReconcileStripePayment 查询 PaymentIntent 并落账
// metadata 中的订单 ID 与本地订单不一致时拒绝，仅 succeeded 视为支付成功。
func (s *PaymentService) ReconcileStripePayment(ctx context.Context, orderID uint, userID uint, intentID string) (*models.Order, error) {
	order, err := s.loadPayableOrder(orderID, userID, constants.PaymentMethodStripe)
	if err != nil {
		return nil, err
	}

	cfg := s.stripeConfig()
	if cfg == nil {
		return nil, ErrPaymentMethodInvalid
	}

	intent, err := stripe.RetrievePaymentIntent(ctx, cfg, intentID)
	if err != nil {
		return nil, err
	}

	if intent.OrderID == 0 || intent.OrderID != order.ID {
		return nil, ErrPaymentMismatch
	}
	if intent.Status != stripe.StatusSucceeded {
		logger.Debugw("stripe_intent_not_succeeded", "order_id", order.ID, "status", intent.Status)
		return nil, ErrPaymentNotCompleted
	}

	return s.settlement.MarkOrderPaid(order.ID, models.PaymentResult{
		ProviderRef: intent.IntentID,
		Status:      constants.PaymentStatusSucceeded,
		PayerEmail:  intent.ReceiptEmail,
		PricePaid:   intent.Amount,
	})
}

func (s *PaymentService) loadPayableOrder(orderID uint, userID uint, wantMethod string) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrInvalidParams
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.PaymentMethod != wantMethod {
		return nil, ErrPaymentMethodInvalid
	}
	return order, nil
}

func (s *PaymentService) paypalConfig() *paypal.Config {
	if s.cfg == nil || !s.cfg.PayPal.Enabled {
		return nil
	}
	cfg := &paypal.Config{
		ClientID:     s.cfg.PayPal.ClientID,
		ClientSecret: s.cfg.PayPal.ClientSecret,
		BaseURL:      s.cfg.PayPal.APIBaseURL,
	}
	cfg.Normalize()
	return cfg
}

func (s *PaymentService) paypalCurrency() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.PayPal.Currency) != "" {
		return strings.ToUpper(strings.TrimSpace(s.cfg.PayPal.Currency))
	}
	return constants.DefaultCurrency
}

func (s *PaymentService) stripeConfig() *stripe.Config {
	if s.cfg == nil || !s.cfg.Stripe.Enabled {
		return nil
	}
	cfg := &stripe.Config{
		SecretKey:  s.cfg.Stripe.SecretKey,
		APIBaseURL: s.cfg.Stripe.APIBaseURL,
	}
	cfg.Normalize()
	return cfg
}

func (s *PaymentService) stripeCurrency() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Stripe.Currency) != "" {
		return strings.ToUpper(strings.TrimSpace(s.cfg.Stripe.Currency))
	}
	return constants.DefaultCurrency
}
