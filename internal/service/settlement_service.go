package service

import (
	"time"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

// SettlementService 支付落账服务
// 订单转为已支付与库存扣减在同一事务内完成，is_paid 只能单向转移。
type SettlementService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewSettlementService 创建落账服务
func NewSettlementService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	queueClient *queue.Client,
) *SettlementService {
	return &SettlementService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// MarkOrderPaid 标记订单已支付并扣减库存
// 事务内重读订单做已支付门禁，逐项条件扣减库存（不足则整体回滚），
// 最后以 is_paid = false 为条件执行守卫更新，0 行视为并发下的重复落账。
func (s *SettlementService) MarkOrderPaid(orderID uint, result models.PaymentResult) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}

	resultJSON, err := result.ToJSON()
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		txOrder, err := s.orderRepo.WithTx(tx).GetByID(orderID)
		if err != nil {
			return err
		}
		if txOrder == nil {
			return ErrOrderNotFound
		}
		if txOrder.IsPaid {
			return ErrOrderAlreadyPaid
		}

		txProductRepo := s.productRepo.WithTx(tx)
		for _, item := range txOrder.Items {
			affected, err := txProductRepo.DecrementStock(item.ProductID, item.Qty)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
		}

		affected, err := s.orderRepo.WithTx(tx).MarkPaid(orderID, paidAt, resultJSON)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderAlreadyPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paid, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.enqueueReceipt(orderID)
	return paid, nil
}

// MarkCODPaid 货到付款订单由管理员确认收款，合成支付结果走同一落账路径。
func (s *SettlementService) MarkCODPaid(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != constants.PaymentMethodCashOnDelivery {
		return nil, ErrPaymentMethodInvalid
	}
	return s.MarkOrderPaid(orderID, models.PaymentResult{
		Status:    constants.PaymentStatusCOD,
		PricePaid: order.TotalPrice.String(),
	})
}

// MarkOrderDelivered 标记订单已发货（仅已支付订单）
func (s *SettlementService) MarkOrderDelivered(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsPaid {
		return nil, ErrOrderNotPaid
	}
	if order.IsDelivered {
		return nil, ErrAlreadyDelivered
	}

	affected, err := s.orderRepo.MarkDelivered(orderID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyDelivered
	}

	return s.orderRepo.GetByID(orderID)
}

// 回执通知入队为尽力而为，失败不影响落账结果。
func (s *SettlementService) enqueueReceipt(orderID uint) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderReceiptEmail(orderID); err != nil {
		logger.Warnw("order_receipt_enqueue_failed", "order_id", orderID, "error", err)
	}
}
