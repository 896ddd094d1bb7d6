package worker

import (
	"context"
	"encoding/json"

	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/provider"
	"github.com/prostore-go/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderReceiptEmail, c.handleOrderReceiptEmail)
}

// handleOrderReceiptEmail 订单回执任务
// 目前以结构化日志落回执记录；接入邮件服务后在此扩展发送。
func (c *Consumer) handleOrderReceiptEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_receipt_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderReceiptEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_receipt_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_receipt_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_receipt_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_receipt_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if !order.IsPaid {
		logger.Debugw("worker_order_receipt_skip_unpaid", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	receiverEmail := ""
	if order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_receipt_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = user.Email
		}
	}

	logger.Infow("worker_order_receipt_recorded",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"receiver_email", receiverEmail,
		"payment_method", order.PaymentMethod,
		"total_price", order.TotalPrice.String(),
		"paid_at", order.PaidAt,
	)
	return nil
}
