package queue

import (
	"encoding/json"

	"github.com/prostore-go/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderReceiptEmail 订单回执邮件通知任务
	TaskOrderReceiptEmail = constants.TaskOrderReceiptEmail
)

// OrderReceiptEmailPayload 订单回执邮件任务载荷
type OrderReceiptEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderReceiptEmailTask 创建订单回执邮件任务
func NewOrderReceiptEmailTask(payload OrderReceiptEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderReceiptEmail, body), nil
}
