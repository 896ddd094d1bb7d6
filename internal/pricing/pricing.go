package pricing

import (
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
)

// 运费与税率规则
var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingFee       = decimal.NewFromInt(10)
	taxRate               = decimal.NewFromFloat(0.15)
)

// Breakdown 价格明细（全部保留两位小数）
type Breakdown struct {
	ItemsPrice    models.Money `json:"items_price"`
	ShippingPrice models.Money `json:"shipping_price"`
	TaxPrice      models.Money `json:"tax_price"`
	TotalPrice    models.Money `json:"total_price"`
}

// Compute 根据购物车行项目计算价格明细
// 商品小计满 100 免运费，否则固定运费 10；税费按商品小计的 15% 计算。
// 各项金额先四舍五入到两位小数，总价为三项舍入后金额之和。
func Compute(items []models.CartLineItem) Breakdown {
	itemsPrice := decimal.Zero
	for _, item := range items {
		lineTotal := item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Qty)))
		itemsPrice = itemsPrice.Add(lineTotal)
	}
	itemsPrice = itemsPrice.Round(2)

	shippingPrice := flatShippingFee
	if itemsPrice.GreaterThanOrEqual(freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}
	shippingPrice = shippingPrice.Round(2)

	taxPrice := itemsPrice.Mul(taxRate).Round(2)

	totalPrice := itemsPrice.Add(shippingPrice).Add(taxPrice).Round(2)

	return Breakdown{
		ItemsPrice:    models.NewMoneyFromDecimal(itemsPrice),
		ShippingPrice: models.NewMoneyFromDecimal(shippingPrice),
		TaxPrice:      models.NewMoneyFromDecimal(taxPrice),
		TotalPrice:    models.NewMoneyFromDecimal(totalPrice),
	}
}
