package orders

import (
	"github.com/angelmondragon/dropsight-backend/internal/engine/types"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
)

// Hydrate converts a stored order row into the engine's order shape.
func Hydrate(row *models.ShopOrder) types.Order {
	order := types.Order{
		ID:              row.ExternalID,
		CreatedAt:       row.PlacedAt,
		Currency:        row.Currency,
		TotalPrice:      row.TotalPrice,
		TotalDiscounts:  row.TotalDiscounts,
		FinancialStatus: row.FinancialStatus,
	}
	if row.Email != nil {
		order.Email = *row.Email
	}
	if row.FulfillmentStatus != nil {
		order.FulfillmentStatus = *row.FulfillmentStatus
	}

	order.LineItems = make([]types.LineItem, 0, len(row.LineItems))
	for _, item := range row.LineItems {
		li := types.LineItem{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			Vendor:       item.Vendor,
			ProductType:  item.ProductType,
			Price:        item.Price,
			Quantity:     item.Quantity,
		}
		if item.ProductID != nil {
			li.ProductID = *item.ProductID
		}
		if item.VariantID != nil {
			li.VariantID = *item.VariantID
		}
		order.LineItems = append(order.LineItems, li)
	}

	// Each refund row is a single transaction.
	for _, refund := range row.Refunds {
		order.Refunds = append(order.Refunds, types.Refund{
			CreatedAt: refund.ProcessedAt,
			Transactions: []types.RefundTransaction{
				{Amount: refund.Amount},
			},
		})
	}
	return order
}
