// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" validate:"required,min=1,max=500"`
	Notes           string             `json:"notes"            validate:"omitempty,max=1000"`
	Items           []OrderItemRequest `json:"items"            validate:"required,min=1,dive"`
}

type OrderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	Notes           string              `json:"notes"`
	OrderedAt       time.Time           `json:"ordered_at"`
	Items           []OrderItemResponse `json:"items,omitempty"`
}

func ToOrderResponse(o *Order, items []OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Total:           o.Total,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		OrderedAt:       o.OrderedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	return resp
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i], nil))
	}
	return responses
}
