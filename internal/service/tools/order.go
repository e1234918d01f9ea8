package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// ToolGetOrder looks up an order in the storefront backend.
const ToolGetOrder = "get_order"

const getOrderSchema = `
{
  "type": "object",
  "properties": {
    "order_id": {
      "type": "integer",
      "description": "The numeric order id the customer received in their confirmation email."
    }
  },
  "required": ["order_id"]
}
`

type getOrderArgs struct {
	OrderID int `json:"order_id"`
}

// OrderFetcher retrieves a single order as the backend returned it.
type OrderFetcher interface {
	GetOrder(ctx context.Context, orderID int) (string, error)
}

// RegisterOrderLookup wires the order lookup tool into the registry.
func RegisterOrderLookup(registry *Registry, orders OrderFetcher) {
	registry.Register(
		ToolGetOrder,
		"Look up a customer's order by its id and return the order details.",
		json.RawMessage(getOrderSchema),
		func(ctx context.Context, args json.RawMessage) (string, error) {
			var params getOrderArgs
			if err := json.Unmarshal(args, &params); err != nil {
				return "", fmt.Errorf("invalid get_order arguments: %w", err)
			}
			if params.OrderID <= 0 {
				return "", fmt.Errorf("get_order requires a positive order_id")
			}
			return orders.GetOrder(ctx, params.OrderID)
		},
	)
}
