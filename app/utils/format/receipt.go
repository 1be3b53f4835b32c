package format

import (
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/utils/calc"
)

// Receipt renders an order from its stored fields alone, so the same order
// always prints the same text.
func Receipt(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Placed: %s\n", order.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	b.WriteString("\n")

	for _, item := range order.Items {
		line := calc.LineTotal(item.Price, item.Quantity)
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", item.Quantity, itemLabel(item), Money(item.Price), Money(line))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", Money(order.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", Money(order.ShippingCost))
	fmt.Fprintf(&b, "Tax: %s\n", Money(order.Tax))
	fmt.Fprintf(&b, "Total: %s\n", Money(order.Total))

	addr := order.ShippingAddress
	b.WriteString("\nShip to:\n")
	fmt.Fprintf(&b, "%s\n%s\n", addr.FullName, addr.AddressLine1)
	if addr.AddressLine2 != "" {
		fmt.Fprintf(&b, "%s\n", addr.AddressLine2)
	}
	fmt.Fprintf(&b, "%s, %s %s\n%s\n", addr.City, addr.State, addr.ZipCode, addr.Country)

	return b.String()
}

func itemLabel(item models.OrderItem) string {
	if len(item.SelectedVariants) == 0 {
		return item.Name
	}
	parts := make([]string, 0, len(item.SelectedVariants))
	for _, v := range item.SelectedVariants {
		parts = append(parts, v.Name+": "+v.Value)
	}
	return fmt.Sprintf("%s (%s)", item.Name, strings.Join(parts, ", "))
}
