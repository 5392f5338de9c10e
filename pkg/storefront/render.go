package storefront

import (
	"fmt"
	"strings"

	"parley/pkg/domain"
)

// Prompt is the fixed sentence every storefront response ends with.
const Prompt = "Anything else?"

// maxResults caps how many matches a search renders; voice output has to
// stay listenable.
const maxResults = 8

const historyTail = 6

func greetingText(customerName string) string {
	name := customerName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s, welcome to the store. You can search the catalog, "+
		"add items to your cart, and place an order when you're ready.", name)
}

// price renders a whole-unit amount with its currency symbol.
func price(amount int64, currency string) string {
	switch currency {
	case "INR":
		return fmt.Sprintf("₹%d", amount)
	case "USD":
		return fmt.Sprintf("$%d", amount)
	default:
		return fmt.Sprintf("%d %s", amount, currency)
	}
}

func productLine(p domain.Product) string {
	line := fmt.Sprintf("- %s: %s, %s", p.ID, p.Name, price(p.Price, p.Currency))
	if len(p.Sizes) > 0 {
		line += fmt.Sprintf(" (sizes: %s)", strings.Join(p.Sizes, ", "))
	}
	return line
}

func searchText(products []domain.Product) string {
	if len(products) == 0 {
		return "I couldn't find anything matching that. Try a different word or a category like 'mugs' or 'phones'."
	}

	shown := products
	truncated := false
	if len(shown) > maxResults {
		shown = shown[:maxResults]
		truncated = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what I found (%d):\n", len(products))
	for _, p := range shown {
		b.WriteString(productLine(p))
		b.WriteString("\n")
	}
	if truncated {
		fmt.Fprintf(&b, "...and %d more. Narrow the search to hear the rest.\n", len(products)-maxResults)
	}
	return strings.TrimRight(b.String(), "\n")
}

func unknownProductText(text string) string {
	return fmt.Sprintf("I couldn't match %q to anything in the catalog. "+
		"Try the product name, its id, or something like 'the first one'.", strings.TrimSpace(text))
}

func sizeUnavailableText(p domain.Product, size string) string {
	if len(p.Sizes) == 0 {
		return fmt.Sprintf("%s doesn't come in sizes.", p.Name)
	}
	return fmt.Sprintf("%s isn't available in size %s. Available sizes: %s.",
		p.Name, strings.ToUpper(size), strings.Join(p.Sizes, ", "))
}

func addedText(p domain.Product, quantity int, size string) string {
	text := fmt.Sprintf("Added %d x %s (%s each).", quantity, p.Name, price(p.Price, p.Currency))
	if size != "" {
		text = fmt.Sprintf("Added %d x %s, size %s (%s each).",
			quantity, p.Name, strings.ToUpper(size), price(p.Price, p.Currency))
	}
	return text
}

func (e *Engine) cartSummary(session *domain.Session) string {
	if len(session.Cart) == 0 {
		return "Your cart is empty."
	}

	var b strings.Builder
	b.WriteString("In your cart:\n")
	var total int64
	currency := e.catalog.Currency()
	for _, line := range session.Cart {
		product, err := e.catalog.Product(line.ProductID)
		if err != nil {
			fmt.Fprintf(&b, "- %d x %s (no longer in catalog)\n", line.Quantity, line.ProductID)
			continue
		}
		lineTotal := product.Price * int64(line.Quantity)
		total += lineTotal
		fmt.Fprintf(&b, "- %d x %s", line.Quantity, product.Name)
		if size, ok := line.Attrs["size"]; ok {
			fmt.Fprintf(&b, ", size %s", size)
		}
		fmt.Fprintf(&b, " = %s\n", price(lineTotal, currency))
	}
	fmt.Fprintf(&b, "Cart total: %s", price(total, currency))
	return b.String()
}

func orderText(heading string, order domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s, placed %s.\n", heading, order.ID, order.CreatedAt.Format("2006-01-02 15:04"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %d x %s = %s\n", item.Quantity, item.Name, price(item.LineTotal, order.Currency))
	}
	fmt.Fprintf(&b, "Total: %s", price(order.Total, order.Currency))
	return b.String()
}

func recordText(session *domain.Session) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Session: %s | Started at: %s",
		session.ID, session.StartedAt.Format("2006-01-02T15:04:05Z07:00")))
	if session.PlayerName != "" {
		lines = append(lines, fmt.Sprintf("Customer: %s", session.PlayerName))
	}

	if len(session.Orders) > 0 {
		lines = append(lines, "", "Orders placed this session:")
		for _, id := range session.Orders {
			lines = append(lines, "- "+id)
		}
	} else {
		lines = append(lines, "", "No orders placed this session.")
	}

	lines = append(lines, "", "Recent activity:")
	if len(session.History) > 0 {
		tail := session.History
		if len(tail) > historyTail {
			tail = tail[len(tail)-historyTail:]
		}
		for _, h := range tail {
			lines = append(lines, fmt.Sprintf("- %s | %s",
				h.Time.Format("2006-01-02T15:04:05Z07:00"), h.Action))
		}
	} else {
		lines = append(lines, "- Nothing yet.")
	}

	return strings.Join(lines, "\n")
}

// ensurePrompt guarantees the fixed terminating prompt.
func ensurePrompt(text string) string {
	if strings.HasSuffix(text, Prompt) {
		return text
	}
	return text + "\n" + Prompt
}
