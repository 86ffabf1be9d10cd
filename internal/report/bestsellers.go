package report

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/storefront-email-reports/internal/model"
)

// productSales is the per-product aggregate built while ranking the week's
// sellers. It lives only for the duration of one render.
type productSales struct {
	Name     string
	Earnings decimal.Decimal
	Sales    int
}

// rankBestSellers aggregates the given orders per product and returns the
// aggregates ordered best-earning first. Bundle line items are skipped so
// bundle components don't double-count against the parent product.
// Earnings accumulate the per-line unit price once per line item; see
// DESIGN.md for why that formula is kept as-is.
func rankBestSellers(orders []model.Order) []productSales {
	byProduct := make(map[string]int)
	var aggregates []productSales

	for _, order := range orders {
		for _, item := range order.Items {
			if item.InBundle {
				continue
			}
			idx, seen := byProduct[item.ProductID]
			if !seen {
				idx = len(aggregates)
				byProduct[item.ProductID] = idx
				aggregates = append(aggregates, productSales{Name: item.ProductName})
			}
			aggregates[idx].Earnings = aggregates[idx].Earnings.Add(item.UnitPrice)
			aggregates[idx].Sales += item.Quantity
		}
	}

	// Stable descending by earnings: ties keep encounter order.
	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Earnings.GreaterThan(aggregates[j].Earnings)
	})
	return aggregates
}

// BestSellingList renders the weekly best-seller ranking as an HTML list.
// The per-entry color is cosmetic only: it climbs from #111111 in fixed
// steps and stops at #999999.
func BestSellingList(orders []model.Order, format func(decimal.Decimal) string) string {
	if len(orders) == 0 {
		return "<p>No sales found.</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	color := 111111
	for _, agg := range rankBestSellers(orders) {
		noun := "sale"
		if agg.Sales != 1 {
			noun = "sales"
		}
		fmt.Fprintf(&b,
			`<li style="color: #%d; padding: 5px 0;"><span style="font-weight: bold;">%s</span> – %s (%d %s)</li>`,
			color, html.EscapeString(agg.Name), format(agg.Earnings), agg.Sales, noun)
		if color < 999999 {
			color += 111111
		}
	}
	b.WriteString("</ul>")
	return b.String()
}
