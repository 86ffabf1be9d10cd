package report

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/anyulbade/storefront-email-reports/internal/model"
)

// coldSellerLimit caps how many stale products the report lists.
const coldSellerLimit = 6

type lastSale struct {
	Name string
	At   time.Time
}

// rankColdSellers pairs each published product with its most recent sale
// and returns the pairs oldest-sale-first, truncated to coldSellerLimit.
// Products that never sold are excluded entirely.
func rankColdSellers(products []model.Product, lastSales map[string]time.Time) []lastSale {
	var records []lastSale
	for _, p := range products {
		at, sold := lastSales[p.ID]
		if !sold {
			continue
		}
		records = append(records, lastSale{Name: p.Name, At: at})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At.Before(records[j].At)
	})
	if len(records) > coldSellerLimit {
		records = records[:coldSellerLimit]
	}
	return records
}

// ColdSellingList renders the stalest-selling products as an HTML list.
// The cosmetic color fades from #999999 down to #111111.
func ColdSellingList(products []model.Product, lastSales map[string]time.Time, now time.Time) string {
	if len(products) == 0 {
		return "<p>No downloads found.</p>"
	}

	records := rankColdSellers(products, lastSales)
	if len(records) == 0 {
		return "<p>No sales found.</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	color := 999999
	for _, rec := range records {
		fmt.Fprintf(&b,
			`<li style="color: #%d; padding: 5px 0;"><span style="font-weight: bold;">%s</span> – %s (%s)</li>`,
			color, html.EscapeString(rec.Name), relativeDays(now, rec.At), rec.At.Format("January 2, 2006"))
		if color > 111111 {
			color -= 111111
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

func relativeDays(now, at time.Time) string {
	days := int(now.Sub(at).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
