package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	listing "github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

// previewCount is how many matches the notification body lists by name
const previewCount = 3

// MatchNotification is the rendered content of a saved-search alert
type MatchNotification struct {
	Title   string
	Body    string
	Payload map[string]interface{}
}

// BuildMatchNotification renders one aggregated alert for the delta set of a
// saved search. The body lists up to the first three matches (name and price)
// and appends "...and more!" when there are more.
func BuildMatchNotification(search SavedSearch, matches []listing.Property) MatchNotification {
	n := len(matches)

	title := fmt.Sprintf("%d New Properties Found! 🏠", n)
	if n == 1 {
		title = "New Property Found! 🏠"
	}

	var body string
	if n == 1 {
		body = fmt.Sprintf("New property found: %s - %s", matches[0].Name, matches[0].Price)
	} else {
		details := make([]string, 0, previewCount)
		for i, p := range matches {
			if i == previewCount {
				break
			}
			details = append(details, fmt.Sprintf("• %s - %s", p.Name, p.Price))
		}
		body = fmt.Sprintf("%d new properties found matching your %q search:\n%s",
			n, search.Name, strings.Join(details, "\n"))
		if n > previewCount {
			body += "\n...and more!"
		}
	}

	summaries := make([]map[string]interface{}, 0, n)
	for _, p := range matches {
		summaries = append(summaries, map[string]interface{}{
			"id":    p.ID.String(),
			"name":  p.Name,
			"price": p.Price,
		})
	}

	return MatchNotification{
		Title: title,
		Body:  body,
		Payload: map[string]interface{}{
			"type":          "savedSearch",
			"searchId":      search.ID.String(),
			"propertyCount": n,
			"properties":    summaries,
		},
	}
}

// PriceDropNotification is the rendered content of a price-drop alert
type PriceDropNotification struct {
	Title      string
	Body       string
	PropertyID uuid.UUID
	Payload    map[string]interface{}
}

// BuildPriceDropNotification renders an alert for one property whose price
// dropped. The body carries the absolute and percentage drop.
func BuildPriceDropNotification(change listing.PriceChange) PriceDropNotification {
	drop := change.OldPrice - change.NewPrice
	percentage := 0.0
	if change.OldPrice > 0 {
		percentage = drop / change.OldPrice * 100
	}

	return PriceDropNotification{
		Title:      "Price Drop Alert! 💰",
		Body:       fmt.Sprintf("A property you're watching dropped by $%.0f (%.1f%%)", drop, percentage),
		PropertyID: change.PropertyID,
		Payload: map[string]interface{}{
			"type":       "priceDrop",
			"propertyId": change.PropertyID.String(),
			"oldPrice":   change.OldPrice,
			"newPrice":   change.NewPrice,
			"priceDrop":  drop,
		},
	}
}
