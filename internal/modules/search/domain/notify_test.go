package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listing "github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

func namedProperty(name, price string) listing.Property {
	return listing.Property{ID: uuid.New(), Name: name, Price: price}
}

func TestBuildMatchNotification_SingleMatch(t *testing.T) {
	search := SavedSearch{ID: uuid.New(), Name: "Downtown apartments"}
	matches := []listing.Property{namedProperty("Skyline Heights", "$450,000")}

	msg := BuildMatchNotification(search, matches)

	assert.Equal(t, "New Property Found! 🏠", msg.Title)
	assert.Equal(t, "New property found: Skyline Heights - $450,000", msg.Body)
	assert.Equal(t, 1, msg.Payload["propertyCount"])
}

func TestBuildMatchNotification_MultipleMatchesListsFirstThree(t *testing.T) {
	search := SavedSearch{ID: uuid.New(), Name: "Downtown apartments"}
	matches := []listing.Property{
		namedProperty("Alpha", "$100,000"),
		namedProperty("Beta", "$200,000"),
		namedProperty("Gamma", "$300,000"),
		namedProperty("Delta", "$400,000"),
	}

	msg := BuildMatchNotification(search, matches)

	assert.Equal(t, "4 New Properties Found! 🏠", msg.Title)
	assert.Contains(t, msg.Body, `4 new properties found matching your "Downtown apartments" search:`)
	assert.Contains(t, msg.Body, "• Alpha - $100,000")
	assert.Contains(t, msg.Body, "• Beta - $200,000")
	assert.Contains(t, msg.Body, "• Gamma - $300,000")
	assert.NotContains(t, msg.Body, "Delta")
	assert.True(t, strings.HasSuffix(msg.Body, "...and more!"))
}

func TestBuildMatchNotification_ExactlyThreeHasNoSuffix(t *testing.T) {
	search := SavedSearch{ID: uuid.New(), Name: "anything"}
	matches := []listing.Property{
		namedProperty("Alpha", "$100,000"),
		namedProperty("Beta", "$200,000"),
		namedProperty("Gamma", "$300,000"),
	}

	msg := BuildMatchNotification(search, matches)
	assert.NotContains(t, msg.Body, "and more")
}

func TestBuildMatchNotification_PayloadCarriesAllMatches(t *testing.T) {
	search := SavedSearch{ID: uuid.New(), Name: "s"}
	matches := []listing.Property{
		namedProperty("Alpha", "$100,000"),
		namedProperty("Beta", "$200,000"),
		namedProperty("Gamma", "$300,000"),
		namedProperty("Delta", "$400,000"),
		namedProperty("Epsilon", "$500,000"),
	}

	msg := BuildMatchNotification(search, matches)

	assert.Equal(t, search.ID.String(), msg.Payload["searchId"])
	assert.Equal(t, "savedSearch", msg.Payload["type"])

	summaries, ok := msg.Payload["properties"].([]map[string]interface{})
	require.True(t, ok)
	// The body previews three; the payload keeps every match
	assert.Len(t, summaries, 5)
}

func TestBuildPriceDropNotification(t *testing.T) {
	change := listing.PriceChange{
		PropertyID: uuid.New(),
		OldPrice:   500000,
		NewPrice:   450000,
	}

	msg := BuildPriceDropNotification(change)

	assert.Equal(t, "Price Drop Alert! 💰", msg.Title)
	assert.Equal(t, "A property you're watching dropped by $50000 (10.0%)", msg.Body)
	assert.Equal(t, change.PropertyID, msg.PropertyID)
	assert.Equal(t, "priceDrop", msg.Payload["type"])
	assert.Equal(t, float64(450000), msg.Payload["newPrice"])
}

func TestBuildPriceDropNotification_ZeroOldPrice(t *testing.T) {
	msg := BuildPriceDropNotification(listing.PriceChange{OldPrice: 0, NewPrice: 0})
	assert.Equal(t, fmt.Sprintf("A property you're watching dropped by $%.0f (%.1f%%)", 0.0, 0.0), msg.Body)
}
