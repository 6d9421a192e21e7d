package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listing "github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func sampleProperty() listing.Property {
	return listing.Property{
		Name:      "Skyline Heights",
		Address:   "12 Downtown Avenue",
		Price:     "$450,000",
		Type:      "Apartment",
		Bedrooms:  2,
		Bathrooms: 2,
	}
}

func TestMatchCriteria_EmptyCriteriaMatchesEverythingUnsold(t *testing.T) {
	properties := []listing.Property{
		sampleProperty(),
		{Name: "Lakeside Villa", Address: "4 Shore Road", Price: "$1,200,000", Type: "Villa"},
	}

	matched := MatchCriteria(SearchCriteria{}, properties)
	assert.Len(t, matched, 2)
}

func TestMatchCriteria_SoldNeverMatches(t *testing.T) {
	p := sampleProperty()
	p.Sold = true

	matched := MatchCriteria(SearchCriteria{}, []listing.Property{p})
	assert.Empty(t, matched)
}

func TestMatchCriteria_FullCriteriaScenario(t *testing.T) {
	criteria := SearchCriteria{
		Location:     strPtr("Downtown"),
		PropertyType: strPtr("Apartment"),
		MinPrice:     floatPtr(400000),
		MaxPrice:     floatPtr(500000),
		Bedrooms:     intPtr(2),
	}

	match := sampleProperty()

	mismatch := sampleProperty()
	mismatch.Type = "House"

	matched := MatchCriteria(criteria, []listing.Property{match, mismatch})
	require.Len(t, matched, 1)
	assert.Equal(t, "Skyline Heights", matched[0].Name)
}

func TestMatchCriteria_Location(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     bool
	}{
		{"substring of address", "downtown", true},
		{"case insensitive", "DOWNTOWN", true},
		{"substring of name", "skyline", true},
		{"no match", "suburbs", false},
		{"whitespace only imposes no constraint", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := SearchCriteria{Location: strPtr(tt.location)}
			matched := MatchCriteria(criteria, []listing.Property{sampleProperty()})
			assert.Equal(t, tt.want, len(matched) == 1)
		})
	}
}

func TestMatchCriteria_PropertyType(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
		want     bool
	}{
		{"exact match", "Apartment", true},
		{"case insensitive", "apartment", true},
		{"all bypasses the check", "All", true},
		{"different type", "House", false},
		{"empty imposes no constraint", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := SearchCriteria{PropertyType: strPtr(tt.wantType)}
			matched := MatchCriteria(criteria, []listing.Property{sampleProperty()})
			assert.Equal(t, tt.want, len(matched) == 1)
		})
	}
}

func TestMatchCriteria_PriceBounds(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		price    string
		want     bool
	}{
		{"inside bounds", SearchCriteria{MinPrice: floatPtr(400000), MaxPrice: floatPtr(500000)}, "$450,000", true},
		{"equal to min", SearchCriteria{MinPrice: floatPtr(450000)}, "$450,000", true},
		{"equal to max", SearchCriteria{MaxPrice: floatPtr(450000)}, "$450,000", true},
		{"below min", SearchCriteria{MinPrice: floatPtr(500000)}, "$450,000", false},
		{"above max", SearchCriteria{MaxPrice: floatPtr(400000)}, "$450,000", false},
		{"malformed price fails any bound", SearchCriteria{MinPrice: floatPtr(0)}, "Contact agent", false},
		{"malformed price passes without bounds", SearchCriteria{}, "Contact agent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProperty()
			p.Price = tt.price
			matched := MatchCriteria(tt.criteria, []listing.Property{p})
			assert.Equal(t, tt.want, len(matched) == 1)
		})
	}
}

func TestMatchCriteria_RoomThresholdsAreMinimums(t *testing.T) {
	p := sampleProperty()
	p.Bedrooms = 3
	p.Bathrooms = 2

	moreThanAsked := SearchCriteria{Bedrooms: intPtr(2), Bathrooms: intPtr(1)}
	assert.Len(t, MatchCriteria(moreThanAsked, []listing.Property{p}), 1)

	tooFew := SearchCriteria{Bedrooms: intPtr(4)}
	assert.Empty(t, MatchCriteria(tooFew, []listing.Property{p}))
}

func TestMatchCriteria_PreservesInputOrder(t *testing.T) {
	a := sampleProperty()
	a.Name = "First"
	b := sampleProperty()
	b.Name = "Second"
	c := sampleProperty()
	c.Name = "Third"

	matched := MatchCriteria(SearchCriteria{}, []listing.Property{a, b, c})
	require.Len(t, matched, 3)
	assert.Equal(t, "First", matched[0].Name)
	assert.Equal(t, "Second", matched[1].Name)
	assert.Equal(t, "Third", matched[2].Name)
}

func TestHasPriceBounds(t *testing.T) {
	assert.False(t, SearchCriteria{}.HasPriceBounds())
	assert.True(t, SearchCriteria{MinPrice: floatPtr(1)}.HasPriceBounds())
	assert.True(t, SearchCriteria{MaxPrice: floatPtr(1)}.HasPriceBounds())
}
