package domain

import (
	"strings"

	listing "github.com/arjunm29/nestfind/internal/modules/listing/domain"
)

// MatchCriteria filters properties against a saved search's criteria. It is
// pure: no I/O, input order preserved. A property passes only if it survives
// every applicable check; absent criteria fields impose no constraint.
//
// Rules, in order:
//   - sold listings never match, regardless of criteria
//   - location: case-insensitive substring over address and name
//   - property type: case-insensitive exact match; "all" bypasses the check
//   - price bounds: the display price is parsed digit-stripping style; a
//     price that does not parse fails any bound set against it
//   - bedrooms / bathrooms: minimum thresholds, not exact matches
func MatchCriteria(criteria SearchCriteria, properties []listing.Property) []listing.Property {
	var matched []listing.Property
	for _, p := range properties {
		if matchesOne(criteria, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesOne(c SearchCriteria, p listing.Property) bool {
	if p.Sold {
		return false
	}

	if c.Location != nil {
		term := strings.ToLower(strings.TrimSpace(*c.Location))
		if term != "" {
			address := strings.ToLower(p.Address)
			name := strings.ToLower(p.Name)
			if !strings.Contains(address, term) && !strings.Contains(name, term) {
				return false
			}
		}
	}

	if c.PropertyType != nil {
		wanted := strings.ToLower(strings.TrimSpace(*c.PropertyType))
		if wanted != "" && wanted != "all" && wanted != strings.ToLower(p.Type) {
			return false
		}
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		price, err := listing.ParsePrice(p.Price)
		if err != nil {
			// Malformed prices cannot satisfy a bound; the caller counts these
			return false
		}
		if c.MinPrice != nil && price < *c.MinPrice {
			return false
		}
		if c.MaxPrice != nil && price > *c.MaxPrice {
			return false
		}
	}

	if c.Bedrooms != nil && p.Bedrooms < *c.Bedrooms {
		return false
	}
	if c.Bathrooms != nil && p.Bathrooms < *c.Bathrooms {
		return false
	}

	return true
}

// HasPriceBounds reports whether the criteria constrain price at all
func (c SearchCriteria) HasPriceBounds() bool {
	return c.MinPrice != nil || c.MaxPrice != nil
}
