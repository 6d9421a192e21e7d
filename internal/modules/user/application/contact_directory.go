package application

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/arjunm29/nestfind/internal/modules/auth/domain"
	listinghttp "github.com/arjunm29/nestfind/internal/modules/listing/interfaces/http"
)

// ContactDirectory resolves user IDs to the display contact stamped onto
// listings and reviews.
type ContactDirectory struct {
	finder authDomain.UserFinder
}

func NewContactDirectory(finder authDomain.UserFinder) *ContactDirectory {
	return &ContactDirectory{finder: finder}
}

func (d *ContactDirectory) GetContact(ctx context.Context, userID uuid.UUID) (listinghttp.Contact, error) {
	user, err := d.finder.FindByID(ctx, userID)
	if err != nil {
		return listinghttp.Contact{}, err
	}

	contact := listinghttp.Contact{
		Name:  user.Name,
		Email: user.Email,
	}
	if user.AvatarUrl != nil {
		contact.Avatar = *user.AvatarUrl
	}
	return contact, nil
}
