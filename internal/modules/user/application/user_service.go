package application

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	authDomain "github.com/arjunm29/nestfind/internal/modules/auth/domain"
	notifDomain "github.com/arjunm29/nestfind/internal/modules/notification/domain"
)

// AvatarUploader is the slice of the file service the user module needs
type AvatarUploader interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (url string, thumbnailURL string, err error)
}

type UserService struct {
	repo     authDomain.UserRepository
	uploader AvatarUploader
}

func NewUserService(repo authDomain.UserRepository, uploader AvatarUploader) *UserService {
	return &UserService{repo: repo, uploader: uploader}
}

// UpdateProfile updates a user's profile information
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) error {
	return s.repo.UpdateProfile(ctx, userID, req.Name, req.Phone, req.AvatarURL)
}

// UploadAvatar stores the image and points the profile at it
func (s *UserService) UploadAvatar(ctx context.Context, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, _, err := s.uploader.UploadImage(ctx, file, header, "avatars")
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdateProfile(ctx, userID, nil, nil, &url); err != nil {
		return "", err
	}
	return url, nil
}

// SetPushToken registers or clears the device push token
func (s *UserService) SetPushToken(ctx context.Context, userID uuid.UUID, token *string) error {
	return s.repo.UpdatePushToken(ctx, userID, token)
}

// SetPreferences replaces the user's notification preferences
func (s *UserService) SetPreferences(ctx context.Context, userID uuid.UUID, prefs authDomain.NotificationPreferences) error {
	return s.repo.UpdatePreferences(ctx, userID, prefs)
}

// GetPublicProfile retrieves a user's public profile information
func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicUserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicUserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Role:      string(user.Role),
		Phone:     user.Phone,
		AvatarURL: user.AvatarUrl,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// NotificationsEnabled answers whether the user opted in to the given alert
// kind. Unknown kinds are treated as enabled.
func (s *UserService) NotificationsEnabled(ctx context.Context, userID uuid.UUID, kind notifDomain.NotificationType) (bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	prefs := user.Preferences
	switch kind {
	case notifDomain.NotificationTypeNewProperty:
		return prefs.NewProperty, nil
	case notifDomain.NotificationTypePriceDrop:
		return prefs.PriceDrop, nil
	case notifDomain.NotificationTypeOpenHouse:
		return prefs.OpenHouse, nil
	case notifDomain.NotificationTypeMarketUpdate:
		return prefs.MarketUpdate, nil
	case notifDomain.NotificationTypeAgentMessage:
		return prefs.AgentMessage, nil
	case notifDomain.NotificationTypeSavedSearch:
		return prefs.SavedSearch, nil
	default:
		return true, nil
	}
}
