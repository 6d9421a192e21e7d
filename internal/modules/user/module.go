package user

import (
	authDomain "github.com/arjunm29/nestfind/internal/modules/auth/domain"
	"github.com/arjunm29/nestfind/internal/modules/user/application"
	user_http "github.com/arjunm29/nestfind/internal/modules/user/interfaces/http"
)

// Module represents the User module
type Module struct {
	service   *application.UserService
	directory *application.ContactDirectory
	handler   *user_http.UserHandler
}

// NewModule creates and initializes the User module
func NewModule(repo authDomain.UserRepository, finder authDomain.UserFinder, uploader application.AvatarUploader) *Module {
	service := application.NewUserService(repo, uploader)
	handler := user_http.NewUserHandler(service)

	return &Module{
		service:   service,
		directory: application.NewContactDirectory(finder),
		handler:   handler,
	}
}

// HTTPHandler returns the HTTP handler for the user module
func (m *Module) HTTPHandler() *user_http.UserHandler {
	return m.handler
}

// Service returns the user service
func (m *Module) Service() *application.UserService {
	return m.service
}

// ContactDirectory resolves users for the listing module
func (m *Module) ContactDirectory() *application.ContactDirectory {
	return m.directory
}
