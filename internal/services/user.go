package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type RegisterUserInput struct {
	LoginName   string `json:"login_name"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// UserDetail is the profile shape returned to other signed-in users.
type UserDetail struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

type UserService interface {
	RegisterUser(dbc dbctx.Context, in RegisterUserInput) (*types.User, error)
	GetUser(dbc dbctx.Context, userID uuid.UUID) (*UserDetail, error)
}

type userService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	credentials CredentialChecker
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, credentials CredentialChecker) UserService {
	return &userService{
		log:         log.With("service", "UserService"),
		userRepo:    userRepo,
		credentials: credentials,
	}
}

func (us *userService) RegisterUser(dbc dbctx.Context, in RegisterUserInput) (*types.User, error) {
	const op = "RegisterUser"
	if err := validateRegistration(op, in); err != nil {
		return nil, err
	}

	exists, err := us.userRepo.LoginNameExists(dbc, in.LoginName)
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if exists {
		return nil, apierr.DuplicateLogin(op, in.LoginName)
	}

	stored, err := us.credentials.Prepare(in.Password)
	if err != nil {
		return nil, apierr.Internal(op, err)
	}
	user := &types.User{
		ID:          uuid.New(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Location:    in.Location,
		Description: in.Description,
		Occupation:  in.Occupation,
		LoginName:   in.LoginName,
		Password:    stored,
	}
	// The unique index settles races that slip past the pre-check.
	if _, err := us.userRepo.Create(dbc, []*types.User{user}); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, apierr.DuplicateLogin(op, in.LoginName)
		}
		return nil, apierr.FromStore(op, err)
	}
	us.log.Info("User registered", "user_id", user.ID.String(), "credential_mode", us.credentials.Mode())
	return user, nil
}

// validateRegistration reports the first blank required field in a fixed order.
func validateRegistration(op string, in RegisterUserInput) error {
	required := []struct {
		field string
		value string
	}{
		{"login_name", in.LoginName},
		{"password", in.Password},
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apierr.Validation(op, r.field, r.field+" is required")
		}
	}
	return nil
}

func (us *userService) GetUser(dbc dbctx.Context, userID uuid.UUID) (*UserDetail, error) {
	const op = "GetUser"
	users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, apierr.UserNotFound(op, userID)
	}
	u := users[0]
	return &UserDetail{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}, nil
}
