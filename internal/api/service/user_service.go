package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"titlehub/internal/api/models"
	"titlehub/internal/api/repository"
)

// UserInput is the admin-side create payload.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UserUpdate carries partial updates; nil fields stay untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, input UserInput) (*models.User, error)
	Update(ctx context.Context, username string, input UserUpdate) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateSelf backs /users/me; an unprivileged caller cannot change
	// their own role through it.
	UpdateSelf(ctx context.Context, actor *models.User, input UserUpdate) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, input UserUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.apply(ctx, user, input, true); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return notFound(s.userRepo.Delete(ctx, username))
}

func (s *userService) UpdateSelf(ctx context.Context, actor *models.User, input UserUpdate) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, actor.Username)
	if err != nil {
		return nil, notFound(err)
	}
	// self-service cannot escalate: the role field is dropped unless the
	// caller already holds a privileged role
	allowRole := actor.IsPrivileged()
	if !allowRole {
		input.Role = nil
	}
	if err := s.apply(ctx, user, input, allowRole); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) apply(ctx context.Context, user *models.User, input UserUpdate, allowRole bool) error {
	if input.Email != nil && *input.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(ctx, *input.Email); err == nil && other.ID != user.ID {
			return ErrEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if allowRole && input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return ErrInvalidRole
		}
		user.Role = *input.Role
	}
	return s.userRepo.Update(ctx, user)
}
