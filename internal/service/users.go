package service

import (
	"database/sql"
	"errors"

	"github.com/pliu/parley/internal/auth"
	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/store"
)

// UserService owns the user-facing domain rules: unique usernames and
// emails, credential handling, self-service profile updates.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// UserPatch applies only the fields that are present.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// Register creates a new user with a bcrypt-derived credential. The raw
// password is never stored.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	if err := s.checkUsernameFree(username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(id int) (*models.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{EntityName: "User", EntityID: id}
		}
		return nil, err
	}
	return user, nil
}

// List returns all users ordered by id.
func (s *UserService) List() ([]models.User, error) {
	return s.store.GetAllUsers()
}

// UpdateSelf applies the present patch fields to the calling user. A
// username or email already held by another user is rejected.
func (s *UserService) UpdateSelf(current *models.User, patch UserPatch) (*models.User, error) {
	updated := *current
	if patch.Username != nil {
		if err := s.checkUsernameFree(*patch.Username, current.ID); err != nil {
			return nil, err
		}
		updated.Username = *patch.Username
	}
	if patch.Email != nil {
		if err := s.checkEmailFree(*patch.Email, current.ID); err != nil {
			return nil, err
		}
		updated.Email = *patch.Email
	}
	if err := s.store.UpdateUser(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Chats returns the chats the user is a member of.
func (s *UserService) Chats(userID int) ([]models.Chat, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	return s.store.GetUserChats(userID)
}

func (s *UserService) checkUsernameFree(username string, selfID int) error {
	other, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return &DuplicateError{EntityName: "User", EntityID: username}
	}
	return nil
}

func (s *UserService) checkEmailFree(email string, selfID int) error {
	other, err := s.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if other.ID != selfID {
		return &DuplicateError{EntityName: "User", EntityID: email}
	}
	return nil
}
