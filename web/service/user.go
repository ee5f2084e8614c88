package service

import (
	"errors"
	"unicode/utf8"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/database/model"
	"github.com/ecocart/ecocart/logger"
	"github.com/ecocart/ecocart/util/crypto"

	"github.com/google/uuid"
)

// ErrDuplicateUsername is returned when registering an already-taken username.
var ErrDuplicateUsername = errors.New("username already exists")

// ValidationError describes the first shape violation in submitted
// credentials. Its message is safe to return to the client.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// validateCredentials checks username and password shape, reporting the
// first violation. Limits match the registration form contract and count
// characters, not bytes, so multibyte names measure correctly.
func validateCredentials(username, password string) error {
	switch {
	case utf8.RuneCountInString(username) < 3:
		return &ValidationError{msg: "Username must be at least 3 characters"}
	case utf8.RuneCountInString(username) > 50:
		return &ValidationError{msg: "Username must be less than 50 characters"}
	case utf8.RuneCountInString(password) < 8:
		return &ValidationError{msg: "Password must be at least 8 characters"}
	case utf8.RuneCountInString(password) > 100:
		return &ValidationError{msg: "Password must be less than 100 characters"}
	}
	return nil
}

// UserService is the credential store: user lookup, registration and
// password verification.
type UserService struct{}

func (s *UserService) GetUserById(id string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser validates, hashes and inserts a new user. The username pre-check
// is advisory only; the unique index on the column is the authoritative guard
// and a constraint violation from the insert is reported the same way.
func (s *UserService) CreateUser(username string, password string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	if _, err := s.GetUserByUsername(username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !database.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:       uuid.NewString(),
		Username: username,
		Password: hashedPassword,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

// CheckUser verifies a username/password pair. It returns nil for an
// unknown user and for a wrong password alike so callers cannot
// distinguish the two.
func (s *UserService) CheckUser(username string, password string) *model.User {
	user, err := s.GetUserByUsername(username)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}

	return user
}
