package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"comptable/internal/database"
	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
	"comptable/internal/repository"
)

// userService handles user-related business logic.
type userService struct {
	db    *gorm.DB
	users *repository.Store[models.User]
	cost  int
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return newUserService(db, bcrypt.DefaultCost)
}

func newUserService(db *gorm.DB, cost int) *userService {
	return &userService{
		db:    db,
		users: repository.NewStore[models.User](db, apperrors.ErrUserNotFound),
		cost:  cost,
	}
}

// Authenticate checks a login/password pair. Unknown logins and wrong
// passwords both yield ErrInvalidCredentials.
func (s *userService) Authenticate(login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.First(repository.Eq(models.ColUserLogin, login))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if isBcryptHash(user.Password) {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, apperrors.ErrInvalidCredentials
		}
		return user, nil
	}

	// Rows imported from older installations store the password in clear.
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, apperrors.ErrInvalidCredentials
	}
	s.upgradePassword(user, password)
	return user, nil
}

func (s *userService) upgradePassword(user *models.User, password string) {
	log := logger.Named("users")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		log.Warnw("failed to hash legacy password", "user_id", user.ID, "error", err)
		return
	}
	if err := s.db.Model(user).Update("MdpUser", string(hash)).Error; err != nil {
		log.Warnw("failed to upgrade legacy password", "user_id", user.ID, "error", err)
		return
	}
	log.Infow("upgraded legacy password", "user_id", user.ID)
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// CreateUser registers a new user. The insert runs in its own transaction;
// any failure rolls it back and is reported as ErrTransactionFailed.
func (s *userService) CreateUser(input NewUser) (*models.User, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "login and password are required")
	}

	count, err := s.users.Count(repository.Eq(models.ColUserLogin, login))
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateLogin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		LastName:  strings.TrimSpace(input.LastName),
		FirstName: strings.TrimSpace(input.FirstName),
		Login:     login,
		Password:  string(hashedPassword),
		Email:     strings.TrimSpace(input.Email),
	}

	err = database.RunInTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateLogin
			}
			return err
		}
		if user.ID == 0 {
			return errors.New("no id generated for new user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Named("users").Infow("user created", "user_id", user.ID, "login", user.Login)
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.users.Get(id)
}
