package services

import (
	"errors"
	"time"

	"dispatchboard/entity"
	"dispatchboard/repository"
	"dispatchboard/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles operator login.
type AuthService struct {
	repo   *repository.OperatorRepository
	secret string
	ttl    time.Duration
}

func NewAuthService(repo *repository.OperatorRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, ttl: ttl}
}

// Login verifies the credentials and returns a signed token with the operator.
func (s *AuthService) Login(email, password string) (string, *entity.Operator, error) {
	op, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(op.ID, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}
	return token, op, nil
}
