package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"restro_pos/internal/models"
	"restro_pos/internal/redis"
	"restro_pos/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	CreateUser(user *models.User, password string) error
	Login(username, password string) (string, *models.User, error)
	Logout(token string) error
	GetSession(token string) (*redis.SessionData, error)
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   *redis.Client
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions *redis.Client, sessionTTL time.Duration) AuthService {
	return &authService{userRepo: userRepo, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *authService) CreateUser(user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	return s.userRepo.Create(user)
}

func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, errors.New("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token := newSessionToken()
	session := &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}
	return token, user, nil
}

func (s *authService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}

func (s *authService) GetSession(token string) (*redis.SessionData, error) {
	return s.sessions.GetSession(token)
}

func newSessionToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
