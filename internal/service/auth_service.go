package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"github.com/yourusername/datasec-api/internal/service/email"
	"github.com/yourusername/datasec-api/pkg/auth"
)

// pendingGrace keeps the stored record alive past code expiry so a late
// submission is reported as expired instead of "no active verification".
const pendingGrace = 5 * time.Minute

// AuthService handles registration, the two-step login flow and token minting.
type AuthService struct {
	userRepo    repository.UserRepository
	pendingRepo repository.PendingVerificationRepository
	otp         *OTPService
	pipeline    *email.Pipeline
	jwtService  *auth.JWTService
}

func NewAuthService(
	userRepo repository.UserRepository,
	pendingRepo repository.PendingVerificationRepository,
	otp *OTPService,
	pipeline *email.Pipeline,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if pendingRepo == nil {
		return nil, fmt.Errorf("pending verification repository is required")
	}
	if otp == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	if pipeline == nil {
		return nil, fmt.Errorf("email pipeline is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	return &AuthService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		otp:         otp,
		pipeline:    pipeline,
		jwtService:  jwtService,
	}, nil
}

// TokenExpiresIn reports the access token lifetime in seconds, for clients
// that schedule re-login ahead of expiry.
func (s *AuthService) TokenExpiresIn() int {
	return s.jwtService.ExpiresIn()
}

// Register creates an account and returns it with a ready access token.
func (s *AuthService) Register(username, emailAddr, password string) (*entity.User, string, error) {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" {
		return nil, "", fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(emailAddr); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	user := &entity.User{
		Username: username,
		Email:    emailAddr,
		Password: password,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token after registration: %w", err)
	}
	return user, token, nil
}

// Login checks credentials, issues a verification code and pushes it through
// the delivery pipeline. It returns an opaque login token the client must
// present together with the code. Delivery never fails the login: the console
// fallback guarantees the code is retrievable somewhere.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}

	pending, err := s.otp.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return "", err
	}

	// A fresh issuance invalidates any code still pending for this user, so
	// only the latest one validates.
	if err := s.pendingRepo.DeleteByUserID(user.ID); err != nil {
		return "", fmt.Errorf("failed to clear previous pending verification: %w", err)
	}

	loginToken := uuid.NewString()
	if err := s.pendingRepo.Save(loginToken, pending, s.otp.TTL()+pendingGrace); err != nil {
		return "", fmt.Errorf("failed to store pending verification: %w", err)
	}

	msg := email.VerificationMessage(user.Username, user.Email, pending.Code)
	attempts := s.pipeline.Send(ctx, msg)
	if n := len(attempts); n > 0 {
		log.Printf("[AuthService] verification code dispatched for user_id=%d attempts=%d channel=%s",
			user.ID, n, attempts[n-1].Channel)
	}

	return loginToken, nil
}

// VerifyCode finalizes the login: on a match it clears the pending record and
// mints an access token. Expired codes clear the record too; a mismatch keeps
// it so the user can retry until expiry.
func (s *AuthService) VerifyCode(ctx context.Context, loginToken, code string) (*entity.User, string, error) {
	var pending *entity.PendingVerification
	if loginToken != "" {
		p, err := s.pendingRepo.Get(loginToken)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", err
		}
		pending = p
	}

	result := s.otp.Validate(code, pending)
	if result.ClearPending {
		if err := s.pendingRepo.Delete(loginToken); err != nil {
			log.Printf("[AuthService] failed to clear pending verification: %v", err)
		}
	}

	switch result.Status {
	case StatusVerified:
		user, err := s.userRepo.GetByID(result.UserID)
		if err != nil {
			return nil, "", err
		}
		token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.IsStaff)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate token: %w", err)
		}
		return user, token, nil
	case StatusExpired:
		return nil, "", ErrVerificationExpired
	default:
		if result.Reason == "no active verification" {
			return nil, "", ErrNoActiveVerification
		}
		return nil, "", ErrInvalidVerificationCode
	}
}
