package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/JJ00428/market-api/internal/apperr"
	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/infra/mailer"
	"github.com/JJ00428/market-api/internal/infra/token"
	"github.com/JJ00428/market-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

const resetTokenTTL = 10 * time.Minute

type AuthService struct {
	users   repository.UserRepository
	tokens  *token.Manager
	mail    mailer.Mailer
	baseURL string
}

func NewAuthService(users repository.UserRepository, tokens *token.Manager, mail mailer.Mailer, baseURL string) *AuthService {
	return &AuthService{users: users, tokens: tokens, mail: mail, baseURL: baseURL}
}

type SignupInput struct {
	Username    string
	Email       string
	Password    string
	Role        domain.Role
	Address     string
	Certificate string
}

// validateSignup is the explicit pre-persist validation: role-conditional
// required fields are checked here, not in storage hooks.
func validateSignup(in SignupInput) error {
	if in.Username == "" || in.Email == "" {
		return apperr.Invalid("please provide a username and email")
	}
	if len(in.Password) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}
	if !in.Role.Valid() {
		return apperr.Invalid("role must be one of Consumer, Seller, Admin")
	}
	if in.Role == domain.RoleConsumer && strings.TrimSpace(in.Address) == "" {
		return apperr.Invalid("please enter your address")
	}
	if in.Role == domain.RoleSeller && strings.TrimSpace(in.Certificate) == "" {
		return apperr.Invalid("please provide your seller certificate")
	}
	return nil
}

// Signup registers a user and logs them in. Sellers start inactive and stay
// locked out of seller actions until an Admin approves them.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, string, error) {
	if err := validateSignup(in); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	user := &domain.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Role:              in.Role,
		Active:            in.Role != domain.RoleSeller,
		Address:           in.Address,
		Certificate:       in.Certificate,
		PasswordChangedAt: time.Now().Add(-time.Second),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same failure so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Invalid("please provide email and password")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.Unauthorized("incorrect email or password")
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Authenticate resolves a bearer token to a live account. The account is
// loaded fresh so role changes and deactivation take effect on the next
// request, and tokens issued before a password change are rejected.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*domain.User, error) {
	userID, issuedAt, err := s.tokens.Verify(bearer)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("the user belonging to this token no longer exists")
	}
	if user.PasswordChangedAfter(issuedAt) {
		return nil, apperr.Unauthorized("user recently changed password, please log in again")
	}
	return user, nil
}

// UpdatePassword changes the caller's password after verifying the current
// one, and issues a fresh token.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint64, current, newPassword string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.Unauthorized("the user belonging to this token no longer exists")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return "", apperr.Unauthorized("your current password is wrong")
	}
	if len(newPassword) < 8 {
		return "", apperr.Invalid("password must be at least 8 characters")
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID)
}

// ForgotPassword mails a single-use reset link. Only a hash of the token is
// stored; the plain token lives in the email alone.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("there is no user with that email address")
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return apperr.Wrap(apperr.KindInternal, "generate reset token", err)
	}
	plain := hex.EncodeToString(raw)

	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = hashResetToken(plain)
	user.PasswordResetExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/marketAPI/v1/users/resetPassword/%s", s.baseURL, plain)
	body := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password to: %s\nIf you didn't forget your password, please ignore this email!", resetURL)

	if err := s.mail.Send(ctx, user.Email, "Your password reset token (valid for 10 min)", body); err != nil {
		log.Printf("reset mail failed for user %d: %v", user.ID, err)
		user.PasswordResetToken = ""
		user.PasswordResetExpires = nil
		if saveErr := s.users.Update(ctx, user); saveErr != nil {
			log.Printf("failed to clear reset token for user %d: %v", user.ID, saveErr)
		}
		return apperr.Wrap(apperr.KindInternal, "there was an error sending the email, try again later", err)
	}
	return nil
}

// ResetPassword redeems a mailed reset token, sets the new password, and
// logs the user in.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (*domain.User, string, error) {
	user, err := s.users.FindByResetToken(ctx, hashResetToken(plainToken), time.Now())
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperr.Invalid("token is invalid or expired, please try again")
	}
	if len(newPassword) < 8 {
		return nil, "", apperr.Invalid("password must be at least 8 characters")
	}

	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// ApproveSeller is the Admin action unlocking a pending Seller account.
func (s *AuthService) ApproveSeller(ctx context.Context, sellerID uint64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("no user found with that ID")
	}
	if user.Role != domain.RoleSeller {
		return nil, apperr.Forbidden("this user is not a Seller")
	}

	user.Active = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) setPassword(ctx context.Context, user *domain.User, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "hash password", err)
	}
	user.PasswordHash = string(hash)
	// one second back so the fresh token's iat is not before the change
	user.PasswordChangedAt = time.Now().Add(-time.Second)
	return s.users.Update(ctx, user)
}

func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
