package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"stitch-backend/internal/auth"
	"stitch-backend/internal/models"
	"stitch-backend/internal/repositories"
)

const (
	totpIssuer        = "Stitch Portal"
	maxFailedAttempts = 5
	lockoutWindow     = 15 * time.Minute
)

// TOTPService implements two-factor login for admin accounts.
type TOTPService struct {
	UserRepo   *repositories.UserRepository
	TOTPRepo   *repositories.TOTPRepository
	JWTManager *auth.JWTManager
}

func NewTOTPService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository, jwtManager *auth.JWTManager) *TOTPService {
	return &TOTPService{
		UserRepo:   userRepo,
		TOTPRepo:   totpRepo,
		JWTManager: jwtManager,
	}
}

type TOTPSetup struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"` // data URL, PNG
}

// GenerateSetup creates a new secret for the user and returns it with a QR
// code for the authenticator app. The secret is stored but 2FA stays off
// until VerifyAndEnable confirms the user scanned it.
func (s *TOTPService) GenerateSetup(ctx context.Context, userID int) (*TOTPSetup, error) {
	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, errors.New("two-factor authentication is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.SetTOTPSecret(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return &TOTPSetup{
		Secret:    key.Secret(),
		QRCodeURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// VerifyAndEnable confirms the first code from the authenticator app and
// turns 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil || secret == "" {
		return errors.New("no pending two-factor setup")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	return s.UserRepo.SetTOTPEnabled(ctx, userID, true)
}

// VerifyLogin finishes a 2FA login: it exchanges a valid temp token plus a
// correct TOTP code for a session token. Repeated failures lock the account
// out for a window.
func (s *TOTPService) VerifyLogin(ctx context.Context, tempToken, code, ipAddress string) (*models.LoginResponse, error) {
	claims, err := s.JWTManager.ValidateTempToken(tempToken)
	if err != nil {
		return nil, errors.New("login session expired, please sign in again")
	}

	failed, err := s.TOTPRepo.GetRecentFailedAttempts(ctx, claims.UserID, lockoutWindow)
	if err == nil && failed >= maxFailedAttempts {
		return nil, errors.New("too many failed attempts, try again later")
	}

	secret, err := s.UserRepo.GetTOTPSecret(ctx, claims.UserID)
	if err != nil || secret == "" {
		return nil, errors.New("two-factor authentication is not set up")
	}

	if !totp.Validate(code, secret) {
		s.TOTPRepo.LogVerificationAttempt(ctx, claims.UserID, ipAddress, false)
		return nil, errors.New("invalid verification code")
	}
	s.TOTPRepo.LogVerificationAttempt(ctx, claims.UserID, ipAddress, true)

	user, err := s.UserRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.UserRepo.TouchLastLogin(ctx, user.ID)
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Disable turns 2FA off after the user proves they still hold the device.
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil || secret == "" {
		return errors.New("two-factor authentication is not enabled")
	}
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}
	return s.UserRepo.SetTOTPSecret(ctx, userID, "")
}
