package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/sadiclarsan/web/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrAdminNotFound          = errors.New("admin user not found")
	ErrPasswordFieldsRequired = errors.New("all password fields are required")
	ErrPasswordMismatch       = errors.New("new passwords do not match")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrCurrentPasswordWrong   = errors.New("current password is wrong")
)

// Static salt of the legacy SHA-256 scheme, kept only to verify hashes
// written by the previous deployment.
const legacySalt = "SadiclarasanSalt"

const minPasswordLength = 6

// AdminUserService handles back-office authentication and account upkeep.
type AdminUserService struct {
	db *gorm.DB
}

// NewAdminUserService creates an AdminUserService instance.
func NewAdminUserService(gdb *gorm.DB) *AdminUserService {
	return &AdminUserService{db: gdb}
}

// Authenticate checks credentials against an active admin account. Both
// bcrypt and the legacy base64(sha256) hash form are accepted; a legacy
// match is transparently rehashed with bcrypt. The last login time is
// stamped on success.
func (s *AdminUserService) Authenticate(username, password string) (*db.AdminUser, error) {
	trimmedUser := strings.TrimSpace(username)
	if trimmedUser == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin db.AdminUser
	err := s.db.Where("username = ? AND is_active = ?", trimmedUser, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	matched, legacy := verifyPassword(admin.PasswordHash, password)
	if !matched {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	updates := map[string]interface{}{"last_login_date": now}
	if legacy {
		rehashed, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		updates["password_hash"] = string(rehashed)
		admin.PasswordHash = string(rehashed)
	}
	if err := s.db.Model(&admin).Updates(updates).Error; err != nil {
		return nil, err
	}
	admin.LastLoginDate = &now

	return &admin, nil
}

// ChangePassword verifies the current password of the named admin and
// stores a bcrypt hash of the new one.
func (s *AdminUserService) ChangePassword(username, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return ErrPasswordFieldsRequired
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var admin db.AdminUser
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	if matched, _ := verifyPassword(admin.PasswordHash, current); !matched {
		return ErrCurrentPasswordWrong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Model(&admin).Update("password_hash", string(hashed)).Error
}

// EnsureDefaultAdmin creates the bootstrap admin account when no row with
// the given username exists. It runs synchronously before the server
// accepts connections so the first login never races the insert. An empty
// password skips the bootstrap entirely.
func (s *AdminUserService) EnsureDefaultAdmin(username, email, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	var existing db.AdminUser
	err := s.db.Where("username = ?", trimmedUser).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Create(&db.AdminUser{
		Username:     trimmedUser,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hashed),
		FullName:     "Sadıçlarsan Admin",
		CreatedDate:  time.Now(),
		IsActive:     true,
		Role:         "Admin",
	}).Error
}

// LegacyHash computes the hash form used by the previous deployment:
// base64(SHA-256(password + static salt)).
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password + legacySalt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// verifyPassword reports whether the password matches the stored hash and
// whether the stored hash uses the legacy scheme.
func verifyPassword(stored, password string) (matched bool, legacy bool) {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
	}
	expected := LegacyHash(password)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(expected)) == 1, true
}
