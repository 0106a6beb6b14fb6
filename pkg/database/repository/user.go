package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"gorm.io/gorm"
)

const (
	// maxFailedLogins locks an account after this many consecutive failures
	maxFailedLogins = 6
	// lockoutDuration is how long a locked account stays locked
	lockoutDuration = 15 * time.Minute
)

// UserRepository handles database operations for the User model
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user for an email, or nil when none exists
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// RecordFailedLogin increments the failure counter and locks the account for
// lockoutDuration once maxFailedLogins is reached.
func (r *UserRepository) RecordFailedLogin(user *models.User) error {
	failed := user.FailedLoginAttempts + 1
	var lockedUntil *time.Time
	if failed >= maxFailedLogins {
		t := time.Now().Add(lockoutDuration)
		lockedUntil = &t
	}
	return r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"failed_login_attempts": failed,
		"locked_until":          lockedUntil,
	}).Error
}

// ResetLoginCounters clears the failure counter and any lockout
func (r *UserRepository) ResetLoginCounters(userID uuid.UUID) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}).Error
}

// PromoteToAdmin sets the admin role and replaces the password hash
func (r *UserRepository) PromoteToAdmin(userID uuid.UUID, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"role":          "admin",
	}).Error
}

// ClearExpiredLockouts resets counters on accounts whose lockout has passed.
// Returns how many rows were cleared.
func (r *UserRepository) ClearExpiredLockouts(now time.Time) (int64, error) {
	res := r.db.Model(&models.User{}).
		Where("locked_until IS NOT NULL AND locked_until <= ?", now).
		Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"locked_until":          nil,
		})
	return res.RowsAffected, res.Error
}
