package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mihrabhq/backend/internal/domain/shared"
)

// User represents an account that can authenticate and act on the hierarchy
type User struct {
	shared.TenantAggregateRoot
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Role         Role       `gorm:"type:varchar(30);not null"`
	PlaceID      *uuid.UUID `gorm:"type:uuid;index"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	IsActive     bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user account
func NewUser(tenantID uuid.UUID, username, name string, role Role, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Username is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown role")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password hash is required")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Username:            username,
		Name:                strings.TrimSpace(name),
		Role:                role,
		PasswordHash:        passwordHash,
		IsActive:            true,
	}, nil
}

// AssignPlace sets the user's home place
func (u *User) AssignPlace(placeID uuid.UUID) {
	u.PlaceID = &placeID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// ChangeRole switches the user to another role of the closed set
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown role")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Password hash is required")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Deactivate blocks the account from authenticating
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Actor carries the authenticated identity of one request. Every mutating
// operation receives it explicitly instead of reading ambient request state.
type Actor struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	Username    string
	Role        Role
	HomePlaceID *uuid.UUID
	RemoteAddr  string
}

// ActorFor builds an actor from a stored user
func ActorFor(user *User, remoteAddr string) Actor {
	return Actor{
		UserID:      user.ID,
		TenantID:    user.TenantID,
		Username:    user.Username,
		Role:        user.Role,
		HomePlaceID: user.PlaceID,
		RemoteAddr:  remoteAddr,
	}
}
