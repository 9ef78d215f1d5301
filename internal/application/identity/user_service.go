package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/org"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/mihrabhq/backend/internal/infrastructure/auth"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// UserService manages user accounts. All operations are restricted to admins.
type UserService struct {
	userRepo  identity.UserRepository
	placeRepo org.PlaceRepository
	auditor   audit.Recorder
}

// NewUserService creates a new user management service
func NewUserService(userRepo identity.UserRepository, placeRepo org.PlaceRepository, auditor audit.Recorder) *UserService {
	return &UserService{
		userRepo:  userRepo,
		placeRepo: placeRepo,
		auditor:   auditor,
	}
}

// Create registers a new user account
func (s *UserService) Create(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	role := identity.Role(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown role")
	}
	if !role.IsUnrestricted() && req.PlaceID == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A home place is required for this role")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := identity.NewUser(actor.TenantID, req.Username, req.Name, role, hash)
	if err != nil {
		return nil, err
	}
	if req.PlaceID != nil {
		if _, err := s.findPlace(ctx, actor.TenantID, *req.PlaceID); err != nil {
			return nil, err
		}
		user.AssignPlace(*req.PlaceID)
	}
	user.SetCreatedBy(actor.UserID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.audit(actor, audit.ActionCreate, user.ID, fmt.Sprintf("Created user %q", user.Username))
	return toUserResponse(user), nil
}

// Update modifies an existing user account
func (s *UserService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	user, err := s.findUser(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.PlaceID != nil {
		if _, err := s.findPlace(ctx, actor.TenantID, *req.PlaceID); err != nil {
			return nil, err
		}
		user.AssignPlace(*req.PlaceID)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := user.ChangePassword(hash); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && !*req.IsActive {
		user.Deactivate()
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.audit(actor, audit.ActionUpdate, user.ID, fmt.Sprintf("Updated user %q", user.Username))
	return toUserResponse(user), nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.Role.IsUnrestricted() {
		return shared.ErrPermissionDenied
	}
	user, err := s.findUser(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.audit(actor, audit.ActionDelete, id, fmt.Sprintf("Deleted user %q", user.Username))
	return nil
}

// Get returns one user account
func (s *UserService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*UserResponse, error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}
	user, err := s.findUser(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List returns a page of user accounts
func (s *UserService) List(ctx context.Context, actor identity.Actor, req ListUsersRequest) (*shared.Paginated[UserResponse], error) {
	if !actor.Role.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := shared.Filter{
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	}
	total, err := s.userRepo.Count(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	users, err := s.userRepo.FindAll(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *toUserResponse(&users[i]))
	}
	return &shared.Paginated[UserResponse]{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *UserService) findUser(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *UserService) findPlace(ctx context.Context, tenantID, id uuid.UUID) (*org.Place, error) {
	place, err := s.placeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Place not found")
		}
		return nil, fmt.Errorf("find place: %w", err)
	}
	return place, nil
}

func (s *UserService) audit(actor identity.Actor, action audit.Action, objectID uuid.UUID, description string) {
	s.auditor.Record(audit.Entry{
		TenantID:    actor.TenantID,
		UserID:      actor.UserID,
		Username:    actor.Username,
		Action:      action,
		ObjectType:  "User",
		ObjectID:    objectID,
		Description: description,
		IPAddress:   actor.RemoteAddr,
	})
}
