package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/inventoryhub/backend/internal/domain/discussion"
	"github.com/inventoryhub/backend/internal/domain/identity"
	"github.com/inventoryhub/backend/internal/domain/inventory"
	"github.com/inventoryhub/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UserService handles profile operations and activity stats
type UserService struct {
	userRepo      identity.UserRepository
	inventoryRepo inventory.InventoryRepository
	itemRepo      inventory.ItemRepository
	commentRepo   discussion.CommentRepository
	logger        *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	inventoryRepo inventory.InventoryRepository,
	itemRepo inventory.ItemRepository,
	commentRepo discussion.CommentRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		commentRepo:   commentRepo,
		logger:        logger,
	}
}

// GetUser returns the public view of a user
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	info := toUserInfo(user)
	return &info, nil
}

// UpdateProfile updates the user's editable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.SetName(input.Name); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := toUserInfo(user)
	return &info, nil
}

// ChangePassword changes the user's password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetProfileStats collects the user's activity counts. The five counts are
// independent queries, so they run concurrently.
func (s *UserService) GetProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "User not found")
	}

	var stats ProfileStats
	public, private := true, false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.inventoryRepo.CountByOwner(gctx, userID, nil)
		stats.TotalInventories = count
		return err
	})
	g.Go(func() error {
		count, err := s.inventoryRepo.CountByOwner(gctx, userID, &public)
		stats.PublicInventories = count
		return err
	})
	g.Go(func() error {
		count, err := s.inventoryRepo.CountByOwner(gctx, userID, &private)
		stats.PrivateInventories = count
		return err
	})
	g.Go(func() error {
		count, err := s.itemRepo.CountByInventoryOwner(gctx, userID)
		stats.TotalItems = count
		return err
	})
	g.Go(func() error {
		count, err := s.commentRepo.CountByUser(gctx, userID)
		stats.TotalComments = count
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to collect profile stats",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load profile stats")
	}

	return &stats, nil
}
