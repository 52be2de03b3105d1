// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Favorite toggle outcome messages shown to the client.
const (
	FavoriteAddedMessage   = "Favorilere eklendi"
	FavoriteRemovedMessage = "Favorilerden kaldırıldı"
)

type UserService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched; non-nil fields are applied even when empty.
type UpdateProfileInput struct {
	UserID uint
	Name   *string
	Bio    *string
	Avatar *string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

// FavoriteToggleResult reports the outcome of a toggle and the updated ID set.
type FavoriteToggleResult struct {
	Message     string `json:"message"`
	FavoriteIDs []uint `json:"favorites"`
}

func NewUserService(userRepo repository.UserRepository, listingRepo repository.ListingRepository) *UserService {
	return &UserService{userRepo: userRepo, listingRepo: listingRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = *in.Name
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio en fazla 500 karakter olabilir")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthorizedError("Mevcut şifre hatalı")
	}

	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// ToggleFavorite adds the listing to the user's favorites, or removes it when
// already present. Toggling twice restores the previous set.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, listingID uint) (*FavoriteToggleResult, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}

	isFav, err := s.userRepo.IsFavorite(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	message := FavoriteAddedMessage
	if isFav {
		if err := s.userRepo.RemoveFavorite(ctx, userID, listingID); err != nil {
			return nil, err
		}
		message = FavoriteRemovedMessage
	} else {
		if err := s.userRepo.AddFavorite(ctx, userID, listingID); err != nil {
			return nil, err
		}
	}

	ids, err := s.userRepo.FavoriteIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoriteToggleResult{Message: message, FavoriteIDs: ids}, nil
}

func (s *UserService) ListFavorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.userRepo.ListFavorites(ctx, userID)
}
