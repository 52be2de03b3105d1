package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/EmirArslaan/MusicMarketProject/internal/media"
	"github.com/EmirArslaan/MusicMarketProject/internal/middleware"
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/validation"
)

type ListingService struct {
	listingRepo repository.ListingRepository
	mediaStore  media.Store
}

// ImageUpload is one incoming multipart image.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type CreateListingInput struct {
	UserID      uint
	Title       string
	Description string
	Category    string
	Subcategory string
	Brand       string
	Condition   string
	Price       float64
	Location    string
	Images      []ImageUpload
}

// UpdateListingInput carries a partial listing update. Nil fields are left
// untouched; non-nil fields are applied even when empty or false.
type UpdateListingInput struct {
	UserID      uint
	ListingID   uint
	Title       *string
	Description *string
	Category    *string
	Subcategory *string
	Brand       *string
	Condition   *string
	Price       *float64
	Location    *string
	IsAvailable *bool
}

func NewListingService(listingRepo repository.ListingRepository, mediaStore media.Store) *ListingService {
	return &ListingService{listingRepo: listingRepo, mediaStore: mediaStore}
}

func (s *ListingService) Search(ctx context.Context, filter repository.ListingFilter, sortBy string, page int) (*repository.ListingPage, error) {
	return s.listingRepo.Search(ctx, filter, sortBy, page)
}

// GetListing returns the listing with its owner and bumps the view counter.
func (s *ListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, id)
}

func (s *ListingService) MyListings(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.listingRepo.ListByUser(ctx, userID)
}

func (s *ListingService) CreateListing(ctx context.Context, in CreateListingInput) (*models.Listing, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "title", Value: in.Title},
		validation.Field{Name: "description", Value: in.Description},
		validation.Field{Name: "category", Value: in.Category},
		validation.Field{Name: "brand", Value: in.Brand},
		validation.Field{Name: "location", Value: in.Location},
	); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	condition := in.Condition
	if condition == "" {
		condition = models.ConditionGood
	}
	if !models.ValidListingCondition(condition) {
		return nil, models.NewValidationError("Geçersiz ürün durumu")
	}
	if len(in.Images) == 0 {
		return nil, models.NewValidationError("En az bir fotoğraf gerekli")
	}
	if len(in.Images) > media.MaxListingImages {
		return nil, models.NewValidationError(fmt.Sprintf("En fazla %d fotoğraf yüklenebilir", media.MaxListingImages))
	}

	images := make([]models.ListingImage, 0, len(in.Images))
	for i, img := range in.Images {
		uploaded, err := s.mediaStore.Upload(ctx, "listings", img.Filename, img.ContentType, img.Reader, img.Size)
		if err != nil {
			s.removeMedia(ctx, images)
			return nil, models.NewValidationError(err.Error())
		}
		images = append(images, models.ListingImage{
			PublicID: uploaded.PublicID,
			URL:      uploaded.URL,
			Position: i,
		})
	}

	listing := &models.Listing{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Brand:       in.Brand,
		Condition:   condition,
		Price:       in.Price,
		Location:    in.Location,
		Images:      images,
		IsAvailable: true,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.removeMedia(ctx, images)
		return nil, err
	}

	return s.listingRepo.GetByID(ctx, listing.ID)
}

func (s *ListingService) UpdateListing(ctx context.Context, in UpdateListingInput) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("Bu ilan üzerinde işlem yetkiniz yok")
	}

	if in.Title != nil {
		if err := validation.RequireFields(validation.Field{Name: "title", Value: *in.Title}); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		listing.Title = *in.Title
	}
	if in.Description != nil {
		listing.Description = *in.Description
	}
	if in.Category != nil {
		listing.Category = *in.Category
	}
	if in.Subcategory != nil {
		listing.Subcategory = *in.Subcategory
	}
	if in.Brand != nil {
		listing.Brand = *in.Brand
	}
	if in.Condition != nil {
		if !models.ValidListingCondition(*in.Condition) {
			return nil, models.NewValidationError("Geçersiz ürün durumu")
		}
		listing.Condition = *in.Condition
	}
	if in.Price != nil {
		if err := validation.ValidatePrice(*in.Price); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		listing.Price = *in.Price
	}
	if in.Location != nil {
		listing.Location = *in.Location
	}
	if in.IsAvailable != nil {
		listing.IsAvailable = *in.IsAvailable
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) DeleteListing(ctx context.Context, userID, listingID uint) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.UserID != userID {
		return models.NewUnauthorizedError("Bu ilan üzerinde işlem yetkiniz yok")
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	// Best-effort: the row is gone either way
	s.removeMedia(ctx, listing.Images)
	return nil
}

func (s *ListingService) removeMedia(ctx context.Context, images []models.ListingImage) {
	for _, img := range images {
		if err := s.mediaStore.Remove(ctx, img.PublicID); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to remove listing image",
				slog.String("public_id", img.PublicID),
				slog.String("error", err.Error()),
			)
		}
	}
}
