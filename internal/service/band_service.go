package service

import (
	"context"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/validation"
)

type BandService struct {
	bandRepo repository.BandPostRepository
}

type CreateBandPostInput struct {
	UserID          uint
	Title           string
	Description     string
	Type            string
	LookingFor      []string
	Genres          []string
	Location        string
	ExperienceLevel string
	CurrentMembers  int
}

// UpdateBandPostInput carries a partial band post update. Nil fields are left
// untouched; non-nil fields are applied even when empty.
type UpdateBandPostInput struct {
	UserID          uint
	PostID          uint
	Title           *string
	Description     *string
	Type            *string
	LookingFor      *[]string
	Genres          *[]string
	Location        *string
	ExperienceLevel *string
	CurrentMembers  *int
}

func NewBandService(bandRepo repository.BandPostRepository) *BandService {
	return &BandService{bandRepo: bandRepo}
}

func (s *BandService) ListPosts(ctx context.Context, filter repository.BandPostFilter) ([]models.BandPost, error) {
	return s.bandRepo.List(ctx, filter)
}

func (s *BandService) GetPost(ctx context.Context, id uint) (*models.BandPost, error) {
	return s.bandRepo.GetByID(ctx, id)
}

func (s *BandService) MyPosts(ctx context.Context, userID uint) ([]models.BandPost, error) {
	return s.bandRepo.ListByUser(ctx, userID)
}

func (s *BandService) CreatePost(ctx context.Context, in CreateBandPostInput) (*models.BandPost, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "title", Value: in.Title},
		validation.Field{Name: "description", Value: in.Description},
		validation.Field{Name: "location", Value: in.Location},
	); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !models.ValidBandType(in.Type) {
		return nil, models.NewValidationError("Geçersiz ilan türü")
	}
	if len(in.LookingFor) == 0 {
		return nil, models.NewValidationError("Aranan en az bir enstrüman veya rol belirtin")
	}
	if len(in.Genres) == 0 {
		return nil, models.NewValidationError("En az bir müzik türü belirtin")
	}

	experience := in.ExperienceLevel
	if experience == "" {
		experience = models.ExperienceAny
	}
	if !models.ValidExperienceLevel(experience) {
		return nil, models.NewValidationError("Geçersiz deneyim seviyesi")
	}

	members := in.CurrentMembers
	if members < 1 {
		members = 1
	}

	post := &models.BandPost{
		UserID:          in.UserID,
		Title:           in.Title,
		Description:     in.Description,
		Type:            in.Type,
		LookingFor:      in.LookingFor,
		Genres:          in.Genres,
		Location:        in.Location,
		ExperienceLevel: experience,
		CurrentMembers:  members,
	}
	if err := s.bandRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.bandRepo.GetByID(ctx, post.ID)
}

func (s *BandService) UpdatePost(ctx context.Context, in UpdateBandPostInput) (*models.BandPost, error) {
	post, err := s.bandRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("Bu ilan üzerinde işlem yetkiniz yok")
	}

	if in.Title != nil {
		if err := validation.RequireFields(validation.Field{Name: "title", Value: *in.Title}); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Description != nil {
		post.Description = *in.Description
	}
	if in.Type != nil {
		if !models.ValidBandType(*in.Type) {
			return nil, models.NewValidationError("Geçersiz ilan türü")
		}
		post.Type = *in.Type
	}
	if in.LookingFor != nil {
		post.LookingFor = *in.LookingFor
	}
	if in.Genres != nil {
		post.Genres = *in.Genres
	}
	if in.Location != nil {
		post.Location = *in.Location
	}
	if in.ExperienceLevel != nil {
		if !models.ValidExperienceLevel(*in.ExperienceLevel) {
			return nil, models.NewValidationError("Geçersiz deneyim seviyesi")
		}
		post.ExperienceLevel = *in.ExperienceLevel
	}
	if in.CurrentMembers != nil && *in.CurrentMembers >= 1 {
		post.CurrentMembers = *in.CurrentMembers
	}

	if err := s.bandRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BandService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.bandRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("Bu ilan üzerinde işlem yetkiniz yok")
	}
	return s.bandRepo.Delete(ctx, postID)
}
