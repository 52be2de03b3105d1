package server

import (
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBandPosts lists band posts with optional filters
func (s *Server) GetBandPosts(c *fiber.Ctx) error {
	filter := repository.BandPostFilter{
		Location:   c.Query("location"),
		Type:       c.Query("type"),
		Genre:      c.Query("genres"),
		LookingFor: c.Query("lookingFor"),
	}

	posts, err := s.bandService.ListPosts(c.Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetBandPost returns one band post
func (s *Server) GetBandPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.bandService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetMyBandPosts returns the authenticated user's band posts
func (s *Server) GetMyBandPosts(c *fiber.Ctx) error {
	posts, err := s.bandService.MyPosts(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreateBandPost creates a band post
func (s *Server) CreateBandPost(c *fiber.Ctx) error {
	var req struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Type            string   `json:"type"`
		LookingFor      []string `json:"lookingFor"`
		Genres          []string `json:"genres"`
		Location        string   `json:"location"`
		ExperienceLevel string   `json:"experienceLevel"`
		CurrentMembers  int      `json:"currentMembers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.bandService.CreatePost(c.Context(), service.CreateBandPostInput{
		UserID:          currentUserID(c),
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		LookingFor:      req.LookingFor,
		Genres:          req.Genres,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		CurrentMembers:  req.CurrentMembers,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateBandPost applies a partial update to an owned band post
func (s *Server) UpdateBandPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title           *string   `json:"title"`
		Description     *string   `json:"description"`
		Type            *string   `json:"type"`
		LookingFor      *[]string `json:"lookingFor"`
		Genres          *[]string `json:"genres"`
		Location        *string   `json:"location"`
		ExperienceLevel *string   `json:"experienceLevel"`
		CurrentMembers  *int      `json:"currentMembers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.bandService.UpdatePost(c.Context(), service.UpdateBandPostInput{
		UserID:          currentUserID(c),
		PostID:          id,
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		LookingFor:      req.LookingFor,
		Genres:          req.Genres,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		CurrentMembers:  req.CurrentMembers,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeleteBandPost removes an owned band post
func (s *Server) DeleteBandPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.bandService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "İlan silindi"})
}
