package server

import (
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the authenticated user's profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(userPayload(user))
}

// UpdateProfile applies a partial profile update. Absent fields stay as they
// are; present fields are applied even when empty.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name   *string `json:"name"`
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(userPayload(user))
}

// ChangePassword verifies the current password and sets a new one
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.userService.ChangePassword(c.Context(), service.ChangePasswordInput{
		UserID:          currentUserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Şifre başarıyla güncellendi"})
}

// GetFavorites returns the authenticated user's favorite listings
func (s *Server) GetFavorites(c *fiber.Ctx) error {
	listings, err := s.userService.ListFavorites(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listings)
}

// ToggleFavorite adds or removes a listing from the user's favorites
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	var req struct {
		ListingID uint `json:"listingId"`
	}
	if err := c.BodyParser(&req); err != nil || req.ListingID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("listingId is required"))
	}

	result, err := s.userService.ToggleFavorite(c.Context(), currentUserID(c), req.ListingID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
