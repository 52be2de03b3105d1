package server

import (
	"mime/multipart"
	"strconv"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetListings searches listings with filters, sort and pagination
func (s *Server) GetListings(c *fiber.Ctx) error {
	filter := repository.ListingFilter{
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
		Keyword:   c.Query("keyword"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid minPrice parameter"))
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid maxPrice parameter"))
		}
		filter.MaxPrice = &v
	}

	page := c.QueryInt("page", 1)

	result, err := s.listingService.Search(c.Context(), filter, c.Query("sortBy"), page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetListing returns one listing with its owner and bumps the view counter
func (s *Server) GetListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listingService.GetListing(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listing)
}

// GetMyListings returns the authenticated user's listings
func (s *Server) GetMyListings(c *fiber.Ctx) error {
	listings, err := s.listingService.MyListings(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listings)
}

// CreateListing creates a listing from a multipart form with 1-8 images
func (s *Server) CreateListing(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart form data required"))
	}

	price, err := strconv.ParseFloat(formValue(form, "price"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Geçersiz fiyat"))
	}

	images, closeFiles, err := openUploads(form.File["images"])
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded images"))
	}
	defer closeFiles()

	listing, err := s.listingService.CreateListing(c.Context(), service.CreateListingInput{
		UserID:      currentUserID(c),
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Category:    formValue(form, "category"),
		Subcategory: formValue(form, "subcategory"),
		Brand:       formValue(form, "brand"),
		Condition:   formValue(form, "condition"),
		Price:       price,
		Location:    formValue(form, "location"),
		Images:      images,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateListing applies a partial update to an owned listing
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Subcategory *string  `json:"subcategory"`
		Brand       *string  `json:"brand"`
		Condition   *string  `json:"condition"`
		Price       *float64 `json:"price"`
		Location    *string  `json:"location"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.UpdateListing(c.Context(), service.UpdateListingInput{
		UserID:      currentUserID(c),
		ListingID:   id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Condition:   req.Condition,
		Price:       req.Price,
		Location:    req.Location,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(listing)
}

// DeleteListing removes an owned listing and its images
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.listingService.DeleteListing(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "İlan silindi"})
}

func formValue(form *multipart.Form, key string) string {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// openUploads opens multipart file headers as service uploads. The returned
// closer must run after the service call consumed the readers.
func openUploads(headers []*multipart.FileHeader) ([]service.ImageUpload, func(), error) {
	uploads := make([]service.ImageUpload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	closeFiles := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeFiles()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, service.ImageUpload{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
			Reader:      f,
		})
	}
	return uploads, closeFiles, nil
}
