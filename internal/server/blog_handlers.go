package server

import (
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBlogPosts lists blog posts, optionally filtered by category
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	posts, err := s.blogService.ListPosts(c.Context(), c.Query("category"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetBlogPost returns one blog post with its comments. When the request
// carries a valid token the viewer's like state is included.
func (s *Server) GetBlogPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	post, err := s.blogService.GetPost(c.Context(), id, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetMyBlogPosts returns the authenticated user's blog posts
func (s *Server) GetMyBlogPosts(c *fiber.Ctx) error {
	posts, err := s.blogService.MyPosts(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreateBlogPost creates a blog post from a multipart form with a cover image
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Multipart form data required"))
	}

	in := service.CreateBlogPostInput{
		UserID:   currentUserID(c),
		Title:    formValue(form, "title"),
		Content:  formValue(form, "content"),
		Category: formValue(form, "category"),
		ReadTime: formValue(form, "readTime"),
	}

	if headers := form.File["image"]; len(headers) > 0 {
		uploads, closeFiles, err := openUploads(headers[:1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Could not read cover image"))
		}
		defer closeFiles()
		in.Cover = &uploads[0]
	}

	post, err := s.blogService.CreatePost(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdateBlogPost applies a partial update to an owned blog post
func (s *Server) UpdateBlogPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		Category *string `json:"category"`
		ReadTime *string `json:"readTime"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.blogService.UpdatePost(c.Context(), service.UpdateBlogPostInput{
		UserID:   currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ReadTime: req.ReadTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeleteBlogPost removes an owned blog post, its comments and likes
func (s *Server) DeleteBlogPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Yazı silindi"})
}

// CreateBlogComment appends a comment to a blog post
func (s *Server) CreateBlogComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.blogService.AddComment(c.Context(), currentUserID(c), id, req.Comment)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Yorum eklendi",
		"comment": comment,
	})
}

// ToggleBlogLike toggles the viewer's like on a blog post
func (s *Server) ToggleBlogLike(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.blogService.ToggleLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}
