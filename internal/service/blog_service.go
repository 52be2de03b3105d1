package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/EmirArslaan/MusicMarketProject/internal/media"
	"github.com/EmirArslaan/MusicMarketProject/internal/middleware"
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"
	"github.com/EmirArslaan/MusicMarketProject/internal/validation"
)

type BlogService struct {
	blogRepo   repository.BlogPostRepository
	userRepo   repository.UserRepository
	mediaStore media.Store
}

type CreateBlogPostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
	ReadTime string
	Cover    *ImageUpload
}

// UpdateBlogPostInput carries a partial blog update. Nil fields are left
// untouched; non-nil fields are applied even when empty.
type UpdateBlogPostInput struct {
	UserID   uint
	PostID   uint
	Title    *string
	Content  *string
	Category *string
	ReadTime *string
}

func NewBlogService(blogRepo repository.BlogPostRepository, userRepo repository.UserRepository, mediaStore media.Store) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo, mediaStore: mediaStore}
}

func (s *BlogService) ListPosts(ctx context.Context, category string) ([]models.BlogPost, error) {
	return s.blogRepo.List(ctx, category)
}

func (s *BlogService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.BlogPost, error) {
	return s.blogRepo.GetByID(ctx, id, viewerID)
}

func (s *BlogService) MyPosts(ctx context.Context, userID uint) ([]models.BlogPost, error) {
	return s.blogRepo.ListByUser(ctx, userID)
}

func (s *BlogService) CreatePost(ctx context.Context, in CreateBlogPostInput) (*models.BlogPost, error) {
	if err := validation.RequireFields(
		validation.Field{Name: "title", Value: in.Title},
		validation.Field{Name: "content", Value: in.Content},
		validation.Field{Name: "category", Value: in.Category},
	); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Cover == nil {
		return nil, models.NewValidationError("Kapak görseli gerekli")
	}

	uploaded, err := s.mediaStore.Upload(ctx, "blogs", in.Cover.Filename, in.Cover.ContentType, in.Cover.Reader, in.Cover.Size)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	readTime := in.ReadTime
	if readTime == "" {
		readTime = estimateReadTime(in.Content)
	}

	post := &models.BlogPost{
		UserID:        in.UserID,
		Title:         in.Title,
		Content:       in.Content,
		ImagePublicID: uploaded.PublicID,
		ImageURL:      uploaded.URL,
		Category:      in.Category,
		ReadTime:      readTime,
	}
	if err := s.blogRepo.Create(ctx, post); err != nil {
		s.removeCover(ctx, uploaded.PublicID)
		return nil, err
	}

	return s.blogRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *BlogService) UpdatePost(ctx context.Context, in UpdateBlogPostInput) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("Bu yazı üzerinde işlem yetkiniz yok")
	}

	if in.Title != nil {
		if err := validation.RequireFields(validation.Field{Name: "title", Value: *in.Title}); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.ReadTime != nil {
		post.ReadTime = *in.ReadTime
	}

	// Save only the post row; comments and likes stay untouched
	post.Comments = nil
	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *BlogService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.blogRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("Bu yazı üzerinde işlem yetkiniz yok")
	}

	if err := s.blogRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.removeCover(ctx, post.ImagePublicID)
	return nil
}

// AddComment appends a comment carrying a snapshot of the commenter's name
// and avatar. Whitespace-only bodies are rejected.
func (s *BlogService) AddComment(ctx context.Context, userID, postID uint, body string) (*models.BlogComment, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, models.NewValidationError("Yorum boş olamaz")
	}

	if _, err := s.blogRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.BlogComment{
		BlogPostID: postID,
		UserID:     user.ID,
		Name:       user.Name,
		Avatar:     user.Avatar,
		Comment:    trimmed,
	}
	if err := s.blogRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *BlogService) ToggleLike(ctx context.Context, userID, postID uint) (*models.BlogPost, error) {
	if _, err := s.blogRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if _, err := s.blogRepo.ToggleLike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, postID, userID)
}

func (s *BlogService) removeCover(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.mediaStore.Remove(ctx, publicID); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to remove blog cover",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}

// estimateReadTime derives a display read time from content length at
// roughly 200 words a minute.
func estimateReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " dk"
}
