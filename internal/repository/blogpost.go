package repository

import (
	"context"
	"errors"

	"github.com/EmirArslaan/MusicMarketProject/internal/cache"
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likesCountSelect computes the like counter alongside each post row.
const likesCountSelect = "blog_posts.*, " +
	"(SELECT COUNT(*) FROM blog_likes WHERE blog_likes.blog_post_id = blog_posts.id) AS likes_count"

// BlogPostRepository defines persistence operations for blog posts,
// their comments, and likes.
type BlogPostRepository interface {
	List(ctx context.Context, category string) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.BlogPost, error)
	ListByUser(ctx context.Context, userID uint) ([]models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *models.BlogComment) error
	ToggleLike(ctx context.Context, postID, userID uint) (liked bool, err error)
}

type blogPostRepository struct {
	db *gorm.DB
}

// NewBlogPostRepository returns a new BlogPostRepository implementation.
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &blogPostRepository{db: db}
}

func (r *blogPostRepository) List(ctx context.Context, category string) ([]models.BlogPost, error) {
	posts := make([]models.BlogPost, 0)

	fetch := func() error {
		defer observability.TrackQuery("select", "blog_posts")()
		q := r.db.WithContext(ctx).Model(&models.BlogPost{}).Select(likesCountSelect)
		if !skippable(category) {
			q = q.Where("category = ?", category)
		}
		err := q.Order("blog_posts.created_at DESC, blog_posts.id DESC").
			Preload("User").
			Find(&posts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the unfiltered feed has a cache key; category views hit the DB.
	if skippable(category) {
		if err := cache.Aside(ctx, cache.BlogListKey, &posts, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return posts, nil
	}
	if err := fetch(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID loads a post with its comments and like counter. When viewerID is
// non-zero the Liked flag reflects that viewer.
func (r *blogPostRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.BlogPost, error) {
	var post models.BlogPost

	// The cached entry is viewer-neutral; Liked is resolved per request below.
	err := cache.Aside(ctx, cache.BlogPostKey(id), &post, cache.BlogPostTTL, func() error {
		defer observability.TrackQuery("select", "blog_posts")()
		err := r.db.WithContext(ctx).Model(&models.BlogPost{}).
			Select(likesCountSelect).
			Preload("User").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC, id ASC")
			}).
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.BlogLike{}).
			Where("blog_post_id = ? AND user_id = ?", id, viewerID).
			Count(&count).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.Liked = count > 0
	}

	return &post, nil
}

func (r *blogPostRepository) ListByUser(ctx context.Context, userID uint) ([]models.BlogPost, error) {
	posts := make([]models.BlogPost, 0)
	defer observability.TrackQuery("select", "blog_posts")()
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Select(likesCountSelect).
		Where("user_id = ?", userID).
		Order("blog_posts.created_at DESC, blog_posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *blogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	defer observability.TrackQuery("insert", "blog_posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogPost(ctx, post.ID)
	return nil
}

func (r *blogPostRepository) Update(ctx context.Context, post *models.BlogPost) error {
	defer observability.TrackQuery("update", "blog_posts")()
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogPost(ctx, post.ID)
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "blog_posts")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogPost(ctx, id)
	return nil
}

// CreateComment appends a comment. Comments are never edited or removed.
func (r *blogPostRepository) CreateComment(ctx context.Context, comment *models.BlogComment) error {
	defer observability.TrackQuery("insert", "blog_comments")()
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlogPost(ctx, comment.BlogPostID)
	return nil
}

// ToggleLike flips the viewer's like on a post and reports the new state.
func (r *blogPostRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var existing models.BlogLike
	defer observability.TrackQuery("update", "blog_likes")()

	err := r.db.WithContext(ctx).
		Where("blog_post_id = ? AND user_id = ?", postID, userID).
		First(&existing).Error

	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Delete(&existing).Error; err != nil {
			return false, models.NewInternalError(err)
		}
		cache.InvalidateBlogPost(ctx, postID)
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.BlogLike{BlogPostID: postID, UserID: userID}
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
		if err != nil && !isUniqueConstraintError(err) {
			return false, models.NewInternalError(err)
		}
		cache.InvalidateBlogPost(ctx, postID)
		return true, nil
	default:
		return false, models.NewInternalError(err)
	}
}
