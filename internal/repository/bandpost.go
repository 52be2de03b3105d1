package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/EmirArslaan/MusicMarketProject/internal/cache"
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/observability"

	"gorm.io/gorm"
)

// BandPostFilter holds optional predicates for the band board.
type BandPostFilter struct {
	Location   string
	Type       string
	Genre      string
	LookingFor string
}

// BandPostRepository defines persistence operations for band posts.
type BandPostRepository interface {
	List(ctx context.Context, filter BandPostFilter) ([]models.BandPost, error)
	GetByID(ctx context.Context, id uint) (*models.BandPost, error)
	ListByUser(ctx context.Context, userID uint) ([]models.BandPost, error)
	Create(ctx context.Context, post *models.BandPost) error
	Update(ctx context.Context, post *models.BandPost) error
	Delete(ctx context.Context, id uint) error
}

type bandPostRepository struct {
	db *gorm.DB
}

// NewBandPostRepository returns a new BandPostRepository implementation.
func NewBandPostRepository(db *gorm.DB) BandPostRepository {
	return &bandPostRepository{db: db}
}

// jsonTagPattern matches a value inside a JSON-serialized string slice column.
func jsonTagPattern(v string) string {
	return `%"` + strings.TrimSpace(v) + `"%`
}

// unfiltered reports whether every predicate is skipped, i.e. the full board.
func (f BandPostFilter) unfiltered() bool {
	return skippable(f.Location) && skippable(f.Type) && skippable(f.Genre) && skippable(f.LookingFor)
}

func (r *bandPostRepository) List(ctx context.Context, filter BandPostFilter) ([]models.BandPost, error) {
	posts := make([]models.BandPost, 0)

	fetch := func() error {
		defer observability.TrackQuery("select", "band_posts")()
		q := r.db.WithContext(ctx).Model(&models.BandPost{})
		if !skippable(filter.Location) {
			q = q.Where("location = ?", filter.Location)
		}
		if !skippable(filter.Type) {
			q = q.Where("type = ?", filter.Type)
		}
		if !skippable(filter.Genre) {
			q = q.Where("genres LIKE ?", jsonTagPattern(filter.Genre))
		}
		if !skippable(filter.LookingFor) {
			q = q.Where("looking_for LIKE ?", jsonTagPattern(filter.LookingFor))
		}
		err := q.Order("created_at DESC, id DESC").
			Preload("User").
			Find(&posts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the unfiltered board has a cache key; filtered views hit the DB.
	if filter.unfiltered() {
		if err := cache.Aside(ctx, cache.BandListKey, &posts, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return posts, nil
	}
	if err := fetch(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *bandPostRepository) GetByID(ctx context.Context, id uint) (*models.BandPost, error) {
	var post models.BandPost
	defer observability.TrackQuery("select", "band_posts")()
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Band post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *bandPostRepository) ListByUser(ctx context.Context, userID uint) ([]models.BandPost, error) {
	posts := make([]models.BandPost, 0)
	defer observability.TrackQuery("select", "band_posts")()
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *bandPostRepository) Create(ctx context.Context, post *models.BandPost) error {
	defer observability.TrackQuery("insert", "band_posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBandList(ctx)
	return nil
}

func (r *bandPostRepository) Update(ctx context.Context, post *models.BandPost) error {
	defer observability.TrackQuery("update", "band_posts")()
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBandList(ctx)
	return nil
}

func (r *bandPostRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "band_posts")()
	if err := r.db.WithContext(ctx).Delete(&models.BandPost{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBandList(ctx)
	return nil
}
