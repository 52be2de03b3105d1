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

// ListingPageSize is the fixed number of listings per search page.
const ListingPageSize = 8

// ListingFilter holds the optional search predicates. Empty or "all" values
// are skipped; the rest combine conjunctively.
type ListingFilter struct {
	Category  string
	Brand     string
	Condition string
	Location  string
	Keyword   string
	MinPrice  *float64
	MaxPrice  *float64
}

// ListingPage is one page of search results.
type ListingPage struct {
	Listings      []models.Listing `json:"listings"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	TotalListings int64            `json:"totalListings"`
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Search(ctx context.Context, filter ListingFilter, sortBy string, page int) (*ListingPage, error)
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository returns a new ListingRepository implementation.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func skippable(v string) bool {
	return v == "" || v == "all"
}

// applyFilter builds the conjunctive WHERE clause for a search.
func applyFilter(q *gorm.DB, f ListingFilter) *gorm.DB {
	if !skippable(f.Category) {
		q = q.Where("category = ?", f.Category)
	}
	if !skippable(f.Brand) {
		q = q.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(f.Brand)+"%")
	}
	if !skippable(f.Condition) {
		q = q.Where("condition = ?", f.Condition)
	}
	if !skippable(f.Location) {
		q = q.Where("location = ?", f.Location)
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		pattern := "%" + strings.ToLower(kw) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	return q
}

// sortClause maps the public sort keys to ORDER BY clauses. The id column is
// a secondary key so the order is total and pagination is stable.
func sortClause(sortBy string) string {
	switch sortBy {
	case "price-low":
		return "price ASC, id ASC"
	case "price-high":
		return "price DESC, id DESC"
	case "oldest":
		return "created_at ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *listingRepository) Search(ctx context.Context, filter ListingFilter, sortBy string, page int) (*ListingPage, error) {
	if page < 1 {
		page = 1
	}
	observability.ListingSearches.WithLabelValues(sortBy).Inc()
	defer observability.TrackQuery("select", "listings")()

	base := applyFilter(r.db.WithContext(ctx).Model(&models.Listing{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	totalPages := int((total + ListingPageSize - 1) / ListingPageSize)

	listings := make([]models.Listing, 0, ListingPageSize)
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Listing{}), filter).
		Order(sortClause(sortBy)).
		Offset(ListingPageSize * (page - 1)).
		Limit(ListingPageSize).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("User").
		Find(&listings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &ListingPage{
		Listings:      listings,
		Page:          page,
		TotalPages:    totalPages,
		TotalListings: total,
	}, nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := cache.Aside(ctx, cache.ListingKey(id), &listing, cache.ListingTTL, func() error {
		defer observability.TrackQuery("select", "listings")()
		err := r.db.WithContext(ctx).
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Preload("User").
			First(&listing, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Listing", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Listing, error) {
	listings := make([]models.Listing, 0)
	defer observability.TrackQuery("select", "listings")()
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&listings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	defer observability.TrackQuery("insert", "listings")()
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	defer observability.TrackQuery("update", "listings")()
	// Replace the image set so removed photos do not linger
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(listing).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateListing(ctx, listing.ID)
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "listings")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.ListingImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateListing(ctx, id)
	return nil
}

// IncrementViews bumps the view counter without racing concurrent readers.
func (r *listingRepository) IncrementViews(ctx context.Context, id uint) error {
	defer observability.TrackQuery("update", "listings")()
	err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	// The cached detail carries the counter
	cache.InvalidateListing(ctx, id)
	return nil
}
