package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListing(t *testing.T, db *gorm.DB, owner models.User, mutate func(*models.Listing)) models.Listing {
	t.Helper()
	listing := models.Listing{
		UserID:      owner.ID,
		Title:       "Fender Stratocaster",
		Description: "Çok temiz elektro gitar",
		Category:    "gitar",
		Brand:       "Fender",
		Condition:   models.ConditionGood,
		Price:       15000,
		Location:    "İstanbul",
		IsAvailable: true,
	}
	if mutate != nil {
		mutate(&listing)
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

func TestListingSearchFiltersAreConjunctive(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	seedListing(t, db, owner, func(l *models.Listing) {
		l.Title = "Gibson Les Paul"
		l.Brand = "Gibson"
		l.Location = "Ankara"
	})
	seedListing(t, db, owner, func(l *models.Listing) {
		l.Title = "Fender Telecaster"
		l.Location = "Ankara"
	})
	seedListing(t, db, owner, nil) // Fender, İstanbul

	page, err := repo.Search(ctx, ListingFilter{Brand: "fender", Location: "Ankara"}, "", 1)
	require.NoError(t, err)
	require.Len(t, page.Listings, 1)
	assert.Equal(t, "Fender Telecaster", page.Listings[0].Title)

	// "all" behaves like no filter
	page, err = repo.Search(ctx, ListingFilter{Brand: "all", Location: "all"}, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Listings, 3)
}

func TestListingSearchKeywordMatchesTitleOrDescription(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	seedListing(t, db, owner, func(l *models.Listing) {
		l.Title = "Akustik gitar"
		l.Description = "Yamaha, yeni teller"
	})
	seedListing(t, db, owner, func(l *models.Listing) {
		l.Title = "Davul seti"
		l.Description = "Pearl marka, akustik oda icin"
	})
	seedListing(t, db, owner, func(l *models.Listing) {
		l.Title = "Mikrofon"
		l.Description = "Shure SM58"
	})

	page, err := repo.Search(ctx, ListingFilter{Keyword: "AKUSTIK"}, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Listings, 2, "keyword is case-insensitive and matches either field")
}

func TestListingSearchPriceSortIsMonotonic(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	for _, price := range []float64{9000, 2500, 42000, 2500, 15000} {
		p := price
		seedListing(t, db, owner, func(l *models.Listing) { l.Price = p })
	}

	page, err := repo.Search(ctx, ListingFilter{}, "price-low", 1)
	require.NoError(t, err)
	require.Len(t, page.Listings, 5)
	for i := 1; i < len(page.Listings); i++ {
		assert.LessOrEqual(t, page.Listings[i-1].Price, page.Listings[i].Price)
	}

	page, err = repo.Search(ctx, ListingFilter{}, "price-high", 1)
	require.NoError(t, err)
	for i := 1; i < len(page.Listings); i++ {
		assert.GreaterOrEqual(t, page.Listings[i-1].Price, page.Listings[i].Price)
	}
}

func TestListingSearchPriceRange(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	for _, price := range []float64{1000, 5000, 10000, 20000} {
		p := price
		seedListing(t, db, owner, func(l *models.Listing) { l.Price = p })
	}

	minP, maxP := 4000.0, 15000.0
	page, err := repo.Search(ctx, ListingFilter{MinPrice: &minP, MaxPrice: &maxP}, "price-low", 1)
	require.NoError(t, err)
	require.Len(t, page.Listings, 2)
	assert.Equal(t, 5000.0, page.Listings[0].Price)
	assert.Equal(t, 10000.0, page.Listings[1].Price)
}

func TestListingSearchPagination(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	for i := 0; i < 19; i++ {
		n := i
		seedListing(t, db, owner, func(l *models.Listing) {
			l.Title = fmt.Sprintf("Listing %02d", n)
		})
	}

	page, err := repo.Search(ctx, ListingFilter{}, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Listings, ListingPageSize)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages, "ceil(19/8) = 3")
	assert.Equal(t, int64(19), page.TotalListings)

	page, err = repo.Search(ctx, ListingFilter{}, "", 3)
	require.NoError(t, err)
	assert.Len(t, page.Listings, 3, "last page holds the remainder")

	// Out of range page yields an empty slice, not an error
	page, err = repo.Search(ctx, ListingFilter{}, "", 4)
	require.NoError(t, err)
	assert.Empty(t, page.Listings)
	assert.Equal(t, 3, page.TotalPages)

	// page < 1 is coerced to the first page
	page, err = repo.Search(ctx, ListingFilter{}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Listings, ListingPageSize)
}

func TestListingSearchStableOrderAcrossPages(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	// Identical prices force the id tiebreaker to carry the order
	for i := 0; i < 12; i++ {
		seedListing(t, db, owner, func(l *models.Listing) { l.Price = 1000 })
	}

	seen := make(map[uint]bool)
	for p := 1; p <= 2; p++ {
		page, err := repo.Search(ctx, ListingFilter{}, "price-low", p)
		require.NoError(t, err)
		for _, l := range page.Listings {
			assert.False(t, seen[l.ID], "listing %d appeared on two pages", l.ID)
			seen[l.ID] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestListingCreateFetchRoundTrip(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	listing := &models.Listing{
		UserID:      owner.ID,
		Title:       "Roland TD-17",
		Description: "Elektronik davul",
		Category:    "davul",
		Brand:       "Roland",
		Condition:   models.ConditionLikeNew,
		Price:       32000,
		Location:    "İzmir",
		IsAvailable: true,
		Images: []models.ListingImage{
			{PublicID: "listings/a.jpg", URL: "http://img/a.jpg", Position: 0},
			{PublicID: "listings/b.jpg", URL: "http://img/b.jpg", Position: 1},
		},
	}
	require.NoError(t, repo.Create(ctx, listing))
	require.NotZero(t, listing.ID)

	got, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roland TD-17", got.Title)
	assert.Equal(t, models.ConditionLikeNew, got.Condition)
	assert.Equal(t, 32000.0, got.Price)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "listings/a.jpg", got.Images[0].PublicID)
	assert.Equal(t, "seller", got.User.Name)
}

func TestListingGetByIDNotFound(t *testing.T) {
	db := setupSQLite(t)
	repo := NewListingRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestListingIncrementViews(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	repo := NewListingRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db, owner, nil)
	require.NoError(t, repo.IncrementViews(ctx, listing.ID))
	require.NoError(t, repo.IncrementViews(ctx, listing.ID))

	got, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Views)
}

func TestListingDeleteRemovesFavorites(t *testing.T) {
	db := setupSQLite(t)
	owner := seedUser(t, db, "seller")
	fan := seedUser(t, db, "fan")
	listings := NewListingRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	listing := seedListing(t, db, owner, nil)
	require.NoError(t, users.AddFavorite(ctx, fan.ID, listing.ID))

	require.NoError(t, listings.Delete(ctx, listing.ID))

	fav, err := users.IsFavorite(ctx, fan.ID, listing.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = listings.GetByID(ctx, listing.ID)
	assert.Error(t, err)
}
