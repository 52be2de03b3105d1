package service

import (
	"context"
	"io"
	"testing"

	"github.com/EmirArslaan/MusicMarketProject/internal/media"
	"github.com/EmirArslaan/MusicMarketProject/internal/models"
	"github.com/EmirArslaan/MusicMarketProject/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, uint) error
	isFavoriteFn     func(context.Context, uint, uint) (bool, error)
	addFavoriteFn    func(context.Context, uint, uint) error
	removeFavoriteFn func(context.Context, uint, uint) error
	favoriteIDsFn    func(context.Context, uint) ([]uint, error)
	listFavoritesFn  func(context.Context, uint) ([]models.Listing, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) IsFavorite(ctx context.Context, userID, listingID uint) (bool, error) {
	return s.isFavoriteFn(ctx, userID, listingID)
}
func (s *userRepoStub) AddFavorite(ctx context.Context, userID, listingID uint) error {
	return s.addFavoriteFn(ctx, userID, listingID)
}
func (s *userRepoStub) RemoveFavorite(ctx context.Context, userID, listingID uint) error {
	return s.removeFavoriteFn(ctx, userID, listingID)
}
func (s *userRepoStub) FavoriteIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.favoriteIDsFn(ctx, userID)
}
func (s *userRepoStub) ListFavorites(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.listFavoritesFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:        func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:         func(context.Context, *models.User) error { return nil },
		updateFn:         func(context.Context, *models.User) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		isFavoriteFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
		addFavoriteFn:    func(context.Context, uint, uint) error { return nil },
		removeFavoriteFn: func(context.Context, uint, uint) error { return nil },
		favoriteIDsFn:    func(context.Context, uint) ([]uint, error) { return nil, nil },
		listFavoritesFn:  func(context.Context, uint) ([]models.Listing, error) { return nil, nil },
	}
}

type listingRepoStub struct {
	searchFn         func(context.Context, repository.ListingFilter, string, int) (*repository.ListingPage, error)
	getByIDFn        func(context.Context, uint) (*models.Listing, error)
	listByUserFn     func(context.Context, uint) ([]models.Listing, error)
	createFn         func(context.Context, *models.Listing) error
	updateFn         func(context.Context, *models.Listing) error
	deleteFn         func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
}

func (s *listingRepoStub) Search(ctx context.Context, f repository.ListingFilter, sortBy string, page int) (*repository.ListingPage, error) {
	return s.searchFn(ctx, f, sortBy, page)
}
func (s *listingRepoStub) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	return s.getByIDFn(ctx, id)
}
func (s *listingRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.Listing, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *listingRepoStub) Create(ctx context.Context, l *models.Listing) error {
	return s.createFn(ctx, l)
}
func (s *listingRepoStub) Update(ctx context.Context, l *models.Listing) error {
	return s.updateFn(ctx, l)
}
func (s *listingRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *listingRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopListingRepo() *listingRepoStub {
	return &listingRepoStub{
		searchFn: func(context.Context, repository.ListingFilter, string, int) (*repository.ListingPage, error) {
			return &repository.ListingPage{}, nil
		},
		getByIDFn:        func(context.Context, uint) (*models.Listing, error) { return &models.Listing{}, nil },
		listByUserFn:     func(context.Context, uint) ([]models.Listing, error) { return nil, nil },
		createFn:         func(context.Context, *models.Listing) error { return nil },
		updateFn:         func(context.Context, *models.Listing) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		incrementViewsFn: func(context.Context, uint) error { return nil },
	}
}

type blogRepoStub struct {
	listFn          func(context.Context, string) ([]models.BlogPost, error)
	getByIDFn       func(context.Context, uint, uint) (*models.BlogPost, error)
	listByUserFn    func(context.Context, uint) ([]models.BlogPost, error)
	createFn        func(context.Context, *models.BlogPost) error
	updateFn        func(context.Context, *models.BlogPost) error
	deleteFn        func(context.Context, uint) error
	createCommentFn func(context.Context, *models.BlogComment) error
	toggleLikeFn    func(context.Context, uint, uint) (bool, error)
}

func (s *blogRepoStub) List(ctx context.Context, category string) ([]models.BlogPost, error) {
	return s.listFn(ctx, category)
}
func (s *blogRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.BlogPost, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *blogRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.BlogPost, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *blogRepoStub) Create(ctx context.Context, p *models.BlogPost) error {
	return s.createFn(ctx, p)
}
func (s *blogRepoStub) Update(ctx context.Context, p *models.BlogPost) error {
	return s.updateFn(ctx, p)
}
func (s *blogRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *blogRepoStub) CreateComment(ctx context.Context, c *models.BlogComment) error {
	return s.createCommentFn(ctx, c)
}
func (s *blogRepoStub) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		listFn:          func(context.Context, string) ([]models.BlogPost, error) { return nil, nil },
		getByIDFn:       func(context.Context, uint, uint) (*models.BlogPost, error) { return &models.BlogPost{}, nil },
		listByUserFn:    func(context.Context, uint) ([]models.BlogPost, error) { return nil, nil },
		createFn:        func(context.Context, *models.BlogPost) error { return nil },
		updateFn:        func(context.Context, *models.BlogPost) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		createCommentFn: func(context.Context, *models.BlogComment) error { return nil },
		toggleLikeFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

type bandRepoStub struct {
	listFn       func(context.Context, repository.BandPostFilter) ([]models.BandPost, error)
	getByIDFn    func(context.Context, uint) (*models.BandPost, error)
	listByUserFn func(context.Context, uint) ([]models.BandPost, error)
	createFn     func(context.Context, *models.BandPost) error
	updateFn     func(context.Context, *models.BandPost) error
	deleteFn     func(context.Context, uint) error
}

func (s *bandRepoStub) List(ctx context.Context, f repository.BandPostFilter) ([]models.BandPost, error) {
	return s.listFn(ctx, f)
}
func (s *bandRepoStub) GetByID(ctx context.Context, id uint) (*models.BandPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bandRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.BandPost, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *bandRepoStub) Create(ctx context.Context, p *models.BandPost) error {
	return s.createFn(ctx, p)
}
func (s *bandRepoStub) Update(ctx context.Context, p *models.BandPost) error {
	return s.updateFn(ctx, p)
}
func (s *bandRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopBandRepo() *bandRepoStub {
	return &bandRepoStub{
		listFn:       func(context.Context, repository.BandPostFilter) ([]models.BandPost, error) { return nil, nil },
		getByIDFn:    func(context.Context, uint) (*models.BandPost, error) { return &models.BandPost{}, nil },
		listByUserFn: func(context.Context, uint) ([]models.BandPost, error) { return nil, nil },
		createFn:     func(context.Context, *models.BandPost) error { return nil },
		updateFn:     func(context.Context, *models.BandPost) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type mediaStoreStub struct {
	uploadFn func(context.Context, string, string, string, io.Reader, int64) (*media.Uploaded, error)
	removeFn func(context.Context, string) error
}

func (s *mediaStoreStub) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (*media.Uploaded, error) {
	return s.uploadFn(ctx, folder, filename, contentType, r, size)
}
func (s *mediaStoreStub) Remove(ctx context.Context, publicID string) error {
	return s.removeFn(ctx, publicID)
}

func noopMediaStore() *mediaStoreStub {
	return &mediaStoreStub{
		uploadFn: func(_ context.Context, folder, filename, _ string, _ io.Reader, _ int64) (*media.Uploaded, error) {
			return &media.Uploaded{PublicID: folder + "/" + filename, URL: "http://img/" + folder + "/" + filename}, nil
		},
		removeFn: func(context.Context, string) error { return nil },
	}
}
