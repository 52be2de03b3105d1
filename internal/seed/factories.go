// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	instrumentCategories = []string{"gitar", "bas", "davul", "klavye", "yayli", "nefesli", "kayit-ekipmani"}

	instrumentBrands = []string{
		"Fender", "Gibson", "Ibanez", "Yamaha", "Roland", "Korg", "Pearl",
		"Tama", "Shure", "Focusrite", "Epiphone", "Squier", "Zildjian",
	}

	cities = []string{
		"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya", "Eskişehir",
		"Adana", "Konya", "Gaziantep", "Mersin",
	}

	genres = []string{
		"rock", "metal", "jazz", "blues", "pop", "funk", "indie",
		"anadolu rock", "elektronik", "hip hop",
	}

	roles = []string{
		"gitar", "bas gitar", "davul", "vokal", "klavye", "keman",
		"saksafon", "trompet", "perküsyon",
	}

	blogCategories = []string{"bakim", "ekipman", "egitim", "roportaj", "haber"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *Factory) pick(values []string) string {
	return values[f.r.Intn(len(values))]
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("parola123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%d-%s", gofakeit.Number(100, 999), gofakeit.Email()),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateListing constructs and persists a sample listing for the given user,
// with one to four attached images and a created_at spread over the past
// three months.
func (f *Factory) CreateListing(user *models.User, overrides ...func(*models.Listing)) (*models.Listing, error) {
	brand := f.pick(instrumentBrands)

	imageCount := f.r.Intn(4) + 1
	images := make([]models.ListingImage, 0, imageCount)
	for i := 0; i < imageCount; i++ {
		key := fmt.Sprintf("listings/%s", gofakeit.UUID())
		images = append(images, models.ListingImage{
			PublicID: key,
			URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			Position: i,
		})
	}

	listing := &models.Listing{
		UserID:      user.ID,
		Title:       fmt.Sprintf("%s %s", brand, gofakeit.ProductName()),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Category:    f.pick(instrumentCategories),
		Brand:       brand,
		Condition:   f.pick(models.ListingConditions),
		Price:       float64(gofakeit.Number(500, 150000)),
		Location:    f.pick(cities),
		Images:      images,
		IsAvailable: f.r.Float32() < 0.9,
		CreatedAt:   f.spreadTime(90),
	}

	for _, override := range overrides {
		override(listing)
	}

	if err := f.db.Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// CreateBandPost constructs and persists a sample band post for the user.
func (f *Factory) CreateBandPost(user *models.User, overrides ...func(*models.BandPost)) (*models.BandPost, error) {
	lookingFor := f.pickN(roles, f.r.Intn(3)+1)
	postGenres := f.pickN(genres, f.r.Intn(3)+1)

	post := &models.BandPost{
		UserID:          user.ID,
		Title:           fmt.Sprintf("%s için %s aranıyor", f.pick(postGenres), lookingFor[0]),
		Description:     gofakeit.Paragraph(1, 2, 6, "\n"),
		Type:            f.pick(models.BandTypes),
		LookingFor:      lookingFor,
		Genres:          postGenres,
		Location:        f.pick(cities),
		ExperienceLevel: f.pick(models.ExperienceLevels),
		CurrentMembers:  f.r.Intn(4) + 1,
		CreatedAt:       f.spreadTime(60),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateBlogPost constructs and persists a sample blog post for the user.
func (f *Factory) CreateBlogPost(user *models.User, overrides ...func(*models.BlogPost)) (*models.BlogPost, error) {
	key := fmt.Sprintf("blogs/%s", gofakeit.UUID())

	post := &models.BlogPost{
		UserID:        user.ID,
		Title:         gofakeit.Sentence(5),
		Content:       gofakeit.Paragraph(3, 5, 12, "\n\n"),
		ImagePublicID: key,
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", gofakeit.UUID()),
		Category:      f.pick(blogCategories),
		ReadTime:      fmt.Sprintf("%d dk", f.r.Intn(8)+2),
		CreatedAt:     f.spreadTime(120),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment from `user` on `post`, snapshotting the
// commenter's name and avatar the way the API does.
func (f *Factory) CreateComment(user *models.User, post *models.BlogPost, overrides ...func(*models.BlogComment)) (*models.BlogComment, error) {
	comment := &models.BlogComment{
		BlogPostID: post.ID,
		UserID:     user.ID,
		Name:       user.Name,
		Avatar:     user.Avatar,
		Comment:    gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `post`.
func (f *Factory) CreateLike(user *models.User, post *models.BlogPost) error {
	return f.db.Create(&models.BlogLike{UserID: user.ID, BlogPostID: post.ID}).Error
}

// CreateFavorite persists a favorite from `user` on `listing`.
func (f *Factory) CreateFavorite(user *models.User, listing *models.Listing) error {
	return f.db.Create(&models.Favorite{UserID: user.ID, ListingID: listing.ID}).Error
}

// pickN returns n distinct random values from the given slice.
func (f *Factory) pickN(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	perm := f.r.Perm(len(values))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, values[idx])
	}
	return out
}

// spreadTime returns a timestamp up to maxDays in the past so lists don't
// look freshly generated.
func (f *Factory) spreadTime(maxDays int) time.Time {
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
