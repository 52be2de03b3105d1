package seed

import (
	"fmt"
	"log"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumListings int
	NumBands    int
	NumBlogs    int
	ShouldClean bool
}

// Seeder populates the database with demo marketplace data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.BlogLike{},
		&models.BlogComment{},
		&models.BlogPost{},
		&models.Favorite{},
		&models.ListingImage{},
		&models.Listing{},
		&models.BandPost{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run creates users, listings, band posts and blog posts with engagement
// (favorites, comments, likes) per the given options.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users, %d listings, %d band posts, %d blog posts...",
		opts.NumUsers, opts.NumListings, opts.NumBands, opts.NumBlogs)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("user seeding failed: %w", err)
	}
	log.Printf("created %d users", len(users))

	listings := make([]*models.Listing, 0, opts.NumListings)
	for i := 0; i < opts.NumListings; i++ {
		listing, err := s.factory.CreateListing(users[s.factory.r.Intn(len(users))])
		if err != nil {
			return fmt.Errorf("listing seeding failed: %w", err)
		}
		listings = append(listings, listing)
	}
	log.Printf("created %d listings", len(listings))

	for i := 0; i < opts.NumBands; i++ {
		if _, err := s.factory.CreateBandPost(users[s.factory.r.Intn(len(users))]); err != nil {
			return fmt.Errorf("band post seeding failed: %w", err)
		}
	}
	log.Printf("created %d band posts", opts.NumBands)

	if err := s.seedBlogEngagement(users, opts.NumBlogs); err != nil {
		return fmt.Errorf("blog seeding failed: %w", err)
	}
	log.Printf("created %d blog posts", opts.NumBlogs)

	if err := s.seedFavorites(users, listings); err != nil {
		return fmt.Errorf("favorite seeding failed: %w", err)
	}

	log.Println("Seeding completed. All demo users have the password: parola123")
	return nil
}

// seedUsers creates count users, always including a deterministic demo
// account for manual testing.
func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("parola123"), bcrypt.DefaultCost)
	demo, err := s.factory.CreateUser(func(u *models.User) {
		u.Name = "Demo Kullanıcı"
		u.Email = "demo@example.com"
		u.Password = string(hashed)
		u.Bio = "Vitrin hesabı."
	})
	if err != nil {
		return nil, err
	}
	users = append(users, demo)

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("created %d users...", i)
		}
	}
	return users, nil
}

func (s *Seeder) seedBlogEngagement(users []*models.User, count int) error {
	r := s.factory.r
	for i := 0; i < count; i++ {
		post, err := s.factory.CreateBlogPost(users[r.Intn(len(users))])
		if err != nil {
			return err
		}

		for c := 0; c < r.Intn(6); c++ {
			if _, err := s.factory.CreateComment(users[r.Intn(len(users))], post); err != nil {
				return err
			}
		}

		// Like from a distinct subset so the unique index holds
		for _, idx := range r.Perm(len(users))[:r.Intn(len(users)/2+1)] {
			if err := s.factory.CreateLike(users[idx], post); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedFavorites(users []*models.User, listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	r := s.factory.r
	for _, user := range users {
		for _, idx := range r.Perm(len(listings))[:r.Intn(4)] {
			if err := s.factory.CreateFavorite(user, listings[idx]); err != nil {
				return err
			}
		}
	}
	return nil
}
