package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EmirArslaan/MusicMarketProject/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListing(t *testing.T, db *gorm.DB, userID uint, title string, price float64) models.Listing {
	t.Helper()
	listing := models.Listing{
		UserID:      userID,
		Title:       title,
		Description: "açıklama",
		Category:    "gitar",
		Brand:       "Fender",
		Condition:   models.ConditionGood,
		Price:       price,
		Location:    "İstanbul",
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&listing).Error)
	return listing
}

// multipartListing builds a create-listing form with the given image count.
func multipartListing(t *testing.T, fields map[string]string, imageCount int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i := 0; i < imageCount; i++ {
		fw, err := w.CreateFormFile("images", fmt.Sprintf("foto-%d.jpg", i))
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateListing(t *testing.T) {
	srv, app, db := newTestServer(t)
	_, token := createUser(t, srv, db, "Satıcı", "satici@example.com")

	body, contentType := multipartListing(t, map[string]string{
		"title":       "Gibson Les Paul",
		"description": "Temiz kullanıldı",
		"category":    "gitar",
		"brand":       "Gibson",
		"condition":   models.ConditionLightlyUse,
		"price":       "42000",
		"location":    "Ankara",
	}, 2)

	req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Equal(t, "Gibson Les Paul", out["title"])
	images, ok := out["images"].([]any)
	require.True(t, ok)
	assert.Len(t, images, 2)
}

func TestCreateListingRequiresImage(t *testing.T) {
	srv, app, db := newTestServer(t)
	_, token := createUser(t, srv, db, "Satıcı", "satici@example.com")

	body, contentType := multipartListing(t, map[string]string{
		"title":       "Gibson Les Paul",
		"description": "Temiz kullanıldı",
		"category":    "gitar",
		"brand":       "Gibson",
		"price":       "42000",
		"location":    "Ankara",
	}, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetListings(t *testing.T) {
	srv, _, db := newTestServer(t)
	user, _ := createUser(t, srv, db, "Satıcı", "satici@example.com")
	seedListing(t, db, user.ID, "Fender Stratocaster", 30000)
	seedListing(t, db, user.ID, "Yamaha Piyano", 90000)

	t.Run("returns pagination envelope", func(t *testing.T) {
		app := fiberAppFor(t, srv)
		resp := doJSON(t, app, http.MethodGet, "/api/listings", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		out := decodeBody(t, resp)
		assert.Equal(t, float64(1), out["page"])
		assert.Equal(t, float64(1), out["totalPages"])
		assert.Equal(t, float64(2), out["totalListings"])
		listings, ok := out["listings"].([]any)
		require.True(t, ok)
		assert.Len(t, listings, 2)
	})

	t.Run("keyword filter narrows results", func(t *testing.T) {
		app := fiberAppFor(t, srv)
		resp := doJSON(t, app, http.MethodGet, "/api/listings?keyword=piyano", "", nil)
		out := decodeBody(t, resp)
		assert.Equal(t, float64(1), out["totalListings"])
	})

	t.Run("invalid minPrice rejected", func(t *testing.T) {
		app := fiberAppFor(t, srv)
		resp := doJSON(t, app, http.MethodGet, "/api/listings?minPrice=abc", "", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

// fiberAppFor builds a fresh app for an existing server, for subtests that
// share seeded data.
func fiberAppFor(t *testing.T, srv *Server) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)
	return app
}

func TestGetListingBumpsViews(t *testing.T) {
	srv, app, db := newTestServer(t)
	user, _ := createUser(t, srv, db, "Satıcı", "satici@example.com")
	listing := seedListing(t, db, user.ID, "Korg Synth", 15000)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/listings/%d", listing.ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Listing
	require.NoError(t, db.First(&stored, listing.ID).Error)
	assert.Equal(t, uint(1), stored.Views)
}

func TestUpdateListingOwnership(t *testing.T) {
	srv, app, db := newTestServer(t)
	owner, _ := createUser(t, srv, db, "Sahip", "sahip@example.com")
	_, intruderToken := createUser(t, srv, db, "Davetsiz", "davetsiz@example.com")
	listing := seedListing(t, db, owner.ID, "Fender Jazz Bass", 25000)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/listings/%d", listing.ID), intruderToken, fiber.Map{
		"title": "ele geçirildi",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var stored models.Listing
	require.NoError(t, db.First(&stored, listing.ID).Error)
	assert.Equal(t, "Fender Jazz Bass", stored.Title, "entity unchanged")
}

func TestUpdateListingPatch(t *testing.T) {
	srv, app, db := newTestServer(t)
	owner, token := createUser(t, srv, db, "Sahip", "sahip@example.com")
	listing := seedListing(t, db, owner.ID, "Fender Jazz Bass", 25000)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/listings/%d", listing.ID), token, fiber.Map{
		"price":        22000,
		"is_available": false,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Equal(t, "Fender Jazz Bass", out["title"], "absent fields untouched")
	assert.Equal(t, float64(22000), out["price"])
	assert.Equal(t, false, out["is_available"])
}

func TestDeleteListing(t *testing.T) {
	srv, app, db := newTestServer(t)
	owner, token := createUser(t, srv, db, "Sahip", "sahip@example.com")
	listing := seedListing(t, db, owner.ID, "Fender Jazz Bass", 25000)

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/listings/%d", listing.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Where("id = ?", listing.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetMyListings(t *testing.T) {
	srv, app, db := newTestServer(t)
	owner, token := createUser(t, srv, db, "Sahip", "sahip@example.com")
	other, _ := createUser(t, srv, db, "Diğer", "diger@example.com")
	seedListing(t, db, owner.ID, "Benim İlanım", 100)
	seedListing(t, db, other.ID, "Başkasının İlanı", 200)

	resp := doJSON(t, app, http.MethodGet, "/api/listings/my-listings", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listings []models.Listing
	require.NoError(t, jsonDecode(resp, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Benim İlanım", listings[0].Title)
}
