package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/controller"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/model"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
	"github.com/Cup-Trail/cup-trail-sub000/internal/middleware"
)

type testStorage struct{}

func (testStorage) Upload(_ context.Context, _ []byte, path, _ string) (string, error) {
	return "https://cdn.example.com/" + path, nil
}

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	require.NoError(t, db.SeedCategories(testDB))

	shopRepo := repository.NewShopRepository(testDB)
	drinkRepo := repository.NewDrinkRepository(testDB)
	shopDrinkRepo := repository.NewShopDrinkRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)

	shopService := service.NewShopService(shopRepo)
	reviewService := service.NewReviewService(reviewRepo, drinkRepo, shopDrinkRepo, shopRepo, testStorage{})
	categoryService := service.NewCategoryService(categoryRepo, shopDrinkRepo)

	shopController := controller.NewShopController(shopService)
	reviewController := controller.NewReviewController(reviewService)
	categoryController := controller.NewCategoryController(categoryService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		shops := v1.Group("/shops")
		{
			shops.GET("", shopController.ListShops)
			shops.GET("/:id", shopController.GetShopByID)
			shops.GET("/:id/drinks", reviewController.GetShopDrinks)
			shops.POST("/resolve", shopController.ResolveShop)
			shops.POST("/:id/reviews", authMiddleware.OptionalAuthenticate(), reviewController.SubmitReview)
		}
		shopDrinks := v1.Group("/shop-drinks")
		{
			shopDrinks.GET("/:id/reviews", reviewController.GetReviews)
			shopDrinks.PUT("/:id/categories", categoryController.AssignCategories)
		}
		v1.GET("/categories/suggest", categoryController.SuggestCategories)
	}

	return &TestServer{Router: router, DB: testDB}
}

func (s *TestServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestIntegration_ReviewFlow(t *testing.T) {
	server := setupIntegrationTest(t)

	// Resolve the shop twice with messy variants of the same place.
	w := server.do(t, http.MethodPost, "/api/v1/shops/resolve", gin.H{
		"name":    "Café Lúna",
		"address": "123 Main St",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resolved struct {
		Shop model.Shop `json:"shop"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	shopID := resolved.Shop.ID
	require.NotZero(t, shopID)

	w = server.do(t, http.MethodPost, "/api/v1/shops/resolve", gin.H{
		"name":    "cafe luna!",
		"address": "123 MAIN ST.",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.Equal(t, shopID, resolved.Shop.ID)

	// Submit two reviews for the same drink.
	for _, rating := range []float64{4.0, 5.0} {
		w = server.do(t, http.MethodPost, fmt.Sprintf("/api/v1/shops/%d/reviews", shopID), gin.H{
			"drink_name": "Taro Milk Tea",
			"rating":     rating,
			"comment":    "lovely drink",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// The shop menu shows one association with the recomputed average.
	w = server.do(t, http.MethodGet, fmt.Sprintf("/api/v1/shops/%d/drinks", shopID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var menu struct {
		ShopDrinks []model.ShopDrink `json:"shop_drinks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu.ShopDrinks, 1)
	shopDrink := menu.ShopDrinks[0]
	assert.Equal(t, "Taro Milk Tea", shopDrink.Drink.Name)
	assert.InDelta(t, 4.5, shopDrink.AvgRating, 0.0001)

	// Reviews list for the association.
	w = server.do(t, http.MethodGet, fmt.Sprintf("/api/v1/shop-drinks/%d/reviews", shopDrink.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reviews struct {
		Reviews []model.Review `json:"reviews"`
		Total   int64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.EqualValues(t, 2, reviews.Total)
	assert.Len(t, reviews.Reviews, 2)

	// Tag the association using the suggestion endpoint's output.
	w = server.do(t, http.MethodGet, "/api/v1/categories/suggest?drink_name=Taro+Milk+Tea", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var suggestion struct {
		Slugs []string `json:"slugs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestion))
	assert.Equal(t, []string{"milk-tea", "tea"}, suggestion.Slugs)

	w = server.do(t, http.MethodPut, fmt.Sprintf("/api/v1/shop-drinks/%d/categories", shopDrink.ID), gin.H{
		"slugs": suggestion.Slugs,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var assigned struct {
		Categories []model.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	assert.Len(t, assigned.Categories, 2)
}

func TestIntegration_InvalidReviewRejected(t *testing.T) {
	server := setupIntegrationTest(t)

	w := server.do(t, http.MethodPost, "/api/v1/shops/resolve", gin.H{
		"name":    "Boba & Co",
		"address": "49 2nd Ave",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resolved struct {
		Shop model.Shop `json:"shop"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))

	w = server.do(t, http.MethodPost, fmt.Sprintf("/api/v1/shops/%d/reviews", resolved.Shop.ID), gin.H{
		"drink_name": "Taro Milk Tea",
		"rating":     5.5,
		"comment":    "too good",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The rejected submission left no review behind.
	var count int64
	require.NoError(t, server.DB.Model(&model.Review{}).Count(&count).Error)
	assert.Zero(t, count)

	// Unknown shop is a 404.
	w = server.do(t, http.MethodPost, "/api/v1/shops/9999/reviews", gin.H{
		"drink_name": "Taro Milk Tea",
		"rating":     4,
		"comment":    "good",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
