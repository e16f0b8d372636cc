package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/cart"
	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth     *AuthHandler
	Products *ProductHandler
	Taxonomy *TaxonomyHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Wishlist *WishlistHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	jwtSecret := []byte("test-secret")
	refreshSecret := []byte("test-refresh-secret")

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,

		Auth:     &AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
		Products: &ProductHandler{DB: db},
		Taxonomy: &TaxonomyHandler{DB: db},
		Cart:     &CartHandler{DB: db, Svc: &cart.Service{DB: db}},
		Orders:   &OrderHandler{DB: db},
		Wishlist: &WishlistHandler{DB: db},
	}
}

// doJSONRequest builds an echo context around a JSON request. A non-zero
// userID simulates the token middleware having authenticated that user.
func (env *testEnv) doJSONRequest(method, path string, body any, userID uint) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return rec, c
}

func (env *testEnv) createProduct(name, price string) models.Product {
	env.T.Helper()
	p := models.Product{Name: name, Price: dec(price), IsAvailable: true}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}
