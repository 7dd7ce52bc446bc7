package middleware

import (
	"net/http/httptest"
	"testing"

	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"
	"go-estoque-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func buildTestApp(t *testing.T) (*fiber.App, *model.User) {
	t.Helper()

	dsn := "file:mw_" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	user := &model.User{Email: "user@example.com", FullName: "Test User", IsActive: true}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, db.Create(user).Error)

	userRepo := repository.NewUserRepo(db)

	app := fiber.New()
	app.Get("/protected", RequireAuth(userRepo), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    c.Locals("user_id"),
			"user_email": c.Locals("user_email"),
		})
	})
	return app, user
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthBadFormat(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRequireAuthValidToken(t *testing.T) {
	app, user := buildTestApp(t)

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireAuthUnknownUser(t *testing.T) {
	app, _ := buildTestApp(t)

	// Token signed for a user that does not exist in this database.
	token, err := jwt.GenerateToken(uuid.New(), "ghost@example.com", "Ghost")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
