package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/config"
	"github.com/propspace/propspace-backend/internal/database"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateModels(db))
	return db
}

// newAdminApp mounts AdminRequired behind a stub auth layer and returns
// the role the handler ultimately observes.
func newAdminApp(db *gorm.DB, cfg *config.Config, sub, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": sub, "role": role}})
		return c.Next()
	})
	app.Get("/admin", AdminRequired(db, cfg), func(c *fiber.Ctx) error {
		act, err := actor.FromContext(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(act.Role)
	})
	return app
}

func TestAdminRequiredStoredRolePromotesActor(t *testing.T) {
	db := setupDB(t)
	user := models.User{ID: identity.NewAccountID(), Email: "stored-admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&user).Error)

	// The externally minted token only claims "user".
	app := newAdminApp(db, &config.Config{}, user.ID.String(), models.RoleUser)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, string(body))
}

func TestAdminRequiredAllowlistPromotesActor(t *testing.T) {
	db := setupDB(t)
	user := models.User{ID: identity.NewAccountID(), Email: "listed@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	cfg := &config.Config{AdminUserIDs: user.ID.String()}
	app := newAdminApp(db, cfg, user.ID.String(), models.RoleUser)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, string(body))
}

func TestAdminRequiredTokenHeaderPromotesActor(t *testing.T) {
	db := setupDB(t)
	user := models.User{ID: identity.NewAccountID(), Email: "ops@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	cfg := &config.Config{AdminToken: "ops-secret"}
	app := newAdminApp(db, cfg, user.ID.String(), models.RoleUser)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Admin-Token", "ops-secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, string(body))
}

func TestAdminRequiredRejectsOrdinaryUser(t *testing.T) {
	db := setupDB(t)
	user := models.User{ID: identity.NewAccountID(), Email: "user@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	app := newAdminApp(db, &config.Config{}, user.ID.String(), models.RoleUser)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
