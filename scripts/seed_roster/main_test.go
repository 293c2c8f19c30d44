package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/pkg/client"
)

func newSeedServer(t *testing.T, signups *int, existing bool) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/signup", func(c *gin.Context) {
		*signups++
		if existing {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"code": "DUPLICATE_USER", "message": "user already exists"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "user created", "userId": "u1"})
	})
	r.POST("/api/auth/signin", func(c *gin.Context) {
		c.SetCookie("session_token", "tok123", 3600, "/", "", false, true)
		c.JSON(http.StatusOK, models.UserInfo{ID: "u1", Email: "seed@example.com", Name: "Seed Account"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureAccount(t *testing.T) {
	t.Run("fresh account", func(t *testing.T) {
		signups := 0
		srv := newSeedServer(t, &signups, false)
		c, err := client.New(srv.URL)
		require.NoError(t, err)

		require.NoError(t, ensureAccount(context.Background(), c, "seed@example.com", "seed-password", "Seed Account"))
		assert.Equal(t, 1, signups)
	})

	t.Run("existing account is tolerated", func(t *testing.T) {
		signups := 0
		srv := newSeedServer(t, &signups, true)
		c, err := client.New(srv.URL)
		require.NoError(t, err)

		require.NoError(t, ensureAccount(context.Background(), c, "seed@example.com", "seed-password", "Seed Account"))
	})

	t.Run("other signup failures propagate", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/api/auth/signup", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"})
		})
		srv := httptest.NewServer(r)
		t.Cleanup(srv.Close)

		c, err := client.New(srv.URL)
		require.NoError(t, err)
		require.Error(t, ensureAccount(context.Background(), c, "seed@example.com", "seed-password", "Seed Account"))
	})
}

func TestLoadRosterDefaultFile(t *testing.T) {
	roster, err := loadRoster("roster.json")
	require.NoError(t, err)
	require.NotEmpty(t, roster)
	for _, s := range roster {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.RegistrationNumber)
	}
}
