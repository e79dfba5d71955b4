package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
)

func TestAuthService_Login(t *testing.T) {
	var gotBody map[string]any
	tp := newServiceServer(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			c.ShouldBindJSON(&gotBody)
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data": gin.H{
					"token": "tok-1",
					"user":  gin.H{"id": 1, "email": "aya@example.com", "role": "user"},
				},
			})
		})
	})
	auth := NewAuthService(tp)

	payload, err := auth.Login(context.Background(), dto.LoginRequest{
		Email:    "aya@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "aya@example.com", gotBody["email"])
	assert.Equal(t, "tok-1", payload.Token)
	require.NotNil(t, payload.User)
	assert.Equal(t, domain.RoleUser, payload.User.Role)
}

func TestAuthService_LoginValidatesBeforeSending(t *testing.T) {
	called := false
	tp := newServiceServer(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			called = true
			c.JSON(http.StatusOK, gin.H{"token": "tok-1"})
		})
	})
	auth := NewAuthService(tp)

	_, err := auth.Login(context.Background(), dto.LoginRequest{Email: "not-an-email", Password: "x"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.False(t, called)
}

func TestAuthService_LoginUnrecognizedBodyIsFormatError(t *testing.T) {
	tp := newServiceServer(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": 1}})
		})
	})
	auth := NewAuthService(tp)

	_, err := auth.Login(context.Background(), dto.LoginRequest{
		Email:    "aya@example.com",
		Password: "secret",
	})

	assert.True(t, domain.IsFormatError(err))
}

func TestAuthService_Register(t *testing.T) {
	tp := newServiceServer(t, func(r *gin.Engine) {
		r.POST("/auth/register", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{
				"token": "tok-new",
				"user":  gin.H{"id": 2, "name": "Omar", "role": "user"},
			})
		})
	})
	auth := NewAuthService(tp)

	payload, err := auth.Register(context.Background(), dto.RegisterRequest{
		Name:     "Omar",
		Email:    "omar@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-new", payload.Token)
}

func TestAuthService_Profile(t *testing.T) {
	tp := newServiceServer(t, func(r *gin.Engine) {
		r.GET("/auth/profile", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    gin.H{"user": gin.H{"id": 1, "email": "aya@example.com", "role": "admin"}},
			})
		})
	})
	auth := NewAuthService(tp)

	user, err := auth.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.True(t, user.IsAdmin())
}
