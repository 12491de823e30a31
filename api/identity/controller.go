// Package identity serves registration and login of archive owners and
// guards protected routes.
package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerUser)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// registerUser handles user registration.
func (c *IdentityServer) registerUser(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.authService.Register(ctx, request.Username, request.Password)
	switch {
	case errors.Is(err, dmn.ErrInvalidUsername), errors.Is(err, dmn.ErrWeakPassword):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, dmn.ErrUsernameConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while registering user"})
		return
	}

	ctx.JSON(http.StatusCreated, &UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}

// login handles user login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(ctx, request.Username, request.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while signing in"})
		return
	}

	ctx.JSON(http.StatusOK, &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	})
}
