package middleware

import (
	"context"
	"net/http"
	"strings"

	"doitto/models"
	"doitto/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	userIDKey   = "userID"
	identityKey = "identity"
)

// TokenVerifier checks a Firebase ID token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware requires a valid Firebase ID token and stores the
// caller's uid and identity in the context.
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil || token == nil || token.UID == "" {
			utils.GetLogger().Warn("Rejected ID token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, token.UID)
		c.Set(identityKey, identityFromToken(token))
		c.Next()
	}
}

// CurrentUserID returns the uid set by FirebaseAuthMiddleware, or "".
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// CurrentIdentity returns the identity set by FirebaseAuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

func identityFromToken(token *auth.Token) models.Identity {
	claim := func(name string) string {
		s, _ := token.Claims[name].(string)
		return s
	}
	picture := claim("picture")
	return models.Identity{
		UID:         token.UID,
		DisplayName: claim("name"),
		Email:       claim("email"),
		AvatarURL:   picture,
		PhotoURL:    picture,
	}
}
