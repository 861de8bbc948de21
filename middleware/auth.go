package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"api-bloommarbella-go/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextClaims = "claims"

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "bloommarbella-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken issues a bearer token carrying the user's role claim.
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.Email,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// Decision is the typed result of an authorization check.
type Decision struct {
	Allow  bool
	Reason string
}

// Authorize is the single capability check used by every protected route.
// requiredRole "" means any authenticated user.
func Authorize(claims *Claims, requiredRole string) Decision {
	if claims == nil {
		return Decision{Allow: false, Reason: "no session"}
	}
	if requiredRole == "" || claims.Role == requiredRole {
		return Decision{Allow: true}
	}
	return Decision{Allow: false, Reason: "role " + claims.Role + " lacks " + requiredRole}
}

// ClaimsFrom returns the claims set by AuthRequired/OptionalAuth, nil for
// anonymous requests.
func ClaimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// ViewerRole is the pricing role for the current request; anonymous viewers
// price as customers.
func ViewerRole(c *gin.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.Role
	}
	return models.RoleCustomer
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		claims, err := parseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// OptionalAuth parses a token when present so public pages can price per role,
// but lets anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := parseToken(token); err == nil {
				c.Set(ContextClaims, claims)
			}
		}
		c.Next()
	}
}

// RequireRole runs after AuthRequired and enforces one role via Authorize.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := Authorize(ClaimsFrom(c), role)
		if !decision.Allow {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
