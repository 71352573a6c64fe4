package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the verified identity attached to the request context.
type AuthClaims struct {
	UID   string
	Email string
}

// TokenVerifier checks a raw bearer token and yields the verified subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*AuthClaims, error)
}

// FirebaseVerifier verifies Firebase ID tokens against the Admin SDK.
type FirebaseVerifier struct {
	client *firebaseauth.Client
}

func NewFirebaseVerifier(client *firebaseauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*AuthClaims, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	claims := &AuthClaims{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}

// HMACVerifier parses HS256 tokens signed with JWT_SECRET_KEY. It stands in
// for Firebase in development and tests, where minting real ID tokens is not
// practical.
type HMACVerifier struct{}

func (HMACVerifier) Verify(_ context.Context, tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET_KEY")), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, errors.New("uid claim missing")
	}
	authClaims := &AuthClaims{UID: uid}
	if email, ok := claims["email"].(string); ok {
		authClaims.Email = email
	}
	return authClaims, nil
}

// AccessTokenMiddleware rejects requests without a valid bearer token and
// stores the verified uid and email in the gin context.
func AccessTokenMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		c.Set("uid", claims.UID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// VerifyTokenUID compares the verified token uid with the uid query
// parameter, so a valid token cannot be used to act on someone else's scope.
func VerifyTokenUID() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("uid")
		if uid == "" || uid != c.Query("uid") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden Access"})
			return
		}
		c.Next()
	}
}
