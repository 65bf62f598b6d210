package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/models"
)

const influencerTokenValidity = 7 * 24 * time.Hour

// GenerateInfluencerToken issues the influencer session token used by
// the partner dashboard. Valid for 7 days.
func GenerateInfluencerToken(influencer *models.Influencer) (string, error) {
	claims := jwt.MapClaims{
		"influencer_id": influencer.ID,
		"coupon_code":   influencer.CouponCode,
		"name":          influencer.Name,
		"exp":           time.Now().Add(influencerTokenValidity).Unix(),
		"iat":           time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.InfluencerJWTSecret))
}

// ValidateInfluencerToken parses and verifies an influencer token.
func ValidateInfluencerToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.InfluencerJWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// InfluencerAuthMiddleware requires a valid influencer token and stores
// the influencer id and coupon code on the request context.
func InfluencerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := ParseBearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		claims, err := ValidateInfluencerToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		id, ok := claims["influencer_id"].(float64)
		if !ok || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("influencer_id", uint(id))
		if code, ok := claims["coupon_code"].(string); ok {
			c.Set("coupon_code", code)
		}
		c.Next()
	}
}

// ContextInfluencerID returns the influencer id set by InfluencerAuthMiddleware.
func ContextInfluencerID(c *gin.Context) uint {
	id, _ := c.Get("influencer_id")
	v, _ := id.(uint)
	return v
}
