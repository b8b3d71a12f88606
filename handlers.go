package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"linko/models"
	"linko/pkg/profile"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	accessTokenTTL    = 24 * time.Hour
	refreshedTokenTTL = 15 * time.Minute
	refreshTokenTTL   = 30 * 24 * time.Hour
)

func setupRoutes(r *gin.Engine) {
	r.POST("/api/signup", signupHandler)
	r.POST("/api/login", loginHandler)
	r.POST("/api/refresh", refreshHandler)
	r.POST("/api/revoke", revokeRefreshHandler)
	r.GET("/api/profile", missingUsernameHandler)
	r.GET("/api/profile/:username", publicProfileHandler)
	me := r.Group("/api/me")
	me.Use(jwtAuthMiddleware())
	me.GET("", meHandler)
	me.GET("/profile", myProfileHandler)
	me.PATCH("/profile", updateMyProfileHandler)
	me.GET("/dashboard", dashboardHandler)
	me.PUT("/dashboard", saveDashboardHandler)
}

// statusFor maps taxonomy codes onto HTTP statuses.
func statusFor(e *apiError) int {
	switch e.Code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeUsernameTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeAPIError(c *gin.Context, e *apiError) {
	c.JSON(statusFor(e), gin.H{"error": e})
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("username", username)
		c.Next()
	}
}

// getUserFromContext resolves the authenticated account from the username
// set by jwtAuthMiddleware. This is the request-scoped identity step every
// owner-only handler goes through.
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("email = ?", profile.SyntheticEmail(uname)).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func meHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": profile.DeriveUsername(user.Email),
		"name":     user.DisplayName,
	})
}

func signupHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		writeAPIError(c, errBadRequest("Invalid payload. Expected { username, password }"))
		return
	}
	user, aerr := Signup(req.Username, req.Password, req.Name)
	if aerr != nil {
		writeAPIError(c, aerr)
		return
	}
	session, err := issueSession(user, accessTokenTTL)
	if err != nil {
		log.Printf("signup: session issue failed: %v", err)
		writeAPIError(c, errUnknown())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"session": session,
		"user": gin.H{
			"id":       user.ID,
			"username": profile.DeriveUsername(user.Email),
			"name":     user.DisplayName,
		},
	}})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		writeAPIError(c, errBadRequest("Invalid payload. Expected { username, password }"))
		return
	}
	user, aerr := Login(req.Username, req.Password)
	if aerr != nil {
		writeAPIError(c, aerr)
		return
	}
	session, err := issueSession(user, accessTokenTTL)
	if err != nil {
		log.Printf("login: session issue failed: %v", err)
		writeAPIError(c, errUnknown())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"session": session}})
}

// issueSession mints an access/refresh token pair. Tokens are opaque to
// callers; the refresh token is stored hashed.
func issueSession(user *models.User, ttl time.Duration) (gin.H, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": profile.DeriveUsername(user.Email),
		"exp":      time.Now().Add(ttl).Unix(),
	})
	accessToken, err := token.SignedString(jwtSecret)
	if err != nil {
		return nil, err
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"expires_in":    int(ttl / time.Second),
	}, nil
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(refreshTokenTTL)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new session and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	// rotate: revoke the old token before minting the replacement
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	session, err := issueSession(&user, refreshedTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"session": session}})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func missingUsernameHandler(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
}

// publicProfileHandler serves the read-only, username-keyed lookup. Output
// is always the normalized shape, never raw storage fields.
func publicProfileHandler(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}
	p, err := findProfileByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("profile lookup %q: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, profile.Normalize(p.Bio, p.Links, p.SocialLinks, profile.DefaultPublicBio))
}

// myProfileHandler is the owner's editor load: creates the row on first
// visit, then returns the normalized view with the editor bio fallback.
func myProfileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	p, err := ensureProfile(user.ID, profile.DeriveUsername(user.Email))
	if err != nil {
		if _, ok := err.(*apiError); !ok {
			log.Printf("ensure profile for user %d: %v", user.ID, err)
		}
		writeAPIError(c, asAPIError(err))
		return
	}
	view := profile.Normalize(p.Bio, p.Links, p.SocialLinks, profile.DefaultEditorBio)
	c.JSON(http.StatusOK, gin.H{
		"username":    p.Username,
		"bio":         view.Bio,
		"links":       view.Links,
		"socialLinks": view.SocialLinks,
	})
}

// updateMyProfileHandler merges the provided fields onto the stored row.
// Omitted fields stay untouched; the caller never resends unchanged state.
func updateMyProfileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Bio         *string               `json:"bio"`
		Links       *[]profile.Link       `json:"links"`
		SocialLinks *[]profile.SocialLink `json:"socialLinks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Links != nil {
		base := time.Now()
		for i := range *req.Links {
			l := &(*req.Links)[i]
			l.Title = strings.TrimSpace(l.Title)
			l.URL = strings.TrimSpace(l.URL)
			if l.Title == "" || l.URL == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "link title and url are required"})
				return
			}
			if l.ID == "" {
				l.ID = profile.NewLinkID(base.Add(time.Duration(i) * time.Millisecond))
			}
		}
	}
	if req.SocialLinks != nil {
		for i := range *req.SocialLinks {
			s := &(*req.SocialLinks)[i]
			s.URL = strings.TrimSpace(s.URL)
			if !profile.KnownPlatform(s.Platform) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform: " + s.Platform})
				return
			}
			if s.URL == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "social link url is required"})
				return
			}
		}
	}
	if _, err := ensureProfile(user.ID, profile.DeriveUsername(user.Email)); err != nil {
		if _, ok := err.(*apiError); !ok {
			log.Printf("ensure profile for user %d: %v", user.ID, err)
		}
		writeAPIError(c, asAPIError(err))
		return
	}
	p, err := upsertProfile(user.ID, profilePatch{Bio: req.Bio, Links: req.Links, SocialLinks: req.SocialLinks})
	if err != nil {
		log.Printf("profile upsert for user %d: %v", user.ID, err)
		writeAPIError(c, errUnknown())
		return
	}
	view := profile.Normalize(p.Bio, p.Links, p.SocialLinks, profile.DefaultEditorBio)
	c.JSON(http.StatusOK, gin.H{
		"username":    p.Username,
		"bio":         view.Bio,
		"links":       view.Links,
		"socialLinks": view.SocialLinks,
	})
}

// dashboardHandler serves the legacy metadata mirror. It can lag behind the
// profiles table; it is a cache, not the source of truth.
func dashboardHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var meta struct {
		Bio   string   `json:"bio"`
		Links []string `json:"links"`
	}
	if len(user.Metadata) > 0 {
		_ = json.Unmarshal(user.Metadata, &meta)
	}
	if meta.Links == nil {
		meta.Links = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"username": profile.DeriveUsername(user.Email),
		"bio":      meta.Bio,
		"links":    meta.Links,
	})
}

func saveDashboardHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Bio   string   `json:"bio"`
		Links []string `json:"links"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Links == nil {
		req.Links = []string{}
	}
	raw, err := json.Marshal(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("metadata", models.JSON(raw)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}
