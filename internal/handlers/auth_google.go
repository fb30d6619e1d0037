package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/models"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/utils"
)

// GoogleOAuthHandler signs clients in with their Google account. Accounts
// are created on first login with the default role.
type GoogleOAuthHandler struct {
	DB              *gorm.DB
	JWTSecret       string
	Expires         int
	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string
}

func (h *GoogleOAuthHandler) oauthCfg() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleSecret,
		RedirectURL:  h.GoogleRedirect,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

func randomState(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func (h *GoogleOAuthHandler) GoogleStart(c *fiber.Ctx) error {
	st := randomState(32)

	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    st,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   10 * 60,
	})

	authURL := h.oauthCfg().AuthCodeURL(st, oauth2.AccessTypeOffline)
	return c.Redirect(authURL, http.StatusTemporaryRedirect)
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func (h *GoogleOAuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return badRequest(c, "Missing code/state")
	}

	if st := c.Cookies("oauth_state"); st == "" || st != state {
		return badRequest(c, "Invalid state")
	}

	tok, err := h.oauthCfg().Exchange(c.Context(), code)
	if err != nil {
		return badRequest(c, "Failed to exchange code")
	}

	client := h.oauthCfg().Client(c.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return badRequest(c, "Failed to fetch userinfo")
	}
	defer resp.Body.Close()

	var gu googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return badRequest(c, "Failed to decode userinfo")
	}

	email := strings.ToLower(strings.TrimSpace(gu.Email))
	if email == "" || !gu.VerifiedEmail {
		return badRequest(c, "Google account email not verified")
	}

	var u models.User
	err = h.DB.Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		// First login: provision a client account with an unusable password.
		hash, herr := utils.HashPassword(randomState(24))
		if herr != nil {
			return serverError(c)
		}
		u = models.User{
			Name:     gu.Name,
			Email:    email,
			Password: hash,
			Role:     models.RoleClient,
		}
		if cerr := h.DB.Create(&u).Error; cerr != nil {
			return serverError(c)
		}
	} else if err != nil {
		return serverError(c)
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return serverError(c)
	}

	redirect := h.FrontendBaseURL + "/auth/callback?token=" + url.QueryEscape(token)
	return c.Redirect(redirect, http.StatusTemporaryRedirect)
}
