package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Accounts *services.AccountService
}

func setSID(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	pass := c.FormValue("password")

	// A fresh session id is bound on every successful login; a cookie
	// that arrived with the request is never promoted to an
	// authenticated session.
	sid := uuid.NewString()
	_, err := h.Auth.Login(sid, username, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid username or password"})
	}
	if old := c.Cookies("sid"); old != "" && old != sid {
		_ = h.Auth.Logout(old)
	}
	setSID(c, sid)

	applog.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

// Register creates the account and logs the new user in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	in := services.UserInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	u, err := h.Accounts.Register(actorFrom(c), in)
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": ve.Error()})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).Render("register", fiber.Map{"Err": "Username already taken"})
		}
		applog.Security(c, "auth.register.fail", map[string]any{"username": in.Username})
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{"Err": "Could not create account"})
	}
	sid := uuid.NewString()
	if _, err := h.Auth.Login(sid, u.Username, in.Password); err != nil {
		return c.Redirect("/login")
	}
	setSID(c, sid)
	applog.Audit(c, "auth.register.success", map[string]any{"user_id": u.ID})
	return c.Redirect("/")
}
