package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atelier/internal/models"
)

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	s := h.session(c)
	if h.currentUser(s) != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "auth/login.html", gin.H{
		"title": "Log in",
		"next":  c.Query("next"),
	})
}

// HandleLogin authenticates the submitted credentials and starts a
// session. Deactivated accounts are rejected with the same care as a
// wrong password.
func (h *Handler) HandleLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		h.addFlash(c, "error", "Please enter your username and password.")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil || !user.CheckPassword(password) {
		h.addFlash(c, "error", "Invalid username or password.")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}
	if !user.IsActive {
		h.addFlash(c, "error", "Your account is deactivated. Contact the administrator.")
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return
	}

	s := h.session(c)
	s.Values["user_id"] = user.ID
	h.saveSession(c, s)

	h.addFlash(c, "success", "Welcome back, "+user.FullName()+"!")
	c.Redirect(http.StatusSeeOther, safeNext(c.PostForm("next")))
}

// safeNext only allows local redirect targets, never absolute or
// protocol-relative URLs.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	s := h.session(c)
	if h.currentUser(s) != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "auth/register.html", gin.H{"title": "Create account"})
}

// HandleRegister creates a new account after validating uniqueness and
// password rules, then logs the user straight in.
func (h *Handler) HandleRegister(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	redirectBack := func(message string) {
		h.addFlash(c, "error", message)
		c.Redirect(http.StatusSeeOther, "/auth/register")
	}

	switch {
	case username == "" || email == "" || password == "":
		redirectBack("Please fill in all required fields.")
		return
	case !emailPattern.MatchString(email):
		redirectBack("Please enter a valid email address.")
		return
	case len(password) < 6:
		redirectBack("Password must be at least 6 characters long.")
		return
	case password != confirm:
		redirectBack("Passwords do not match.")
		return
	}

	if _, err := h.db.GetUserByUsername(username); err == nil {
		redirectBack("This username is already taken.")
		return
	}
	if _, err := h.db.GetUserByEmail(email); err == nil {
		redirectBack("An account with this email already exists.")
		return
	}

	user := models.User{
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if err := user.SetPassword(password); err != nil {
		h.serverError(c, err)
		return
	}
	if err := h.db.CreateUser(&user); err != nil {
		h.serverError(c, err)
		return
	}

	s := h.session(c)
	s.Values["user_id"] = user.ID
	h.saveSession(c, s)

	h.addFlash(c, "success", "Welcome, "+user.FullName()+"! Your account is ready.")
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the session but keeps nothing else from it either.
func (h *Handler) Logout(c *gin.Context) {
	s := h.session(c)
	delete(s.Values, "user_id")
	delete(s.Values, "cart")
	h.saveSession(c, s)

	h.addFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/")
}

// ProfilePage shows the logged-in user's account details.
func (h *Handler) ProfilePage(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	h.render(c, http.StatusOK, "auth/profile.html", gin.H{
		"title":   "My profile",
		"profile": user,
	})
}

// EditProfilePage renders the profile edit form.
func (h *Handler) EditProfilePage(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	h.render(c, http.StatusOK, "auth/edit_profile.html", gin.H{
		"title":   "Edit profile",
		"profile": user,
	})
}

// HandleEditProfile updates name and email, and optionally the
// password when the current one checks out.
func (h *Handler) HandleEditProfile(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	email := strings.TrimSpace(c.PostForm("email"))
	if email != "" && email != user.Email {
		if !emailPattern.MatchString(email) {
			h.addFlash(c, "error", "Please enter a valid email address.")
			c.Redirect(http.StatusSeeOther, "/auth/profile/edit")
			return
		}
		if _, err := h.db.GetUserByEmail(email); err == nil {
			h.addFlash(c, "error", "An account with this email already exists.")
			c.Redirect(http.StatusSeeOther, "/auth/profile/edit")
			return
		}
		user.Email = email
	}
	user.FirstName = strings.TrimSpace(c.PostForm("first_name"))
	user.LastName = strings.TrimSpace(c.PostForm("last_name"))

	if newPassword := c.PostForm("new_password"); newPassword != "" {
		if !user.CheckPassword(c.PostForm("current_password")) {
			h.addFlash(c, "error", "Current password is incorrect.")
			c.Redirect(http.StatusSeeOther, "/auth/profile/edit")
			return
		}
		if len(newPassword) < 6 {
			h.addFlash(c, "error", "Password must be at least 6 characters long.")
			c.Redirect(http.StatusSeeOther, "/auth/profile/edit")
			return
		}
		if err := user.SetPassword(newPassword); err != nil {
			h.serverError(c, err)
			return
		}
	}

	if err := h.db.UpdateUser(user); err != nil {
		h.serverError(c, err)
		return
	}
	h.addFlash(c, "success", "Profile updated.")
	c.Redirect(http.StatusSeeOther, "/auth/profile")
}

// AccountOrdersPage lists the logged-in user's orders.
func (h *Handler) AccountOrdersPage(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	orders, err := h.db.GetOrdersByUserID(user.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.render(c, http.StatusOK, "auth/my_orders.html", gin.H{
		"title":  "My orders",
		"orders": orders,
	})
}
