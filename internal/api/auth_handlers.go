package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/trogers1052/finance-tracker/internal/apperr"
	"github.com/trogers1052/finance-tracker/internal/auth"
	"github.com/trogers1052/finance-tracker/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err, "Registration failed")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(user); err != nil {
		if apperr.IsDuplicate(err) {
			respondMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		respondError(w, err, "Registration failed")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, err, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		// Same response for unknown email and wrong password
		respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(w, err, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.db.GetUserByID(userID(r))
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user.Summary()})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.db.UpdateUserProfile(userID(r), req.Name, req.Avatar)
	if err != nil {
		respondError(w, err, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user.Summary(),
	})
}
