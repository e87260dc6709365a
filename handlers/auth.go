package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/utils"
)

// AuthHandler issues and revokes the bearer credentials the task routes
// require. It is the boundary of the auth collaborator; nothing past it
// sees passwords or tokens.
type AuthHandler struct {
	DB   *pgxpool.Pool
	Gate *utils.SessionGate
}

func NewAuthHandler(db *pgxpool.Pool, gate *utils.SessionGate) *AuthHandler {
	return &AuthHandler{DB: db, Gate: gate}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := utils.ValidateEmail(creds.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if err := utils.ValidatePassword(creds.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if exists, err := utils.EmailInUse(creds.Email, h.DB); err == nil && exists {
		writeMessage(w, http.StatusConflict, "that account has already been created")
		return
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		log.Println("error hashing password", err)
		writeMessage(w, http.StatusInternalServerError, "registration failed")
		return
	}

	user, err := utils.CreateUser(h.DB, creds.Email, hash)
	if err != nil {
		if errors.Is(err, utils.ErrEmailInUse) {
			writeMessage(w, http.StatusConflict, "that account has already been created")
			return
		}
		log.Println("Error adding user:", err)
		writeMessage(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := h.Gate.Issue(r.Context(), user.ID.String())
	if err != nil {
		log.Println("Failed to store session:", err)
		writeMessage(w, http.StatusInternalServerError, "registration failed")
		return
	}

	log.Printf("Registered user %s from %s", user.Email, utils.GetIP(r))
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeMessage(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := utils.GetUserByEmail(h.DB, creds.Email)
	if err != nil || !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Printf("Login failed for %s from %s", creds.Email, utils.GetIP(r))
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Gate.Issue(r.Context(), user.ID.String())
	if err != nil {
		log.Println("Failed to store session:", err)
		writeMessage(w, http.StatusInternalServerError, "login failed")
		return
	}

	log.Printf("Login successful for user: %s", user.Email)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout. Runs behind RequireUser.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.BearerToken(r)
	if err := h.Gate.Revoke(r.Context(), token); err != nil {
		log.Println("Error revoking session:", err)
		writeMessage(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}

// Me handles GET /api/auth/me. Runs behind RequireUser.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := utils.GetUserByID(h.DB, UserID(r))
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid or expired session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
