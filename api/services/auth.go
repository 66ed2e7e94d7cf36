package services

import (
	"net/http"
	"time"

	"github.com/homedash/homedash-services/internal/authn"
	"github.com/homedash/homedash-services/models"
	"github.com/rs/zerolog"
)

// SignupService registers a new user. Duplicate handles are rejected with a
// 409 and never create a second row.
func (svc *Service) SignupService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid signup payload")
		WriteMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		WriteMessage(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	user, err := svc.DB.CreateUser(req.Username, hash)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create user")
		writeStoreError(w, err)
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("User created successfully")
	WriteMessage(w, http.StatusCreated, "User created")
}

// LoginService authenticates a user and issues a bearer token. Handle-not-
// found and secret mismatch produce the same generic error so account
// existence is not disclosed.
func (svc *Service) LoginService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.Warn().Err(err).Msg("Invalid login payload")
		WriteMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := svc.DB.GetUserByUsername(req.Username)
	if err != nil || !authn.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("username", req.Username).Msg("Login rejected")
		WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := authn.Sign(user.ID, user.Username, svc.Config.Auth.Secret,
		time.Duration(svc.Config.Auth.TokenTTL))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sign token")
		WriteMessage(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	logger.Info().Int64("user_id", user.ID).Msg("Login successful")
	WriteResponse(w, http.StatusOK, models.LoginResponse{
		Message:  "Login successful",
		Token:    token,
		Username: user.Username,
	})
}

// CheckService confirms the presented token is valid and its user still
// exists.
func (svc *Service) CheckService(w http.ResponseWriter, r *http.Request) {

	logger := zerolog.Ctx(r.Context())

	claims, ok := claimsFrom(r)
	if !ok {
		logger.Warn().Msg("Unauthorized request: missing claims")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	if _, err := svc.DB.GetUserByID(claims.UserID); err != nil {
		// Token signature is fine but the user is gone
		logger.Warn().Int64("user_id", claims.UserID).Msg("Token references a deleted user")
		WriteResponse(w, http.StatusUnauthorized, nil)
		return
	}

	WriteResponse(w, http.StatusOK, models.CheckResponse{
		Message:  "Token is valid",
		Username: claims.Username,
	})
}
