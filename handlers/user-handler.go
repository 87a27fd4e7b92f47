package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ManjeetSingh-02/project-management-tool/services"
	"github.com/ManjeetSingh-02/project-management-tool/utils"
)

type UserHandler struct {
	UserService  *services.UserService
	CookieSecure bool
}

func NewUserHandler(userService *services.UserService, cookieSecure bool) *UserHandler {
	return &UserHandler{UserService: userService, CookieSecure: cookieSecure}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=13"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Fullname string `json:"fullname" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,strongpassword"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strongpassword"`
}

func (h *UserHandler) setSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.CookieSecure,
		MaxAge:   int(h.UserService.JWTService.AccessExpiry / time.Second),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.CookieSecure,
		MaxAge:   int(h.UserService.JWTService.RefreshExpiry / time.Second),
	})
}

func (h *UserHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   h.CookieSecure,
			MaxAge:   -1,
		})
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.UserService.RegisterUser(r.Context(), req.Username, req.Email, req.Fullname, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, "User registered successfully", nil)
}

func (h *UserHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.UserService.VerifyAccount(r.Context(), token); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Email verified successfully", nil)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	_, accessToken, refreshToken, err := h.UserService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.setSessionCookies(w, accessToken, refreshToken)
	utils.WriteJSON(w, http.StatusOK, "Login Successful", nil)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.UserService.LogoutUser(r.Context(), actor.ID); err != nil {
		utils.WriteError(w, err)
		return
	}

	h.clearSessionCookies(w)
	utils.WriteJSON(w, http.StatusOK, "Logout Successful", nil)
}

func (h *UserHandler) ResendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.ResendVerificationEmail(r.Context(), req.Email); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Verification Mail sent successfully", nil)
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.ForgotPassword(r.Context(), req.Email); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Password reset mail sent successfully", nil)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req resetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.ResetPassword(r.Context(), token, req.NewPassword); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Password reset successfully", nil)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), actor.ID, req.OldPassword, req.NewPassword); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), actor.ID.Hex())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, "User fetched successfully", map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"fullname": user.Fullname,
		"avatar":   user.Avatar,
	})
}

// RefreshAccessToken rotates the session from the refreshToken cookie.
func (h *UserHandler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refreshToken")
	if err != nil || cookie.Value == "" {
		utils.WriteError(w, utils.NewAuthenticationError("Unauthorized"))
		return
	}

	_, accessToken, refreshToken, err := h.UserService.RefreshSession(r.Context(), cookie.Value)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	h.setSessionCookies(w, accessToken, refreshToken)
	utils.WriteJSON(w, http.StatusOK, "Access Token refreshed successfully", nil)
}
