package handlers

import (
	"errors"
	"net/http"

	"doitto/middleware"
	"doitto/models"
	"doitto/services/profile"
	"doitto/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the signed-in user's profile.
type ProfileHandler struct {
	Profiles profile.ProfileService
}

func NewProfileHandler(profiles profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// MeHandler handles GET /api/me: the auth identity plus the stored profile, if any.
func (h *ProfileHandler) MeHandler(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)
	resp := gin.H{"identity": identity}
	if p, ok := h.Profiles.GetProfile(c.Request.Context(), identity.UID); ok {
		resp["profile"] = p
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler handles GET /api/profile. A missing profile is reported
// as exists=false rather than as an error.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	p, ok := h.Profiles.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	c.JSON(http.StatusOK, gin.H{"exists": ok, "profile": p})
}

type saveProfileRequest struct {
	Address     models.Address `json:"address"`
	PhoneNumber string         `json:"phoneNumber"`
}

// SaveProfileHandler handles PUT /api/profile. Only the fields sent are written.
func (h *ProfileHandler) SaveProfileHandler(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uid := middleware.CurrentUserID(c)
	err := h.Profiles.SaveProfile(ctx, uid, models.UserProfile{Address: req.Address, PhoneNumber: req.PhoneNumber})
	var fieldErrs profile.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		utils.JSONFieldErrors(c, "invalid profile", fieldErrs)
		return
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to save profile", err.Error())
		return
	}

	p, _ := h.Profiles.GetProfile(ctx, uid)
	c.JSON(http.StatusOK, gin.H{"exists": p != nil, "profile": p})
}
