package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"

	"doitto/services/helper"
	"doitto/services/share"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvatarFetcher loads the image behind an avatar URL.
type AvatarFetcher func(ctx context.Context, url string) (image.Image, error)

// ShareHandler builds share links and preview cards for helpers.
type ShareHandler struct {
	Helpers     helper.HelperService
	BaseURL     string
	SiteName    string
	FetchAvatar AvatarFetcher
}

func NewShareHandler(helpers helper.HelperService, baseURL, siteName string) *ShareHandler {
	return &ShareHandler{Helpers: helpers, BaseURL: baseURL, SiteName: siteName, FetchAvatar: share.FetchAvatar}
}

// ShareLinksHandler handles GET /api/helpers/:id/share.
func (h *ShareHandler) ShareLinksHandler(c *gin.Context) {
	found, ok := h.Helpers.GetByID(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
		return
	}
	c.JSON(http.StatusOK, share.Build(*found, h.BaseURL, h.SiteName))
}

// ShareCardHandler handles GET /api/helpers/:id/share-card.png. An avatar that
// cannot be fetched is left off the card.
func (h *ShareHandler) ShareCardHandler(c *gin.Context) {
	ctx := c.Request.Context()
	found, ok := h.Helpers.GetByID(ctx, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
		return
	}

	var avatar image.Image
	if found.Avatar != "" && h.FetchAvatar != nil {
		img, err := h.FetchAvatar(ctx, found.Avatar)
		if err != nil {
			getLogger(c).Warn("Rendering share card without avatar", zap.String("helperID", found.ID), zap.Error(err))
		} else {
			avatar = img
		}
	}

	var buf bytes.Buffer
	if err := share.RenderCard(&buf, *found, avatar); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to render share card", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", found.ID+"-share-card.png"))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
