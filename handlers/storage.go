package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"doitto/config"
	"doitto/middleware"
	"doitto/services/helper"
	"doitto/services/profile"
	"doitto/services/storage"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImageBytes caps avatar and banner uploads.
const maxImageBytes = 10 << 20

// ImageCleanup schedules deletion of an image that has been replaced.
type ImageCleanup interface {
	EnqueueImageCleanup(ctx context.Context, url, folder string) error
}

// StorageHandler uploads helper and profile images and records their URLs.
// Cleanup may be nil, in which case replaced images are kept.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Helpers    helper.HelperService
	Profiles   profile.ProfileService
	Cleanup    ImageCleanup
}

func NewStorageHandler(svc storage.StorageService, helpers helper.HelperService, profiles profile.ProfileService, cleanup ImageCleanup) *StorageHandler {
	return &StorageHandler{StorageSvc: svc, Helpers: helpers, Profiles: profiles, Cleanup: cleanup}
}

// imageFolders maps an image kind to its storage folder.
var imageFolders = map[string]string{
	"avatar": config.AvatarsFolder,
	"banner": config.BannersFolder,
}

// UploadHelperImageHandler handles POST /api/helpers/:id/images/:kind with a
// multipart "file" field. kind is avatar or banner.
func (h *StorageHandler) UploadHelperImageHandler(c *gin.Context) {
	kind := strings.ToLower(c.Param("kind"))
	folder, ok := imageFolders[kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": helper.ErrInvalidImageKind.Error()})
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	existing, found := h.Helpers.GetByID(ctx, id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "helper not found"})
		return
	}
	previous := existing.Avatar
	if kind == "banner" {
		previous = existing.Banner
	}

	url, err := h.upload(c, folder)
	if err != nil {
		return
	}
	if err := h.Helpers.SetImage(ctx, id, kind, url); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save image URL", err.Error())
		return
	}
	h.scheduleCleanup(c, previous, url, folder)
	c.JSON(http.StatusOK, gin.H{"url": url, "kind": kind})
}

// UploadProfileBannerHandler handles POST /api/profile/banner.
func (h *StorageHandler) UploadProfileBannerHandler(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.CurrentUserID(c)
	var previous string
	if p, ok := h.Profiles.GetProfile(ctx, uid); ok {
		previous = p.BannerURL
	}

	url, err := h.upload(c, config.BannersFolder)
	if err != nil {
		return
	}
	if err := h.Profiles.SetBanner(ctx, uid, url); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save banner URL", err.Error())
		return
	}
	h.scheduleCleanup(c, previous, url, config.BannersFolder)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// scheduleCleanup queues the replaced image for deletion when storage issued
// it. Failures are logged and the request still succeeds.
func (h *StorageHandler) scheduleCleanup(c *gin.Context, previous, current, folder string) {
	if h.Cleanup == nil || previous == "" || previous == current {
		return
	}
	if _, ok := h.StorageSvc.ObjectPathOf(previous, folder); !ok {
		return
	}
	if err := h.Cleanup.EnqueueImageCleanup(c.Request.Context(), previous, folder); err != nil {
		getLogger(c).Warn("Failed to schedule image cleanup", zap.String("url", previous), zap.Error(err))
	}
}

// upload streams the "file" form field to storage. On failure the response
// has already been written.
func (h *StorageHandler) upload(c *gin.Context, folder string) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return "", err
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		err := fmt.Errorf("unsupported content type %q", contentType)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "detail": err.Error()})
		return "", err
	}
	defer file.Close()

	url, err := h.StorageSvc.Upload(c.Request.Context(), folder, fileHeader.Filename, file, contentType)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload file", err.Error())
		return "", err
	}
	if url == "" {
		err := errors.New("storage returned an empty URL")
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload file", err.Error())
		return "", err
	}
	getLogger(c).Info("File uploaded", zap.String("folder", folder), zap.String("url", url))
	return url, nil
}
