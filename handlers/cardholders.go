package handlers

import (
	"context"
	"errors"
	"net/http"

	"doitto/database/repository"
	"doitto/middleware"
	"doitto/services/cardholder"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CardHolderHandler serves the signed-in user's collections.
type CardHolderHandler struct {
	CardHolders cardholder.CardHolderService
}

func NewCardHolderHandler(svc cardholder.CardHolderService) *CardHolderHandler {
	return &CardHolderHandler{CardHolders: svc}
}

// ListCardHoldersHandler handles GET /api/cardholders.
func (h *CardHolderHandler) ListCardHoldersHandler(c *gin.Context) {
	holders, err := h.CardHolders.ListForUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list card holders", err.Error())
		return
	}
	c.JSON(http.StatusOK, holders)
}

type createCardHolderRequest struct {
	Name string `json:"name" binding:"required"`
	// HelperID optionally seeds the new holder; the add is a second, separate write.
	HelperID string `json:"helperId"`
}

// CreateCardHolderHandler handles POST /api/cardholders.
func (h *CardHolderHandler) CreateCardHolderHandler(c *gin.Context) {
	var req createCardHolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := h.CardHolders.Create(ctx, middleware.CurrentUserID(c), req.Name)
	if err != nil {
		if errors.Is(err, cardholder.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create card holder", err.Error())
		return
	}
	if req.HelperID != "" {
		if err := h.CardHolders.AddHelper(ctx, id, req.HelperID); err != nil {
			getLogger(c).Error("Card holder created without its first helper",
				zap.String("holderID", id), zap.String("helperID", req.HelperID), zap.Error(err))
		}
	}

	holder, err := h.CardHolders.Get(ctx, id)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusCreated, holder)
}

// GetCardHolderHandler handles GET /api/cardholders/:id.
func (h *CardHolderHandler) GetCardHolderHandler(c *gin.Context) {
	holder, err := h.CardHolders.Owned(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		writeOwnershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, holder)
}

// DeleteCardHolderHandler handles DELETE /api/cardholders/:id.
func (h *CardHolderHandler) DeleteCardHolderHandler(c *gin.Context) {
	ctx := c.Request.Context()
	holder, err := h.CardHolders.Owned(ctx, c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		writeOwnershipError(c, err)
		return
	}
	if err := h.CardHolders.Delete(ctx, holder.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete card holder", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card holder deleted"})
}

// ListMembersHandler handles GET /api/cardholders/:id/helpers.
func (h *CardHolderHandler) ListMembersHandler(c *gin.Context) {
	ctx := c.Request.Context()
	holder, err := h.CardHolders.Owned(ctx, c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		writeOwnershipError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.CardHolders.ResolveMembers(ctx, *holder))
}

// AddMemberHandler handles PUT /api/cardholders/:id/helpers/:helperID.
func (h *CardHolderHandler) AddMemberHandler(c *gin.Context) {
	h.changeMembers(c, h.CardHolders.AddHelper)
}

// RemoveMemberHandler handles DELETE /api/cardholders/:id/helpers/:helperID.
func (h *CardHolderHandler) RemoveMemberHandler(c *gin.Context) {
	h.changeMembers(c, h.CardHolders.RemoveHelper)
}

func (h *CardHolderHandler) changeMembers(c *gin.Context, change func(ctx context.Context, holderID, helperID string) error) {
	ctx := c.Request.Context()
	holder, err := h.CardHolders.Owned(ctx, c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		writeOwnershipError(c, err)
		return
	}
	if err := change(ctx, holder.ID, c.Param("helperID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update card holder", err.Error())
		return
	}
	updated, err := h.CardHolders.Get(ctx, holder.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to reload card holder", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func writeOwnershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "card holder not found"})
	case errors.Is(err, cardholder.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to load card holder", err.Error())
	}
}
