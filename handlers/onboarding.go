package handlers

import (
	"errors"
	"net/http"

	"doitto/middleware"
	"doitto/models"
	"doitto/services/profile"
	"doitto/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler replays a client-held join-as-pro draft through a fresh
// wizard. Drafts are never stored server side.
type OnboardingHandler struct {
	Profiles         profile.ProfileService
	EnforceRateOrder bool
}

func NewOnboardingHandler(profiles profile.ProfileService, enforceRateOrder bool) *OnboardingHandler {
	return &OnboardingHandler{Profiles: profiles, EnforceRateOrder: enforceRateOrder}
}

type onboardingRequest struct {
	Step  profile.Step      `json:"step"`
	Draft models.ProDetails `json:"draft"`
}

// ValidateStepHandler handles POST /api/onboarding/validate: it reports whether
// the draft may move past the given step.
func (h *OnboardingHandler) ValidateStepHandler(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Step < profile.StepCompany || req.Step > profile.StepReview {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step must be between 1 and 5"})
		return
	}

	w, err := h.replay(req.Draft, req.Step)
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "step": w.Step()})
}

// SubmitHandler handles POST /api/onboarding/submit: it walks the draft through
// every step and merges it into the caller's profile as proDetails.
func (h *OnboardingHandler) SubmitHandler(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.replay(req.Draft, profile.StepReview)
	if err != nil {
		writeWizardError(c, err)
		return
	}

	ctx := c.Request.Context()
	uid := middleware.CurrentUserID(c)
	err = w.Submit(ctx, h.Profiles, uid)
	var fieldErrs profile.FieldErrors
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrProfileRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.As(err, &fieldErrs):
		utils.JSONFieldErrors(c, "saved profile is invalid", fieldErrs)
		return
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to submit pro details", err.Error())
		return
	}

	getLogger(c).Info("Pro details submitted", zap.String("uid", uid))
	p, _ := h.Profiles.GetProfile(ctx, uid)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully joined as Pro!", "profile": p})
}

// replay fills each step from the draft and advances until upTo, returning the
// first validation failure on the way.
func (h *OnboardingHandler) replay(d models.ProDetails, upTo profile.Step) (*profile.Wizard, error) {
	w := profile.NewWizard(profile.WithRateOrder(h.EnforceRateOrder))
	for {
		switch w.Step() {
		case profile.StepCompany:
			w.SetCompany(d.CompanyName, d.Bio, d.WebsiteURL, d.YearsInBusiness)
		case profile.StepServices:
			for _, svc := range d.Services {
				if err := w.AddService(svc.Category, svc.Subcategories); err != nil {
					return w, err
				}
			}
			w.SetRate(d.HourlyRate)
		case profile.StepCoverage:
			w.SetCoverage(d.ServiceAreas, d.Languages, d.Availability)
		case profile.StepTrust:
			w.SetTrust(d.Insurance, d.Certifications, d.BackgroundChecked)
		}

		if w.Step() >= upTo {
			return w, w.Validate()
		}
		if err := w.Next(); err != nil {
			return w, err
		}
	}
}

func writeWizardError(c *gin.Context, err error) {
	var verr *profile.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": verr.Message,
			"step":  verr.Step,
			"field": verr.Field,
		})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "failed to validate draft", err.Error())
}
