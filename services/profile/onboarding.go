package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doitto/database/repository"
	"doitto/models"
)

// Step is a page of the join-as-pro wizard.
type Step int

const (
	StepCompany Step = iota + 1
	StepServices
	StepCoverage
	StepTrust
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepCompany:
		return "company"
	case StepServices:
		return "services"
	case StepCoverage:
		return "coverage"
	case StepTrust:
		return "trust"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithRateOrder makes the services step reject an hourly rate whose minimum exceeds its maximum.
func WithRateOrder(enforce bool) WizardOption {
	return func(w *Wizard) { w.enforceRateOrder = enforce }
}

// Wizard accumulates pro details across five linear steps. Only Next is gated;
// nothing is stored until Submit.
type Wizard struct {
	step             Step
	draft            models.ProDetails
	enforceRateOrder bool
}

func NewWizard(opts ...WizardOption) *Wizard {
	w := &Wizard{
		step: StepCompany,
		draft: models.ProDetails{
			ServiceAreas:   []string{},
			Services:       []models.ServiceOffering{},
			Languages:      []string{},
			Certifications: []string{},
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Step() Step { return w.step }

// Draft returns a copy of the details collected so far.
func (w *Wizard) Draft() models.ProDetails {
	d := w.draft
	d.ServiceAreas = append([]string{}, w.draft.ServiceAreas...)
	d.Languages = append([]string{}, w.draft.Languages...)
	d.Certifications = append([]string{}, w.draft.Certifications...)
	d.Services = make([]models.ServiceOffering, 0, len(w.draft.Services))
	for _, svc := range w.draft.Services {
		d.Services = append(d.Services, models.ServiceOffering{
			Category:      svc.Category,
			Subcategories: append([]string{}, svc.Subcategories...),
		})
	}
	if w.draft.HourlyRate != nil {
		rate := *w.draft.HourlyRate
		d.HourlyRate = &rate
	}
	return d
}

// Validate runs the current step's predicate.
func (w *Wizard) Validate() error {
	d := w.draft
	switch w.step {
	case StepCompany:
		if strings.TrimSpace(d.CompanyName) == "" {
			return w.invalid("companyName", "company name is required")
		}
		if strings.TrimSpace(d.Bio) == "" {
			return w.invalid("bio", "bio is required")
		}
	case StepServices:
		if len(d.Services) == 0 {
			return w.invalid("services", "add at least one service")
		}
		if w.enforceRateOrder && d.HourlyRate != nil && d.HourlyRate.Min > d.HourlyRate.Max {
			return w.invalid("hourlyRate", "minimum rate cannot exceed maximum rate")
		}
	case StepCoverage:
		if len(d.ServiceAreas) == 0 {
			return w.invalid("serviceAreas", "add at least one service area")
		}
	}
	return nil
}

// Next advances one step when the current step validates. On failure the
// wizard stays where it is.
func (w *Wizard) Next() error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Back moves one step back without validating.
func (w *Wizard) Back() {
	if w.step > StepCompany {
		w.step--
	}
}

func (w *Wizard) SetCompany(name, bio, websiteURL string, yearsInBusiness int) {
	w.draft.CompanyName = strings.TrimSpace(name)
	w.draft.Bio = strings.TrimSpace(bio)
	w.draft.WebsiteURL = strings.TrimSpace(websiteURL)
	w.draft.YearsInBusiness = yearsInBusiness
}

// AddService appends one offering. A category and at least one subcategory are required.
func (w *Wizard) AddService(category string, subcategories []string) error {
	category = strings.TrimSpace(category)
	subs := make([]string, 0, len(subcategories))
	for _, sub := range subcategories {
		if sub = strings.TrimSpace(sub); sub != "" {
			subs = append(subs, sub)
		}
	}
	if category == "" || len(subs) == 0 {
		return w.invalid("services", "select a category and at least one sub-service")
	}
	w.draft.Services = append(w.draft.Services, models.ServiceOffering{Category: category, Subcategories: subs})
	return nil
}

// RemoveService drops the offering at index i. Out of range indexes are ignored.
func (w *Wizard) RemoveService(i int) {
	if i < 0 || i >= len(w.draft.Services) {
		return
	}
	w.draft.Services = append(w.draft.Services[:i], w.draft.Services[i+1:]...)
}

func (w *Wizard) SetRate(rate *models.RateRange) {
	if rate == nil {
		w.draft.HourlyRate = nil
		return
	}
	r := *rate
	w.draft.HourlyRate = &r
}

func (w *Wizard) SetCoverage(serviceAreas, languages []string, availability string) {
	w.draft.ServiceAreas = compact(serviceAreas)
	w.draft.Languages = compact(languages)
	w.draft.Availability = strings.TrimSpace(availability)
}

func (w *Wizard) SetTrust(insurance bool, certifications []string, backgroundChecked bool) {
	w.draft.Insurance = insurance
	w.draft.Certifications = compact(certifications)
	w.draft.BackgroundChecked = backgroundChecked
}

// Submit merges the draft into the user's saved profile as proDetails and
// writes the profile back in one save. Address and phone are carried over
// untouched. The role is left as it is.
func (w *Wizard) Submit(ctx context.Context, profiles ProfileService, uid string) error {
	if w.step != StepReview {
		return w.invalid("step", "finish the previous steps before submitting")
	}

	existing, err := profiles.LoadProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileRequired
		}
		return fmt.Errorf("failed to load profile %s: %w", uid, err)
	}

	details := w.Draft()
	existing.ProDetails = &details
	return profiles.SaveProfile(ctx, uid, *existing)
}

func (w *Wizard) invalid(field, message string) *ValidationError {
	return &ValidationError{Step: w.step, Field: field, Message: message}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
