package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doitto/database/repository"
	"doitto/models"

	"go.uber.org/zap"
)

func (s *DefaultProfileService) LoadProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.Store.Get(ctx, uid)
}

func (s *DefaultProfileService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, bool) {
	p, err := s.Store.Get(ctx, uid)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.Logger.Error("Failed to fetch profile", zap.String("uid", uid), zap.Error(err))
		}
		return nil, false
	}
	return p, true
}

// SaveProfile validates p and merges its filled-in fields into the stored
// profile. The first save also stamps createdAt and the regular role; role is
// never taken from p.
func (s *DefaultProfileService) SaveProfile(ctx context.Context, uid string, p models.UserProfile) error {
	if uid == "" {
		return errors.New("uid is required")
	}
	p.Address.State = strings.ToUpper(strings.TrimSpace(p.Address.State))
	if err := Validate(p); err != nil {
		return err
	}

	fields := map[string]any{}
	if address := addressFields(p.Address); len(address) > 0 {
		fields["address"] = address
	}
	if p.PhoneNumber != "" {
		fields["phoneNumber"] = p.PhoneNumber
	}
	if p.BannerURL != "" {
		fields["bannerUrl"] = p.BannerURL
	}
	if p.ProDetails != nil {
		fields["proDetails"] = p.ProDetails
	}

	if _, err := s.Store.Get(ctx, uid); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to load profile %s: %w", uid, err)
		}
		fields["createdAt"] = s.now().UTC()
		fields["role"] = models.RoleRegular
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.Store.Merge(ctx, uid, fields); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", uid, err)
	}
	s.Logger.Info("Profile saved", zap.String("uid", uid), zap.Int("fields", len(fields)))
	return nil
}

func (s *DefaultProfileService) SetBanner(ctx context.Context, uid, url string) error {
	if url == "" {
		return errors.New("banner url is required")
	}
	return s.SaveProfile(ctx, uid, models.UserProfile{BannerURL: url})
}

// addressFields keeps only the address parts that were filled in so the rest
// of the stored address survives the merge.
func addressFields(a models.Address) map[string]any {
	out := map[string]any{}
	for name, v := range map[string]string{
		"street":  a.Street,
		"city":    a.City,
		"state":   a.State,
		"zip":     a.Zip,
		"country": a.Country,
	} {
		if v = strings.TrimSpace(v); v != "" {
			out[name] = v
		}
	}
	return out
}
