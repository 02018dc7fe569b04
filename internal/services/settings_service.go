package services

import (
	"context"
	"fmt"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"
)

type SettingsService struct {
	Repo      repositories.EnterpriseRepository
	RequestID string
}

// Get reports the enterprise settings. Reminders and two factor authentication
// are not configurable yet and always read false.
func (s SettingsService) Get(ctx context.Context, enterpriseID int64) (dto.Settings, error) {
	ent, err := s.Repo.Get(ctx, enterpriseID)
	if err != nil {
		return dto.Settings{}, notFound(err, "enterprise", enterpriseID)
	}
	return dto.Settings{DispatcherSessionTimeout: ent.LogoutTimeout}, nil
}

// Update stores the dispatcher session timeout. Any failure is reported as forbidden.
func (s SettingsService) Update(ctx context.Context, enterpriseID int64, in dto.SettingsUpdate) error {
	if _, err := s.Repo.Get(ctx, enterpriseID); err != nil {
		utils.LogError(s.RequestID, "settings", "update", err)
		return domain.ForbiddenError{Msg: "could not update settings", Err: err}
	}
	if in.DispatcherSessionTimeout == nil {
		return nil
	}
	if err := s.Repo.SetLogoutTimeout(ctx, enterpriseID, *in.DispatcherSessionTimeout); err != nil {
		utils.LogError(s.RequestID, "settings", "update", err)
		return domain.ForbiddenError{Msg: "could not update settings", Err: err}
	}
	utils.LogEvent(s.RequestID, "settings", "update", fmt.Sprintf("dispatcher session timeout set to %d", *in.DispatcherSessionTimeout))
	return nil
}
