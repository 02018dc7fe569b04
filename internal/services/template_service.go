package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/paging"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"
)

// TemplateService manages enterprise message templates.
type TemplateService struct {
	Repo      repositories.TemplateRepository
	Codec     *paging.Codec
	RequestID string
}

type templatePager struct {
	repo repositories.TemplateRepository
}

func (p templatePager) CursorKey() string { return paging.KeyTemplate }

func (p templatePager) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.MessageTemplate, error) {
	return p.repo.FetchAfter(ctx, enterpriseID, lastID)
}

func (p templatePager) Matches(t models.MessageTemplate, search string) bool {
	return paging.MatchesRecord(t, search)
}

func (p templatePager) ToDTO(_ context.Context, t models.MessageTemplate) (dto.Template, error) {
	return templateDTO(t), nil
}

func (s TemplateService) List(ctx context.Context, enterpriseID int64, q domain.ListQuery) (dto.Templates, error) {
	items, meta, err := listPage[models.MessageTemplate, dto.Template](ctx, s.Codec, templatePager{repo: s.Repo}, enterpriseID, q)
	if err != nil {
		return dto.Templates{}, err
	}
	return dto.Templates{Templates: items, Metadata: meta}, nil
}

func (s TemplateService) Get(ctx context.Context, enterpriseID, id int64) (dto.Template, error) {
	t, err := s.Repo.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.Template{}, notFound(err, "template", id)
	}
	return templateDTO(t), nil
}

func (s TemplateService) Create(ctx context.Context, enterpriseID int64, in dto.TemplateCreate) (dto.Template, error) {
	t := models.MessageTemplate{
		EnterpriseID:      enterpriseID,
		Name:              strings.TrimSpace(in.Name),
		Subject:           strings.TrimSpace(in.Subject),
		Body:              in.Body,
		PredefinedReplies: joinReplies(in.PredefinedReplies),
		SyncToDevice:      in.SyncToDevice,
		UpdatedAt:         time.Now().UTC(),
	}
	id, err := s.Repo.Create(ctx, t)
	if err != nil {
		return dto.Template{}, err
	}
	utils.LogEvent(s.RequestID, "templates", "create", fmt.Sprintf("template %d created", id))
	return s.Get(ctx, enterpriseID, id)
}

// Update writes the fields present in the body and leaves the rest untouched.
func (s TemplateService) Update(ctx context.Context, enterpriseID, id int64, in dto.TemplateUpdate) (dto.Template, error) {
	if _, err := s.Repo.Get(ctx, enterpriseID, id); err != nil {
		return dto.Template{}, notFound(err, "template", id)
	}

	patch := repositories.TemplatePatch{
		Name:         trimmedPtr(in.Name),
		Subject:      trimmedPtr(in.Subject),
		Body:         in.Body,
		SyncToDevice: in.SyncToDevice,
	}
	if in.PredefinedReplies != nil {
		replies := joinReplies(in.PredefinedReplies)
		patch.PredefinedReplies = &replies
	}

	// The row was found above; an unchanged row reports zero affected rows.
	if err := s.Repo.UpdatePartial(ctx, enterpriseID, id, patch, time.Now().UTC()); err != nil {
		return dto.Template{}, err
	}
	utils.LogEvent(s.RequestID, "templates", "update", fmt.Sprintf("template %d updated", id))
	return s.Get(ctx, enterpriseID, id)
}

func (s TemplateService) Delete(ctx context.Context, enterpriseID, id int64) error {
	n, err := s.Repo.Delete(ctx, enterpriseID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "template", ID: id}
	}
	utils.LogEvent(s.RequestID, "templates", "delete", fmt.Sprintf("template %d deleted", id))
	return nil
}

func templateDTO(t models.MessageTemplate) dto.Template {
	return dto.Template{
		ID:                t.ID,
		Name:              t.Name,
		Subject:           t.Subject,
		Body:              t.Body,
		PredefinedReplies: utils.SplitList(t.PredefinedReplies),
		SyncToDevice:      t.SyncToDevice,
	}
}

func joinReplies(replies []string) string {
	out := make([]string, 0, len(replies))
	for _, r := range replies {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return utils.JoinList(out)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
