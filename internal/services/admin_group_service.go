package services

import (
	"context"
	"fmt"
	"strings"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/paging"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"
)

type AdminGroupService struct {
	Repo           repositories.AdminGroupRepository
	DispatcherRepo repositories.AdministratorRepository
	Codec          *paging.Codec
	RequestID      string
}

type adminGroupPager struct {
	svc AdminGroupService
}

func (p adminGroupPager) CursorKey() string { return paging.KeyAdministratorGroup }

func (p adminGroupPager) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.AdminGroup, error) {
	return p.svc.Repo.FetchAfter(ctx, enterpriseID, lastID)
}

func (p adminGroupPager) Matches(g models.AdminGroup, search string) bool {
	return paging.MatchesRecord(g, search)
}

func (p adminGroupPager) ToDTO(ctx context.Context, g models.AdminGroup) (dto.AdministratorGroup, error) {
	return p.svc.toDTO(ctx, g)
}

func (s AdminGroupService) List(ctx context.Context, enterpriseID int64, q domain.ListQuery) (dto.AdministratorGroups, error) {
	items, meta, err := listPage[models.AdminGroup, dto.AdministratorGroup](ctx, s.Codec, adminGroupPager{svc: s}, enterpriseID, q)
	if err != nil {
		return dto.AdministratorGroups{}, err
	}
	return dto.AdministratorGroups{Groups: items, Metadata: meta}, nil
}

func (s AdminGroupService) Get(ctx context.Context, enterpriseID, id int64) (dto.AdministratorGroup, error) {
	g, err := s.Repo.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.AdministratorGroup{}, notFound(err, "administrator group", id)
	}
	return s.toDTO(ctx, g)
}

func (s AdminGroupService) Create(ctx context.Context, enterpriseID int64, in dto.AdministratorGroupWrite) (dto.AdministratorGroup, error) {
	members, err := s.enterpriseMembers(ctx, enterpriseID, in.Administrators)
	if err != nil {
		return dto.AdministratorGroup{}, err
	}
	name := strings.TrimSpace(in.Name)
	id, err := s.Repo.Create(ctx, enterpriseID, name, members)
	if err != nil {
		return dto.AdministratorGroup{}, err
	}
	utils.LogEvent(s.RequestID, "administrator_groups", "create", fmt.Sprintf("administrator group %d created with %d members", id, len(members)))
	return s.Get(ctx, enterpriseID, id)
}

// Update renames the group. A nil member list keeps the current members.
func (s AdminGroupService) Update(ctx context.Context, enterpriseID, id int64, in dto.AdministratorGroupWrite) (dto.AdministratorGroup, error) {
	if _, err := s.Repo.Get(ctx, enterpriseID, id); err != nil {
		return dto.AdministratorGroup{}, notFound(err, "administrator group", id)
	}

	var members []int64
	if in.Administrators != nil {
		var err error
		if members, err = s.enterpriseMembers(ctx, enterpriseID, in.Administrators); err != nil {
			return dto.AdministratorGroup{}, err
		}
	}
	if err := s.Repo.Update(ctx, enterpriseID, id, strings.TrimSpace(in.Name), members); err != nil {
		return dto.AdministratorGroup{}, err
	}
	utils.LogEvent(s.RequestID, "administrator_groups", "update", fmt.Sprintf("administrator group %d updated", id))
	return s.Get(ctx, enterpriseID, id)
}

// Patch applies a JSON Patch document to the group's current representation
// and stores the result through Update.
func (s AdminGroupService) Patch(ctx context.Context, enterpriseID, id int64, raw []byte) (dto.AdministratorGroup, error) {
	current, err := s.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.AdministratorGroup{}, err
	}
	var next dto.AdministratorGroupWrite
	if err := applyPatch(current, raw, &next); err != nil {
		return dto.AdministratorGroup{}, err
	}
	if next.Administrators == nil {
		next.Administrators = []int64{}
	}
	return s.Update(ctx, enterpriseID, id, next)
}

func (s AdminGroupService) Delete(ctx context.Context, enterpriseID, id int64) error {
	if _, err := s.Repo.Get(ctx, enterpriseID, id); err != nil {
		return notFound(err, "administrator group", id)
	}
	n, err := s.Repo.Delete(ctx, enterpriseID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "administrator group", ID: id}
	}
	utils.LogEvent(s.RequestID, "administrator_groups", "delete", fmt.Sprintf("administrator group %d deleted", id))
	return nil
}

// enterpriseMembers keeps the dispatcher ids that belong to the enterprise, in request order.
func (s AdminGroupService) enterpriseMembers(ctx context.Context, enterpriseID int64, ids []int64) ([]int64, error) {
	known, err := s.DispatcherRepo.IDsInEnterprise(ctx, enterpriseID, ids)
	if err != nil {
		return nil, err
	}
	out := []int64{}
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s AdminGroupService) toDTO(ctx context.Context, g models.AdminGroup) (dto.AdministratorGroup, error) {
	members, err := s.Repo.MemberIDs(ctx, g.ID)
	if err != nil {
		return dto.AdministratorGroup{}, err
	}
	return dto.AdministratorGroup{ID: g.ID, Name: g.Name, Administrators: members}, nil
}
