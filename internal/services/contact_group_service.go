package services

import (
	"context"
	"database/sql"
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

type ContactGroupService struct {
	Repo        repositories.ContactGroupRepository
	ContactRepo repositories.ContactRepository
	Codec       *paging.Codec
	RequestID   string
}

type contactGroupPager struct {
	svc ContactGroupService
}

func (p contactGroupPager) CursorKey() string { return paging.KeyContactGroup }

func (p contactGroupPager) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.Group, error) {
	return p.svc.Repo.FetchAfter(ctx, enterpriseID, lastID)
}

func (p contactGroupPager) Matches(g models.Group, search string) bool {
	return paging.MatchesRecord(g, search)
}

func (p contactGroupPager) ToDTO(ctx context.Context, g models.Group) (dto.ContactGroup, error) {
	return p.svc.toDTO(ctx, g)
}

func (s ContactGroupService) List(ctx context.Context, enterpriseID int64, q domain.ListQuery) (dto.ContactGroups, error) {
	items, meta, err := listPage[models.Group, dto.ContactGroup](ctx, s.Codec, contactGroupPager{svc: s}, enterpriseID, q)
	if err != nil {
		return dto.ContactGroups{}, err
	}
	return dto.ContactGroups{Contacts: items, Metadata: meta}, nil
}

func (s ContactGroupService) Get(ctx context.Context, enterpriseID, id int64) (dto.ContactGroup, error) {
	g, err := s.Repo.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.ContactGroup{}, notFound(err, "contact group", id)
	}
	return s.toDTO(ctx, g)
}

func (s ContactGroupService) Create(ctx context.Context, enterpriseID int64, in dto.ContactGroupWrite) (dto.ContactGroup, error) {
	opid := strings.TrimSpace(in.OPID)
	mask, err := s.opids().maskFor(ctx, opid, 0, 0)
	if err != nil {
		return dto.ContactGroup{}, err
	}

	g := models.Group{EnterpriseID: enterpriseID, PagerNumber: opid, AlternativePagerNumber: mask}
	applyGroupWrite(&g, in)

	members, err := s.members(ctx, enterpriseID, in.Contacts)
	if err != nil {
		return dto.ContactGroup{}, err
	}
	id, err := s.Repo.Create(ctx, g, members)
	if err != nil {
		return dto.ContactGroup{}, err
	}
	utils.LogEvent(s.RequestID, "contact_groups", "create", fmt.Sprintf("contact group %d created with %d members", id, len(members)))
	return s.Get(ctx, enterpriseID, id)
}

// Update overwrites the group fields. Contacts and failOver are only replaced when present.
func (s ContactGroupService) Update(ctx context.Context, enterpriseID, id int64, in dto.ContactGroupWrite) (dto.ContactGroup, error) {
	g, err := s.Repo.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.ContactGroup{}, notFound(err, "contact group", id)
	}

	opid := strings.TrimSpace(in.OPID)
	mask, err := s.opids().maskFor(ctx, opid, 0, id)
	if err != nil {
		return dto.ContactGroup{}, err
	}
	g.PagerNumber = opid
	g.AlternativePagerNumber = mask
	applyGroupWrite(&g, in)

	var members []models.GroupMember
	if in.Contacts != nil {
		if members, err = s.members(ctx, enterpriseID, in.Contacts); err != nil {
			return dto.ContactGroup{}, err
		}
	}
	if err := s.Repo.Update(ctx, g, members); err != nil {
		return dto.ContactGroup{}, err
	}
	utils.LogEvent(s.RequestID, "contact_groups", "update", fmt.Sprintf("contact group %d updated", id))
	return s.Get(ctx, enterpriseID, id)
}

// Patch applies a JSON Patch document to the current group and stores it through Update.
func (s ContactGroupService) Patch(ctx context.Context, enterpriseID, id int64, raw []byte) (dto.ContactGroup, error) {
	current, err := s.Get(ctx, enterpriseID, id)
	if err != nil {
		return dto.ContactGroup{}, err
	}
	var next dto.ContactGroupWrite
	if err := applyPatch(current, raw, &next); err != nil {
		return dto.ContactGroup{}, err
	}
	if next.Contacts == nil {
		next.Contacts = []dto.ContactGroupMember{}
	}
	return s.Update(ctx, enterpriseID, id, next)
}

func (s ContactGroupService) opids() opidRegistry {
	return opidRegistry{Contacts: s.ContactRepo, Groups: s.Repo}
}

// members drops contacts outside the enterprise and keeps the requested order.
func (s ContactGroupService) members(ctx context.Context, enterpriseID int64, in []dto.ContactGroupMember) ([]models.GroupMember, error) {
	ids := make([]int64, 0, len(in))
	for _, m := range in {
		ids = append(ids, m.ContactID)
	}
	known, err := s.Repo.AccountIDsInEnterprise(ctx, enterpriseID, ids)
	if err != nil {
		return nil, err
	}

	out := []models.GroupMember{}
	for _, m := range in {
		if !known[m.ContactID] {
			continue
		}
		gm := models.GroupMember{AccountID: m.ContactID}
		if m.Order != nil {
			gm.EscalationOrder = sql.NullInt64{Int64: *m.Order, Valid: true}
		}
		out = append(out, gm)
	}
	return out, nil
}

func applyGroupWrite(g *models.Group, in dto.ContactGroupWrite) {
	g.Name = strings.TrimSpace(in.Name)
	g.Description = sql.NullString{String: in.Description, Valid: in.Description != ""}
	g.Escalation = in.Escalation
	g.EscalationInterval = models.ParseEscalationInterval(in.EscalationInterval)
	g.EscalationFactor = models.ParseEscalationFactor(in.EscalationFactor)
	g.LatestRevision = time.Now().UTC()

	if in.FailOver != nil {
		emails := make([]string, 0, len(in.FailOver.Emails))
		for _, e := range in.FailOver.Emails {
			if e = normalizeEmail(e); e != "" {
				emails = append(emails, e)
			}
		}
		g.FailReportEmail = utils.JoinList(emails)
		g.FailOverOpids = utils.JoinIDList(in.FailOver.Contacts)
		g.FailOverGroupOpids = utils.JoinIDList(in.FailOver.Groups)
		g.FailOverIncludeOriginalMessage = in.FailOver.IncludeOriginalMessage
	}
}

func (s ContactGroupService) toDTO(ctx context.Context, g models.Group) (dto.ContactGroup, error) {
	members, err := s.Repo.Members(ctx, g.ID)
	if err != nil {
		return dto.ContactGroup{}, err
	}
	contacts := make([]dto.ContactGroupMember, 0, len(members))
	for _, m := range members {
		cm := dto.ContactGroupMember{ContactID: m.AccountID}
		if m.EscalationOrder.Valid {
			order := m.EscalationOrder.Int64
			cm.Order = &order
		}
		contacts = append(contacts, cm)
	}

	return dto.ContactGroup{
		ID:                 g.ID,
		OPID:               g.PagerNumber,
		Name:               g.Name,
		Description:        g.Description.String,
		Contacts:           contacts,
		Escalation:         g.Escalation,
		EscalationInterval: g.EscalationInterval.Label(),
		EscalationFactor:   string(g.EscalationFactor),
		FailOver: dto.GroupFailOver{
			IncludeOriginalMessage: g.FailOverIncludeOriginalMessage,
			Emails:                 utils.SplitList(g.FailReportEmail),
			Contacts:               utils.SplitIDList(g.FailOverOpids),
			Groups:                 utils.SplitIDList(g.FailOverGroupOpids),
		},
	}, nil
}
