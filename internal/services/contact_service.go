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

	"golang.org/x/crypto/bcrypt"
)

// ContactService exposes accounts as contacts.
type ContactService struct {
	Repo      repositories.ContactRepository
	GroupRepo repositories.ContactGroupRepository
	Codec     *paging.Codec
	RequestID string
}

type contactPager struct {
	svc ContactService
}

func (p contactPager) CursorKey() string { return paging.KeyContact }

func (p contactPager) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.AccountStatus, error) {
	return p.svc.Repo.FetchActiveAfter(ctx, enterpriseID, lastID)
}

func (p contactPager) Matches(a models.AccountStatus, search string) bool {
	return paging.MatchesRecord(a, search)
}

func (p contactPager) ToDTO(ctx context.Context, a models.AccountStatus) (dto.Contact, error) {
	return p.svc.toDTO(ctx, a)
}

func (s ContactService) List(ctx context.Context, enterpriseID int64, q domain.ListQuery) (dto.Contacts, error) {
	items, meta, err := listPage[models.AccountStatus, dto.Contact](ctx, s.Codec, contactPager{svc: s}, enterpriseID, q)
	if err != nil {
		return dto.Contacts{}, err
	}
	return dto.Contacts{Contacts: items, Metadata: meta}, nil
}

func (s ContactService) Get(ctx context.Context, enterpriseID, id int64) (dto.Contact, error) {
	a, err := s.Repo.GetActive(ctx, enterpriseID, id)
	if err != nil {
		return dto.Contact{}, notFound(err, "contact", id)
	}
	return s.toDTO(ctx, a)
}

// Create registers a new account. Email and OPID mask must both be unused.
func (s ContactService) Create(ctx context.Context, enterpriseID int64, in dto.ContactCreate) (dto.ContactCreateResponse, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return dto.ContactCreateResponse{}, err
	}
	if exists {
		return dto.ContactCreateResponse{}, domain.ConflictError{Resource: "contact", Msg: fmt.Sprintf("email %q already registered", email)}
	}

	opid := strings.TrimSpace(in.OPID)
	mask, err := opidRegistry{Contacts: s.Repo, Groups: s.GroupRepo}.maskFor(ctx, opid, 0, 0)
	if err != nil {
		return dto.ContactCreateResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.ContactCreateResponse{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}

	id, err := s.Repo.Create(ctx, models.Account{
		EnterpriseID:           enterpriseID,
		PagerNumber:            opid,
		AlternativePagerNumber: mask,
		FirstName:              strings.TrimSpace(in.FirstName),
		LastName:               strings.TrimSpace(in.LastName),
		Email:                  email,
		PhoneNumber:            strings.TrimSpace(in.PhoneNumber),
		PasswordHash:           string(hash),
		CreatedAt:              time.Now().UTC(),
	})
	if err != nil {
		return dto.ContactCreateResponse{}, err
	}
	utils.LogEvent(s.RequestID, "contacts", "create", fmt.Sprintf("contact %d created", id))
	return dto.ContactCreateResponse{Contact: dto.IDResponse{ID: id}}, nil
}

type contactStatusSource struct {
	repo repositories.ContactRepository
}

func (c contactStatusSource) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.AccountStatus, error) {
	return c.repo.FetchActiveAfter(ctx, enterpriseID, lastID)
}

func (c contactStatusSource) Matches(a models.AccountStatus, search string) bool {
	return paging.MatchesRecord(a, search)
}

func (c contactStatusSource) ToDTO(_ context.Context, a models.AccountStatus) (models.AccountStatus, error) {
	return a, nil
}

// Status buckets the OPIDs of one offset page of contacts by device state.
func (s ContactService) Status(ctx context.Context, enterpriseID int64, q domain.OffsetQuery) (dto.ContactsStatus, error) {
	page, err := paging.PaginateOffset[models.AccountStatus, models.AccountStatus](ctx, contactStatusSource{repo: s.Repo}, paging.OffsetRequest{
		Scope:  enterpriseID,
		Search: q.Search,
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	if err != nil {
		return dto.ContactsStatus{}, err
	}

	out := dto.ContactsStatus{
		ContactsStatus: dto.ContactsStatusTypes{LoggedIn: []string{}, LoggedOff: []string{}, PagerOff: []string{}},
		Metadata:       dto.OffsetMetadata{HasMoreData: page.HasMoreData},
	}
	for _, a := range page.Items {
		switch a.State() {
		case models.DeviceLoggedIn:
			out.ContactsStatus.LoggedIn = append(out.ContactsStatus.LoggedIn, a.PagerNumber)
		case models.DevicePagerOff:
			out.ContactsStatus.PagerOff = append(out.ContactsStatus.PagerOff, a.PagerNumber)
		default:
			out.ContactsStatus.LoggedOff = append(out.ContactsStatus.LoggedOff, a.PagerNumber)
		}
	}
	return out, nil
}

func (s ContactService) toDTO(ctx context.Context, a models.AccountStatus) (dto.Contact, error) {
	groups, err := s.Repo.GroupNames(ctx, a.EnterpriseID, a.ID)
	if err != nil {
		return dto.Contact{}, err
	}
	return dto.Contact{
		ID:          a.ID,
		OPID:        a.PagerNumber,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Status:      string(a.State()),
		Groups:      groups,
	}, nil
}
