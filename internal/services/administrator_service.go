package services

import (
	"context"
	"database/sql"
	"errors"
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

// AdministratorService manages dispatchers exposed as administrators.
type AdministratorService struct {
	Repo           repositories.AdministratorRepository
	EnterpriseRepo repositories.EnterpriseRepository
	Codec          *paging.Codec
	RequestID      string
}

type administratorPager struct {
	svc AdministratorService
}

func (p administratorPager) CursorKey() string { return paging.KeyAdministrator }

func (p administratorPager) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.Dispatcher, error) {
	return p.svc.Repo.FetchActiveAfter(ctx, enterpriseID, lastID)
}

func (p administratorPager) Matches(d models.Dispatcher, search string) bool {
	return paging.MatchesRecord(d, search)
}

func (p administratorPager) ToDTO(ctx context.Context, d models.Dispatcher) (dto.Administrator, error) {
	return p.svc.toDTO(ctx, d)
}

func (s AdministratorService) List(ctx context.Context, enterpriseID int64, q domain.ListQuery) (dto.Administrators, error) {
	items, meta, err := listPage[models.Dispatcher, dto.Administrator](ctx, s.Codec, administratorPager{svc: s}, enterpriseID, q)
	if err != nil {
		return dto.Administrators{}, err
	}
	return dto.Administrators{Administrators: items, Metadata: meta}, nil
}

func (s AdministratorService) Get(ctx context.Context, enterpriseID, id int64) (dto.Administrator, error) {
	d, err := s.Repo.GetActive(ctx, enterpriseID, id)
	if err != nil {
		return dto.Administrator{}, notFound(err, "administrator", id)
	}
	return s.toDTO(ctx, d)
}

func (s AdministratorService) Create(ctx context.Context, enterpriseID int64, in dto.AdministratorCreate) (dto.Administrator, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return dto.Administrator{}, err
	}
	if exists {
		return dto.Administrator{}, domain.NotAcceptableError{Msg: fmt.Sprintf("dispatcher with email %s already exists", email)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.Administrator{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}

	adminType := models.AdminTypeDispatcher
	if in.SuperAdmin {
		adminType = models.AdminTypeAdministrator
	}
	d := models.Dispatcher{
		EnterpriseID: enterpriseID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
		AdminType:    adminType,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		Permissions:  permissionsFromDTO(in.Permissions),
	}
	id, err := s.Repo.Create(ctx, d)
	if err != nil {
		return dto.Administrator{}, err
	}
	d.ID = id

	if len(in.Groups) > 0 {
		if err := s.Repo.SetGroups(ctx, enterpriseID, id, in.Groups); err != nil {
			return dto.Administrator{}, err
		}
	}
	utils.LogEvent(s.RequestID, "administrators", "create", fmt.Sprintf("administrator %d created", id))
	return s.toDTO(ctx, d)
}

func (s AdministratorService) Update(ctx context.Context, enterpriseID, id int64, in dto.AdministratorUpdate) (dto.Administrator, error) {
	d, err := s.Repo.GetActive(ctx, enterpriseID, id)
	if err != nil {
		return dto.Administrator{}, notFound(err, "administrator", id)
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return dto.Administrator{}, domain.InternalError{Msg: "could not hash password", Err: err}
		}
		d.PasswordHash = string(hash)
	}
	if v := trimmed(in.FirstName); v != "" {
		d.FirstName = v
	}
	if v := trimmed(in.LastName); v != "" {
		d.LastName = v
	}
	if v := trimmed(in.PhoneNumber); v != "" {
		d.PhoneNumber = v
	}
	if in.SuperAdmin != nil {
		d.AdminType = models.AdminTypeDispatcher
		if *in.SuperAdmin {
			d.AdminType = models.AdminTypeAdministrator
		}
	}
	if in.Permissions != nil {
		mergePermissions(&d.Permissions, *in.Permissions)
	}

	if err := s.Repo.Update(ctx, d); err != nil {
		return dto.Administrator{}, err
	}
	if in.Groups != nil {
		if err := s.Repo.SetGroups(ctx, enterpriseID, id, in.Groups); err != nil {
			return dto.Administrator{}, err
		}
	}
	utils.LogEvent(s.RequestID, "administrators", "update", fmt.Sprintf("administrator %d updated", id))
	return s.toDTO(ctx, d)
}

// Delete soft deletes the administrator. The enterprise super administrator
// can never be deleted.
func (s AdministratorService) Delete(ctx context.Context, enterpriseID, id int64) error {
	d, err := s.Repo.Get(ctx, enterpriseID, id)
	if err != nil {
		return notFound(err, "administrator", id)
	}

	ent, err := s.EnterpriseRepo.Get(ctx, d.EnterpriseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if err != nil || strings.EqualFold(ent.SuperAdminEmail, d.Email) {
		return domain.NotAcceptableError{Msg: fmt.Sprintf("administrator with ID %d is SUPER admin and can not be deleted", id)}
	}

	n, err := s.Repo.SoftDelete(ctx, enterpriseID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.InternalError{Msg: fmt.Sprintf("could not delete administrator with ID %d", id)}
	}
	utils.LogEvent(s.RequestID, "administrators", "delete", fmt.Sprintf("administrator %d deleted", id))
	return nil
}

func (s AdministratorService) toDTO(ctx context.Context, d models.Dispatcher) (dto.Administrator, error) {
	groups, err := s.Repo.GroupNames(ctx, d.EnterpriseID, d.ID)
	if err != nil {
		return dto.Administrator{}, err
	}
	p := d.Permissions
	return dto.Administrator{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Groups:      groups,
		SuperAdmin:  d.IsSuperAdmin(),
		Permissions: dto.AdministratorPermissions{
			CreateEscalation:       p.CanAddEscalation,
			GroupCreate:            p.CanAddGroup,
			ContactDelete:          p.CanDeleteContact,
			ContactEdit:            p.CanEditContact,
			ContactAdd:             p.CanAddContact,
			ContactToGroup:         p.CanAddContactToGroup,
			RemoveContactFromGroup: p.CanRemoveContactFromGroup,
			DeleteGroup:            p.CanDeleteGroup,
			EditGroup:              p.CanEditGroup,
			EditEscalationGroup:    p.CanEditEscalation,
			ViewSchedule:           p.CanViewSchedule,
			EditSchedule:           p.CanEditSchedule,
			ViewReports:            p.ViewReports,
		},
	}, nil
}

func permissionsFromDTO(in dto.AdministratorPermissions) models.DispatcherPermissions {
	return models.DispatcherPermissions{
		CanAddGroup:               in.GroupCreate,
		CanDeleteContact:          in.ContactDelete,
		CanEditContact:            in.ContactEdit,
		CanAddContact:             in.ContactAdd,
		CanAddContactToGroup:      in.ContactToGroup,
		CanRemoveContactFromGroup: in.RemoveContactFromGroup,
		CanDeleteGroup:            in.DeleteGroup,
		CanEditGroup:              in.EditGroup,
		CanAddEscalation:          in.CreateEscalation,
		CanEditEscalation:         in.EditEscalationGroup,
		CanViewSchedule:           in.ViewSchedule,
		CanEditSchedule:           in.EditSchedule,
		ViewReports:               in.ViewReports,
	}
}

func mergePermissions(p *models.DispatcherPermissions, in dto.AdministratorPermissionsUpdate) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.CanAddGroup, in.GroupCreate)
	set(&p.CanDeleteContact, in.ContactDelete)
	set(&p.CanEditContact, in.ContactEdit)
	set(&p.CanAddContact, in.ContactAdd)
	set(&p.CanAddContactToGroup, in.ContactToGroup)
	set(&p.CanRemoveContactFromGroup, in.RemoveContactFromGroup)
	set(&p.CanDeleteGroup, in.DeleteGroup)
	set(&p.CanEditGroup, in.EditGroup)
	set(&p.CanAddEscalation, in.CreateEscalation)
	set(&p.CanEditEscalation, in.EditEscalationGroup)
	set(&p.CanViewSchedule, in.ViewSchedule)
	set(&p.CanEditSchedule, in.EditSchedule)
	set(&p.ViewReports, in.ViewReports)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
