package services

import (
	"context"
	"fmt"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"
)

// opidRegistry checks OPID masks across accounts and groups, which share one namespace.
type opidRegistry struct {
	Contacts repositories.ContactRepository
	Groups   repositories.ContactGroupRepository
}

// maskFor returns the mask of opid, failing with a ConflictError when another
// account or group owns it. skipAccountID / skipGroupID exclude the entity being updated.
func (o opidRegistry) maskFor(ctx context.Context, opid string, skipAccountID, skipGroupID int64) (string, error) {
	mask := utils.PagerNumberMask(opid)
	if mask == "" {
		return "", domain.ValidationError{Field: "opid", Msg: "must contain at least one letter or digit"}
	}

	accountID, err := o.Contacts.FindIDByMask(ctx, mask)
	if err != nil {
		return "", err
	}
	if accountID != 0 && accountID != skipAccountID {
		return "", domain.ConflictError{Msg: fmt.Sprintf("OPID %q is already registered", opid)}
	}

	groupID, err := o.Groups.FindIDByMask(ctx, mask)
	if err != nil {
		return "", err
	}
	if groupID != 0 && groupID != skipGroupID {
		return "", domain.ConflictError{Msg: fmt.Sprintf("OPID mask %q for OPID %s is already registered", mask, opid)}
	}
	return mask, nil
}
