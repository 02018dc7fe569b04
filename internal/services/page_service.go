package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/domain/models"
	"dispatchapi/internal/dto"
	"dispatchapi/internal/paging"
	"dispatchapi/internal/repositories"
	"dispatchapi/internal/utils"
)

const apiSenderCaption = "Public API"

// PageService sends pages on behalf of an API token and lists the pages it sent.
type PageService struct {
	Repo           repositories.PageRepository
	ContactRepo    repositories.ContactRepository
	GroupRepo      repositories.ContactGroupRepository
	AttachmentRepo repositories.AttachmentRepository
	RequestID      string
}

type pageSource struct {
	svc PageService
}

func (p pageSource) FetchAfter(ctx context.Context, enterpriseID, lastID int64) ([]models.Message, error) {
	return p.svc.Repo.FetchSentAfter(ctx, enterpriseID, models.SenderAPI, lastID)
}

func (p pageSource) Matches(m models.Message, search string) bool {
	return paging.MatchesRecord(m, search)
}

func (p pageSource) ToDTO(ctx context.Context, m models.Message) (dto.Page, error) {
	return p.svc.toDTO(ctx, m)
}

// List pages through the pages sent with the enterprise API tokens, oldest first.
func (s PageService) List(ctx context.Context, enterpriseID int64, q domain.OffsetQuery) (dto.Pages, error) {
	page, err := paging.PaginateOffset[models.Message, dto.Page](ctx, pageSource{svc: s}, paging.OffsetRequest{
		Scope:  enterpriseID,
		Search: q.Search,
		Offset: q.Offset,
		Limit:  q.Limit,
	})
	if err != nil {
		return dto.Pages{}, err
	}
	return dto.Pages{Pages: page.Items, Metadata: dto.OffsetMetadata{HasMoreData: page.HasMoreData}}, nil
}

// Send stores a page for delivery. Every recipient OPID must name an active contact
// or a contact group of the enterprise, and every attachment must exist.
func (s PageService) Send(ctx context.Context, enterpriseID int64, in dto.PageSend) (dto.Page, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return dto.Page{}, domain.ValidationError{Field: "subject", Msg: "the field 'subject' is required"}
	}
	recipients, err := s.resolveRecipients(ctx, enterpriseID, in.Recipients)
	if err != nil {
		return dto.Page{}, err
	}
	attachmentIDs, err := s.resolveAttachments(ctx, in.Attachments)
	if err != nil {
		return dto.Page{}, err
	}

	m := models.Message{
		EnterpriseID:  enterpriseID,
		SenderType:    models.SenderAPI,
		SenderCaption: apiSenderCaption,
		SenderValue:   strconv.FormatInt(enterpriseID, 10),
		Subject:       strings.TrimSpace(in.Subject),
		Body:          in.Body,
		Priority:      models.PriorityFromLabel(in.Priority),
		Replies:       joinReplies(in.Replies),
		CallbackURI:   strings.TrimSpace(in.CallbackURI),
		CreatedAt:     time.Now().UTC(),
	}
	if in.ChatID != nil {
		if _, err := s.Repo.Get(ctx, enterpriseID, *in.ChatID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return dto.Page{}, domain.ValidationError{Field: "chatId", Msg: fmt.Sprintf("chat %d does not exist", *in.ChatID)}
			}
			return dto.Page{}, err
		}
		m.ChatID = sql.NullInt64{Int64: *in.ChatID, Valid: true}
	}

	id, err := s.Repo.Create(ctx, m, recipients, attachmentIDs)
	if err != nil {
		return dto.Page{}, err
	}
	m.ID = id
	utils.LogEvent(s.RequestID, "pages", "send", fmt.Sprintf("page %d queued for %d recipients", id, len(recipients)))
	return s.toDTO(ctx, m)
}

func (s PageService) resolveRecipients(ctx context.Context, enterpriseID int64, opids []string) ([]models.MessageRecipient, error) {
	out := []models.MessageRecipient{}
	seen := map[string]bool{}
	for _, raw := range opids {
		opid := strings.TrimSpace(raw)
		mask := utils.PagerNumberMask(opid)
		if mask == "" {
			return nil, domain.ValidationError{Field: "recipients", Msg: fmt.Sprintf("recipient %q is not a valid OPID", raw)}
		}
		if seen[mask] {
			continue
		}
		seen[mask] = true

		account, err := s.ContactRepo.GetActiveByMask(ctx, enterpriseID, mask)
		if err == nil {
			out = append(out, models.MessageRecipient{
				RecipientType: models.RecipientOPID,
				Caption:       strings.TrimSpace(account.FirstName + " " + account.LastName),
				Value:         account.PagerNumber,
				AccountID:     sql.NullInt64{Int64: account.ID, Valid: true},
			})
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		group, err := s.GroupRepo.GetByMask(ctx, enterpriseID, mask)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ValidationError{Field: "recipients", Msg: fmt.Sprintf("unknown recipient OPID %q", opid)}
		}
		if err != nil {
			return nil, err
		}
		out = append(out, models.MessageRecipient{
			RecipientType: models.RecipientGroup,
			Caption:       group.Name,
			Value:         group.PagerNumber,
			GroupID:       sql.NullInt64{Int64: group.ID, Valid: true},
		})
	}
	if len(out) == 0 {
		return nil, domain.ValidationError{Field: "recipients", Msg: "at least one recipient is required"}
	}
	return out, nil
}

func (s PageService) resolveAttachments(ctx context.Context, fileIDs []string) ([]int64, error) {
	out := []int64{}
	for _, raw := range fileIDs {
		fileID := strings.TrimSpace(raw)
		a, err := s.AttachmentRepo.GetByFileID(ctx, fileID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ValidationError{Field: "attachments", Msg: fmt.Sprintf("attachment %q does not exist", fileID)}
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a.ID)
	}
	return out, nil
}

func (s PageService) toDTO(ctx context.Context, m models.Message) (dto.Page, error) {
	recipients, err := s.Repo.Recipients(ctx, m.ID)
	if err != nil {
		return dto.Page{}, err
	}
	attachments, err := s.Repo.Attachments(ctx, m.ID)
	if err != nil {
		return dto.Page{}, err
	}

	out := dto.Page{
		ID:          m.ID,
		ChatID:      m.Chat(),
		From:        dto.PageFrom{Type: m.SenderType, Caption: m.SenderCaption, Value: m.SenderValue},
		Subject:     m.Subject,
		Body:        m.Body,
		Priority:    models.PriorityLabel(m.Priority),
		Recipients:  make([]dto.Recipient, 0, len(recipients)),
		Created:     m.CreatedAt,
		Replies:     utils.SplitList(m.Replies),
		Attachments: make([]dto.AttachmentShort, 0, len(attachments)),
		CallbackURI: m.CallbackURI,
	}
	for _, rc := range recipients {
		out.Recipients = append(out.Recipients, dto.Recipient{Type: rc.RecipientType, Caption: rc.Caption, Value: rc.Value})
	}
	for _, a := range attachments {
		out.Attachments = append(out.Attachments, dto.AttachmentShort{ID: a.FileID, Name: a.FileName, Size: a.FileSize})
	}
	return out, nil
}
