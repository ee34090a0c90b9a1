package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"cloudnotes/cmd/internal/contract"
	"cloudnotes/cmd/internal/domain/entity"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/apierror"
	"cloudnotes/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// linkTokenBytes is 128 bits of entropy, 32 hex characters.
const linkTokenBytes = 16

type ShareRepository interface {
	Create(ctx context.Context, share *entity.Share) error
	FindByToken(ctx context.Context, token string) (*entity.Share, error)
}

type ShareService struct {
	ShareRepo ShareRepository
	NoteRepo  NoteRepository
	Validate  *validator.Validate

	// Random is the entropy source for link tokens, crypto/rand by default.
	Random io.Reader
}

func NewShareService(shareRepo ShareRepository, noteRepo NoteRepository, validate *validator.Validate) *ShareService {
	return &ShareService{
		ShareRepo: shareRepo,
		NoteRepo:  noteRepo,
		Validate:  validate,
		Random:    rand.Reader,
	}
}

// CreatePublicLink issues a fresh link token for one of the owner's notes.
func (s *ShareService) CreatePublicLink(ctx context.Context, ownerID, noteID string, req *contract.LinkShareRequest) (*contract.LinkShareResponse, apierror.ErrorResponse) {
	note, apierr := s.findOwnedNote(ctx, ownerID, noteID)
	if apierr != nil {
		return nil, apierr
	}

	token, err := newLinkToken(s.Random)
	if err != nil {
		log.Errorf("failed to generate link token: %v", err)
		return nil, apierror.InternalServerError
	}

	share := &entity.Share{
		ID:            uid.Generate(),
		NoteID:        note.ID,
		FromAccountID: ownerID,
		LinkToken:     &token,
		CanEdit:       req.CanEdit,
		CreatedAt:     utils.NowUTC(),
	}

	if err = s.ShareRepo.Create(ctx, share); err != nil {
		log.Errorf("failed to save link share for note %s: %v", note.ID, err)
		return nil, apierror.InternalServerError
	}
	return &contract.LinkShareResponse{LinkToken: token, ShareID: share.ID}, nil
}

// ResolvePublicLink is the unauthenticated view: the live title, content and
// update time of the note, nothing else.
func (s *ShareService) ResolvePublicLink(ctx context.Context, token string) (*contract.PublicNoteResponse, apierror.ErrorResponse) {
	share, apierr := s.findByToken(ctx, token)
	if apierr != nil {
		return nil, apierr
	}

	note := share.Note
	return &contract.PublicNoteResponse{
		Note: &contract.PublicNote{
			Title:     note.Title,
			Content:   note.Content,
			UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
		},
	}, nil
}

// ResolveLink returns the full note and the edit flag to any authenticated
// caller holding the token. It does not check who the caller is.
func (s *ShareService) ResolveLink(ctx context.Context, token string) (*contract.SharedNoteResponse, apierror.ErrorResponse) {
	share, apierr := s.findByToken(ctx, token)
	if apierr != nil {
		return nil, apierr
	}

	return &contract.SharedNoteResponse{
		Note:    toNoteResponse(share.Note),
		CanEdit: share.CanEdit,
	}, nil
}

// CreateEmailShare records that the owner shared a note with an address.
// No mail is sent.
func (s *ShareService) CreateEmailShare(ctx context.Context, ownerID, noteID string, req *contract.EmailShareRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if req.ToUserEmail == "" {
		return apierror.RecipientRequiredError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return apierror.FromValidationError(valerr)
	}

	note, apierr := s.findOwnedNote(ctx, ownerID, noteID)
	if apierr != nil {
		return apierr
	}

	recipient := strings.ToLower(req.ToUserEmail)
	share := &entity.Share{
		ID:            uid.Generate(),
		NoteID:        note.ID,
		FromAccountID: ownerID,
		ToEmail:       &recipient,
		CanEdit:       req.CanEdit,
		CreatedAt:     utils.NowUTC(),
	}

	if err := s.ShareRepo.Create(ctx, share); err != nil {
		log.Errorf("failed to save email share for note %s: %v", note.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *ShareService) findOwnedNote(ctx context.Context, ownerID, noteID string) (*entity.Note, apierror.ErrorResponse) {
	note, err := s.NoteRepo.FindByOwner(ctx, ownerID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return note, nil
}

// findByToken resolves a link token. Shares whose note was deleted are
// reported as invalid links.
func (s *ShareService) findByToken(ctx context.Context, token string) (*entity.Share, apierror.ErrorResponse) {
	share, err := s.ShareRepo.FindByToken(ctx, token)
	if err != nil {
		log.Errorf("failed to resolve link token: %v", err)
		return nil, apierror.InternalServerError
	}

	if share == nil || !share.IsPublicLink() || share.Note == nil {
		return nil, apierror.InvalidLinkError
	}
	return share, nil
}

func newLinkToken(random io.Reader) (string, error) {
	buf := make([]byte, linkTokenBytes)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
