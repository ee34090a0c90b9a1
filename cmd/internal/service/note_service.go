package service

import (
	"context"

	"cloudnotes/cmd/internal/contract"
	"cloudnotes/cmd/internal/domain/entity"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/apierror"
	"cloudnotes/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoteRepository only exposes owner-scoped access: a note that belongs to
// someone else looks exactly like a note that does not exist.
type NoteRepository interface {
	FindAllByOwner(ctx context.Context, ownerID string) ([]*entity.Note, error)
	FindByOwner(ctx context.Context, ownerID, id string) (*entity.Note, error)
	Create(ctx context.Context, note *entity.Note) error
	UpdateByOwner(ctx context.Context, ownerID, id string, changes *entity.NoteChanges) (*entity.Note, error)
	DeleteByOwner(ctx context.Context, ownerID, id string) error
}

type NoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *NoteService {
	return &NoteService{
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

func (n *NoteService) ListNotes(ctx context.Context, ownerID string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		log.Errorf("failed to fetch notes of %s: %v", ownerID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *NoteService) GetNote(ctx context.Context, ownerID, noteID string) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByOwner(ctx, ownerID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *NoteService) CreateNote(ctx context.Context, ownerID string, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	note := &entity.Note{
		ID:        uid.Generate(),
		OwnerID:   ownerID,
		Title:     entity.DefaultNoteTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := n.NoteRepo.Create(ctx, note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

// UpdateNote replaces only the fields present in req.
func (n *NoteService) UpdateNote(ctx context.Context, ownerID, noteID string, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	changes := &entity.NoteChanges{
		Title:     req.Title,
		Content:   req.Content,
		UpdatedAt: utils.NowUTC(),
	}

	note, err := n.NoteRepo.UpdateByOwner(ctx, ownerID, noteID, changes)
	if err != nil {
		log.Errorf("failed to update note %s: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}
	return toNoteResponse(note), nil
}

// DeleteNote succeeds whether or not a note matched.
func (n *NoteService) DeleteNote(ctx context.Context, ownerID, noteID string) apierror.ErrorResponse {
	if err := n.NoteRepo.DeleteByOwner(ctx, ownerID, noteID); err != nil {
		log.Errorf("failed to delete note %s: %v", noteID, err)
		return apierror.InternalServerError
	}
	return nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:        note.ID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
		UpdatedAt: utils.FormatEpoch(note.UpdatedAt),
	}
}
