package contract

type LinkShareRequest struct {
	CanEdit bool `json:"canEdit"`
}

type LinkShareResponse struct {
	LinkToken string `json:"linkToken"`
	ShareID   string `json:"shareId"`
}

type EmailShareRequest struct {
	ToUserEmail string `json:"toUserEmail" validate:"required,email,max=254"`
	CanEdit     bool   `json:"canEdit"`
}

// SharedNoteResponse is what an authenticated holder of a link token sees.
type SharedNoteResponse struct {
	Note    *NoteResponse `json:"note"`
	CanEdit bool          `json:"canEdit"`
}

// PublicNote omits owner, id and edit permission.
type PublicNote struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt"`
}

type PublicNoteResponse struct {
	Note *PublicNote `json:"note"`
}
