package contract

type NoteResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NoteRequest is used for both create and update. Absent fields are nil:
// create fills in defaults, update leaves them untouched.
type NoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}
