package domain

// Event scopes all items, orders, expenses and notes to one named
// festival period. Events are created by the host and never modified
// or deleted afterwards.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Year      int32  `json:"year"`
	ImageURL  string `json:"image_url"`
	CreatedOn string `json:"created_on"`
}
