package domain

type Note struct {
	ID        string   `json:"id"`
	MemberID  string   `json:"member_id"`
	EventID   string   `json:"event_id"`
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls,omitempty"`
	DateTime  string   `json:"date_time"`
}
