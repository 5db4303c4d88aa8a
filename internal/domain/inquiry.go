package domain

// Inquiry is a visitor's contact request about a residence. It lives for one request.
type Inquiry struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	ResidenceID int64  `json:"residence"`
}

// Email is a provider-neutral outbound message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Receipt is what the email provider returned for an accepted message.
type Receipt struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
