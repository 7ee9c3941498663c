package contact

// Submission represents a contact form submission. The honeypot field is a
// hidden form input that real users never fill; any value marks the request
// as automated.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot"`
}

// SendResponse is the uniform response body for the send-email endpoint.
// Business failures keep HTTP 200 and signal through Success; Debug carries
// the underlying error only outside production.
type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Debug   string `json:"debug,omitempty"`
}
