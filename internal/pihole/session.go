package pihole

// SIDHeader is the header carrying the session identifier on API requests.
const SIDHeader = "X-FTL-SID"

// Session represents an authenticated Pi-hole API session.
type Session struct {
	SID      string
	Validity float64
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginSession struct {
	SID      *string  `json:"sid"`
	Validity *float64 `json:"validity"`
}

type loginResponse struct {
	Session *loginSession `json:"session"`
}
