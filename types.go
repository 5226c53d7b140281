package yandexid

// errorResponse is the provider's OAuth error body shape.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
