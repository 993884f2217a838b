package types

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *Meta     `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	Total int `json:"total"`
}

func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func OKList(data any, total int) APIResponse {
	return APIResponse{Success: true, Data: data, Meta: &Meta{Total: total}}
}

func Fail(code, message string) APIResponse {
	return APIResponse{Success: false, Error: &APIError{Code: code, Message: message}}
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        UserView `json:"user"`
}
