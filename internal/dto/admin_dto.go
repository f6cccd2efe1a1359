package dto

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId,omitempty"`
}

type AdminLoginResponse struct {
	Success  bool    `json:"success"`
	DeviceID *string `json:"deviceId"`
}

type AdminSessionResponse struct {
	Authenticated bool `json:"authenticated"`
}
