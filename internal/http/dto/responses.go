package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type RestoreResponse struct {
	Content     any `json:"content"`
	FromVersion int `json:"from_version"`
	NewVersion  int `json:"new_version"`
}

type CleanupResponse struct {
	RevisionsDeleted int64 `json:"revisions_deleted"`
	AuditRowsDeleted int64 `json:"audit_rows_deleted"`
}
