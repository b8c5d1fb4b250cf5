package models

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	FullName       string `json:"full_name" binding:"required,min=2,max=100"`
	Institution    string `json:"institution"`
	Phone          string `json:"phone"`
	RegistrationID string `json:"registration_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type AdminAuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UploadedFileInfo struct {
	OriginalName string `json:"original_name"`
	FileName     string `json:"file_name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	Path         string `json:"path"`
	Key          string `json:"key"`
	UploadedAt   string `json:"uploaded_at"`
}

// SubmitAbstractRequest carries the intake payload. Required-field checks
// run in the service so a single error can name every missing field.
type SubmitAbstractRequest struct {
	Title            string             `json:"title"`
	PresenterName    string             `json:"presenter_name"`
	InstitutionName  string             `json:"institution_name"`
	PresentationType string             `json:"presentation_type"`
	Category         string             `json:"category"`
	AbstractContent  string             `json:"abstract_content"`
	CoAuthors        string             `json:"co_authors"`
	RegistrationID   string             `json:"registration_id"`
	UploadedFiles    []UploadedFileInfo `json:"uploaded_files"`
}

type UpdateAbstractRequest struct {
	Title            string `json:"title"`
	PresenterName    string `json:"presenter_name"`
	InstitutionName  string `json:"institution_name"`
	PresentationType string `json:"presentation_type"`
	Category         string `json:"category"`
	AbstractContent  string `json:"abstract_content"`
	CoAuthors        string `json:"co_authors"`
}

type UpdateStatusRequest struct {
	Status   AbstractStatus `json:"status" binding:"required"`
	Comments string         `json:"comments"`
}

type BulkUpdateStatusRequest struct {
	IDs      []uint         `json:"ids" binding:"required,min=1"`
	Status   AbstractStatus `json:"status" binding:"required"`
	Comments string         `json:"comments"`
}

// BulkUpdateResult reports per-id outcomes of a bulk transition. Partial
// failure is an expected result, not an error.
type BulkUpdateResult struct {
	Succeeded      []uint `json:"succeeded"`
	Failed         []uint `json:"failed"`
	SucceededCount int    `json:"succeeded_count"`
	FailedCount    int    `json:"failed_count"`
}

type AbstractListParams struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Limit    int    `form:"limit,default=100"`
}

type UploadResult struct {
	UploadedFiles []UploadedFileInfo `json:"uploaded_files"`
	Errors        []UploadError      `json:"errors"`
	TotalFiles    int                `json:"total_files"`
}

type UploadError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}
