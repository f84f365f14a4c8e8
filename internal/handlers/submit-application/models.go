// internal/handlers/submit-application/models.go
package submitapplication

// Input holds the raw form fields. experience_years stays a string until
// validation so a bad value yields a field error instead of a bind error.
type Input struct {
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Position        string `form:"position"`
	ExperienceYears string `form:"experience_years"`
	Education       string `form:"education"`
	Skills          string `form:"skills"`
	CoverLetter     string `form:"cover_letter"`
}

type Output struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
	LineOAURL     string `json:"line_oa_url,omitempty"`
}

const SuccessMessage = "สมัครงานสำเร็จ! กรุณาเพิ่ม LINE OA เพื่อติดตามสถานะการสมัครงาน"

// Metric statuses
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)
