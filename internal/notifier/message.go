// internal/notifier/message.go
package notifier

import (
	"fmt"
	"strings"
	"time"

	"dygs-jobs/internal/models"
)

// Bangkok does not observe DST, so a fixed zone avoids depending on tzdata.
var ictZone = time.FixedZone("ICT", 7*60*60)

// SNS rejects subjects of 100 characters or more.
const subjectMaxRunes = 99

// Message is the channel-neutral HR alert for one application.
type Message struct {
	ApplicationID string
	Subject       string
	Text          string
}

func BuildMessage(app *models.Application) Message {
	coverLetter := "ไม่มี"
	if strings.TrimSpace(app.CoverLetter) != "" {
		coverLetter = "มี"
	}
	resume := "ไม่มี"
	if name := app.ResumeFilename(); name != "" {
		resume = name
	}

	var b strings.Builder
	b.WriteString("📋 ใบสมัครงานใหม่จาก DYGS\n\n")
	fmt.Fprintf(&b, "🆔 Application ID: %s\n", app.ApplicationID)
	fmt.Fprintf(&b, "👤 ชื่อ: %s\n", app.FullName())
	fmt.Fprintf(&b, "📧 อีเมล: %s\n", app.Email)
	fmt.Fprintf(&b, "📱 เบอร์โทร: %s\n", app.Phone)
	fmt.Fprintf(&b, "💼 ตำแหน่ง: %s\n", app.Position)
	fmt.Fprintf(&b, "📈 ประสบการณ์: %d ปี\n", app.ExperienceYears)
	fmt.Fprintf(&b, "🎓 การศึกษา: %s\n", app.Education)
	fmt.Fprintf(&b, "🛠️ ทักษะ: %s\n", app.Skills)
	fmt.Fprintf(&b, "📝 จดหมายสมัครงาน: %s\n", coverLetter)
	fmt.Fprintf(&b, "📎 Resume: %s\n\n", resume)
	fmt.Fprintf(&b, "⏰ เวลาสมัคร: %s", thaiTimestamp(app.CreatedAt))

	return Message{
		ApplicationID: app.ApplicationID,
		Subject:       truncateRunes(fmt.Sprintf("DYGS ใบสมัครงานใหม่: %s (%s)", app.FullName(), app.Position), subjectMaxRunes),
		Text:          b.String(),
	}
}

// thaiTimestamp renders d/m/yyyy HH:MM:SS in Bangkok time with the
// Buddhist-era year, the way th-TH locales display dates.
func thaiTimestamp(t time.Time) string {
	local := t.In(ictZone)
	return fmt.Sprintf("%d/%d/%d %s", local.Day(), int(local.Month()), local.Year()+543, local.Format("15:04:05"))
}
