// internal/models/application.go
package models

import "time"

// Application statuses. Records are created pending and never transitioned here.
const (
	StatusPending   = "pending"
	StatusReviewing = "reviewing"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

type Application struct {
	ApplicationID   string    `json:"application_id" bson:"application_id"`
	FirstName       string    `json:"first_name" bson:"first_name"`
	LastName        string    `json:"last_name" bson:"last_name"`
	Email           string    `json:"email" bson:"email"`
	Phone           string    `json:"phone" bson:"phone"`
	Position        string    `json:"position" bson:"position"`
	ExperienceYears int       `json:"experience_years" bson:"experience_years"`
	Education       string    `json:"education" bson:"education"`
	Skills          string    `json:"skills" bson:"skills"`
	CoverLetter     string    `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	Resume          *Resume   `json:"resume,omitempty" bson:"resume,omitempty"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// Resume is the optional uploaded file. Data is kept in the record unless
// the file was written to object storage, in which case ObjectKey is set.
type Resume struct {
	Filename    string `json:"filename" bson:"filename"`
	ContentType string `json:"content_type" bson:"content_type"`
	Size        int64  `json:"size" bson:"size"`
	Data        []byte `json:"-" bson:"data,omitempty"`
	ObjectKey   string `json:"object_key,omitempty" bson:"object_key,omitempty"`
}

// FullName joins first and last name the way HR reads it.
func (a *Application) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// ResumeFilename returns the uploaded file name or "" when none was attached.
func (a *Application) ResumeFilename() string {
	if a.Resume == nil {
		return ""
	}
	return a.Resume.Filename
}
