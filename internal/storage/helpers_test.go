// internal/storage/helpers_test.go
package storage

import (
	"time"

	"dygs-jobs/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var submittedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestApplication(id string) *models.Application {
	return &models.Application{
		ApplicationID:   id,
		FirstName:       "Somchai",
		LastName:        "Jaidee",
		Email:           "somchai@example.com",
		Phone:           "0812345678",
		Position:        "Delivery Driver",
		ExperienceYears: 3,
		Education:       "High School",
		Skills:          "Driving",
		Status:          models.StatusPending,
		CreatedAt:       submittedAt,
		UpdatedAt:       submittedAt,
	}
}
