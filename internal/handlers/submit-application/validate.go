// internal/handlers/submit-application/validate.go
package submitapplication

import (
	"sort"
	"strconv"
	"strings"

	"dygs-jobs/internal/common/validation"
)

// validate trims the input in place and returns the parsed experience years
// together with any field errors.
func validate(input *Input) (int, []validation.ValidationError) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Position = strings.TrimSpace(input.Position)
	input.ExperienceYears = strings.TrimSpace(input.ExperienceYears)
	input.Education = strings.TrimSpace(input.Education)
	input.Skills = strings.TrimSpace(input.Skills)
	input.CoverLetter = strings.TrimSpace(input.CoverLetter)

	required := map[string]string{
		"first_name":       input.FirstName,
		"last_name":        input.LastName,
		"email":            input.Email,
		"phone":            input.Phone,
		"position":         input.Position,
		"experience_years": input.ExperienceYears,
		"education":        input.Education,
		"skills":           input.Skills,
	}

	var errs []validation.ValidationError
	for field, value := range required {
		if value == "" {
			errs = append(errs, validation.ValidationError{
				Field:   field,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	years := 0
	if input.ExperienceYears != "" {
		n, err := strconv.Atoi(input.ExperienceYears)
		if err != nil || n < 0 {
			errs = append(errs, validation.ValidationError{
				Field:   "experience_years",
				Message: "must be a whole number of zero or more",
				Code:    "INVALID_INTEGER",
			})
		}
		years = n
	}

	if input.Email != "" && !validation.ValidateEmail(input.Email) {
		errs = append(errs, validation.ValidationError{
			Field:   "email",
			Message: "invalid email address",
			Code:    "INVALID_EMAIL",
		})
	}

	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		errs = append(errs, validation.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
			Code:    "INVALID_PHONE",
		})
	}

	sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return years, errs
}
