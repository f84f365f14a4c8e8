// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title"],
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "is_active": {"type": "boolean"}
    }
  }
}`

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantValid bool
		wantField string
	}{
		{
			name:      "valid array",
			document:  `[{"title":"IT Support","is_active":true}]`,
			wantValid: true,
		},
		{
			name:      "missing title",
			document:  `[{"is_active":true}]`,
			wantValid: false,
			wantField: "0",
		},
		{
			name:      "wrong type",
			document:  `[{"title":"IT Support","is_active":"yes"}]`,
			wantValid: false,
			wantField: "0.is_active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateDocument(itemSchema, []byte(tt.document))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantField != "" {
				fields := make([]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					fields = append(fields, e.Field)
				}
				assert.Contains(t, fields, tt.wantField, "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestValidateDocument_Malformed(t *testing.T) {
	_, err := ValidateDocument(itemSchema, []byte(`[{`))
	assert.Error(t, err)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("s@x.com"))
	assert.True(t, ValidateEmail("somchai.j+jobs@example.co.th"))
	assert.False(t, ValidateEmail("somchai"))
	assert.False(t, ValidateEmail("somchai@localhost"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("0812345678"))
	assert.True(t, ValidatePhone("+66 81 234 5678"))
	assert.True(t, ValidatePhone("(02) 123-4567"))
	assert.True(t, ValidatePhone("1234"))
	assert.False(t, ValidatePhone("081-CALL-ME"))
	assert.False(t, ValidatePhone(""))
}
