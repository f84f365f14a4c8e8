// internal/positions/catalog.go
package positions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dygs-jobs/internal/common/validation"
	"dygs-jobs/internal/models"
)

const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "department", "is_active"],
    "properties": {
      "title":        {"type": "string", "minLength": 1},
      "department":   {"type": "string", "minLength": 1},
      "description":  {"type": "string"},
      "requirements": {"type": "string"},
      "is_active":    {"type": "boolean"}
    },
    "additionalProperties": false
  }
}`

// DefaultCatalog is the position list served when no other source is
// configured, and the seed for empty databases.
func DefaultCatalog() []models.Position {
	return []models.Position{
		{
			Title:        "Logistics Coordinator",
			Department:   "Operations",
			Description:  "จัดการและประสานงานการขนส่งสินค้า",
			Requirements: "ประสบการณ์ 2-3 ปี, ภาษาอังกฤษดี",
			IsActive:     true,
		},
		{
			Title:        "Warehouse Manager",
			Department:   "Warehouse",
			Description:  "จัดการคลังสินค้าและทีมงาน",
			Requirements: "ประสบการณ์ 5+ ปี, ภาวะผู้นำ",
			IsActive:     true,
		},
		{
			Title:        "Delivery Driver",
			Department:   "Transportation",
			Description:  "ขับรถส่งสินค้าในพื้นที่",
			Requirements: "ใบขับขี่, ร่างกายแข็งแรง",
			IsActive:     true,
		},
		{
			Title:        "Customer Service",
			Department:   "Sales",
			Description:  "ให้บริการลูกค้าและประสานงาน",
			Requirements: "ประสบการณ์ 1-2 ปี, การสื่อสารดี",
			IsActive:     true,
		},
		{
			Title:        "IT Support",
			Department:   "IT",
			Description:  "ดูแลระบบคอมพิวเตอร์และเครือข่าย",
			Requirements: "ความรู้ IT, การแก้ไขปัญหา",
			IsActive:     true,
		},
	}
}

// LoadCatalog reads a JSON array of positions and validates it before use.
func LoadCatalog(path string) ([]models.Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]models.Position, error) {
	result, err := validation.ValidateDocument(catalogSchema, data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid catalog: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	var catalog []models.Position
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}
