// internal/models/position.go
package models

type Position struct {
	Title        string `json:"title" bson:"title"`
	Department   string `json:"department" bson:"department"`
	Description  string `json:"description" bson:"description"`
	Requirements string `json:"requirements" bson:"requirements"`
	IsActive     bool   `json:"is_active" bson:"is_active"`
}
