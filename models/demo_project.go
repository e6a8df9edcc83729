package models

// DemoProject is an uploaded document (usually a PDF) shown on the demo page.
type DemoProject struct {
	ID          uint    `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title       string  `json:"title" db:"title" gorm:"column:title;type:varchar(100);not null"`
	Description string  `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	DocURL      *string `json:"doc_url" db:"doc_url" gorm:"column:doc_url;type:text"`
}

func (DemoProject) TableName() string {
	return "demo_projects"
}
