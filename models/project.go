package models

// Project represents a portfolio entry. Read-only through the API.
type Project struct {
	ID          uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" db:"title" gorm:"column:title;type:varchar(100);not null"`
	Description string    `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	TechStack   *string   `json:"tech_stack" db:"tech_stack" gorm:"column:tech_stack;type:varchar(200)"`
	GithubLink  *string   `json:"github_link" db:"github_link" gorm:"column:github_link;type:varchar(200)"`
	DemoLink    *string   `json:"demo_link" db:"demo_link" gorm:"column:demo_link;type:varchar(200)"`
	ImageURL    ImageList `json:"images" db:"image_url" gorm:"column:image_url;type:text"`
}

func (Project) TableName() string {
	return "projects"
}
