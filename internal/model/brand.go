package model

// Brand 品牌
type Brand struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"size:512" json:"logo_url"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

func (Brand) TableName() string {
	return "brands"
}
