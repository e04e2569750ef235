package model

import (
	"time"
)

// BaseModel 通用字段
// 商品/订单等资源按规格要求硬删除，不挂 gorm.DeletedAt
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
