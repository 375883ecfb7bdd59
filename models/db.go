package models

import (
	"gorm.io/gorm"
)

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Activity{},
		&Platform{},
		&Gender{},
		&Serie{},
		&Season{},
		&Episode{},
	}
}

// AutoMigrate 只进行表结构迁移，不删除现有数据
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
