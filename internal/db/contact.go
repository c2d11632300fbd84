package db

import "gorm.io/gorm"

// 联系人类别为闭合枚举，与前台目录页的分栏一一对应
const (
	CategoryOrganizer = "organizer"
	CategorySpeaker   = "speaker"
	CategoryDelegate  = "delegate"
)

// Contact 保存参会者提交的个人资料
// Approved/Rejected 两个布尔列共同表达 pending/approved/rejected 三态，
// 两者同时为 true 属于非法状态，由 service 层的状态映射保证不会写入
// PhotoURL 可能是对象存储的公开地址，也可能是内嵌的 data URL

type Contact struct {
	gorm.Model
	Category  string `gorm:"size:20;not null;index"`
	Name      string `gorm:"size:120;not null"`
	Title     string `gorm:"size:160;not null"`
	Bio       string `gorm:"type:text;not null"`
	Location  string `gorm:"size:160"`
	Notes     string `gorm:"type:text"`
	PhotoURL  string `gorm:"type:text"`
	Instagram string `gorm:"size:255"`
	Facebook  string `gorm:"size:255"`
	LinkedIn  string `gorm:"size:255"`
	YouTube   string `gorm:"size:255"`
	Twitter   string `gorm:"size:255"`
	Email     string `gorm:"size:255"`
	Website   string `gorm:"size:255"`
	Phone     string `gorm:"size:40"`
	Approved  bool   `gorm:"default:false;index"`
	Rejected  bool   `gorm:"default:false;index"`
}

// TableName 返回自定义表名
func (Contact) TableName() string {
	return "contacts"
}
