package models

// Substep 项目任务的子步骤, 顺序即插入顺序
type Substep struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TaskID    uint   `gorm:"not null;index" json:"taskId"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
}

func (Substep) TableName() string {
	return "substeps"
}
