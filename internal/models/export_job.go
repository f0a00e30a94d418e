package models

import "time"

// Export job states. A job moves from pending to exactly one terminal state
// and is never deleted by the service.
const (
	JobPending  = "pending"
	JobComplete = "complete"
	JobFailed   = "failed"
)

// ExportJob is the polling record for an asynchronous statement export.
// Result holds a JSON array of generated file paths on completion, or the
// failure message.
type ExportJob struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID    string    `gorm:"column:task_id;size:36;not null;uniqueIndex" json:"task_id"`
	Status    string    `gorm:"column:status;size:20;not null;default:pending" json:"status"`
	Result    string    `gorm:"column:result;type:text" json:"result"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ExportJob) TableName() string {
	return "background_tasks"
}
