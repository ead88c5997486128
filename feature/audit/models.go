package audit

import "time"

// Outcome values for successful and unclassified failed operations. Failures
// of a known kind store the kind text instead (e.g. "remote object not found").
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Event is one journal row.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Bucket    string    `gorm:"size:255;index" json:"bucket"`
	Operation string    `gorm:"size:16" json:"operation"`
	Key       string    `gorm:"column:object_key;size:1024" json:"key"`
	LocalPath string    `gorm:"size:1024" json:"local_path,omitempty"`
	Outcome   string    `gorm:"size:64" json:"outcome"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	RayID     string    `gorm:"size:64" json:"ray_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the GORM table name.
func (Event) TableName() string {
	return "audit_events"
}
