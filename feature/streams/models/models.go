package models

import "time"

// Stream maps one row of the streams table.
type Stream struct {
	ID         uint64     `gorm:"column:id;primaryKey"`
	UserID     uint64     `gorm:"column:user_id"`
	ProviderID uint64     `gorm:"column:provider_id"`
	OrigName   string     `gorm:"column:orig_name"`
	Name       string     `gorm:"column:name"`
	TypeID     int        `gorm:"column:type_id"`
	Channel    string     `gorm:"column:channel"`
	TvgLogo    string     `gorm:"column:tvg_logo"`
	TvgID      string     `gorm:"column:tvg_id"`
	Active     bool       `gorm:"column:active"`
	UpdatedAt  *time.Time `gorm:"column:updated_at"`
}

// TableName returns the table backing the Stream model.
func (Stream) TableName() string {
	return "streams"
}

// Target is one user/provider pair a fixup run reconciles.
type Target struct {
	UserID     uint64 `json:"user_id"`
	ProviderID uint64 `json:"provider_id,omitempty"`
}

// RunReport contains the results of one fixup run.
type RunReport struct {
	RunID         string   `json:"run_id"`
	Targets       []Target `json:"targets"`
	Failed        int      `json:"failed"`
	Updated       int      `json:"updated"`
	Names         int      `json:"names"`
	Channels      int      `json:"channels"`
	Logos         int      `json:"logos"`
	TvgIDs        int      `json:"tvg_ids"`
	GeneratedAt   string   `json:"generated_at"`
	ExecutionTime string   `json:"execution_time"`
}
