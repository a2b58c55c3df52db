package reconcile

import "strings"

// DefaultTable is the stream table reconciled when Options.Table is empty.
const DefaultTable = "streams"

// DefaultBatchSize bounds one update chunk when Options.BatchSize is zero.
const DefaultBatchSize = 1000

// Field identifies one reconcilable stream attribute.
type Field string

const (
	// FieldName is the user-editable display name.
	FieldName Field = "name"
	// FieldChannel is the channel number.
	FieldChannel Field = "channel"
	// FieldLogo is the tvg-logo URL.
	FieldLogo Field = "logo"
	// FieldTvgID is the EPG channel id.
	FieldTvgID Field = "tvgid"
)

// Column returns the database column the field converges.
func (f Field) Column() string {
	switch f {
	case FieldLogo:
		return "tvg_logo"
	case FieldTvgID:
		return "tvg_id"
	default:
		return string(f)
	}
}

// FieldSet is a set of reconcilable fields, used for exclusions.
type FieldSet map[Field]struct{}

// Has reports whether the field is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// ParseFields parses a comma-separated field list into a FieldSet.
// Entries are case-insensitive; "tvg_id" is accepted as an alias for
// "tvgid". Unknown entries are dropped.
func ParseFields(list string) FieldSet {
	set := make(FieldSet)
	for _, entry := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(entry)) {
		case string(FieldName):
			set[FieldName] = struct{}{}
		case string(FieldChannel):
			set[FieldChannel] = struct{}{}
		case string(FieldLogo), "tvg_logo":
			set[FieldLogo] = struct{}{}
		case string(FieldTvgID), "tvg_id":
			set[FieldTvgID] = struct{}{}
		}
	}
	return set
}

// Row is the projection of one stream record loaded for a pass.
// Only the columns a pass reads are populated.
type Row struct {
	ID       uint64
	OrigName string
	Name     string
	TypeID   int
	Channel  string
	TvgLogo  string
	TvgID    string
}

// Update schedules one row's reconciled field to a new value.
type Update struct {
	RowID uint64
	Value string
}

// Options control a reconciliation run.
type Options struct {
	// Table is the stream table name. Empty means DefaultTable.
	Table string
	// BatchSize bounds one update chunk. Zero means DefaultBatchSize.
	BatchSize int
	// Ignore holds fields excluded from reconciliation. An ignored
	// field's pass is skipped entirely, including its row load.
	Ignore FieldSet
	// DryRun computes and counts updates without applying them.
	DryRun bool
}

// Summary aggregates per-field update counts for one run.
type Summary struct {
	// Names is the number of display name updates applied.
	Names int `json:"names"`
	// Channels is the number of channel number updates applied.
	Channels int `json:"channels"`
	// Logos is the number of tvg-logo updates applied.
	Logos int `json:"logos"`
	// TvgIDs is the number of EPG id updates applied.
	TvgIDs int `json:"tvg_ids"`
}

// Total returns the total number of row updates applied.
func (s Summary) Total() int {
	return s.Names + s.Channels + s.Logos + s.TvgIDs
}
