package domain

import "time"

// Mode selects which rename transformation is active
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAdd     Mode = "add"
	ModeNumber  Mode = "number"
	ModeDelete  Mode = "delete"
)

// IsValid checks if the mode is a known value
func (m Mode) IsValid() bool {
	switch m {
	case ModeReplace, ModeAdd, ModeNumber, ModeDelete:
		return true
	}
	return false
}

// ReplaceParams replaces every occurrence of FromStr in the whole name
type ReplaceParams struct {
	FromStr string `json:"fromStr" mapstructure:"fromStr"`
	ToStr   string `json:"toStr" mapstructure:"toStr"`
}

// AddParams inserts text before or after the stem
type AddParams struct {
	Text     string `json:"text" mapstructure:"text"`
	IsPrefix bool   `json:"isPrefix" mapstructure:"isPrefix"`
}

// NumberParams inserts a zero-padded sequence number
type NumberParams struct {
	Start     int    `json:"start" mapstructure:"start"`
	Digits    int    `json:"digits" mapstructure:"digits"`
	Step      int    `json:"step" mapstructure:"step"`
	Separator string `json:"separator" mapstructure:"separator"`
	IsPrefix  bool   `json:"isPrefix" mapstructure:"isPrefix"`
}

// DeleteParams removes characters from the stem. StartPos is 1-based; when
// FromLeft is false it counts positions from the end of the stem.
type DeleteParams struct {
	StartPos int  `json:"startPos" mapstructure:"startPos"`
	Count    int  `json:"count" mapstructure:"count"`
	FromLeft bool `json:"fromLeft" mapstructure:"fromLeft"`
}

// Params holds one parameter set per mode; Mode selects which one applies.
// Keeping all four avoids losing operator input when switching modes.
type Params struct {
	Replace ReplaceParams `json:"replace" mapstructure:"replace"`
	Add     AddParams     `json:"add" mapstructure:"add"`
	Number  NumberParams  `json:"number" mapstructure:"number"`
	Delete  DeleteParams  `json:"delete" mapstructure:"delete"`
}

// DefaultParams returns the parameter defaults used before operator input
func DefaultParams() Params {
	return Params{
		Number: NumberParams{Start: 1, Digits: 3, Step: 1, Separator: "_", IsPrefix: true},
		Delete: DeleteParams{StartPos: 1, Count: 1, FromLeft: true},
	}
}

// RenameOp is one executed rename, recorded for undo
type RenameOp struct {
	OldPath string `json:"oldPath"`
	NewPath string `json:"newPath"`
}

// HistoryEntry records the successful operations of one batch
type HistoryEntry struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Operations []RenameOp `json:"operations"`
}

// BatchResult is the outcome of an execute or undo call. Per-file failures
// are accumulated here and never raised; callers must inspect Errors to
// detect partial failure.
type BatchResult struct {
	Success    bool       `json:"success"`
	Errors     []string   `json:"errors"`
	Operations []RenameOp `json:"operations"`
}

// ConflictReport lists prospective paths that more than one file would
// occupy after the transform
type ConflictReport struct {
	HasConflicts bool     `json:"hasConflicts"`
	Conflicts    []string `json:"conflicts"`
}

// Preset is a named, reusable (mode, params) pair
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mode      Mode      `json:"mode"`
	Params    Params    `json:"params"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
