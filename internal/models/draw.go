package models

import "time"

// DrawRounds is how many numbers a random draw generates. Only the last one
// decides the outcome.
const DrawRounds = 5

// DrawResult is the outcome of resolving a winning slot.
type DrawResult struct {
	WinningSlot int          `json:"winningSlot"`
	Void        bool         `json:"void"`
	Winner      *Participant `json:"winner,omitempty"`
}

// RandomDraw holds every number generated by a random draw and the resolution
// of the last one.
type RandomDraw struct {
	Generated []int      `json:"generated"`
	Result    DrawResult `json:"result"`
}

// LastResult is the state retained by the draw engine. When Drawn is false
// neither WinningSlot nor Winner carry meaning.
type LastResult struct {
	Drawn       bool         `json:"drawn"`
	WinningSlot int          `json:"winningSlot"`
	Winner      *Participant `json:"winner,omitempty"`
}

// DrawRecord is one entry in a session's draw history.
type DrawRecord struct {
	Sequence  int        `json:"sequence"`
	Result    DrawResult `json:"result"`
	Generated []int      `json:"generated,omitempty"`
	DrawnAt   time.Time  `json:"drawnAt"`
}

// Snapshot aggregates the counts shown on the statistics panel.
type Snapshot struct {
	TotalSlots       int     `json:"totalSlots"`
	OccupiedCount    int     `json:"occupiedCount"`
	FreeCount        int     `json:"freeCount"`
	ParticipantCount int     `json:"participantCount"`
	OccupancyPercent float64 `json:"occupancyPercent"`
}
