package entity

import "time"

// BoardState is the full board snapshot written to and restored from the
// shared store. Drivers are intentionally absent: they are refetched from the
// record backend every session, never persisted.
type BoardState struct {
	Groups              []ChassisGroup    `json:"groups"`
	Trucks              []Truck           `json:"trucks"`
	Containers          []Container       `json:"containers"`          // delivery lists
	TempContainers      []Container       `json:"tempContainers"`      // temporary hold
	CompletedContainers []Container       `json:"completedContainers"` // completed
	DriverGroups        DriverGroupConfig `json:"driverGroups"`
	Yards               []YardConfig      `json:"yards"`
}

// DispatchBoardState is the shared-store row, one JSON blob per board.
type DispatchBoardState struct {
	BoardID   string    `gorm:"primaryKey;size:64" json:"boardId"`
	State     string    `gorm:"type:text" json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
}
