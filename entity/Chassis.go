package entity

// Size is the container/chassis size class.
type Size string

const (
	Size20 Size = "20"
	Size40 Size = "40"
)

// AxleKind is the chassis axle/type classifier (closed set).
type AxleKind string

const (
	Axle1      AxleKind = "1"
	Axle2      AxleKind = "2"
	Axle3      AxleKind = "3"
	AxleMG     AxleKind = "MG"
	Axle2Stack AxleKind = "2stack"
	AxleBoth   AxleKind = "both" // 兼用
)

// Position is a cell inside a gridded yard lane.
type Position string

const (
	PosFront  Position = "front"
	PosMiddle Position = "middle"
	PosBack   Position = "back"
)

type ChassisLocationType string

const (
	ChassisInPool   ChassisLocationType = "pool"
	ChassisAtDriver ChassisLocationType = "driver"
)

// ChassisLocation is either a yard pool/grid slot or a driver assignment.
type ChassisLocation struct {
	Type     ChassisLocationType `json:"type"`
	YardID   string              `json:"yardId,omitempty"`
	LaneID   string              `json:"laneId,omitempty"`
	Pos      Position            `json:"pos,omitempty"`
	DriverID string              `json:"driverId,omitempty"`
}

func PoolLocation(yardID, laneID string, pos Position) ChassisLocation {
	return ChassisLocation{Type: ChassisInPool, YardID: yardID, LaneID: laneID, Pos: pos}
}

func ChassisDriverLocation(driverID string) ChassisLocation {
	return ChassisLocation{Type: ChassisAtDriver, DriverID: driverID}
}

// ChassisExtra carries descriptive metadata from the chassis record.
type ChassisExtra struct {
	CarNo     string `json:"carNo,omitempty"`
	SizeLabel string `json:"sizeLabel,omitempty"` // "20F" / "40F"
	KindLabel string `json:"kindLabel,omitempty"` // "3軸" etc.
	Note      string `json:"note,omitempty"`
}

// ChassisGroup is the trailer unit. It exclusively owns at most one container;
// a container may only be attached when sizes match. Size is fixed at creation.
type ChassisGroup struct {
	ID           string          `json:"id"`
	ChassisLabel string          `json:"chassisLabel"`
	Size         Size            `json:"size"`
	Axle         AxleKind        `json:"axle"`
	Container    *Container      `json:"container,omitempty"`
	Location     ChassisLocation `json:"location"`
	Extra        ChassisExtra    `json:"extra"`
}
