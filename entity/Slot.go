package entity

import "errors"

// EntityKind identifies what is being dragged.
type EntityKind string

const (
	KindChassis   EntityKind = "chassis"
	KindTruck     EntityKind = "truck"
	KindContainer EntityKind = "container"
)

// EntityRef is a typed reference to a draggable board entity.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// SlotKind tags the drop-target variant. Targets are addressed structurally,
// never by parsing an encoded id string.
type SlotKind string

const (
	SlotYardPool      SlotKind = "yardPool"      // single-mode free pool of a yard
	SlotYardGrid      SlotKind = "yardGrid"      // lane × front/middle/back cell
	SlotDriverTruck   SlotKind = "driverTruck"   // a driver's vehicle slot
	SlotDriverChassis SlotKind = "driverChassis" // a driver's chassis slot
	SlotSpareTrucks   SlotKind = "spareTrucks"
	SlotTempHold      SlotKind = "tempHold"
	SlotCompleted     SlotKind = "completed"
	SlotOwnDate       SlotKind = "ownDate"      // back to the delivery list under the container's own date
	SlotDeliveryLane  SlotKind = "deliveryLane" // (dateKey, yardGroup) lane
)

// Slot is the tagged drop-target variant. Only the fields relevant to Kind are set.
type Slot struct {
	Kind      SlotKind `json:"kind"`
	YardID    string   `json:"yardId,omitempty"`
	LaneID    string   `json:"laneId,omitempty"`
	Pos       Position `json:"pos,omitempty"`
	DriverID  string   `json:"driverId,omitempty"`
	DateKey   string   `json:"dateKey,omitempty"`
	YardGroup string   `json:"yardGroup,omitempty"`
}

// Validate checks that the fields required by the slot kind are present.
func (s Slot) Validate() error {
	switch s.Kind {
	case SlotYardPool:
		if s.YardID == "" {
			return errors.New("yardPool slot requires yardId")
		}
	case SlotYardGrid:
		if s.YardID == "" || s.LaneID == "" {
			return errors.New("yardGrid slot requires yardId and laneId")
		}
		switch s.Pos {
		case PosFront, PosMiddle, PosBack:
		default:
			return errors.New("yardGrid slot requires pos front/middle/back")
		}
	case SlotDriverTruck, SlotDriverChassis:
		if s.DriverID == "" {
			return errors.New("driver slot requires driverId")
		}
	case SlotDeliveryLane:
		if s.DateKey == "" {
			return errors.New("deliveryLane slot requires dateKey")
		}
	case SlotSpareTrucks, SlotTempHold, SlotCompleted, SlotOwnDate:
	default:
		return errors.New("unknown slot kind")
	}
	return nil
}
