package entity

type TruckLocationType string

const (
	TruckSpare    TruckLocationType = "spare"
	TruckAtDriver TruckLocationType = "driver"
)

// TruckLocation is either the spare pool or a driver assignment.
type TruckLocation struct {
	Type     TruckLocationType `json:"type"`
	DriverID string            `json:"driverId,omitempty"`
}

func SpareLocation() TruckLocation { return TruckLocation{Type: TruckSpare} }

func TruckDriverLocation(driverID string) TruckLocation {
	return TruckLocation{Type: TruckAtDriver, DriverID: driverID}
}

type Truck struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"` // 車両_番号, shown on the card
	CarNo    string        `json:"carNo,omitempty"`
	Location TruckLocation `json:"location"`
}
