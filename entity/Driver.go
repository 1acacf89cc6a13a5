package entity

// DriverKind classifies a driver as company-owned (自車) or outsourced (傭車).
type DriverKind string

const (
	DriverOwned      DriverKind = "owned"
	DriverOutsourced DriverKind = "outsourced"
	DriverUnknown    DriverKind = "unknown"
)

// Driver is loaded once per board session from the record backend and is
// never reconciled afterwards; absence from a later feed does not remove it.
type Driver struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	BaseTruckNo string     `json:"baseTruckNo,omitempty"`
	Kind        DriverKind `json:"kind"`
	GroupName   string     `json:"groupName,omitempty"`
}
