package entity

import "strings"

// ContainerStep is the workflow ordinal, 0 = not started, 1-4 = ①〜④.
type ContainerStep int

// Container is the only entity with a continuous external lifecycle. At any
// time it lives in exactly one of: the delivery lists, the temporary hold, the
// completed list, or attached to a chassis group.
type Container struct {
	ID              string        `json:"id"`
	Size            Size          `json:"size"`
	Date            string        `json:"date"` // delivery-date key, e.g. "11/28"
	ETA             string        `json:"eta"`
	PickupYardGroup string        `json:"pickupYardGroup"`
	PickupYard      string        `json:"pickupYard"`
	No              string        `json:"no"`
	Ship            string        `json:"ship"`
	Booking         string        `json:"booking"`
	DestAddress     string        `json:"destadd"`
	DestPhone       string        `json:"desttel"`
	KindCode        string        `json:"kindCode"`
	Destination     string        `json:"destination"`
	DropoffYard     string        `json:"dropoffYard"`
	Step            ContainerStep `json:"step,omitempty"`
	Worker4         string        `json:"worker4,omitempty"` // completion worker, non-empty means delivered
}

// ContainerPatch is a workflow update row from the record backend. Step is nil
// when the backend row has not been populated yet; such rows must be left
// unacknowledged for a later poll.
type ContainerPatch struct {
	ID          string         `json:"id"`
	No          string         `json:"no,omitempty"`
	DropoffYard string         `json:"dropoffYard,omitempty"`
	Step        *ContainerStep `json:"step,omitempty"`
	Worker4     string         `json:"worker4,omitempty"`
}

// Apply merges the supplied patch fields over the container's current values.
func (c *Container) Apply(p ContainerPatch) {
	if p.No != "" {
		c.No = p.No
	}
	if p.DropoffYard != "" {
		c.DropoffYard = p.DropoffYard
	}
	if p.Step != nil {
		c.Step = *p.Step
	}
	if w := strings.TrimSpace(p.Worker4); w != "" {
		c.Worker4 = w
	}
}

// Completed reports whether the patch carries a completion signal.
func (p ContainerPatch) Completed() bool {
	return strings.TrimSpace(p.Worker4) != ""
}
