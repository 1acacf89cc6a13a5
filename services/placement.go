package services

import "dispatchboard/entity"

// Place moves one entity to one slot, enforcing the board rules. It returns
// false when the drop is rejected; the board is unchanged in that case.
func (s *BoardService) Place(ref entity.EntityRef, slot entity.Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ok bool
	switch ref.Kind {
	case entity.KindChassis:
		ok = s.placeChassis(ref.ID, slot)
	case entity.KindTruck:
		ok = s.placeTruck(ref.ID, slot)
	case entity.KindContainer:
		ok = s.placeContainer(ref.ID, slot)
	}
	if ok {
		s.commit()
	}
	return ok
}

func (s *BoardService) placeChassis(id string, slot entity.Slot) bool {
	g := s.findGroup(id)
	if g == nil {
		return false
	}

	switch slot.Kind {
	case entity.SlotYardPool:
		// Free pools have no capacity limit.
		g.Location = entity.PoolLocation(slot.YardID, entity.SingleLaneID, entity.PosFront)
		return true

	case entity.SlotYardGrid:
		if occ := s.groupAtGridSlot(slot.YardID, slot.LaneID, slot.Pos); occ != nil && occ.ID != g.ID {
			return false
		}
		g.Location = entity.PoolLocation(slot.YardID, slot.LaneID, slot.Pos)
		return true

	case entity.SlotDriverChassis:
		// A chassis can only hang off a driver who has a vehicle.
		if s.truckForDriver(slot.DriverID) == nil {
			return false
		}
		prev := g.Location
		if occ := s.groupForDriver(slot.DriverID); occ != nil && occ.ID != g.ID {
			// Swap: the displaced chassis takes the mover's old spot.
			occ.Location = prev
		}
		g.Location = entity.ChassisDriverLocation(slot.DriverID)
		return true

	case entity.SlotTempHold:
		return s.detachTo(g, &s.state.TempContainers)

	case entity.SlotCompleted:
		return s.detachTo(g, &s.state.CompletedContainers)
	}
	return false
}

// detachTo unloads the group's container into dst. The chassis itself stays put.
func (s *BoardService) detachTo(g *entity.ChassisGroup, dst *[]entity.Container) bool {
	if g.Container == nil {
		return false
	}
	*dst = append(*dst, *g.Container)
	g.Container = nil
	return true
}

func (s *BoardService) placeTruck(id string, slot entity.Slot) bool {
	t := s.findTruck(id)
	if t == nil {
		return false
	}

	switch slot.Kind {
	case entity.SlotSpareTrucks:
		t.Location = entity.SpareLocation()
		return true

	case entity.SlotDriverTruck:
		// Unconditional reassignment, last write wins if contested.
		t.Location = entity.TruckDriverLocation(slot.DriverID)
		return true
	}
	return false
}

func (s *BoardService) placeContainer(id string, slot entity.Slot) bool {
	// Containers loaded on a chassis are not draggable; only list members are.
	c, remove := s.takeContainer(id)
	if c == nil {
		return false
	}

	switch slot.Kind {
	case entity.SlotOwnDate:
		remove()
		s.state.Containers = append(s.state.Containers, *c)
		return true

	case entity.SlotDeliveryLane:
		// Lanes are keyed by delivery date; a container never changes its date.
		if slot.DateKey != c.Date {
			return false
		}
		remove()
		moved := *c
		if slot.YardGroup != "" {
			moved.PickupYardGroup = slot.YardGroup
		}
		s.state.Containers = append(s.state.Containers, moved)
		return true

	case entity.SlotTempHold:
		remove()
		s.state.TempContainers = append(s.state.TempContainers, *c)
		return true

	case entity.SlotCompleted:
		remove()
		s.state.CompletedContainers = append(s.state.CompletedContainers, *c)
		return true

	case entity.SlotDriverChassis:
		g := s.groupForDriver(slot.DriverID)
		if g == nil || g.Container != nil || g.Size != c.Size {
			return false
		}
		remove()
		loaded := *c
		g.Container = &loaded
		return true
	}
	return false
}

// takeContainer locates a container in the delivery, temp or completed lists
// and returns it with a closure that removes it from its current list. The
// closure must be called before any list is appended to.
func (s *BoardService) takeContainer(id string) (*entity.Container, func()) {
	lists := []*[]entity.Container{
		&s.state.Containers,
		&s.state.TempContainers,
		&s.state.CompletedContainers,
	}
	for _, list := range lists {
		for i := range *list {
			if (*list)[i].ID == id {
				c := (*list)[i]
				l, idx := list, i
				return &c, func() {
					*l = append((*l)[:idx], (*l)[idx+1:]...)
				}
			}
		}
	}
	return nil, nil
}
