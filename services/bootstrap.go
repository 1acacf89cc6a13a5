package services

import (
	"context"
	"log"

	"dispatchboard/entity"
)

// MasterSource feeds the startup load of driver, vehicle and chassis masters.
type MasterSource interface {
	FetchDrivers(ctx context.Context) ([]entity.Driver, error)
	FetchTrucks(ctx context.Context) ([]entity.Truck, error)
	FetchChassis(ctx context.Context) ([]entity.ChassisGroup, error)
}

// LoadMasterData pulls the three master lists and installs them on the board.
// Each fetch failure degrades to an empty list so the board still comes up.
func LoadMasterData(ctx context.Context, board *BoardService, src MasterSource) {
	drivers, err := src.FetchDrivers(ctx)
	if err != nil {
		log.Printf("fetch drivers error: %v", err)
		drivers = nil
	}
	trucks, err := src.FetchTrucks(ctx)
	if err != nil {
		log.Printf("fetch trucks error: %v", err)
		trucks = nil
	}
	groups, err := src.FetchChassis(ctx)
	if err != nil {
		log.Printf("fetch chassis error: %v", err)
		groups = nil
	}

	AssignBaseTrucks(trucks, drivers)
	board.Bootstrap(drivers, trucks, groups)
}

// AssignBaseTrucks seats each driver's registered vehicle. The first unclaimed
// truck whose label matches the driver's base number wins; a truck is handed
// out at most once.
func AssignBaseTrucks(trucks []entity.Truck, drivers []entity.Driver) {
	taken := make(map[string]bool, len(trucks))
	for _, d := range drivers {
		if d.BaseTruckNo == "" {
			continue
		}
		for i := range trucks {
			if taken[trucks[i].ID] || trucks[i].Label != d.BaseTruckNo {
				continue
			}
			trucks[i].Location = entity.TruckDriverLocation(d.ID)
			taken[trucks[i].ID] = true
			break
		}
	}
}

// Bootstrap installs the master lists. Drivers are session-only and always
// replaced; trucks and chassis groups defer to a restored board so saved
// placements survive a restart.
func (s *BoardService) Bootstrap(drivers []entity.Driver, trucks []entity.Truck, groups []entity.ChassisGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drivers = drivers
	if len(s.state.Trucks) == 0 {
		s.state.Trucks = trucks
	}
	if len(s.state.Groups) == 0 {
		s.state.Groups = groups
	}
	s.commit()
}
