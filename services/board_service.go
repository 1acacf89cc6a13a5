package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"dispatchboard/entity"
	"dispatchboard/repository"
)

// saveDebounce is the quiet period before the full board state is written to
// the shared store; any further change within the window restarts the timer.
const saveDebounce = 800 * time.Millisecond

// BoardSnapshot is the full board as served to operators. Drivers ride along
// for display but are not part of the persisted state.
type BoardSnapshot struct {
	BoardID string          `json:"boardId"`
	Drivers []entity.Driver `json:"drivers"`
	entity.BoardState
}

// BoardService is the single source of truth for one board. Every mutation
// goes through its mutex, so each update is atomic and timer callbacks always
// observe the latest state.
type BoardService struct {
	mu      sync.Mutex
	boardID string
	repo    *repository.BoardStateRepository

	drivers []entity.Driver
	state   entity.BoardState

	debounce  time.Duration
	saveTimer *time.Timer
	closed    bool

	// onChange is invoked (outside the lock) with a fresh snapshot after every
	// committed mutation; the websocket hub hangs off this.
	onChange func(BoardSnapshot)
}

func NewBoardService(boardID string, repo *repository.BoardStateRepository) *BoardService {
	return &BoardService{
		boardID:  boardID,
		repo:     repo,
		debounce: saveDebounce,
		state: entity.BoardState{
			DriverGroups: entity.DefaultDriverGroups(),
			Yards:        entity.DefaultYards(),
		},
	}
}

// OnChange registers the post-commit notification hook.
func (s *BoardService) OnChange(fn func(BoardSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// persistedState mirrors entity.BoardState with raw config sections so a
// malformed or legacy blob can be validated instead of half-decoded.
type persistedState struct {
	Groups              []entity.ChassisGroup `json:"groups"`
	Trucks              []entity.Truck        `json:"trucks"`
	Containers          []entity.Container    `json:"containers"`
	TempContainers      []entity.Container    `json:"tempContainers"`
	CompletedContainers []entity.Container    `json:"completedContainers"`
	DriverGroups        json.RawMessage       `json:"driverGroups"`
	Yards               []entity.YardConfig   `json:"yards"`
}

// Load restores the board from the shared store, replacing each collection
// present in the blob wholesale. An absent or empty blob (first run) leaves
// the local defaults untouched.
func (s *BoardService) Load() error {
	row, err := s.repo.Load(s.boardID)
	if err != nil {
		return err
	}
	if row == nil || row.State == "" {
		return nil
	}

	var saved persistedState
	if err := json.Unmarshal([]byte(row.State), &saved); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if saved.Groups != nil {
		s.state.Groups = saved.Groups
	}
	if saved.Trucks != nil {
		s.state.Trucks = saved.Trucks
	}
	if saved.Containers != nil {
		s.state.Containers = saved.Containers
	}
	if saved.TempContainers != nil {
		s.state.TempContainers = saved.TempContainers
	}
	if saved.CompletedContainers != nil {
		s.state.CompletedContainers = saved.CompletedContainers
	}
	if saved.DriverGroups != nil {
		s.state.DriverGroups = entity.ParseDriverGroupConfig(saved.DriverGroups)
	}
	if saved.Yards != nil {
		s.state.Yards = entity.NormalizeYards(saved.Yards)
	}
	return nil
}

// Snapshot returns a deep copy of the current board.
func (s *BoardService) Snapshot() BoardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *BoardService) snapshotLocked() BoardSnapshot {
	groups := make([]entity.ChassisGroup, len(s.state.Groups))
	for i, g := range s.state.Groups {
		if g.Container != nil {
			c := *g.Container
			g.Container = &c
		}
		groups[i] = g
	}
	st := entity.BoardState{
		Groups:              groups,
		Trucks:              append([]entity.Truck(nil), s.state.Trucks...),
		Containers:          append([]entity.Container(nil), s.state.Containers...),
		TempContainers:      append([]entity.Container(nil), s.state.TempContainers...),
		CompletedContainers: append([]entity.Container(nil), s.state.CompletedContainers...),
		DriverGroups:        s.state.DriverGroups,
		Yards:               append([]entity.YardConfig(nil), s.state.Yards...),
	}
	return BoardSnapshot{
		BoardID:    s.boardID,
		Drivers:    append([]entity.Driver(nil), s.drivers...),
		BoardState: st,
	}
}

// commit schedules a debounced save and notifies listeners. Callers hold mu.
func (s *BoardService) commit() {
	if s.closed {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.debounce, s.flush)

	if s.onChange != nil {
		snap := s.snapshotLocked()
		fn := s.onChange
		go fn(snap)
	}
}

// flush writes the whole state out. Failure is logged, never retried and
// never surfaced; the next edit schedules the next attempt.
func (s *BoardService) flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	blob, err := json.Marshal(s.state)
	id := s.boardID
	s.mu.Unlock()

	if err != nil {
		log.Printf("marshal board state error: %v", err)
		return
	}
	if err := s.repo.Save(id, string(blob)); err != nil {
		log.Printf("save board state error: %v", err)
	}
}

// Close cancels the pending save; a timer firing after teardown is a no-op.
func (s *BoardService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
}

// ClearCompleted empties the completed list (the 全削除 action).
func (s *BoardService) ClearCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CompletedContainers = nil
	s.commit()
}

// UpdateYards replaces the yard configuration from a settings action.
func (s *BoardService) UpdateYards(yards []entity.YardConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Yards = entity.NormalizeYards(yards)
	s.commit()
}

// UpdateDriverGroups replaces the driver-group configuration.
func (s *BoardService) UpdateDriverGroups(cfg entity.DriverGroupConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DriverGroups = cfg.Normalize()
	s.commit()
}

// Drivers returns the session's driver list.
func (s *BoardService) Drivers() []entity.Driver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Driver(nil), s.drivers...)
}

// LoadedContainerForDriver resolves the driver and the container currently
// loaded on that driver's chassis, for notification mails.
func (s *BoardService) LoadedContainerForDriver(driverID string) (entity.Driver, entity.Container, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var driver *entity.Driver
	for i := range s.drivers {
		if s.drivers[i].ID == driverID {
			driver = &s.drivers[i]
			break
		}
	}
	if driver == nil {
		return entity.Driver{}, entity.Container{}, false
	}
	g := s.groupForDriver(driverID)
	if g == nil || g.Container == nil {
		return entity.Driver{}, entity.Container{}, false
	}
	return *driver, *g.Container, true
}

// ---------------- lookup helpers (callers hold mu) ----------------

func (s *BoardService) findGroup(id string) *entity.ChassisGroup {
	for i := range s.state.Groups {
		if s.state.Groups[i].ID == id {
			return &s.state.Groups[i]
		}
	}
	return nil
}

func (s *BoardService) findTruck(id string) *entity.Truck {
	for i := range s.state.Trucks {
		if s.state.Trucks[i].ID == id {
			return &s.state.Trucks[i]
		}
	}
	return nil
}

func (s *BoardService) groupForDriver(driverID string) *entity.ChassisGroup {
	for i := range s.state.Groups {
		loc := s.state.Groups[i].Location
		if loc.Type == entity.ChassisAtDriver && loc.DriverID == driverID {
			return &s.state.Groups[i]
		}
	}
	return nil
}

func (s *BoardService) truckForDriver(driverID string) *entity.Truck {
	for i := range s.state.Trucks {
		loc := s.state.Trucks[i].Location
		if loc.Type == entity.TruckAtDriver && loc.DriverID == driverID {
			return &s.state.Trucks[i]
		}
	}
	return nil
}

func (s *BoardService) groupAtGridSlot(yardID, laneID string, pos entity.Position) *entity.ChassisGroup {
	for i := range s.state.Groups {
		loc := s.state.Groups[i].Location
		if loc.Type == entity.ChassisInPool && loc.YardID == yardID && loc.LaneID == laneID && loc.Pos == pos {
			return &s.state.Groups[i]
		}
	}
	return nil
}
