package services

import (
	"testing"

	"dispatchboard/entity"
	"dispatchboard/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *repository.BoardStateRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.DispatchBoardState{}))
	return repository.NewBoardStateRepository(db)
}

func newTestBoard(t *testing.T) *BoardService {
	t.Helper()
	b := NewBoardService("test", newTestRepo(t))
	t.Cleanup(b.Close)
	return b
}

func chassisRef(id string) entity.EntityRef {
	return entity.EntityRef{Kind: entity.KindChassis, ID: id}
}

func truckRef(id string) entity.EntityRef {
	return entity.EntityRef{Kind: entity.KindTruck, ID: id}
}

func containerRef(id string) entity.EntityRef {
	return entity.EntityRef{Kind: entity.KindContainer, ID: id}
}

func TestPlaceChassisIntoYardPool(t *testing.T) {
	b := newTestBoard(t)
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Location: entity.PoolLocation("ohi", "lane1", entity.PosFront)},
		{ID: "g2", Size: entity.Size20, Location: entity.PoolLocation("kawaguchi", entity.SingleLaneID, entity.PosFront)},
	}

	// Free pools accept any number of chassis.
	ok := b.Place(chassisRef("g1"), entity.Slot{Kind: entity.SlotYardPool, YardID: "kawaguchi"})
	require.True(t, ok)

	snap := b.Snapshot()
	assert.Equal(t, entity.PoolLocation("kawaguchi", entity.SingleLaneID, entity.PosFront), snap.Groups[0].Location)
	assert.Equal(t, snap.Groups[0].Location, snap.Groups[1].Location)
}

func TestPlaceChassisGridSlotRejectsOccupied(t *testing.T) {
	b := newTestBoard(t)
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Location: entity.PoolLocation("ohi", "lane1", entity.PosFront)},
		{ID: "g2", Size: entity.Size20, Location: entity.PoolLocation("ohi", "lane2", entity.PosFront)},
	}

	target := entity.Slot{Kind: entity.SlotYardGrid, YardID: "ohi", LaneID: "lane1", Pos: entity.PosFront}
	ok := b.Place(chassisRef("g2"), target)
	require.False(t, ok)

	// The rejected mover did not move.
	snap := b.Snapshot()
	assert.Equal(t, entity.PoolLocation("ohi", "lane2", entity.PosFront), snap.Groups[1].Location)

	// A different cell of the same lane is fine.
	ok = b.Place(chassisRef("g2"), entity.Slot{Kind: entity.SlotYardGrid, YardID: "ohi", LaneID: "lane1", Pos: entity.PosBack})
	require.True(t, ok)

	// Re-dropping a chassis on its own cell is a no-op, not a rejection.
	ok = b.Place(chassisRef("g1"), target)
	assert.True(t, ok)
}

func TestPlaceChassisOnDriverRequiresTruck(t *testing.T) {
	b := newTestBoard(t)
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Location: entity.PoolLocation("ohi", "lane1", entity.PosFront)},
	}

	ok := b.Place(chassisRef("g1"), entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "d1"})
	require.False(t, ok)

	b.state.Trucks = []entity.Truck{{ID: "t1", Location: entity.TruckDriverLocation("d1")}}
	ok = b.Place(chassisRef("g1"), entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "d1"})
	require.True(t, ok)
	assert.Equal(t, entity.ChassisDriverLocation("d1"), b.Snapshot().Groups[0].Location)
}

func TestPlaceChassisOnOccupiedDriverSwaps(t *testing.T) {
	b := newTestBoard(t)
	origin := entity.PoolLocation("ohi", "lane3", entity.PosMiddle)
	b.state.Trucks = []entity.Truck{{ID: "t1", Location: entity.TruckDriverLocation("d1")}}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "mover", Size: entity.Size20, Location: origin},
		{ID: "occupant", Size: entity.Size40, Location: entity.ChassisDriverLocation("d1")},
	}

	ok := b.Place(chassisRef("mover"), entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "d1"})
	require.True(t, ok)

	snap := b.Snapshot()
	assert.Equal(t, entity.ChassisDriverLocation("d1"), snap.Groups[0].Location)
	// The displaced chassis inherited the mover's previous spot, so the
	// total number of chassis per location is unchanged.
	assert.Equal(t, origin, snap.Groups[1].Location)
}

func TestChassisDropOnHoldDetachesContainer(t *testing.T) {
	b := newTestBoard(t)
	loaded := entity.Container{ID: "c1", Size: entity.Size20, Date: "11/28"}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Container: &loaded, Location: entity.ChassisDriverLocation("d1")},
	}

	ok := b.Place(chassisRef("g1"), entity.Slot{Kind: entity.SlotTempHold})
	require.True(t, ok)

	snap := b.Snapshot()
	assert.Nil(t, snap.Groups[0].Container)
	// The chassis itself did not move.
	assert.Equal(t, entity.ChassisDriverLocation("d1"), snap.Groups[0].Location)
	require.Len(t, snap.TempContainers, 1)
	assert.Equal(t, "c1", snap.TempContainers[0].ID)

	// An empty chassis has nothing to detach.
	ok = b.Place(chassisRef("g1"), entity.Slot{Kind: entity.SlotCompleted})
	assert.False(t, ok)
}

func TestPlaceTruckMovesUnconditionally(t *testing.T) {
	b := newTestBoard(t)
	b.state.Trucks = []entity.Truck{
		{ID: "t1", Location: entity.TruckDriverLocation("d1")},
		{ID: "t2", Location: entity.SpareLocation()},
	}

	ok := b.Place(truckRef("t2"), entity.Slot{Kind: entity.SlotDriverTruck, DriverID: "d1"})
	require.True(t, ok)

	// Last write wins; the earlier assignment is not displaced.
	snap := b.Snapshot()
	assert.Equal(t, entity.TruckDriverLocation("d1"), snap.Trucks[0].Location)
	assert.Equal(t, entity.TruckDriverLocation("d1"), snap.Trucks[1].Location)

	ok = b.Place(truckRef("t2"), entity.Slot{Kind: entity.SlotSpareTrucks})
	require.True(t, ok)
	assert.Equal(t, entity.SpareLocation(), b.Snapshot().Trucks[1].Location)
}

func TestPlaceContainerOnChassis(t *testing.T) {
	b := newTestBoard(t)
	b.state.Trucks = []entity.Truck{{ID: "t1", Location: entity.TruckDriverLocation("d1")}}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Location: entity.ChassisDriverLocation("d1")},
	}
	b.state.Containers = []entity.Container{
		{ID: "c40", Size: entity.Size40, Date: "11/28"},
		{ID: "c20", Size: entity.Size20, Date: "11/28"},
		{ID: "c20b", Size: entity.Size20, Date: "11/29"},
	}

	target := entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "d1"}

	// Size mismatch is rejected.
	require.False(t, b.Place(containerRef("c40"), target))

	require.True(t, b.Place(containerRef("c20"), target))
	snap := b.Snapshot()
	require.NotNil(t, snap.Groups[0].Container)
	assert.Equal(t, "c20", snap.Groups[0].Container.ID)
	// The loaded container left the delivery list.
	assert.Len(t, snap.Containers, 2)

	// The chassis is occupied now.
	require.False(t, b.Place(containerRef("c20b"), target))

	// A driver without a chassis cannot take a container.
	require.False(t, b.Place(containerRef("c20b"), entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "d2"}))
}

func TestPlaceContainerDeliveryLaneKeepsDate(t *testing.T) {
	b := newTestBoard(t)
	b.state.Containers = []entity.Container{
		{ID: "c1", Size: entity.Size20, Date: "11/28", PickupYardGroup: "大井"},
	}

	// A lane under a different date is rejected; the date never changes.
	ok := b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotDeliveryLane, DateKey: "11/29", YardGroup: "青海"})
	require.False(t, ok)
	assert.Equal(t, "大井", b.Snapshot().Containers[0].PickupYardGroup)

	// Same date, new group.
	ok = b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotDeliveryLane, DateKey: "11/28", YardGroup: "青海"})
	require.True(t, ok)
	assert.Equal(t, "青海", b.Snapshot().Containers[0].PickupYardGroup)

	// Empty lane group keeps the container's own group.
	ok = b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotDeliveryLane, DateKey: "11/28"})
	require.True(t, ok)
	assert.Equal(t, "青海", b.Snapshot().Containers[0].PickupYardGroup)
}

func TestContainerLivesInExactlyOneCollection(t *testing.T) {
	b := newTestBoard(t)
	b.state.Containers = []entity.Container{{ID: "c1", Size: entity.Size20, Date: "11/28"}}

	count := func() int {
		snap := b.Snapshot()
		n := 0
		for _, list := range [][]entity.Container{snap.Containers, snap.TempContainers, snap.CompletedContainers} {
			for _, c := range list {
				if c.ID == "c1" {
					n++
				}
			}
		}
		return n
	}

	require.True(t, b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotTempHold}))
	assert.Equal(t, 1, count())

	require.True(t, b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotCompleted}))
	assert.Equal(t, 1, count())

	require.True(t, b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotOwnDate}))
	assert.Equal(t, 1, count())
	assert.Len(t, b.Snapshot().Containers, 1)
}

func TestLoadedContainerIsNotDraggable(t *testing.T) {
	b := newTestBoard(t)
	loaded := entity.Container{ID: "c1", Size: entity.Size20, Date: "11/28"}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Container: &loaded, Location: entity.ChassisDriverLocation("d1")},
	}

	ok := b.Place(containerRef("c1"), entity.Slot{Kind: entity.SlotTempHold})
	require.False(t, ok)
	assert.NotNil(t, b.Snapshot().Groups[0].Container)
}

func TestClearCompleted(t *testing.T) {
	b := newTestBoard(t)
	b.state.CompletedContainers = []entity.Container{{ID: "c1"}, {ID: "c2"}}

	b.ClearCompleted()
	assert.Empty(t, b.Snapshot().CompletedContainers)
}
