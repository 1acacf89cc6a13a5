package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"dispatchboard/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	containers []entity.Container
	patches    []entity.ContainerPatch

	discoverCalls atomic.Int64
	patchCalls    atomic.Int64
}

func (f *fakeSource) FetchNewContainers(ctx context.Context) ([]entity.Container, error) {
	f.discoverCalls.Add(1)
	return f.containers, nil
}

func (f *fakeSource) FetchContainerPatches(ctx context.Context) ([]entity.ContainerPatch, error) {
	f.patchCalls.Add(1)
	return f.patches, nil
}

func stepPtr(n int) *entity.ContainerStep {
	s := entity.ContainerStep(n)
	return &s
}

func TestUpsertDeliveryAppendsAndOverwrites(t *testing.T) {
	b := newTestBoard(t)

	b.UpsertDelivery([]entity.Container{
		{ID: "c1", Size: entity.Size20, Date: "11/28", No: "ABCD1234567", Step: 1},
	})
	require.Len(t, b.Snapshot().Containers, 1)

	// A refetched row replaces the delivery entry wholesale, step included.
	b.UpsertDelivery([]entity.Container{
		{ID: "c1", Size: entity.Size20, Date: "11/28", No: "ABCD1234567"},
		{ID: "c2", Size: entity.Size40, Date: "11/29"},
	})

	snap := b.Snapshot()
	require.Len(t, snap.Containers, 2)
	assert.Equal(t, entity.ContainerStep(0), snap.Containers[0].Step)
	assert.Equal(t, "c2", snap.Containers[1].ID)
}

func TestUpsertDeliveryOnlyTouchesDeliveryLists(t *testing.T) {
	b := newTestBoard(t)
	b.state.CompletedContainers = []entity.Container{{ID: "done", Worker4: "佐藤"}}

	// A row the source has not flagged as consumed yet comes back after
	// completion. It reappears in delivery until the flag flips; the
	// completed entry itself is untouched.
	b.UpsertDelivery([]entity.Container{{ID: "done", Date: "11/28"}})

	snap := b.Snapshot()
	require.Len(t, snap.Containers, 1)
	assert.Equal(t, "done", snap.Containers[0].ID)
	require.Len(t, snap.CompletedContainers, 1)
	assert.Equal(t, "佐藤", snap.CompletedContainers[0].Worker4)

	// A completion patch then collapses the duplicate back to one entry.
	b.ApplyPatches([]entity.ContainerPatch{{ID: "done", Worker4: "佐藤"}})
	snap = b.Snapshot()
	assert.Empty(t, snap.Containers)
	require.Len(t, snap.CompletedContainers, 1)
}

func TestApplyPatchesMergesEverywhere(t *testing.T) {
	b := newTestBoard(t)
	loaded := entity.Container{ID: "onChassis", Size: entity.Size20, DropoffYard: "川口"}
	b.state.Groups = []entity.ChassisGroup{{ID: "g1", Size: entity.Size20, Container: &loaded}}
	b.state.Containers = []entity.Container{{ID: "inList", No: "OLDU0000000"}}
	b.state.TempContainers = []entity.Container{{ID: "held"}}

	b.ApplyPatches([]entity.ContainerPatch{
		{ID: "onChassis", Step: stepPtr(3), DropoffYard: "大井"},
		{ID: "inList", Step: stepPtr(1), No: "NEWU1111111"},
		{ID: "held", Step: stepPtr(2)},
		{ID: "ghost", Step: stepPtr(4)},
	})

	snap := b.Snapshot()
	assert.Equal(t, entity.ContainerStep(3), snap.Groups[0].Container.Step)
	assert.Equal(t, "大井", snap.Groups[0].Container.DropoffYard)
	assert.Equal(t, entity.ContainerStep(1), snap.Containers[0].Step)
	assert.Equal(t, "NEWU1111111", snap.Containers[0].No)
	assert.Equal(t, entity.ContainerStep(2), snap.TempContainers[0].Step)
	// The unknown id left no trace anywhere.
	assert.Len(t, snap.Containers, 1)
	assert.Empty(t, snap.CompletedContainers)
}

func TestCompletionPatchUnloadsChassis(t *testing.T) {
	b := newTestBoard(t)
	loaded := entity.Container{ID: "c1", Size: entity.Size20, Step: 3}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "g1", Size: entity.Size20, Container: &loaded, Location: entity.ChassisDriverLocation("d1")},
	}

	b.ApplyPatches([]entity.ContainerPatch{
		{ID: "c1", Step: stepPtr(4), Worker4: "82 佐藤"},
	})

	snap := b.Snapshot()
	assert.Nil(t, snap.Groups[0].Container)
	assert.Equal(t, entity.ChassisDriverLocation("d1"), snap.Groups[0].Location)
	require.Len(t, snap.CompletedContainers, 1)
	done := snap.CompletedContainers[0]
	assert.Equal(t, entity.ContainerStep(4), done.Step)
	assert.Equal(t, "82 佐藤", done.Worker4)
}

func TestCompletionPatchMovesListEntries(t *testing.T) {
	b := newTestBoard(t)
	b.state.Containers = []entity.Container{{ID: "c1", Date: "11/28"}}
	b.state.TempContainers = []entity.Container{{ID: "c2"}}

	b.ApplyPatches([]entity.ContainerPatch{
		{ID: "c1", Worker4: "鈴木"},
		{ID: "c2", Worker4: "高橋"},
	})

	snap := b.Snapshot()
	assert.Empty(t, snap.Containers)
	assert.Empty(t, snap.TempContainers)
	require.Len(t, snap.CompletedContainers, 2)

	// A second completion for an already completed container just re-applies.
	b.ApplyPatches([]entity.ContainerPatch{{ID: "c1", Worker4: "田中"}})
	snap = b.Snapshot()
	require.Len(t, snap.CompletedContainers, 2)
	assert.Equal(t, "田中", snap.CompletedContainers[0].Worker4)
}

func TestContainerLifecycleDiscoverLoadComplete(t *testing.T) {
	b := newTestBoard(t)
	b.state.Trucks = []entity.Truck{{ID: "t1", Location: entity.TruckDriverLocation("D1")}}
	b.state.Groups = []entity.ChassisGroup{
		{ID: "C5", Size: entity.Size20, Location: entity.ChassisDriverLocation("D1")},
	}

	b.UpsertDelivery([]entity.Container{
		{ID: "82", Date: "11/28", PickupYard: "青海A-1", PickupYardGroup: "青海", Size: entity.Size20},
	})
	require.Len(t, b.Snapshot().Containers, 1)

	ok := b.Place(
		entity.EntityRef{Kind: entity.KindContainer, ID: "82"},
		entity.Slot{Kind: entity.SlotDriverChassis, DriverID: "D1"},
	)
	require.True(t, ok)
	snap := b.Snapshot()
	assert.Empty(t, snap.Containers)
	require.NotNil(t, snap.Groups[0].Container)

	b.ApplyPatches([]entity.ContainerPatch{{ID: "82", Worker4: "W9"}})

	snap = b.Snapshot()
	assert.Nil(t, snap.Groups[0].Container)
	require.Len(t, snap.CompletedContainers, 1)
	assert.Equal(t, "W9", snap.CompletedContainers[0].Worker4)
	assert.Equal(t, "青海", snap.CompletedContainers[0].PickupYardGroup)
}

func TestReconcilerRunsImmediatelyAndStops(t *testing.T) {
	b := newTestBoard(t)
	src := &fakeSource{
		containers: []entity.Container{{ID: "c1", Date: "11/28"}},
	}

	r := NewReconciler(b, src)
	r.discoverEvery = 5 * time.Millisecond
	r.patchEvery = 5 * time.Millisecond
	r.Start()

	require.Eventually(t, func() bool {
		return src.discoverCalls.Load() >= 2 && src.patchCalls.Load() >= 2
	}, time.Second, time.Millisecond)

	r.Stop()
	after := src.discoverCalls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, src.discoverCalls.Load())

	assert.Len(t, b.Snapshot().Containers, 1)
}
