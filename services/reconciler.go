package services

import (
	"context"
	"log"
	"sync"
	"time"

	"dispatchboard/entity"
)

// ContainerSource feeds the reconciler from the record backend.
type ContainerSource interface {
	FetchNewContainers(ctx context.Context) ([]entity.Container, error)
	FetchContainerPatches(ctx context.Context) ([]entity.ContainerPatch, error)
}

// Reconciler runs the two background polls: discovery of newly linked
// delivery orders and workflow patches for orders already on the board.
type Reconciler struct {
	board  *BoardService
	source ContainerSource

	discoverEvery time.Duration
	patchEvery    time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewReconciler(board *BoardService, source ContainerSource) *Reconciler {
	return &Reconciler{
		board:         board,
		source:        source,
		discoverEvery: 30 * time.Second,
		patchEvery:    10 * time.Second,
		stop:          make(chan struct{}),
	}
}

// Start launches both poll loops. Each runs once immediately, then on its
// interval. Fetch errors are logged and the loop continues.
func (r *Reconciler) Start() {
	r.wg.Add(2)
	go r.loop(r.discoverEvery, r.runDiscovery)
	go r.loop(r.patchEvery, r.runPatches)
}

// Stop halts the loops and waits for in-flight runs to return.
func (r *Reconciler) Stop() {
	close(r.stop)
	r.wg.Wait()
}

func (r *Reconciler) loop(every time.Duration, run func()) {
	defer r.wg.Done()
	run()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			run()
		}
	}
}

func (r *Reconciler) runDiscovery() {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	containers, err := r.source.FetchNewContainers(ctx)
	if err != nil {
		log.Printf("container discovery error: %v", err)
		return
	}
	if len(containers) > 0 {
		r.board.UpsertDelivery(containers)
	}
}

func (r *Reconciler) runPatches() {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	patches, err := r.source.FetchContainerPatches(ctx)
	if err != nil {
		log.Printf("container patch poll error: %v", err)
		return
	}
	if len(patches) > 0 {
		r.board.ApplyPatches(patches)
	}
}

// UpsertDelivery merges discovered containers into the delivery lists. A
// container already present there is replaced wholesale with the fetched
// record; unknown ids are appended. Only the delivery lists are consulted, so
// a row the source has not flagged as consumed yet can transiently reappear
// here after completion. Tolerated, the flag flip resolves it.
func (s *BoardService) UpsertDelivery(containers []entity.Container) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range containers {
		replaced := false
		for i := range s.state.Containers {
			if s.state.Containers[i].ID == c.ID {
				s.state.Containers[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			s.state.Containers = append(s.state.Containers, c)
		}
	}
	if len(containers) > 0 {
		s.commit()
	}
}

// ApplyPatches merges workflow updates into containers wherever they live,
// including ones loaded on a chassis. A patch carrying a completion signal
// moves the container to the completed list and unloads its chassis. Patches
// for ids not on the board are dropped.
func (s *BoardService) ApplyPatches(patches []entity.ContainerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, p := range patches {
		if p.Completed() {
			if s.completeContainer(p) {
				changed = true
			}
			continue
		}
		if s.patchInPlace(p) {
			changed = true
		}
	}
	if changed {
		s.commit()
	}
}

// patchInPlace applies the patch to every collection holding the id. Normally
// exactly one does; after a discovery/completion race the duplicate entries
// stay consistent with each other.
func (s *BoardService) patchInPlace(p entity.ContainerPatch) bool {
	matched := false
	lists := []*[]entity.Container{
		&s.state.Containers,
		&s.state.TempContainers,
		&s.state.CompletedContainers,
	}
	for _, list := range lists {
		for i := range *list {
			if (*list)[i].ID == p.ID {
				(*list)[i].Apply(p)
				matched = true
			}
		}
	}
	for i := range s.state.Groups {
		if c := s.state.Groups[i].Container; c != nil && c.ID == p.ID {
			c.Apply(p)
			matched = true
		}
	}
	return matched
}

// completeContainer applies the final patch and moves the container to the
// completed list. When it was loaded, the chassis is unloaded and keeps its
// position. The id is purged from the delivery and hold lists wholesale so a
// raced duplicate cannot linger.
func (s *BoardService) completeContainer(p entity.ContainerPatch) bool {
	var base *entity.Container
	for i := range s.state.Groups {
		g := &s.state.Groups[i]
		if g.Container != nil && g.Container.ID == p.ID {
			done := *g.Container
			base = &done
			g.Container = nil
			break
		}
	}

	lists := []*[]entity.Container{&s.state.Containers, &s.state.TempContainers}
	for _, list := range lists {
		kept := (*list)[:0]
		for _, c := range *list {
			if c.ID == p.ID {
				if base == nil {
					found := c
					base = &found
				}
				continue
			}
			kept = append(kept, c)
		}
		*list = kept
	}

	if base == nil {
		for i := range s.state.CompletedContainers {
			if s.state.CompletedContainers[i].ID == p.ID {
				s.state.CompletedContainers[i].Apply(p)
				return true
			}
		}
		return false
	}

	base.Apply(p)
	s.upsertCompleted(*base)
	return true
}

func (s *BoardService) upsertCompleted(c entity.Container) {
	for i := range s.state.CompletedContainers {
		if s.state.CompletedContainers[i].ID == c.ID {
			s.state.CompletedContainers[i] = c
			return
		}
	}
	s.state.CompletedContainers = append(s.state.CompletedContainers, c)
}
