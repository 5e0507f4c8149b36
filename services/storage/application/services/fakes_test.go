package services

import (
	"context"
	"fmt"
	"time"

	storagedomain "github.com/ghuser/cryostore/services/storage/domain"
	"github.com/ghuser/cryostore/services/storage/domain/models"
)

// memStore is an in-memory stand-in for the postgres repositories. It
// implements every repository interface the services consume so tests can
// exercise the full decision logic without a database.
type memStore struct {
	locations   map[int64]*models.Location
	samples     map[int64]*models.SampleItem
	assignments map[int64]*models.Assignment // keyed by sample item ID
	movements   []*models.Movement
	deletedIDs  []int64 // location deletion order, for bottom-up checks
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		locations:   make(map[int64]*models.Location),
		samples:     make(map[int64]*models.SampleItem),
		assignments: make(map[int64]*models.Assignment),
		nextID:      1000,
	}
}

func (m *memStore) addLocation(l *models.Location) *models.Location {
	if l.Version == 0 {
		l.Version = 1
	}
	m.locations[l.ID] = l
	return l
}

func (m *memStore) addSample(s *models.SampleItem) *models.SampleItem {
	if s.Status == "" {
		s.Status = models.SampleStatusStored
	}
	m.samples[s.ID] = s
	return s
}

func (m *memStore) assignSample(sampleID int64, ref models.LocationRef, coordinate string) {
	m.assignments[sampleID] = &models.Assignment{
		ID:                 m.nextID,
		SampleItemID:       sampleID,
		Location:           &ref,
		PositionCoordinate: coordinate,
		AssignedAt:         time.Now().UTC(),
		AssignedBy:         "setup",
		Version:            1,
	}
	m.nextID++
}

// LocationRepository

func (m *memStore) Create(_ context.Context, loc *models.Location) error {
	for _, l := range m.locations {
		if l.Code != loc.Code {
			continue
		}
		if loc.ParentID == nil && l.ParentID == nil {
			return fmt.Errorf("%w: room code %q", storagedomain.ErrDuplicateLocationCode, loc.Code)
		}
		if loc.ParentID != nil && l.ParentID != nil && *l.ParentID == *loc.ParentID {
			return fmt.Errorf("%w: code %q under parent %d", storagedomain.ErrDuplicateLocationCode, loc.Code, *loc.ParentID)
		}
	}
	loc.ID = m.nextID
	m.nextID++
	loc.Version = 1
	loc.CreatedAt = time.Now().UTC()
	loc.UpdatedAt = loc.CreatedAt
	m.locations[loc.ID] = loc
	return nil
}

func (m *memStore) Update(_ context.Context, loc *models.Location) error {
	stored, ok := m.locations[loc.ID]
	if !ok {
		return storagedomain.ErrLocationNotFound
	}
	if stored.Version != loc.Version {
		return fmt.Errorf("%w: location %d", storagedomain.ErrConcurrentModification, loc.ID)
	}
	loc.Version++
	loc.UpdatedAt = time.Now().UTC()
	m.locations[loc.ID] = loc
	return nil
}

// GetByID returns a copy, as a real repository would; in-place mutation by a
// caller must not leak into the store without going through Update.
func (m *memStore) GetByID(_ context.Context, id int64) (*models.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", storagedomain.ErrLocationNotFound, id)
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) FindByLevelAndCode(_ context.Context, level models.Level, code string) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range m.locations {
		if l.Level == level && l.Code == code {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) AncestorChain(_ context.Context, id int64) ([]*models.Location, error) {
	node, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", storagedomain.ErrLocationNotFound, id)
	}
	var chain []*models.Location
	for node != nil {
		chain = append([]*models.Location{node}, chain...)
		if node.ParentID == nil {
			break
		}
		node = m.locations[*node.ParentID]
	}
	return chain, nil
}

func (m *memStore) LoadSubtree(_ context.Context, rootID int64) (*models.Subtree, error) {
	if _, ok := m.locations[rootID]; !ok {
		return nil, fmt.Errorf("%w: id %d", storagedomain.ErrLocationNotFound, rootID)
	}
	in := map[int64]bool{rootID: true}
	nodes := []*models.Location{m.locations[rootID]}
	for changed := true; changed; {
		changed = false
		for _, l := range m.locations {
			if in[l.ID] || l.ParentID == nil || !in[*l.ParentID] {
				continue
			}
			in[l.ID] = true
			nodes = append(nodes, l)
			changed = true
		}
	}
	return models.NewSubtree(rootID, nodes), nil
}

func (m *memStore) ChildCount(_ context.Context, id int64) (int, error) {
	n := 0
	for _, l := range m.locations {
		if l.ParentID != nil && *l.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (m *memStore) Delete(_ context.Context, ids []int64) error {
	for _, id := range ids {
		for _, a := range m.assignments {
			if a.Location != nil && a.Location.ID == id {
				a.Location = nil
				a.PositionCoordinate = ""
			}
		}
		delete(m.locations, id)
		m.deletedIDs = append(m.deletedIDs, id)
	}
	return nil
}

// AssignmentRepository

func (m *memStore) GetBySampleItem(_ context.Context, sampleItemID int64) (*models.Assignment, error) {
	a, ok := m.assignments[sampleItemID]
	if !ok {
		return nil, fmt.Errorf("%w: sample %d", storagedomain.ErrAssignmentNotFound, sampleItemID)
	}
	return a, nil
}

func (m *memStore) Record(_ context.Context, a *models.Assignment, mv *models.Movement) error {
	if a.ID == 0 {
		a.ID = m.nextID
		m.nextID++
		a.Version = 1
	} else {
		a.Version++
	}
	m.assignments[a.SampleItemID] = a
	mv.ID = m.nextID
	m.nextID++
	m.movements = append(m.movements, mv)
	return nil
}

func (m *memStore) Dispose(_ context.Context, sample *models.SampleItem, a *models.Assignment, mv *models.Movement) error {
	sample.Status = models.SampleStatusDisposed
	m.samples[sample.ID] = sample
	if a != nil {
		m.assignments[a.SampleItemID] = a
	}
	if mv != nil {
		mv.ID = m.nextID
		m.nextID++
		m.movements = append(m.movements, mv)
	}
	return nil
}

func (m *memStore) CountDistinctSamples(_ context.Context, locationIDs []int64) (int, error) {
	in := make(map[int64]bool, len(locationIDs))
	for _, id := range locationIDs {
		in[id] = true
	}
	n := 0
	for _, a := range m.assignments {
		if a.Location != nil && in[a.Location.ID] {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CoordinateOccupied(_ context.Context, boxID int64, coordinate string, excludeSampleID int64) (bool, error) {
	for _, a := range m.assignments {
		if a.SampleItemID == excludeSampleID {
			continue
		}
		if a.Location != nil && a.Location.ID == boxID && a.PositionCoordinate == coordinate {
			return true, nil
		}
	}
	return false, nil
}

// MovementRepository

func (m *memStore) ListBySampleItem(_ context.Context, sampleItemID int64) ([]*models.Movement, error) {
	var out []*models.Movement
	for _, mv := range m.movements {
		if mv.SampleItemID == sampleItemID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// memSamples adapts memStore to SampleRepository; GetByID clashes with the
// location method of the same name, so the sample variant lives on a wrapper.
type memSamples struct {
	*memStore
}

func (m memSamples) GetByID(_ context.Context, id int64) (*models.SampleItem, error) {
	return m.sampleByID(id)
}

func (m *memStore) sampleByID(id int64) (*models.SampleItem, error) {
	s, ok := m.samples[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", storagedomain.ErrSampleNotFound, id)
	}
	return s, nil
}

func (m *memStore) FindByAccession(_ context.Context, accession string) ([]*models.SampleItem, error) {
	var out []*models.SampleItem
	for _, s := range m.samples {
		if s.AccessionNumber == accession {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) FindByExternalRef(_ context.Context, ref string) ([]*models.SampleItem, error) {
	var out []*models.SampleItem
	for _, s := range m.samples {
		if s.ExternalRef == ref {
			out = append(out, s)
		}
	}
	return out, nil
}
