package service

import "github.com/google/uuid"

// IDMapper plans new ids for a copy operation before anything is
// written. Cross-references inside the copied subgraph (a device and
// its index page reference each other) can then be remapped
// consistently regardless of creation order.
type IDMapper struct {
    ids map[string]string
}

func NewIDMapper() *IDMapper {
    return &IDMapper{ids: make(map[string]string)}
}

// AssignID reserves a fresh id for sourceID. Assigning the same
// source twice keeps the first reservation.
func (m *IDMapper) AssignID(sourceID string) string {
    if id, ok := m.ids[sourceID]; ok {
        return id
    }
    id := uuid.NewString()
    m.ids[sourceID] = id
    return id
}

// GetNewID resolves the id reserved for sourceID.
func (m *IDMapper) GetNewID(sourceID string) (string, bool) {
    id, ok := m.ids[sourceID]
    return id, ok
}
