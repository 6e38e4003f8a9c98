package state

import (
	"sync"

	"github.com/wgkex/broker/models"
)

type workerDomainKey struct {
	worker string
	domain string
}

// DataStore maps (worker, domain) to the endpoint a client should connect
// to for that worker/domain pair (C3).
type DataStore struct {
	mu        sync.RWMutex
	endpoints map[workerDomainKey]models.WorkerEndpoint
}

// NewDataStore returns an empty worker data store.
func NewDataStore() *DataStore {
	return &DataStore{endpoints: make(map[workerDomainKey]models.WorkerEndpoint)}
}

// Put stores (or replaces) the endpoint record for (worker, domain).
func (s *DataStore) Put(worker, domain string, endpoint models.WorkerEndpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints[workerDomainKey{worker, domain}] = endpoint
}

// Get returns the endpoint record for (worker, domain), if any.
func (s *DataStore) Get(worker, domain string) (models.WorkerEndpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ep, ok := s.endpoints[workerDomainKey{worker, domain}]
	return ep, ok
}
