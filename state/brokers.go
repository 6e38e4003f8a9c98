package state

import (
	"log"
	"sync"
)

// BrokerStore tracks the online/offline status of every broker peer seen on
// the MQTT backbone (C4). Entries are never deleted, only toggled (I4).
type BrokerStore struct {
	mu      sync.RWMutex
	brokers map[string]bool
}

// NewBrokerStore returns an empty broker liveness store.
func NewBrokerStore() *BrokerStore {
	return &BrokerStore{brokers: make(map[string]bool)}
}

// Set records broker's online status. A first-time "offline" for a broker
// we've never seen go online is ignored — it would just be noise from a
// broker we never observed coming up. Transitions are logged; repeated
// identical statuses are not (P5).
func (s *BrokerStore) Set(broker string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, known := s.brokers[broker]
	switch {
	case !known && online:
		s.brokers[broker] = true
	case !known && !online:
		// Unknown broker reporting offline: nothing to toggle.
	case known && current != online:
		if online {
			log.Printf("marking broker as online: %s", broker)
		} else {
			log.Printf("marking broker as offline: %s", broker)
		}
		s.brokers[broker] = online
	}
}

// CountOnline returns the number of brokers currently marked online.
func (s *BrokerStore) CountOnline() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, online := range s.brokers {
		if online {
			n++
		}
	}
	return n
}
