package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wgkex/broker/models"
)

func TestDataStorePutGet(t *testing.T) {
	s := NewDataStore()
	ep := models.WorkerEndpoint{
		ExternalAddress: "gw1.example",
		Port:            51820,
		LinkAddress:     "fe80::1/64",
		PublicKey:       "pubkey",
	}
	s.Put("gw1", "ffda", ep)

	got, ok := s.Get("gw1", "ffda")
	assert.True(t, ok)
	assert.Equal(t, ep, got)
}

func TestDataStoreMissing(t *testing.T) {
	s := NewDataStore()
	_, ok := s.Get("gw1", "ffda")
	assert.False(t, ok)
}

func TestDataStoreDistinctDomains(t *testing.T) {
	s := NewDataStore()
	s.Put("gw1", "ffda", models.WorkerEndpoint{ExternalAddress: "a"})
	s.Put("gw1", "berlin", models.WorkerEndpoint{ExternalAddress: "b"})

	a, _ := s.Get("gw1", "ffda")
	b, _ := s.Get("gw1", "berlin")
	assert.Equal(t, "a", a.ExternalAddress)
	assert.Equal(t, "b", b.ExternalAddress)
}
