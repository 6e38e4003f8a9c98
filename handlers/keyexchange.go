// Package handlers implements the broker's HTTP API (C6): the two
// key-exchange endpoint versions, the status page, and the landing page.
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wgkex/broker/models"
	"github.com/wgkex/broker/mqttbroker"
	"github.com/wgkex/broker/state"
	"github.com/wgkex/broker/wgkey"
)

// Publisher is the subset of *mqttbroker.Client the HTTP handlers need.
// Defined here so tests can inject a fake rather than dial a real broker.
type Publisher interface {
	Publish(topic, payload string)
}

// Deps bundles everything a handler needs: the shared stores, the MQTT
// publisher, and the configured domain allow-list. Set once at startup via
// Init.
type Deps struct {
	Domains map[string]struct{}
	Metrics *state.MetricsStore
	Data    *state.DataStore
	Brokers *state.BrokerStore
	MQTT    Publisher
}

var deps *Deps

// Init wires the handler package to its dependencies. Must be called before
// the HTTP server starts serving.
func Init(d *Deps) {
	deps = d
}

func parseKeyExchange(c *gin.Context) (models.KeyExchange, error) {
	var req models.KeyExchange
	if err := c.ShouldBindJSON(&req); err != nil {
		return models.KeyExchange{}, fmt.Errorf("invalid request body: %w", err)
	}

	pubkey, err := wgkey.ValidatePubkey(req.PublicKey)
	if err != nil {
		return models.KeyExchange{}, err
	}
	req.PublicKey = pubkey

	if !wgkey.IsValidDomain(req.Domain, deps.Domains) {
		return models.KeyExchange{}, &wgkey.ErrUnknownDomain{Domain: req.Domain}
	}

	return req, nil
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, models.NewErrorResponse(err))
}

// KeyExchangeV1 handles POST /api/v1/wg/key/exchange: validate, publish,
// done. No worker selection.
func KeyExchangeV1(c *gin.Context) {
	req, err := parseKeyExchange(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	log.Printf("wg_api_v1_key_exchange: domain=%s key=%s", req.Domain, req.PublicKey)
	deps.MQTT.Publish(mqttbroker.KeyExchangeTopic(req.Domain), req.PublicKey)

	c.JSON(http.StatusOK, gin.H{"Message": "OK"})
}

// KeyExchangeV2 handles POST /api/v2/wg/key/exchange: validate, publish,
// select the least-loaded worker for the domain, interpolate its peer
// count, and return its endpoint. The key is published before selection
// completes — if selection then fails, the key has already gone out, and
// a worker daemon that receives a key with no matching session treats it
// as a no-op.
func KeyExchangeV2(c *gin.Context) {
	req, err := parseKeyExchange(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	log.Printf("wg_api_v2_key_exchange: domain=%s key=%s", req.Domain, req.PublicKey)
	deps.MQTT.Publish(mqttbroker.KeyExchangeTopic(req.Domain), req.PublicKey)

	best, diff, currentPeers := deps.Metrics.GetBestWorker(req.Domain)
	if best == "" {
		log.Printf("no worker online for domain %s", req.Domain)
		respondError(c, http.StatusBadRequest, fmt.Errorf(
			"no gateway online for this domain, please check the domain value and try again later"))
		return
	}

	// Interpolate: workers publish peer counts on a coarse cadence, so
	// between updates we approximate new joiners by the number of online
	// brokers, assuming uniform load distribution across the fleet. The
	// read (Get) and the write (Update) each take the store's lock on their
	// own, so two concurrent requests for the same worker can read the same
	// base value and one increment is lost; that's tolerated since the real
	// count is reconciled on the worker's next metrics publish.
	onlineBrokers := deps.Brokers.CountOnline()
	currentMetrics := deps.Metrics.Get(best)
	currentPeersDomain := currentMetrics.DomainMetrics[req.Domain][state.ConnectedPeersMetric]
	deps.Metrics.Update(best, req.Domain, state.ConnectedPeersMetric, currentPeersDomain+onlineBrokers)

	log.Printf("chose worker %s with %d connected clients (diff %d)", best, currentPeers, diff)

	endpoint, ok := deps.Data.Get(best, req.Domain)
	if !ok {
		log.Printf("couldn't get worker endpoint data for %s/%s", best, req.Domain)
		respondError(c, http.StatusInternalServerError, fmt.Errorf("could not get gateway data"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"Endpoint": models.EndpointResponse{
		Address:    endpoint.ExternalAddress,
		Port:       strconv.Itoa(endpoint.Port),
		AllowedIPs: []string{endpoint.LinkAddress},
		PublicKey:  endpoint.PublicKey,
	}})
}
