package mqttbroker

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/wgkex/broker/models"
	"github.com/wgkex/broker/state"
	"github.com/wgkex/broker/wgkey"
)

// Topic schemes from the broker/worker wire contract (§4.5, §6).
const (
	topicMetricsWildcard = "wireguard-metrics/#"
	topicWorkerStatus    = "wireguard/worker/+/status"
	topicWorkerData      = "wireguard/worker/+/+/data"
	topicBrokerStatus    = "wireguard/broker/+/status"
)

// patternMetrics etc. are the ":name"-templated equivalents of the MQTT
// wildcard topics above, used to extract the variable path segments once a
// message has arrived. Kept separate from the subscribe-time wildcard
// strings because paho's "+"/"#" syntax isn't positional.
const (
	patternMetrics      = "wireguard-metrics/:domain/:worker/:metric"
	patternWorkerStatus = "wireguard/worker/:worker/status"
	patternWorkerData   = "wireguard/worker/:worker/:domain/data"
	patternBrokerStatus = "wireguard/broker/:broker/status"
)

// Router demultiplexes inbound MQTT messages across the four topic shapes
// the broker understands (C5), writing into the shared stores. It has no
// dependency on the transport: Route can be driven directly in tests.
type Router struct {
	Domains map[string]struct{}
	Metrics *state.MetricsStore
	Data    *state.DataStore
	Brokers *state.BrokerStore
	Verbose bool
}

// NewRouter builds a Router over the given stores and domain allow-list.
func NewRouter(domains map[string]struct{}, metrics *state.MetricsStore, data *state.DataStore, brokers *state.BrokerStore, verbose bool) *Router {
	return &Router{Domains: domains, Metrics: metrics, Data: data, Brokers: brokers, Verbose: verbose}
}

// SubscribeAll registers every topic pattern the router understands on the
// given MQTT client. Call once per connection (connections re-subscribe on
// reconnect automatically via paho's resume-subscriptions behavior).
func (r *Router) SubscribeAll(c *Client) error {
	subs := []string{topicMetricsWildcard, topicWorkerStatus, topicWorkerData, topicBrokerStatus}
	for _, topic := range subs {
		if err := c.Subscribe(topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			r.Route(msg.Topic(), msg.Payload())
		}); err != nil {
			return err
		}
	}
	return nil
}

// Route dispatches a single (topic, payload) pair to the matching handler.
// Each topic is handled independently; there is no ordering guarantee
// between topics (§4.5).
func (r *Router) Route(topic string, payload []byte) {
	if r.Verbose {
		log.Printf("mqtt message received on %s: %s", topic, payload)
	}

	if vars, ok := matchTopic(patternMetrics, topic); ok {
		r.handleMetrics(vars, payload)
		return
	}
	if vars, ok := matchTopic(patternWorkerStatus, topic); ok {
		r.handleWorkerStatus(vars, payload)
		return
	}
	if vars, ok := matchTopic(patternWorkerData, topic); ok {
		r.handleWorkerData(vars, payload)
		return
	}
	if vars, ok := matchTopic(patternBrokerStatus, topic); ok {
		r.handleBrokerStatus(vars, payload)
		return
	}
	log.Printf("mqtt router: no handler for topic %s", topic)
}

func (r *Router) handleMetrics(vars map[string]string, payload []byte) {
	domain, worker, metric := vars["domain"], vars["worker"], vars["metric"]

	if !wgkey.IsValidDomain(domain, r.Domains) {
		log.Printf("domain %s not in configured domains", domain)
		return
	}
	if worker == "" || metric == "" {
		log.Printf("ignored mqtt message with empty worker or metric label")
		return
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil {
		log.Printf("bad metric payload on %s/%s/%s: %v", domain, worker, metric, err)
		return
	}

	log.Printf("update worker metrics: %s on %s/%s = %d", metric, worker, domain, value)
	r.Metrics.Update(worker, domain, metric, value)
}

func (r *Router) handleWorkerStatus(vars map[string]string, payload []byte) {
	worker := vars["worker"]

	status, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil {
		log.Printf("bad worker status payload for %s: %v", worker, err)
		return
	}

	if status >= 1 {
		r.Metrics.SetOnline(worker)
	} else {
		r.Metrics.SetOffline(worker)
	}
}

func (r *Router) handleWorkerData(vars map[string]string, payload []byte) {
	worker, domain := vars["worker"], vars["domain"]

	if !wgkey.IsValidDomain(domain, r.Domains) {
		log.Printf("domain %s not in configured domains", domain)
		return
	}

	var endpoint models.WorkerEndpoint
	if err := json.Unmarshal(payload, &endpoint); err != nil {
		log.Printf("invalid worker data received for %s/%s: %v", worker, domain, err)
		return
	}
	if err := endpoint.Validate(); err != nil {
		log.Printf("invalid worker data received for %s/%s: %v", worker, domain, err)
		return
	}
	pubkey, err := wgkey.ValidatePubkey(endpoint.PublicKey)
	if err != nil {
		log.Printf("invalid worker data received for %s/%s: %v", worker, domain, err)
		return
	}
	endpoint.PublicKey = pubkey

	log.Printf("worker data received for %s/%s: %+v", worker, domain, endpoint)
	r.Data.Put(worker, domain, endpoint)
}

func (r *Router) handleBrokerStatus(vars map[string]string, payload []byte) {
	broker := vars["broker"]

	status, err := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err != nil {
		log.Printf("bad broker status payload for %s: %v", broker, err)
		return
	}

	r.Brokers.Set(broker, status >= 1)
}

// matchTopic splits pattern and topic on "/" and extracts the values bound
// to pattern segments prefixed with ":". Segment counts must match exactly;
// this is a fixed-shape matcher (prefix + wildcard segment extraction), not
// a general MQTT wildcard matcher.
func matchTopic(pattern, topic string) (map[string]string, bool) {
	patternParts := strings.Split(pattern, "/")
	topicParts := strings.Split(topic, "/")
	if len(patternParts) != len(topicParts) {
		return nil, false
	}

	vars := make(map[string]string, len(patternParts))
	for i, p := range patternParts {
		if strings.HasPrefix(p, ":") {
			vars[p[1:]] = topicParts[i]
			continue
		}
		if p != topicParts[i] {
			return nil, false
		}
	}
	return vars, true
}
