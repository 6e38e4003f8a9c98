package mqttbroker

import "fmt"

// KeyExchangeTopic is where a client's accepted public key is published for
// workers to pick up. Publication always targets the fixed "all"
// pseudo-gateway rather than a specific worker, even in the v2 flow where a
// worker has already been selected: every worker for the domain subscribes
// here and applies the key regardless of which one was chosen to answer the
// request.
func KeyExchangeTopic(domain string) string {
	return fmt.Sprintf("wireguard/%s/all", domain)
}

// BrokerStatusTopic is this broker's own liveness topic (C7).
func BrokerStatusTopic(hostname string) string {
	return fmt.Sprintf("wireguard/broker/%s/status", hostname)
}
