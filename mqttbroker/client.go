// Package mqttbroker wraps an MQTT client connection behind a small Config
// struct, a constructor that dials and waits for readiness, and thin
// Publish/Subscribe methods that hide the underlying client from callers.
package mqttbroker

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Config holds connection settings for the upstream MQTT broker.
type Config struct {
	BrokerURL        string
	BrokerPort       int
	ClientID         string
	Username         string
	Password         string
	KeepaliveSeconds int
	TLS              bool

	// WillTopic/WillPayload, if WillTopic is non-empty, register a
	// retained last-will message delivered by the broker if this client's
	// session ends abnormally (C7).
	WillTopic   string
	WillPayload string
}

// Client wraps a connected MQTT session.
type Client struct {
	conn mqtt.Client
}

// Connect dials the configured MQTT broker, registering the last-will
// message (if any) before the connection is established, and blocks until
// the connection is live or the attempt fails.
func Connect(cfg Config) (*Client, error) {
	scheme := "tcp"
	if cfg.TLS {
		scheme = "ssl"
	}
	broker := fmt.Sprintf("%s://%s:%d", scheme, cfg.BrokerURL, cfg.BrokerPort)

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(time.Duration(cfg.KeepaliveSeconds) * time.Second).
		SetAutoReconnect(true).
		SetCleanSession(true)

	if cfg.WillTopic != "" {
		opts.SetWill(cfg.WillTopic, cfg.WillPayload, 1, true)
	}

	conn := mqtt.NewClient(opts)
	if token := conn.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to mqtt broker %s: %w", broker, token.Error())
	}

	return &Client{conn: conn}, nil
}

// Publish sends payload to topic. QoS 0, not retained — used for the
// fire-and-forget key-exchange publish (C6).
func (c *Client) Publish(topic, payload string) {
	c.conn.Publish(topic, 0, false, payload)
}

// PublishRetained sends payload to topic at the given QoS, retained so late
// subscribers immediately see the current value (used for status topics).
func (c *Client) PublishRetained(topic string, qos byte, payload string) error {
	token := c.conn.Publish(topic, qos, true, payload)
	token.Wait()
	return token.Error()
}

// Subscribe registers handler for topic (which may contain MQTT wildcards).
func (c *Client) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	token := c.conn.Subscribe(topic, qos, handler)
	token.Wait()
	return token.Error()
}

// Disconnect closes the connection, waiting up to quiesceMillis for
// in-flight work to drain.
func (c *Client) Disconnect(quiesceMillis uint) {
	c.conn.Disconnect(quiesceMillis)
}
