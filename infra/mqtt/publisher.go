// Package mqtt pushes schedule-change events to the fleet broker so
// driver terminals see roster updates without polling.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kvernberg/planboard/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
	MaxRetries  int    `json:"max_retries"`
	BackoffMS   int    `json:"backoff_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "planboard-" + uuid.NewString()[:8]
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "planboard/schedule"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS == 0 {
		c.BackoffMS = 200
	}
}

// Publisher is the outbound interface used by the app layer.
type Publisher interface {
	Publish(topic string, payload any) error
	Close()
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli paho.Client
	cfg Config
	log logger.Logger
}

// NewPahoPublisher connects to the broker and returns a ready publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &PahoPublisher{cli: cli, cfg: cfg, log: logger.New("mqtt-publisher")}, nil
}

// Topic builds the full topic under the configured prefix.
func (p *PahoPublisher) Topic(parts ...string) string {
	topic := p.cfg.TopicPrefix
	for _, s := range parts {
		topic += "/" + s
	}
	return topic
}

// Publish marshals the payload as JSON and publishes it, retrying with
// backoff on failure.
func (p *PahoPublisher) Publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	backoff := time.Duration(p.cfg.BackoffMS) * time.Millisecond
	var last error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		tok := p.cli.Publish(topic, p.cfg.QoS, false, data)
		tok.Wait()
		if tok.Error() == nil {
			return nil
		}
		last = tok.Error()
		p.log.Warnf("publish %s attempt %d: %v", topic, attempt+1, last)
		time.Sleep(backoff)
		backoff *= 2
	}
	return fmt.Errorf("publish %s: %w", topic, last)
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
