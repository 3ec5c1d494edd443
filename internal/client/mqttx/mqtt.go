// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package mqttx implements the MQTT client of the harness on top of
// eclipse/paho. Configuration keys:
//
//	broker_url (required) - e.g. "tcp://localhost:1883"
//	client_id             - MQTT client id (default "smoker-<id>")
//	topics                - list of topic filters to subscribe on Init
//	qos                   - quality of service level (default 1)
//	connect_timeout       - token wait bound (default 10s)
package mqttx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

const (
	defaultConnectTimeout = 10 * time.Second

	// bufferCap bounds the retained-message buffer; oldest entries are
	// dropped first.
	bufferCap = 1000
)

// ReceivedMessage is one message captured by a subscription.
type ReceivedMessage struct {
	Topic   string
	Payload []byte
}

// Client is a lifecycle-managed MQTT client. Subscribed messages are
// buffered in memory and inspected by WaitForMessage.
type Client struct {
	client.Base

	conn           mqtt.Client
	qos            byte
	connectTimeout time.Duration

	mu       sync.Mutex
	received []ReceivedMessage
}

// New returns an uninitialized MQTT client.
func New(id string, log *logger.Logger) *Client {
	return &Client{Base: client.NewBase(client.TypeMQTT, id, log)}
}

// NewFromConfig is the factory constructor for the "mqtt" type.
func NewFromConfig(id string, _ map[string]any, log *logger.Logger) (client.Client, error) {
	return New(id, log), nil
}

// Init implements client.Client. It connects to the broker and subscribes
// to the configured topic filters. The paho client is only built when not
// already injected, so tests can install a fake before Init.
func (c *Client) Init(_ context.Context, cfg map[string]any) error {
	c.qos = byte(client.IntField(cfg, "qos", 1))
	c.connectTimeout = client.DurationField(cfg, "connect_timeout", defaultConnectTimeout)

	if c.conn == nil {
		brokerURL, err := client.RequiredString(cfg, "broker_url")
		if err != nil {
			return err
		}
		clientID, ok := client.StringField(cfg, "client_id")
		if !ok {
			clientID = "smoker-" + c.ClientID
		}
		opts := mqtt.NewClientOptions().
			AddBroker(brokerURL).
			SetClientID(clientID).
			SetAutoReconnect(true)
		c.conn = mqtt.NewClient(opts)
	}

	if err := c.wait(c.conn.Connect(), "connect"); err != nil {
		return err
	}
	for _, topic := range client.StringSliceField(cfg, "topics") {
		if err := c.Subscribe(topic); err != nil {
			return err
		}
	}

	c.SetInitialized(true)
	return nil
}

// Subscribe adds a topic filter whose messages are captured into the
// buffer.
func (c *Client) Subscribe(topic string) error {
	return c.wait(c.conn.Subscribe(topic, c.qos, func(_ mqtt.Client, m mqtt.Message) {
		c.capture(ReceivedMessage{Topic: m.Topic(), Payload: m.Payload()})
	}), fmt.Sprintf("subscribe %q", topic))
}

// Publish sends a payload to a topic at the configured QoS.
func (c *Client) Publish(_ context.Context, topic string, payload []byte, retained bool) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	return c.wait(c.conn.Publish(topic, c.qos, retained, payload), fmt.Sprintf("publish %q", topic))
}

// WaitForMessage polls the subscription buffer until a message on a topic
// matching topicFilter with a payload containing substr appears, or the
// timeout elapses. Returns nil with a nil error on timeout. An empty
// topicFilter matches every topic.
func (c *Client) WaitForMessage(ctx context.Context, topicFilter, substr string, timeout, interval time.Duration) (*ReceivedMessage, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}

	pollFn := func(context.Context) ([]ReceivedMessage, error) {
		return c.snapshot(), nil
	}
	match := func(m ReceivedMessage) bool {
		if topicFilter != "" && m.Topic != topicFilter {
			return false
		}
		return strings.Contains(string(m.Payload), substr)
	}

	msg, found, err := poll.WaitForOne(ctx, pollFn, match, timeout, interval)
	if err != nil || !found {
		return nil, err
	}
	return &msg, nil
}

// capture appends to the bounded buffer, dropping the oldest entry when
// full.
func (c *Client) capture(m ReceivedMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.received) >= bufferCap {
		c.received = c.received[1:]
	}
	c.received = append(c.received, m)
}

func (c *Client) snapshot() []ReceivedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ReceivedMessage, len(c.received))
	copy(out, c.received)
	return out
}

// wait blocks on a paho token within the connect timeout and surfaces its
// error, naming the operation.
func (c *Client) wait(token mqtt.Token, op string) error {
	if !token.WaitTimeout(c.connectTimeout) {
		return fmt.Errorf("%s: timed out after %s", op, c.connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Reset implements client.Client, disconnecting and clearing the buffer.
func (c *Client) Reset(_ context.Context) error {
	if c.conn != nil && c.conn.IsConnected() {
		c.conn.Disconnect(250)
	}
	c.conn = nil
	c.mu.Lock()
	c.received = nil
	c.mu.Unlock()
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *Client) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
