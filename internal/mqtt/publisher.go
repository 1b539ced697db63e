// Copyright 2026 The Plantstein Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mqtt connects the server to the notification broker. Alert
// batches go out on one topic per tenant; sensor readings come in on the
// room-conditions topics consumed by the sensor bridge.
package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plantstein/plantstein/internal/observability/logger"
)

// Config holds broker connection configuration
type Config struct {
	BrokerURL      string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	QoS            byte
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// Client wraps the paho MQTT client with the server's topic layout
type Client struct {
	client         pahomqtt.Client
	topicPrefix    string
	qos            byte
	publishTimeout time.Duration
}

// Connect dials the broker and returns a connected client. The underlying
// paho client reconnects automatically after connection loss; publishes in
// the gap fail and are retried naturally on the next tick.
func Connect(cfg Config) (*Client, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAutoReconnect(true).
		SetOrderMatters(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		slog.Warn("mqtt connection lost", logger.Broker(cfg.BrokerURL), logger.Error(err))
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		slog.Info("mqtt connected", logger.Broker(cfg.BrokerURL))
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("timed out connecting to broker %s", cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", cfg.BrokerURL, err)
	}

	return &Client{
		client:         client,
		topicPrefix:    cfg.TopicPrefix,
		qos:            cfg.QoS,
		publishTimeout: cfg.PublishTimeout,
	}, nil
}

// Publish sends one tenant's alert payload to that tenant's topic
func (c *Client) Publish(ctx context.Context, tenantID string, payload []byte) error {
	topic := TenantTopic(c.topicPrefix, tenantID)

	token := c.client.Publish(topic, c.qos, false, payload)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	case <-time.After(c.publishTimeout):
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	slog.DebugContext(ctx, "mqtt message published", logger.Topic(topic))
	return nil
}

// Subscribe registers a message handler for a topic filter
func (c *Client) Subscribe(topic string, qos byte, handler pahomqtt.MessageHandler) error {
	token := c.client.Subscribe(topic, qos, handler)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight work to drain
func (c *Client) Close() {
	c.client.Disconnect(250)
}

// TenantTopic builds the notification topic for one tenant
func TenantTopic(prefix, tenantID string) string {
	return prefix + "/" + tenantID
}
