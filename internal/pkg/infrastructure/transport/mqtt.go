package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

var ErrNotConnected = errors.New("not connected to broker")

// MessageHandler receives every message arriving on a subscribed topic.
type MessageHandler func(topic string, payload []byte)

type Config struct {
	BrokerURL   string `yaml:"url"`
	ClientID    string `yaml:"clientID"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topicPrefix"`
}

// Client wraps the MQTT connection to the field device network. The
// message handler and the connectivity callback are injected at
// construction. Reconnects and resubscription are delegated to the
// underlying client's auto reconnect, the OnConnect handler runs again
// on every successful (re)connect.
type Client struct {
	cfg       Config
	mqtt      mqtt.Client
	onMessage MessageHandler
	onConnect func(connected bool)
	log       *slog.Logger
}

func New(cfg Config, onMessage MessageHandler, onConnect func(connected bool), log *slog.Logger) *Client {
	c := &Client{
		cfg:       cfg,
		onMessage: onMessage,
		onConnect: onConnect,
		log:       log,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString())).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(30 * time.Second).
		SetKeepAlive(60 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.log.Error("connection to broker lost", "err", err.Error())
		c.onConnect(false)
	})

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		c.log.Info("connected to broker", "url", cfg.BrokerURL)
		c.onConnect(true)
		c.subscribe(client)
	})

	c.mqtt = mqtt.NewClient(opts)
	return c
}

func (c *Client) Connect(ctx context.Context) error {
	token := c.mqtt.Connect()
	if !token.WaitTimeout(30 * time.Second) {
		return fmt.Errorf("timed out connecting to broker %s", c.cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker %s: %w", c.cfg.BrokerURL, err)
	}

	return nil
}

func (c *Client) Disconnect() {
	c.mqtt.Disconnect(250)
	c.log.Info("disconnected from broker")
}

func (c *Client) Connected() bool {
	return c.mqtt.IsConnectionOpen()
}

// Publish sends an ASCII payload on a control topic. Publishing while
// disconnected is short circuited so callers never block on a dead
// connection.
func (c *Client) Publish(topic, payload string) error {
	if !c.mqtt.IsConnectionOpen() {
		c.log.Warn("cannot publish, not connected to broker", "topic", topic)
		return ErrNotConnected
	}

	token := c.mqtt.Publish(topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	c.log.Debug("published message", "topic", topic, "payload", payload)
	return nil
}

func (c *Client) subscribe(client mqtt.Client) {
	topics := []string{
		c.cfg.TopicPrefix + "/sensor/+",
		c.cfg.TopicPrefix + "/status/+",
		c.cfg.TopicPrefix + "/notification",
	}

	for _, topic := range topics {
		token := client.Subscribe(topic, 1, func(_ mqtt.Client, m mqtt.Message) {
			c.onMessage(m.Topic(), m.Payload())
		})
		token.Wait()
		if err := token.Error(); err != nil {
			c.log.Error("failed to subscribe", "topic", topic, "err", err.Error())
			continue
		}
		c.log.Info("subscribed to topic", "topic", topic)
	}
}
