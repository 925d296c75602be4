package publisher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
)

// ClientFactory builds the broker client from its options
type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

// Publisher pushes generated demo readings to a broker topic on a fixed interval
type Publisher struct {
	cfg        config.PublisherConfig
	generator  *demo.Generator
	newClient  ClientFactory
	mqttClient mqtt.Client
	wg         sync.WaitGroup
	cancel     context.CancelFunc
	logger     *logger.Logger

	mu        sync.Mutex
	published int
}

func New(cfg config.PublisherConfig, generator *demo.Generator, logger *logger.Logger) *Publisher {
	return NewWithFactory(cfg, generator, mqtt.NewClient, logger)
}

// NewWithFactory lets tests swap the broker client
func NewWithFactory(cfg config.PublisherConfig, generator *demo.Generator, factory ClientFactory, logger *logger.Logger) *Publisher {
	if generator == nil {
		generator = demo.Default()
	}
	return &Publisher{
		cfg:       cfg,
		generator: generator,
		newClient: factory,
		logger:    logger.WithComponent("demo-publisher"),
	}
}

func (p *Publisher) clientOptions() (*mqtt.ClientOptions, error) {
	m := p.cfg.MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(p.cfg.GetMQTTBrokerURL()).
		SetClientID(m.ClientID).
		SetKeepAlive(m.KeepAlive).
		SetPingTimeout(m.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(true)

	if m.BrokerUser != "" {
		opts.SetUsername(m.BrokerUser)
		opts.SetPassword(m.BrokerPass)
	}

	if m.UseTLS {
		tlsCfg, err := tlsConfig(m.CACertPath)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		p.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(_ mqtt.Client) {
		p.logger.Logger.Info().Str("topic", m.Topic).Msg("MQTT connected, publishing demo readings")
	}
	return opts, nil
}

// Start connects to the broker and publishes until ctx is done or Stop is called
func (p *Publisher) Start(ctx context.Context) error {
	opts, err := p.clientOptions()
	if err != nil {
		return fmt.Errorf("failed to build MQTT options: %w", err)
	}

	p.mqttClient = p.newClient(opts)
	if tk := p.mqttClient.Connect(); tk.Wait() && tk.Error() != nil {
		return fmt.Errorf("failed to connect to %s: %w", p.cfg.GetMQTTBrokerURL(), tk.Error())
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(runCtx)
	}()
	return nil
}

func (p *Publisher) run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := p.PublishOnce(); err != nil {
			p.logger.ErrorWithError(err, "Failed to publish demo reading")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// PublishOnce sends one fresh reading
func (p *Publisher) PublishOnce() error {
	if p.mqttClient == nil || !p.mqttClient.IsConnected() {
		return fmt.Errorf("not connected to broker")
	}

	reading := p.generator.DataPoint()
	payload, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	token := p.mqttClient.Publish(p.cfg.MQTT.Topic, 0, false, payload)
	if !token.WaitTimeout(p.cfg.MQTT.PingTimeout) {
		return fmt.Errorf("publish to %s timed out", p.cfg.MQTT.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.cfg.MQTT.Topic, err)
	}

	p.mu.Lock()
	p.published++
	p.mu.Unlock()

	p.logger.Logger.Debug().
		Str("topic", p.cfg.MQTT.Topic).
		Float64("temperature", float64(reading.Temperature)).
		Str("prediction", string(reading.Prediction)).
		Msg("Published demo reading")
	return nil
}

// Published returns how many readings went out
func (p *Publisher) Published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published
}

func (p *Publisher) IsConnected() bool {
	return p.mqttClient != nil && p.mqttClient.IsConnected()
}

// Stop halts the publish loop and disconnects
func (p *Publisher) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	if p.mqttClient != nil && p.mqttClient.IsConnected() {
		p.mqttClient.Disconnect(500)
	}
}

func tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
