package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
	ghmmodels "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Models"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }

func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type message struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	mqtt.Client

	mu         sync.Mutex
	opts       *mqtt.ClientOptions
	connected  bool
	connectErr error
	publishErr error
	sent       []message
}

func (f *fakeClient) Connect() mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = f.connectErr == nil
	return doneToken{err: f.connectErr}
}

func (f *fakeClient) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeClient) Disconnect(uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr == nil {
		f.sent = append(f.sent, message{topic: topic, qos: qos, payload: payload.([]byte)})
	}
	return doneToken{err: f.publishErr}
}

func (f *fakeClient) messages() []message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]message(nil), f.sent...)
}

func testConfig() config.PublisherConfig {
	return config.PublisherConfig{
		MQTT: config.MQTTConfig{
			BrokerHost:  "broker.local",
			BrokerPort:  1883,
			BrokerUser:  "demo",
			BrokerPass:  "secret",
			Topic:       "greenhouse/demo/readings",
			ClientID:    "test-publisher",
			KeepAlive:   30 * time.Second,
			PingTimeout: time.Second,
		},
		Interval: 10 * time.Millisecond,
	}
}

func newTestPublisher(fc *fakeClient) *Publisher {
	gen := demo.NewSeededGenerator(1, time.Now)
	return NewWithFactory(testConfig(), gen, func(opts *mqtt.ClientOptions) mqtt.Client {
		fc.opts = opts
		return fc
	}, logger.Nop())
}

func TestStartPublishesReadings(t *testing.T) {
	fc := &fakeClient{}
	p := newTestPublisher(fc)

	require.NoError(t, p.Start(context.Background()))
	assert.True(t, p.IsConnected())

	require.Eventually(t, func() bool { return len(fc.messages()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	p.Stop()
	assert.False(t, p.IsConnected())

	msgs := fc.messages()
	assert.Equal(t, len(msgs), p.Published())
	for _, m := range msgs {
		assert.Equal(t, "greenhouse/demo/readings", m.topic)
		assert.Equal(t, byte(0), m.qos)

		var reading ghmmodels.SensorReading
		require.NoError(t, json.Unmarshal(m.payload, &reading))
		assert.Equal(t, ghmmodels.SourceDemo, reading.Source)
		assert.Equal(t, ghmmodels.Classify(reading.Temperature.Float()), reading.Prediction)
	}
}

func TestClientOptionsFromConfig(t *testing.T) {
	fc := &fakeClient{}
	p := newTestPublisher(fc)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	require.NotNil(t, fc.opts)
	require.Len(t, fc.opts.Servers, 1)
	assert.Equal(t, "tcp://broker.local:1883", fc.opts.Servers[0].String())
	assert.Equal(t, "test-publisher", fc.opts.ClientID)
	assert.Equal(t, "demo", fc.opts.Username)
	assert.True(t, fc.opts.AutoReconnect)
}

func TestStartFailsWhenBrokerRefuses(t *testing.T) {
	fc := &fakeClient{connectErr: errors.New("connection refused")}
	p := newTestPublisher(fc)

	err := p.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, p.Published())
}

func TestPublishOnceErrors(t *testing.T) {
	p := newTestPublisher(&fakeClient{})
	assert.Error(t, p.PublishOnce(), "not connected yet")

	fc := &fakeClient{publishErr: errors.New("queue full")}
	p = newTestPublisher(fc)
	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()

	err := p.PublishOnce()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue full")
	assert.Zero(t, p.Published())
}

func TestTLSConfigRejectsBadCAFile(t *testing.T) {
	cfg, err := tlsConfig("")
	require.NoError(t, err)
	assert.Nil(t, cfg.RootCAs)

	_, err = tlsConfig("/nonexistent/ca.pem")
	assert.Error(t, err)
}
