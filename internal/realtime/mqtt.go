package realtime

import (
    "net/url"
    "time"

    mqtt "github.com/eclipse/paho.mqtt.golang"
    "go.uber.org/zap"
)

// MqttClient publishes change events to the broker the exhibition
// devices listen on.
type MqttClient struct {
    cli mqtt.Client
}

func NewMqttClient(brokerURL string, log *zap.Logger) (*MqttClient, error) {
    u, err := url.Parse(brokerURL)
    if err != nil {
        return nil, err
    }
    opts := mqtt.NewClientOptions()
    server := u.Host
    switch u.Scheme {
    case "mqtt", "tcp":
        server = "tcp://" + server
    case "ssl", "tls":
        server = "ssl://" + server
    case "ws", "wss":
        server = u.Scheme + "://" + server + u.Path
    }
    opts.AddBroker(server)
    opts.SetClientID("muisti-api-" + time.Now().Format("150405.000"))
    opts.OnConnect = func(c mqtt.Client) { log.Info("mqtt connected", zap.String("broker", brokerURL)) }
    opts.OnConnectionLost = func(c mqtt.Client, err error) { log.Error("mqtt connection lost", zap.Error(err)) }
    if u.User != nil {
        pw, _ := u.User.Password()
        opts.SetUsername(u.User.Username())
        opts.SetPassword(pw)
    }
    cli := mqtt.NewClient(opts)
    if t := cli.Connect(); t.Wait() && t.Error() != nil {
        return nil, t.Error()
    }
    return &MqttClient{cli: cli}, nil
}

func (c *MqttClient) Publish(topic string, payload []byte) error {
    t := c.cli.Publish(topic, 0, false, payload)
    if t.Wait() && t.Error() != nil {
        return t.Error()
    }
    return nil
}
