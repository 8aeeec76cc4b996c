package realtime

import (
    "encoding/json"

    "go.uber.org/zap"
)

// Publisher is the broker side of the notifier; MqttClient implements
// it.
type Publisher interface {
    Publish(topic string, payload []byte) error
}

// Broadcaster is the websocket side; ws.EventHub implements it.
type Broadcaster interface {
    Broadcast(exhibitionID string, payload []byte)
}

// Notifier emits change events after a mutation commits. Delivery is
// fire-and-forget: failures are logged and never propagate back to
// the mutation caller. Safe to use as a nil pointer (tests).
type Notifier struct {
    publisher   Publisher
    hub         Broadcaster
    topicPrefix string
    log         *zap.Logger
}

func New(publisher Publisher, hub Broadcaster, topicPrefix string, log *zap.Logger) *Notifier {
    return &Notifier{publisher: publisher, hub: hub, topicPrefix: topicPrefix, log: log}
}

type idMessage struct {
    ExhibitionID string `json:"exhibitionId"`
    ID           string `json:"id"`
}

type sessionUpdateMessage struct {
    ExhibitionID     string `json:"exhibitionId"`
    ID               string `json:"id"`
    VariablesChanged bool   `json:"variablesChanged"`
    VisitorsChanged  bool   `json:"visitorsChanged"`
}

type envelope struct {
    Topic   string      `json:"topic"`
    Message interface{} `json:"message"`
}

func (n *Notifier) VisitorCreated(exhibitionID, visitorID string) {
    n.publish(exhibitionID, "visitors/create", idMessage{ExhibitionID: exhibitionID, ID: visitorID})
}

func (n *Notifier) VisitorUpdated(exhibitionID, visitorID string) {
    n.publish(exhibitionID, "visitors/update", idMessage{ExhibitionID: exhibitionID, ID: visitorID})
}

func (n *Notifier) VisitorDeleted(exhibitionID, visitorID string) {
    n.publish(exhibitionID, "visitors/delete", idMessage{ExhibitionID: exhibitionID, ID: visitorID})
}

func (n *Notifier) SessionCreated(exhibitionID, sessionID string) {
    n.publish(exhibitionID, "visitorsessions/create", idMessage{ExhibitionID: exhibitionID, ID: sessionID})
}

func (n *Notifier) SessionUpdated(exhibitionID, sessionID string, variablesChanged, visitorsChanged bool) {
    n.publish(exhibitionID, "visitorsessions/update", sessionUpdateMessage{
        ExhibitionID:     exhibitionID,
        ID:               sessionID,
        VariablesChanged: variablesChanged,
        VisitorsChanged:  visitorsChanged,
    })
}

func (n *Notifier) SessionDeleted(exhibitionID, sessionID string) {
    n.publish(exhibitionID, "visitorsessions/delete", idMessage{ExhibitionID: exhibitionID, ID: sessionID})
}

func (n *Notifier) PageCreated(exhibitionID, pageID string) {
    n.publish(exhibitionID, "pages/create", idMessage{ExhibitionID: exhibitionID, ID: pageID})
}

func (n *Notifier) PageUpdated(exhibitionID, pageID string) {
    n.publish(exhibitionID, "pages/update", idMessage{ExhibitionID: exhibitionID, ID: pageID})
}

func (n *Notifier) PageDeleted(exhibitionID, pageID string) {
    n.publish(exhibitionID, "pages/delete", idMessage{ExhibitionID: exhibitionID, ID: pageID})
}

func (n *Notifier) publish(exhibitionID, path string, message interface{}) {
    if n == nil {
        return
    }
    topic := n.topicPrefix + "/" + exhibitionID + "/" + path

    if n.publisher != nil {
        payload, err := json.Marshal(message)
        if err != nil {
            n.log.Error("notification marshal failed", zap.String("topic", topic), zap.Error(err))
            return
        }
        if err := n.publisher.Publish(topic, payload); err != nil {
            n.log.Error("notification publish failed", zap.String("topic", topic), zap.Error(err))
        }
    }

    if n.hub != nil {
        payload, err := json.Marshal(envelope{Topic: topic, Message: message})
        if err != nil {
            return
        }
        n.hub.Broadcast(exhibitionID, payload)
    }
}
