// Package mqtt carries telemetry packets over an MQTT broker.
package mqtt

import (
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Queue wraps an MQTT client with prefix-scoped topics and local
// subscription dispatch.
type Queue struct {
	Client       paho.Client
	TopicPrefix  string
	OnConnect    ConnectHandler
	OnDisconnect ConnectHandler

	subsLock sync.RWMutex
	subs     map[string]map[*Subscription]Handler
}

// ConnectHandler is to handle connect/disconnect events.
type ConnectHandler func(*Queue)

// Subscription is a subscribed topic.
type Subscription struct {
	Token paho.Token

	queue   *Queue
	topic   string
	handler Handler
}

// MatchTopic matches a topic against a subscription pattern with
// MQTT wildcards (+ and trailing #).
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	for i, token := range tokensP {
		if token == "+" {
			continue
		}
		if token == "#" && i+1 == len(tokensP) {
			return true
		}
		if token != tokensT[i] {
			return false
		}
	}
	return len(tokensP) == len(tokensT)
}

// ClientOptionsFromURL creates ClientOptions from a URL of the form
// mqtt://host:port/topic-prefix?client-id=ID.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// NewQueue creates a Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix}
	options.SetOnConnectHandler(q.onConnectHandler)
	options.SetConnectionLostHandler(q.connectionLostHandler)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates a Queue from a URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Sub subscribes a handler to a topic.
func (q *Queue) Sub(topic string, handler Handler) *Subscription {
	sub := &Subscription{queue: q, topic: topic, handler: handler}
	var newSub bool
	q.subsLock.Lock()
	if q.subs == nil {
		q.subs = make(map[string]map[*Subscription]Handler)
	}
	handlers := q.subs[topic]
	if handlers == nil {
		handlers = make(map[*Subscription]Handler)
		q.subs[topic] = handlers
		newSub = true
	}
	handlers[sub] = handler
	q.subsLock.Unlock()

	if newSub {
		if glog.V(2) {
			glog.Infof("SUB %q", q.TopicPrefix+topic)
		}
		sub.Token = q.Client.Subscribe(q.TopicPrefix+topic, 0, q.dispatch)
	}
	return sub
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe is used on reconnect to subscribe all existing topics.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for topic := range q.subs {
		filters[q.TopicPrefix+topic] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) == 0 {
		return &paho.DummyToken{}
	}
	if glog.V(2) {
		for key := range filters {
			glog.Infof("SUB %q", key)
		}
	}
	return q.Client.SubscribeMultiple(filters, q.dispatch)
}

func (q *Queue) onConnectHandler(paho.Client) {
	glog.Info("connected")
	q.Resubscribe()
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) connectionLostHandler(c paho.Client, err error) {
	glog.Warningf("connection lost: %v", err)
	if h := q.OnDisconnect; h != nil {
		h(q)
	}
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	topic = topic[len(q.TopicPrefix):]
	var handlers []Handler
	q.subsLock.RLock()
	for pattern, subs := range q.subs {
		if MatchTopic(topic, pattern) {
			for _, h := range subs {
				handlers = append(handlers, h)
			}
		}
	}
	q.subsLock.RUnlock()
	payload := msg.Payload()
	for _, h := range handlers {
		h(topic, payload)
	}
}

// Close unsubscribes the handler.
func (s *Subscription) Close() error {
	var unsub bool
	s.queue.subsLock.Lock()
	if handlers := s.queue.subs[s.topic]; handlers != nil {
		delete(handlers, s)
		if unsub = len(handlers) == 0; unsub {
			delete(s.queue.subs, s.topic)
		}
	}
	s.queue.subsLock.Unlock()
	if unsub {
		glog.V(2).Infof("UNSUB %q", s.topic)
		token := s.queue.Client.Unsubscribe(s.queue.TopicPrefix + s.topic)
		token.Wait()
		return token.Error()
	}
	return nil
}
