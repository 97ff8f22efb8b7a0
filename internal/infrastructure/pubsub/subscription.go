package pubsub

import (
	"errors"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

var (
	// ErrMissingSubscriptionID ...
	ErrMissingSubscriptionID = errors.New("missing subscription id")
	// ErrMissingTopic ...
	ErrMissingTopic = errors.New("missing subscription topic")
	// ErrInvalidEndpoint ...
	ErrInvalidEndpoint = errors.New(
		"webhook endpoint must be an absolute http(s) URL",
	)
)

// Subscription is a webhook notified whenever a message is published for its
// topic, or for any topic if Event is ports.AnyTopic.
type Subscription struct {
	ID       string `json:"id"`
	Event    string `json:"event" badgerhold:"index"`
	Endpoint string `json:"endpoint"`
	// Secret, if defined, is used to sign the notifications.
	Secret string `json:"secret"`
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	return NewSubscriptionWithID(uuid.New().String(), event, endpoint, secret)
}

func NewSubscriptionWithID(
	id, event, endpoint, secret string,
) (*Subscription, error) {
	if len(id) <= 0 {
		return nil, ErrMissingSubscriptionID
	}
	if len(event) <= 0 {
		return nil, ErrMissingTopic
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") ||
		len(u.Host) <= 0 {
		return nil, ErrInvalidEndpoint
	}

	return &Subscription{
		ID:       id,
		Event:    event,
		Endpoint: endpoint,
		Secret:   secret,
	}, nil
}

func (s *Subscription) Topic() string {
	return s.Event
}

func (s *Subscription) Id() string {
	return s.ID
}

func (s *Subscription) NotifyAt() string {
	return s.Endpoint
}

func (s *Subscription) IsSecured() bool {
	return len(s.Secret) > 0
}

// bearerToken returns a HS256 token signed with the subscription secret,
// identifying the subscription and the time of the notification.
func (s *Subscription) bearerToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Id:       s.ID,
		Subject:  s.Event,
		IssuedAt: time.Now().Unix(),
	})
	return token.SignedString([]byte(s.Secret))
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		sub := s[i]
		subs = append(subs, &sub)
	}
	return subs
}
