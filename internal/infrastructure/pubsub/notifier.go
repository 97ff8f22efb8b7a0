package pubsub

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxReplyLength = 512

// notifier posts the messages to the subscribed endpoints.
type notifier struct {
	client *http.Client
}

func newNotifier(requestTimeout time.Duration) *notifier {
	return &notifier{&http.Client{Timeout: requestTimeout}}
}

// notify posts the message to the endpoint of the subscription. Any reply
// with a non 2xx status is an error.
func (n *notifier) notify(sub Subscription, message string) error {
	req, err := http.NewRequest(
		http.MethodPost, sub.Endpoint, strings.NewReader(message),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if sub.IsSecured() {
		token, err := sub.bearerToken()
		if err != nil {
			return fmt.Errorf("failed to sign notification: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		//nolint
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, maxReplyLength))
	return fmt.Errorf(
		"endpoint %s replied with status %d: %s",
		sub.Endpoint, resp.StatusCode, strings.TrimSpace(string(reply)),
	)
}
