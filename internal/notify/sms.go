// Package notify delivers SMS notifications through an HTTP gateway,
// decoupled from the session response path by a worker-pool dispatcher.
package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kofiadjei/ussd-remit/internal/interfaces"
)

// Client talks to an Africa's Talking style SMS gateway: form-encoded
// POST, API key in a header.
type Client struct {
	baseURL  string
	username string
	apiKey   string
	senderID string
	http     *http.Client
}

func NewClient(baseURL, username, apiKey, senderID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		apiKey:   apiKey,
		senderID: senderID,
		// A slow gateway must not pile up worker goroutines.
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Notify(phoneNumber, message string) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", phoneNumber)
	form.Set("message", message)
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
}

var _ interfaces.Notifier = (*Client)(nil)
