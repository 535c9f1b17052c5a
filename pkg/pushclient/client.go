package pushclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external push gateway. Every call is fire and
// forget with a short timeout so a gateway outage cannot stall a sweep;
// callers log errors and move on.
type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 2 * time.Second,
		},
		baseURL: baseURL,
	}
}

type pushRequest struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	TargetEmail string `json:"target_email,omitempty"`
	TargetRole  string `json:"target_role,omitempty"`
}

// NotifyUser pushes directly to the devices registered for the user with
// the given email.
func (c *Client) NotifyUser(title, message, targetEmail string) error {
	return c.post(&pushRequest{
		Title:       title,
		Message:     message,
		TargetEmail: targetEmail,
	})
}

// NotifyRole broadcasts to the devices of every user holding the role.
func (c *Client) NotifyRole(title, message, targetRole string) error {
	return c.post(&pushRequest{
		Title:      title,
		Message:    message,
		TargetRole: targetRole,
	})
}

func (c *Client) post(body *pushRequest) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.client.Post(fmt.Sprintf("%s/notify/push", c.baseURL), "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	return nil
}
