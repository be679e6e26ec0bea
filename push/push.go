package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"yearbook/config"
)

const (
	NotificationTypeAccessStatus = "access-status"
	NotificationTypeAlbumStatus  = "album-status"
)

var httpClient = http.Client{}

type Notification struct {
	Type    string            `json:"type"`
	AlbumID uint64            `json:"album_id"`
	Email   string            `json:"email,omitempty"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
}

// Send posts the notification to the configured sink. Failures are logged
// and returned, but callers treat them as advisory - a lost notification
// never undoes the state change it announces.
func (notification *Notification) Send() error {
	if config.NOTIFY_SERVER == "" {
		return nil
	}
	buf := bytes.Buffer{}
	_ = json.NewEncoder(&buf).Encode(*notification)
	resp, err := httpClient.Post(config.NOTIFY_SERVER+"/send", "application/json", &buf)
	if err != nil {
		log.Printf("SendNotification, error: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		buf.Reset()
		io.Copy(&buf, resp.Body)
		log.Printf("SendNotification error, status: %d, %s", resp.StatusCode, buf.String())
		return fmt.Errorf("status: %d", resp.StatusCode)
	}
	return nil
}
