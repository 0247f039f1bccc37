package tui

import (
	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/app/share"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// NotificationMsg carries a session notification
type NotificationMsg struct {
	Notification *notification.Notification
}

// SharedMsg signals a completed share
type SharedMsg struct {
	Result share.Result
}

// QRMsg carries a rendered QR code for a share URL
type QRMsg struct {
	URL  string
	Code string
}

// DownloadedMsg signals a saved file
type DownloadedMsg struct {
	Path string
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
