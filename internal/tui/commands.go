package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/infra/qr"
)

// Command factories for async operations

// WaitNotificationCmd waits for the next session notification
func WaitNotificationCmd(stream *notification.ChanStream) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-stream.C()
		if !ok {
			return nil
		}
		return NotificationMsg{Notification: n}
	}
}

// ShareCmd shares canonical index i (or the current track when negative)
func ShareCmd(sess Session, i int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		res, err := sess.Share(ctx, i)
		if err != nil {
			return ErrMsg{Err: err, Context: sess.Message("share_failed")}
		}
		return SharedMsg{Result: res}
	}
}

// QRCmd renders the share URL of canonical index i as a QR code
func QRCmd(sess Session, i int) tea.Cmd {
	return func() tea.Msg {
		url, err := sess.ShareURL(i)
		if err != nil {
			return ErrMsg{Err: err, Context: sess.Message("share_failed")}
		}
		code, err := qr.RenderCompact(url)
		if err != nil {
			return ErrMsg{Err: err, Context: "rendering qr code"}
		}
		return QRMsg{URL: url, Code: code}
	}
}

// DownloadCmd saves a catalog file locally
func DownloadCmd(saver Saver, file string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		path, err := saver.Save(ctx, file)
		if err != nil {
			return ErrMsg{Err: err, Context: "downloading " + file}
		}
		return DownloadedMsg{Path: path}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
