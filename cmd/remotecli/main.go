// Package main provides the remote control CLI for a running radiola server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/osa030/radiola/internal/api/httpapi"
	"github.com/osa030/radiola/internal/app/notification"
	"github.com/osa030/radiola/internal/app/playback"
	"github.com/osa030/radiola/internal/app/session"
)

var (
	app    = kingpin.New("radiola-remote", "radiola remote control")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").Envar("RADIOLA_SERVER").String()
	token  = app.Flag("token", "Control token").Envar("RADIOLA_TOKEN").String()

	stateCmd    = app.Command("state", "Show the player state")
	toggleCmd   = app.Command("toggle", "Play or pause")
	nextCmd     = app.Command("next", "Next track")
	previousCmd = app.Command("previous", "Previous track")
	muteCmd     = app.Command("mute", "Toggle mute")

	selectCmd   = app.Command("select", "Play a track")
	selectIndex = selectCmd.Arg("index", "Catalog index").Required().Int()

	volumeCmd   = app.Command("volume", "Set the volume")
	volumeLevel = volumeCmd.Arg("level", "Volume between 0 and 1").Required().Float64()

	seekCmd      = app.Command("seek", "Seek within the current track")
	seekFraction = seekCmd.Arg("fraction", "Position between 0 and 1").Required().Float64()

	viewCmd    = app.Command("view", "Set the view")
	viewSearch = viewCmd.Arg("search", "Search: genre:, tag:, playlist: and title words").String()

	linkCmd = app.Command("link", "Open a deep link")
	linkURL = linkCmd.Arg("url", "Link").Required().String()

	shareCmd   = app.Command("share", "Print the share link")
	shareIndex = shareCmd.Flag("index", "Catalog index (current track when omitted)").Default("-1").Int()

	subscribeCmd = app.Command("subscribe", "Subscribe to notifications")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	client := &client{
		base:  strings.TrimSuffix(*server, "/"),
		token: *token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}

	var (
		snap session.Snapshot
		err  error
	)

	// Execute command
	switch command {
	case stateCmd.FullCommand():
		err = client.do(http.MethodGet, "/api/state", nil, &snap)
	case toggleCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/toggle", nil, &snap)
	case nextCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/next", nil, &snap)
	case previousCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/previous", nil, &snap)
	case muteCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/mute", nil, &snap)
	case selectCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/select/"+strconv.Itoa(*selectIndex), nil, &snap)
	case volumeCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/volume", httpapi.VolumeRequest{Level: volumeLevel}, &snap)
	case seekCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/seek", httpapi.SeekRequest{Fraction: seekFraction}, &snap)
	case linkCmd.FullCommand():
		err = client.do(http.MethodPost, "/api/link", httpapi.LinkRequest{URL: *linkURL}, &snap)
	case viewCmd.FullCommand():
		var view httpapi.ViewResponse
		if err = client.do(http.MethodPut, "/api/view", httpapi.ViewRequest{Search: viewSearch}, &view); err == nil {
			printView(view)
		}
		exitOnError(err)
		return
	case shareCmd.FullCommand():
		var resp httpapi.ShareResponse
		path := "/api/share"
		if *shareIndex >= 0 {
			path += "?index=" + strconv.Itoa(*shareIndex)
		}
		if err = client.do(http.MethodGet, path, nil, &resp); err == nil {
			fmt.Println(resp.URL)
		}
		exitOnError(err)
		return
	case subscribeCmd.FullCommand():
		exitOnError(client.subscribe())
		return
	}

	exitOnError(err)
	printSnapshot(snap)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

type client struct {
	base  string
	token string
	http  *http.Client
}

// do sends a JSON request and decodes the JSON response into out.
func (c *client) do(method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(httpapi.ControlTokenHeader, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) subscribe() error {
	u, err := url.Parse(c.base + "/api/notifications")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Println("Subscribed to notifications. Press Ctrl+C to exit.")

	// Handle shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nUnsubscribing...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	// Receive notifications
	for {
		var n notification.Notification
		if err := conn.ReadJSON(&n); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printNotification(&n)
	}
}

func formatState(st playback.Status) string {
	switch st.State {
	case playback.StatePlaying:
		return "▶️  Playing"
	case playback.StatePaused:
		return "⏸  Paused"
	default:
		return "⏹  Idle"
	}
}

func printSnapshot(snap session.Snapshot) {
	fmt.Printf("Session: %s (%s)\n", snap.SessionID, snap.Phase)
	if snap.Message != "" {
		fmt.Printf("  %s\n", snap.Message)
	}
	printStatus(snap.Status)
	if q := snap.Criteria.String(); q != "" {
		fmt.Printf("  View: %s (%d songs)\n", q, len(snap.Entries))
	}
	if snap.Link != "" {
		fmt.Printf("  Link: %s\n", snap.Link)
	}
}

func printStatus(st playback.Status) {
	fmt.Printf("  State: %s\n", formatState(st))
	if st.CurrentIndex >= 0 {
		fmt.Printf("  Track: [%d] %s\n", st.CurrentIndex, st.Title)
		fmt.Printf("  Time: %s / %s\n", playback.FormatTime(st.Position), playback.FormatTime(st.Duration))
	}
	fmt.Printf("  Volume: %s %.0f%%", st.VolumeLevel.Icon(), st.Volume*100)
	if st.Muted {
		fmt.Print(" (muted)")
	}
	fmt.Println()
	if st.Message != "" {
		fmt.Printf("  Message: %s\n", st.Message)
	}
}

func printView(view httpapi.ViewResponse) {
	if view.Message != "" {
		fmt.Println(view.Message)
		return
	}
	for _, e := range view.Entries {
		marker := " "
		if e.Highlighted {
			marker = "♪"
		}
		fmt.Printf("%s %3d  %-40s %s\n", marker, e.Index, e.Title, e.Genre)
	}
}

func printNotification(n *notification.Notification) {
	// Print sequence number and event type header
	fmt.Printf("\n[Sequence: %d] === %s ===\n", n.SequenceNo, strings.ToUpper(strings.ReplaceAll(string(n.Type), "_", " ")))

	if n.Phase != "" {
		fmt.Printf("  Phase: %s\n", n.Phase)
	}
	if n.Message != "" {
		fmt.Printf("  %s\n", n.Message)
	}
	if n.Status != nil {
		printStatus(*n.Status)
	}
	if n.Link != "" {
		fmt.Printf("  Link: %s\n", n.Link)
	}
}
