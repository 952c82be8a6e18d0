// Package sync drives the capture synchronization protocol from the client
// side: it pushes the local path to the presence endpoint while capturing and
// polls the server for other runners and freshly claimed territories.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shaswat2031/rungo/internal/capture"
	"github.com/shaswat2031/rungo/internal/ledger"
	"github.com/shaswat2031/rungo/internal/presence"
	"github.com/shaswat2031/rungo/internal/zone"
)

const pullInterval = 5 * time.Second

// Client is safe for concurrent use by the capture callback and the pull
// loop. Push and pull failures degrade silently; the repeating schedule is
// the retry mechanism.
type Client struct {
	baseURL string
	http    *http.Client
	userID  string
	color   string

	mu        sync.Mutex
	sessionID string
	lastLen   int

	// OnPresence and OnTerritories merge pull results into rendering state.
	OnPresence    func([]presence.Active)
	OnTerritories func([]ledger.Territory)
}

func New(baseURL, userID, color string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		userID:  userID,
		color:   color,
	}
}

// BindSession ties subsequent pushes to one capture session. Pushes carrying
// a session identifier other than the bound one are discarded, which keeps a
// restarted session from acting on a stale predecessor's updates.
func (c *Client) BindSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
	c.lastLen = 0
}

// PushPath uploads the live path when its length changed since the last push
// for the bound session.
func (c *Client) PushPath(sessionID string, path capture.Path) {
	c.mu.Lock()
	if sessionID != c.sessionID || len(path) == c.lastLen {
		c.mu.Unlock()
		return
	}
	c.lastLen = len(path)
	c.mu.Unlock()

	body := presence.UpdateRequest{
		UserID:      c.userID,
		Path:        path,
		IsCapturing: true,
		Color:       c.color,
	}
	if err := c.postJSON(context.Background(), "/active", body, nil); err != nil {
		log.Printf("presence push failed: %v", err)
	}
}

// Deregister announces the end of the capture session. Sent once on stop.
func (c *Client) Deregister() {
	body := presence.UpdateRequest{UserID: c.userID, IsCapturing: false}
	if err := c.postJSON(context.Background(), "/active", body, nil); err != nil {
		log.Printf("presence deregister failed: %v", err)
	}
}

// SubmitClaim sends the finished territory with the caller's stats snapshot.
// Unlike presence traffic, a claim failure is reported to the caller; the
// claim is not queued or retried.
func (c *Client) SubmitClaim(t ledger.Territory, stats ledger.Stats) error {
	req := ledger.ClaimRequest{Territory: t, UserID: c.userID, Stats: stats}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.postJSON(context.Background(), "/claim", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("claim rejected by server")
	}
	return nil
}

// FetchZones loads the hot-zone reference set.
func (c *Client) FetchZones(ctx context.Context) ([]zone.HotZone, error) {
	var zones []zone.HotZone
	if err := c.getJSON(ctx, "/zones", &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// RunPull polls presences and territories every 5 seconds until ctx is done.
// An immediate first pull runs before the ticker starts.
func (c *Client) RunPull(ctx context.Context) {
	ticker := time.NewTicker(pullInterval)
	defer ticker.Stop()

	c.pull(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.pull(ctx)
		}
	}
}

func (c *Client) pull(ctx context.Context) {
	var actives []presence.Active
	if err := c.getJSON(ctx, "/active?userId="+url.QueryEscape(c.userID), &actives); err == nil {
		if c.OnPresence != nil {
			c.OnPresence(actives)
		}
	}

	var territories []ledger.Territory
	if err := c.getJSON(ctx, "/territories", &territories); err == nil {
		if c.OnTerritories != nil {
			c.OnTerritories(territories)
		}
	}
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
