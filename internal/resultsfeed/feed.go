package resultsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/bet-insight/internal/config"
	"github.com/yourusername/bet-insight/internal/metrics"
	"github.com/yourusername/bet-insight/internal/models"
)

// ResultHandler is called for every settled result received on the feed
type ResultHandler func(ctx context.Context, result *models.HistoricalRecord) error

// FeedClient maintains a WebSocket subscription to the settled-results feed
// and dispatches each settlement to the registered handler.
type FeedClient struct {
	streamURL    string
	maxRetries   int
	baseBackoff  time.Duration
	pingInterval time.Duration

	mu          sync.RWMutex
	conn        *websocket.Conn
	isConnected bool

	handler ResultHandler
	logger  *log.Logger
}

// feedMessage is the provider's wire format for one feed event
type feedMessage struct {
	Op        string  `json:"op"`
	BetslipID string  `json:"betslip_id"`
	Team      string  `json:"team"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	Country   string  `json:"country"`
	League    string  `json:"league"`
	Market    string  `json:"market_type"`
	Selection string  `json:"selection"`
	Odds      float64 `json:"odds"`
	Result    string  `json:"result"`
	HomeScore *int    `json:"home_score"`
	AwayScore *int    `json:"away_score"`
	EventDate string  `json:"event_date"`
}

// NewFeedClient creates a new results feed client
func NewFeedClient(cfg config.ResultsFeedConfig, handler ResultHandler, logger *log.Logger) *FeedClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &FeedClient{
		streamURL:    cfg.StreamURL,
		maxRetries:   cfg.ReconnectMaxRetries,
		baseBackoff:  time.Duration(cfg.ReconnectBaseSeconds) * time.Second,
		pingInterval: time.Duration(cfg.PingIntervalSeconds) * time.Second,
		handler:      handler,
		logger:       logger,
	}
}

// Run connects to the feed and processes messages until the context is
// cancelled or reconnection attempts are exhausted.
func (c *FeedClient) Run(ctx context.Context) error {
	attempt := 0

	for {
		if err := c.connect(ctx); err != nil {
			attempt++
			if attempt > c.maxRetries {
				return fmt.Errorf("results feed gave up after %d reconnect attempts: %w", c.maxRetries, err)
			}

			metrics.ResultsFeedReconnectsTotal.Inc()
			backoff := c.backoffFor(attempt)
			c.logger.Printf("Feed connection failed (attempt %d/%d), retrying in %s: %v",
				attempt, c.maxRetries, backoff, err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}

		attempt = 0
		err := c.readLoop(ctx)
		c.close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Printf("Feed read loop ended, reconnecting: %v", err)
		metrics.ResultsFeedReconnectsTotal.Inc()
	}
}

// connect dials the feed and starts the keepalive pinger
func (c *FeedClient) connect(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, c.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial results feed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.isConnected = true
	c.mu.Unlock()

	c.logger.Printf("Connected to results feed: %s", c.streamURL)
	return nil
}

// readLoop reads feed messages until the connection drops or ctx ends
func (c *FeedClient) readLoop(ctx context.Context) error {
	pinger := time.NewTicker(c.pingInterval)
	defer pinger.Stop()

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}

	msgs := make(chan []byte)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	// The reader holds its own reference so teardown can nil c.conn
	// without racing it; done unblocks a reader stuck on a full send.
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				errs <- err
				return
			}
			select {
			case msgs <- data:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pinger.C:
			if err := c.ping(); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		case err := <-errs:
			return err
		case data := <-msgs:
			metrics.ResultsFeedMessagesTotal.Inc()
			if err := c.handleMessage(ctx, data); err != nil {
				c.logger.Printf("Failed to handle feed message: %v", err)
			}
		}
	}
}

// handleMessage parses one feed event and dispatches settled results
func (c *FeedClient) handleMessage(ctx context.Context, data []byte) error {
	var msg feedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("malformed feed message: %w", err)
	}

	switch msg.Op {
	case "result":
		result, err := parseResult(&msg)
		if err != nil {
			return err
		}
		return c.handler(ctx, result)
	case "ping", "pong", "heartbeat":
		return nil
	default:
		c.logger.Printf("Ignoring unknown feed op: %s", msg.Op)
		return nil
	}
}

// parseResult converts a feed event into a settled record
func parseResult(msg *feedMessage) (*models.HistoricalRecord, error) {
	betslipID, err := uuid.Parse(msg.BetslipID)
	if err != nil {
		return nil, fmt.Errorf("invalid betslip_id %q: %w", msg.BetslipID, err)
	}

	result := models.BetResult(msg.Result)
	if result != models.BetResultWin && result != models.BetResultLoss {
		return nil, fmt.Errorf("feed result %q is not settled", msg.Result)
	}

	eventDate, err := time.Parse(time.RFC3339, msg.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event_date %q: %w", msg.EventDate, err)
	}

	record := &models.HistoricalRecord{
		ID:         uuid.New(),
		BetslipID:  betslipID,
		Team:       msg.Team,
		HomeTeam:   msg.HomeTeam,
		AwayTeam:   msg.AwayTeam,
		Country:    msg.Country,
		League:     msg.League,
		MarketType: models.MarketType(msg.Market),
		Selection:  msg.Selection,
		Odds:       msg.Odds,
		Result:     result,
		Side:       models.ResolveSide(msg.Team, msg.HomeTeam, msg.AwayTeam),
		EventDate:  eventDate,
		HomeScore:  msg.HomeScore,
		AwayScore:  msg.AwayScore,
	}

	return record, nil
}

// backoffFor returns the exponential delay before reconnect attempt n, capped
func (c *FeedClient) backoffFor(attempt int) time.Duration {
	const maxBackoff = 60 * time.Second

	backoff := c.baseBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// ping sends a keepalive control frame
func (c *FeedClient) ping() error {
	c.mu.RLock()
	conn := c.conn
	connected := c.isConnected
	c.mu.RUnlock()

	if !connected || conn == nil {
		return fmt.Errorf("not connected")
	}
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

// IsConnected reports whether the feed connection is up
func (c *FeedClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// close tears down the current connection
func (c *FeedClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.isConnected = false
}
