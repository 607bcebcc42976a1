package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restro_pos/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

type SessionData struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderEvent is published on every order mutation so displays (kitchen
// board, dashboards) can refresh without polling.
type OrderEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}

const orderEventsChannel = "pos:order_events"

// State mirror keys: one key per entity collection, each a JSON array.
const (
	keyMenuItems  = "pos:menu_items"
	keyStockItems = "pos:stock_items"
	keyTables     = "pos:tables"
	keyOrders     = "pos:orders"
)

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(token string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+token, jsonData, ttl).Err()
}

func (c *Client) GetSession(token string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Insight cache: generated AI text is expensive, so dashboard insights are
// kept for a while instead of calling the external API on every request.
func (c *Client) SetInsight(key, text string, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "insight:"+key, text, ttl).Err()
}

func (c *Client) GetInsight(key string) (string, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "insight:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("insight not cached")
		}
		return "", fmt.Errorf("failed to get insight: %w", err)
	}
	return val, nil
}

// Order events
func (c *Client) PublishOrderEvent(event *OrderEvent) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return c.rdb.Publish(ctx, orderEventsChannel, jsonData).Err()
}

// SubscribeOrderEvents delivers order events until ctx is cancelled.
func (c *Client) SubscribeOrderEvents(ctx context.Context) (<-chan OrderEvent, error) {
	sub := c.rdb.Subscribe(ctx, orderEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to order events: %w", err)
	}

	events := make(chan OrderEvent)
	go func() {
		defer close(events)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event OrderEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return events, nil
}

// State mirror: last-write-wins copy of the four collections, written after
// mutations. Postgres remains the system of record.
func (c *Client) SaveSnapshot(snapshot *models.Snapshot) error {
	ctx := context.Background()
	collections := map[string]interface{}{
		keyMenuItems:  snapshot.MenuItems,
		keyStockItems: snapshot.StockItems,
		keyTables:     snapshot.Tables,
		keyOrders:     snapshot.Orders,
	}
	for key, value := range collections {
		jsonData, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		if err := c.rdb.Set(ctx, key, jsonData, 0).Err(); err != nil {
			return fmt.Errorf("failed to store %s: %w", key, err)
		}
	}
	return nil
}

func (c *Client) LoadSnapshot() (*models.Snapshot, error) {
	ctx := context.Background()
	snapshot := &models.Snapshot{}
	collections := map[string]interface{}{
		keyMenuItems:  &snapshot.MenuItems,
		keyStockItems: &snapshot.StockItems,
		keyTables:     &snapshot.Tables,
		keyOrders:     &snapshot.Orders,
	}
	for key, dest := range collections {
		val, err := c.rdb.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get %s: %w", key, err)
		}
		if err := json.Unmarshal([]byte(val), dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
		}
	}
	return snapshot, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
