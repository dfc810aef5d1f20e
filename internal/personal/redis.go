package personal

// #region imports
import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// #endregion

// #region store-struct
// RedisStore keeps one JSON-serialized Record per user. Feedback appends are
// read-modify-write; the entries are independent, order-insensitive facts, so
// interleaving concurrent turns for one user is acceptable.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client. Used by tests with a
// miniredis-backed client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func userKey(userID string) string {
	return "personal:" + userID
}

// #endregion store-struct

// #region load-save
func (s *RedisStore) load(ctx context.Context, userID string) (Record, error) {
	data, err := s.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return Record{Preferences: map[string]string{}}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("load record: %w", err)
	}
	var rec Record
	if err := sonic.Unmarshal([]byte(data), &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.Preferences == nil {
		rec.Preferences = map[string]string{}
	}
	return rec, nil
}

func (s *RedisStore) save(ctx context.Context, userID string, rec Record) error {
	data, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.client.Set(ctx, userKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// #endregion load-save

// #region preferences
// GetPreferences reads the preference map; unknown users get an empty map.
func (s *RedisStore) GetPreferences(ctx context.Context, userID string) (map[string]string, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.Preferences, nil
}

// SetPreference upserts one preference key.
func (s *RedisStore) SetPreference(ctx context.Context, userID, key, value string) error {
	if userID == "" || key == "" {
		return nil
	}
	rec, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	rec.Preferences[key] = value
	return s.save(ctx, userID, rec)
}

// #endregion preferences

// #region feedback
// RecordFeedback appends one feedback entry; duplicates are kept.
func (s *RedisStore) RecordFeedback(ctx context.Context, userID, contentID string, tags []string, helpful *bool, locale string) error {
	if userID == "" || contentID == "" {
		return nil
	}
	rec, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	rec.Feedback = append(rec.Feedback, FeedbackEntry{
		ContentID: contentID,
		Tags:      tags,
		Helpful:   helpful,
		Locale:    locale,
		CreatedAt: time.Now().UTC(),
	})
	return s.save(ctx, userID, rec)
}

// FeedbackLog returns a user's feedback entries in append order.
func (s *RedisStore) FeedbackLog(ctx context.Context, userID string) ([]FeedbackEntry, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.Feedback, nil
}

// #endregion feedback

// #region tags
// TagCounts aggregates tag frequencies across a user's feedback log.
func (s *RedisStore) TagCounts(ctx context.Context, userID string) (map[string]int, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, e := range rec.Feedback {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	return counts, nil
}

// RecommendTags ranks a user's seen tags by frequency descending.
func (s *RedisStore) RecommendTags(ctx context.Context, userID string, limit int) ([]string, error) {
	rec, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var firstSeen []string
	for _, e := range rec.Feedback {
		for _, t := range e.Tags {
			if counts[t] == 0 {
				firstSeen = append(firstSeen, t)
			}
			counts[t]++
		}
	}
	return rankTags(counts, firstSeen, limit), nil
}

// #endregion tags
