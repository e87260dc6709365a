package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"taskboard/models"
)

// SessionTTL is how long an issued bearer token stays valid.
const SessionTTL = 24 * time.Hour

// ErrSessionNotFound is returned when a token does not resolve to a
// live session.
var ErrSessionNotFound = errors.New("session not found")

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}

	return client
}

// SessionGate resolves bearer tokens to user identities. It is the auth
// collaborator every task request passes through.
type SessionGate struct {
	Client *redis.Client
}

// Issue creates a session for the user and returns its bearer token.
func (g *SessionGate) Issue(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	session := models.Session{
		Token:        GenerateToken(32),
		UserID:       userID,
		CreatedAt:    now.Format(time.RFC3339),
		ExpiresAt:    now.Add(SessionTTL).Format(time.RFC3339),
		LastActivity: now.Format(time.RFC3339),
	}
	if err := StoreSession(g.Client, session, SessionTTL); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Resolve maps a bearer token to the user id it was issued for, or
// fails when the session is missing or expired.
func (g *SessionGate) Resolve(ctx context.Context, token string) (string, error) {
	session, err := GetSession(g.Client, token)
	if err != nil {
		return "", err
	}

	expiresAt, err := time.Parse(time.RFC3339, session.ExpiresAt)
	if err != nil || !time.Now().Before(expiresAt) {
		return "", ErrSessionNotFound
	}

	if err := UpdateLastActivity(g.Client, token); err != nil {
		log.Println("Error updating last activity:", err)
	}
	return session.UserID, nil
}

// Revoke deletes the session behind a token.
func (g *SessionGate) Revoke(ctx context.Context, token string) error {
	return DeleteSession(g.Client, token)
}

// StoreSession saves a session in Redis
func StoreSession(client *redis.Client, session models.Session, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionMap := map[string]any{
		"user_id":       session.UserID,
		"created_at":    session.CreatedAt,
		"expires_at":    session.ExpiresAt,
		"last_activity": session.LastActivity,
	}

	key := "session:" + session.Token
	if err := client.HSet(ctx, key, sessionMap).Err(); err != nil {
		return err
	}

	if err := client.Expire(ctx, key, ttl).Err(); err != nil {
		return err
	}

	// Add to the user's session index
	return client.SAdd(ctx, "user_sessions:"+session.UserID, key).Err()
}

// GetSession retrieves session details from Redis
func GetSession(client *redis.Client, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + token

	data, err := client.HGetAll(ctx, key).Result()
	if err != nil || len(data) == 0 {
		return nil, ErrSessionNotFound
	}

	session := &models.Session{
		Token:        token,
		UserID:       data["user_id"],
		CreatedAt:    data["created_at"],
		ExpiresAt:    data["expires_at"],
		LastActivity: data["last_activity"],
	}

	return session, nil
}

// DeleteSession removes a single session and its reference in the user index
func DeleteSession(client *redis.Client, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := "session:" + token

	userID, err := client.HGet(ctx, key, "user_id").Result()
	if err != nil {
		return fmt.Errorf("unable to retrieve session: %w", err)
	}

	if err := client.SRem(ctx, "user_sessions:"+userID, key).Err(); err != nil {
		return err
	}

	return client.Del(ctx, key).Err()
}

// UpdateLastActivity updates the last activity timestamp of a session
func UpdateLastActivity(client *redis.Client, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.HSet(ctx, "session:"+token, "last_activity", time.Now().Format(time.RFC3339)).Err()
}

// DeleteAllUserSessions removes all sessions associated with a specific user
func DeleteAllUserSessions(client *redis.Client, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessionKeys, err := client.SMembers(ctx, "user_sessions:"+userID).Result()
	if err != nil {
		return err
	}

	if len(sessionKeys) > 0 {
		if err := client.Del(ctx, sessionKeys...).Err(); err != nil {
			return err
		}
	}

	// Clean up the index itself
	return client.Del(ctx, "user_sessions:"+userID).Err()
}
