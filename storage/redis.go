package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"
	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"

	"github.com/rking788/warmind-advisors/models"
)

const (
	sessionsPrefix = "sessions"

	// SessionTTL is how long an idle voice session is remembered.
	SessionTTL = 30 * time.Minute
)

// Session is the per conversation state remembered between voice requests so the player
// does not need to repeat their gamertag.
type Session struct {
	Gamertag     string          `json:"gamertag"`
	Platform     models.Platform `json:"platform"`
	MembershipID string          `json:"membershipId,omitempty"`
}

// DestinyID is the identity previously resolved for this session, if any.
func (s *Session) DestinyID() *models.DestinyID {
	if s == nil || s.MembershipID == "" || s.Platform == models.AnyPlatform {
		return nil
	}

	id := models.NewDestinyID(s.Platform, s.MembershipID)
	return &id
}

// Cache will be a generic wrapper around a Redis cache.
type Cache struct {
	*redis.Pool
}

// NewCache will create a new cache instance and the required Redis connection pool.
func NewCache(addr string) *Cache {
	// 25 is the maximum number of active connections for the Heroku Redis free tier
	return &Cache{&redis.Pool{
		MaxIdle:     3,
		MaxActive:   25,
		IdleTimeout: 240 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.DialURL(addr) },
	}}
}

func sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", sessionsPrefix, id)
}

// GetSession reads a stored session. ErrNotFound is returned when the session has expired or
// was never saved.
func (c *Cache) GetSession(id string) (*Session, error) {

	conn := c.Get()
	defer conn.Close()

	reply, err := redis.Bytes(conn.Do("GET", sessionKey(id)))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	session := &Session{}
	if err = json.Unmarshal(reply, session); err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Couldn't unmarshal session %s: %s", id, err.Error())
		return nil, err
	}

	return session, nil
}

// SaveSession will persist the given session to the cache, refreshing its expiration.
func (c *Cache) SaveSession(id string, session *Session) error {

	conn := c.Get()
	defer conn.Close()

	sessionBytes, err := json.Marshal(session)
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Couldn't marshal session to string: %s", err.Error())
		return err
	}

	_, err = conn.Do("SET", sessionKey(id), sessionBytes, "EX", int(SessionTTL.Seconds()))
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Failed to set session: %s", err.Error())
	}

	return err
}

// ClearSession will remove the specified session from the cache, this will be done
// when the user ends the conversation.
func (c *Cache) ClearSession(id string) error {

	conn := c.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", sessionKey(id))
	if err != nil {
		raven.CaptureError(err, nil)
		glg.Errorf("Failed to delete the session from the Redis cache: %s", err.Error())
	}

	return err
}
