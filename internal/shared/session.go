package shared

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// FlashMessage is a notice shown once on the next rendered page.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionManager keeps sessions in Redis behind an opaque cookie. The backend
// credential stays server side. Redis keys are derived from the cookie value
// with the secret, so a dump of Redis does not hand out live cookies.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
}

// Session is the per-request view of one browser session.
type Session struct {
	ID       string
	values   map[string]string
	token    string
	userName string
	flashes  []FlashMessage

	fresh     bool
	dirty     bool
	destroyed bool
	previous  string
}

type storedSession struct {
	Values   map[string]string `json:"values,omitempty"`
	Token    string            `json:"token,omitempty"`
	UserName string            `json:"user_name,omitempty"`
	Flashes  []FlashMessage    `json:"flashes,omitempty"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		secret:     []byte(secret),
	}
}

// Load returns the session named by the request cookie. Missing, unknown and
// expired cookies all yield a fresh session with a new ID.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return newSession(), nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return newSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	sess := &Session{
		ID:       cookie.Value,
		values:   stored.Values,
		token:    stored.Token,
		userName: stored.UserName,
		flashes:  stored.Flashes,
	}
	if sess.values == nil {
		sess.values = make(map[string]string)
	}
	return sess, nil
}

// Commit saves a changed session and refreshes its cookie. A destroyed
// session is removed and its cookie cleared.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, _ *http.Request, sess *Session) error {
	if sess == nil {
		return nil
	}
	if sess.previous != "" {
		if err := sm.client.Del(ctx, sm.redisKey(sess.previous)).Err(); err != nil {
			return fmt.Errorf("session: drop previous id: %w", err)
		}
		sess.previous = ""
	}
	if sess.destroyed {
		if err := sm.client.Del(ctx, sm.redisKey(sess.ID)).Err(); err != nil {
			return fmt.Errorf("session: destroy: %w", err)
		}
		http.SetCookie(w, sm.cookie("", -1))
		return nil
	}
	if sess.dirty || sess.fresh {
		raw, err := json.Marshal(storedSession{
			Values:   sess.values,
			Token:    sess.token,
			UserName: sess.userName,
			Flashes:  sess.flashes,
		})
		if err != nil {
			return err
		}
		if err := sm.client.Set(ctx, sm.redisKey(sess.ID), raw, sm.ttl).Err(); err != nil {
			return fmt.Errorf("session: save: %w", err)
		}
		sess.dirty, sess.fresh = false, false
	}
	http.SetCookie(w, sm.cookie(sess.ID, int(sm.ttl.Seconds())))
	return nil
}

// Destroy marks the session for deletion on the next Commit.
func (sm *SessionManager) Destroy(sess *Session) {
	if sess != nil {
		sess.destroyed = true
	}
}

// Renew moves the session to a new ID, keeping its data. Call it whenever
// the privilege level changes, such as on sign in.
func (sm *SessionManager) Renew(sess *Session) {
	if sess == nil {
		return
	}
	if !sess.fresh && sess.previous == "" {
		sess.previous = sess.ID
	}
	sess.ID = newSessionID()
	sess.dirty = true
}

// TTL is the idle lifetime of a session.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// CookieName is the name of the session cookie.
func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (sm *SessionManager) redisKey(id string) string {
	mac := hmac.New(sha256.New, sm.secret)
	_, _ = mac.Write([]byte(id))
	return "session:" + hex.EncodeToString(mac.Sum(nil))
}

func newSession() *Session {
	return &Session{ID: newSessionID(), values: make(map[string]string), fresh: true}
}

func newSessionID() string {
	return rand.Text()
}

// Set stores a string value.
func (s *Session) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	s.dirty = true
}

// Get returns the value stored under key.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// SetCredential stores the backend bearer token and the display name of its
// owner. Forms rendered before the sign-in stop validating.
func (s *Session) SetCredential(token, userName string) {
	s.token = token
	s.userName = userName
	delete(s.values, CSRFSessionKey)
	s.dirty = true
}

// Token returns the backend bearer token, empty when signed out.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// SetUserName updates the name shown in the top bar.
func (s *Session) SetUserName(name string) {
	s.userName = name
	s.dirty = true
}

// UserName returns the signed-in user's display name.
func (s *Session) UserName() string {
	if s == nil {
		return ""
	}
	return s.userName
}

// ClearCredential signs the session out without destroying it, so flashes
// still reach the login page.
func (s *Session) ClearCredential() {
	s.token = ""
	s.userName = ""
	s.dirty = true
}

// AddFlash queues a flash message.
func (s *Session) AddFlash(msg FlashMessage) {
	s.flashes = append(s.flashes, msg)
	s.dirty = true
}

// PopFlash removes and returns the oldest flash message, or nil.
func (s *Session) PopFlash() *FlashMessage {
	if len(s.flashes) == 0 {
		return nil
	}
	msg := s.flashes[0]
	s.flashes = s.flashes[1:]
	s.dirty = true
	return &msg
}
