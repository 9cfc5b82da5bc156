// Package session mirrors the authenticated session and the registered
// user between the in-memory store and durable local storage.
//
// Local storage is read when the program starts (Seed) and again whenever
// a caller needs an up-to-date answer (Refresh), so a login or logout made
// by another process is picked up before auth-sensitive decisions.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"todo/internal/localstore"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/store"
)

// Storage keys.
const (
	UserKey    = "user"
	SessionKey = "loggedInUser"
)

const schemaBase = "https://todo.invalid/schemas/"

const userSchema = `{
    "type": "object",
    "required": ["name", "email"],
    "properties": {
      "_id": {"type": "string"},
      "name": {"type": "string"},
      "email": {"type": "string"}
    }
  }`

var (
	sessionSchema = jsonschema.MustCompileString(schemaBase+"session.json", `{
  "type": "object",
  "required": ["user", "token"],
  "properties": {
    "token": {"type": "string", "minLength": 1},
    "user": `+userSchema+`
  }
}`)

	registrationSchema = jsonschema.MustCompileString(schemaBase+"registration.json", `{
  "type": "object",
  "required": ["user"],
  "properties": {
    "token": {"type": "string"},
    "user": `+userSchema+`
  }
}`)
)

// Provider reads and writes the session keys of a Storage and keeps a
// store in step with them.
type Provider struct {
	storage localstore.Storage
	logger  *log.Logger
}

// New creates a provider over storage.
func New(storage localstore.Storage, logger *log.Logger) *Provider {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provider{storage: storage, logger: logger}
}

// Load reads both keys. Values that are missing, malformed or fail schema
// validation come back as nil; only storage failures are errors.
func (p *Provider) Load() (*service.User, *service.Session, error) {
	var reg service.AuthResult
	hasUser, err := p.read(UserKey, registrationSchema, &reg)
	if err != nil {
		return nil, nil, err
	}
	var sess service.Session
	hasSession, err := p.read(SessionKey, sessionSchema, &sess)
	if err != nil {
		return nil, nil, err
	}

	var user *service.User
	if hasUser {
		user = &reg.User
	}
	if !hasSession {
		return user, nil, nil
	}
	return user, &sess, nil
}

// Seed loads storage into st. It is called once at startup.
func (p *Provider) Seed(st *store.Store) error {
	user, sess, err := p.Load()
	if err != nil {
		return err
	}
	st.Dispatch(store.SetUser{User: user}, store.SetSession{Session: sess})
	return nil
}

// Refresh re-reads storage and replaces the user and session held by st.
func (p *Provider) Refresh(st *store.Store) error {
	before := st.State()
	user, sess, err := p.Load()
	if err != nil {
		return err
	}
	if before.LoggedIn() != (sess != nil) {
		p.logger.Debug("session changed in storage", "logged_in", sess != nil)
	}
	st.Dispatch(store.SetUser{User: user}, store.SetSession{Session: sess})
	return nil
}

// SaveSession makes sess the active session in st and then persists it.
// A storage error leaves st updated.
func (p *Provider) SaveSession(st *store.Store, sess service.Session) error {
	st.Dispatch(store.SetSession{Session: &sess})
	return p.write(SessionKey, sess)
}

// SaveRegistration sets the registered user in st and then persists the
// result. A storage error leaves st updated.
func (p *Provider) SaveRegistration(st *store.Store, res service.AuthResult) error {
	user := res.User
	st.Dispatch(store.SetUser{User: &user})
	return p.write(UserKey, res)
}

// Invalidate ends the active session in storage and in st.
func (p *Provider) Invalidate(st *store.Store) error {
	if err := p.storage.RemoveItem(SessionKey); err != nil {
		return err
	}
	st.Dispatch(store.SetSession{Session: nil})
	return nil
}

func (p *Provider) read(key string, schema *jsonschema.Schema, out any) (bool, error) {
	raw, ok, err := p.storage.GetItem(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		p.logger.Warn("ignoring malformed stored value", "key", key, "err", err)
		return false, nil
	}
	if err := schema.Validate(doc); err != nil {
		p.logger.Warn("ignoring invalid stored value", "key", key, "err", err)
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		p.logger.Warn("ignoring malformed stored value", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (p *Provider) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := p.storage.SetItem(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
