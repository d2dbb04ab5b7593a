package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/teamstools/chatsessiond/server/metrics"
	"github.com/teamstools/chatsessiond/server/msgraph"
	"github.com/teamstools/chatsessiond/server/msgraph/clientmodels"
)

const (
	StatusCreated         = "Chat created successfully!"
	StatusFailed          = "Failed to create chat."
	StatusNoUsersSelected = "No users selected."

	DefaultTopic   = "Test Chat"
	welcomeMessage = "Welcome to the chat! Let’s get started."
)

// Controller owns the mutable state of one chat session: the chat id (empty
// until creation succeeds), the cached member list, a status line and the
// loading gate. All Graph calls for the session go through it.
type Controller struct {
	id      string
	client  msgraph.Client
	logger  *logrus.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	loading   bool
	chatID    string
	topic     string
	createdAt time.Time
	status    string
	members   []clientmodels.ChatMember
}

// Snapshot is a copy of the controller state safe to hand to callers.
type Snapshot struct {
	ID        string                    `json:"session_id"`
	ChatID    string                    `json:"chat_id"`
	Topic     string                    `json:"topic,omitempty"`
	CreatedAt time.Time                 `json:"created_at,omitempty"`
	Status    string                    `json:"status,omitempty"`
	Members   []clientmodels.ChatMember `json:"members"`
}

// CreateResult reports the outcome of CreateChat, including which candidates
// were dropped during directory resolution.
type CreateResult struct {
	ChatID     string
	MemberIDs  []string
	Unresolved []Candidate
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) ChatID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatID
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	members := make([]clientmodels.ChatMember, len(c.members))
	copy(members, c.members)
	return Snapshot{
		ID:        c.id,
		ChatID:    c.chatID,
		Topic:     c.topic,
		CreatedAt: c.createdAt,
		Status:    c.status,
		Members:   members,
	}
}

// begin takes the loading gate. A second operation while one is in flight is
// rejected, not queued, mirroring a disabled submit button.
func (c *Controller) begin() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return newError(ErrBusy, "operation already in progress", nil)
	}
	c.loading = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

// CreateChat resolves the candidates, creates the group chat with every
// resolved id plus the creator as owners, and posts the welcome message.
// The welcome message is best effort; its failure never fails the create.
func (c *Controller) CreateChat(candidates []Candidate, creatorID, topic string) (*CreateResult, *Error) {
	if creatorID == "" {
		return nil, newError(ErrValidation, "creator id is required", nil)
	}
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	resolution := c.resolveCandidates(candidates)
	if len(resolution.UserIDs) == 0 {
		c.setStatus(StatusNoUsersSelected)
		return nil, newError(ErrNoUsersSelected, "no users selected", nil)
	}

	memberIDs := dedupe(append(resolution.UserIDs, creatorID))

	if topic == "" {
		topic = DefaultTopic
	}

	now := time.Now()
	chat, err := c.client.CreateGroupChat(topic, memberIDs, now)
	if err != nil {
		c.setStatus(StatusFailed)
		return nil, newError(ErrRemote, "failed to create chat", err)
	}

	c.mu.Lock()
	c.chatID = chat.ID
	c.topic = topic
	c.createdAt = now
	c.status = StatusCreated
	c.mu.Unlock()

	if _, err := c.client.SendChat(chat.ID, welcomeMessage); err != nil {
		c.logger.WithError(err).WithField("chat_id", chat.ID).Warn("Unable to post the welcome message")
	}

	c.refreshMembers()

	return &CreateResult{
		ChatID:     chat.ID,
		MemberIDs:  memberIDs,
		Unresolved: resolution.Unresolved,
	}, nil
}

// AddMember adds one owner with history hidden from before this instant. No
// client-side dedupe: adding a user twice surfaces whatever Graph returns.
func (c *Controller) AddMember(userID string) *Error {
	if userID == "" {
		return newError(ErrValidation, "user id is required", nil)
	}
	if c.ChatID() == "" {
		return newError(ErrNoActiveChat, "no active chat", nil)
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.client.AddChatMember(c.ChatID(), userID, time.Now()); err != nil {
		return newError(ErrRemote, "failed to add member", err)
	}

	c.refreshMembers()
	return nil
}

// RemoveMember deletes the membership record whose participant id matches
// userID. The deletion key is the membership record id, not the user id.
func (c *Controller) RemoveMember(userID string) *Error {
	if userID == "" {
		return newError(ErrValidation, "user id is required", nil)
	}
	chatID := c.ChatID()
	if chatID == "" {
		return newError(ErrNoActiveChat, "no active chat", nil)
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	members, err := c.client.ListChatMembers(chatID)
	if err != nil {
		return newError(ErrRemote, "failed to list members", err)
	}

	var membership *clientmodels.ChatMember
	for i := range members {
		if members[i].UserID == userID {
			membership = &members[i]
			break
		}
	}
	if membership == nil {
		return newError(ErrMemberNotFound, "user not found in chat", nil)
	}

	if err := c.client.RemoveChatMember(chatID, membership.ID); err != nil {
		if msgraph.IsErrorNotFound(err) {
			c.refreshMembers()
			return newError(ErrMemberNotFound, "user not found in chat", err)
		}
		return newError(ErrRemote, "failed to remove member", err)
	}

	c.refreshMembers()
	return nil
}

// RemoveAllMembers deletes every membership sequentially in listing order,
// stopping at the first failure. Members removed before the failure stay
// removed; only an aggregate error is reported.
func (c *Controller) RemoveAllMembers() *Error {
	chatID := c.ChatID()
	if chatID == "" {
		return newError(ErrNoActiveChat, "no active chat", nil)
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	members, err := c.client.ListChatMembers(chatID)
	if err != nil {
		return newError(ErrRemote, "failed to list members", err)
	}

	for _, member := range members {
		if err := c.client.RemoveChatMember(chatID, member.ID); err != nil {
			c.refreshMembers()
			return newError(ErrRemote, fmt.Sprintf("failed to remove all members, stopped at %s", member.UserID), err)
		}
	}

	c.refreshMembers()
	return nil
}

// Refresh re-fetches the member list under the loading gate.
func (c *Controller) Refresh() *Error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	c.refreshMembers()
	return nil
}

// refreshMembers replaces the member cache. Without an active chat the cache
// is cleared instead of calling Graph; a failed fetch also clears it.
func (c *Controller) refreshMembers() {
	chatID := c.ChatID()
	if chatID == "" {
		c.mu.Lock()
		c.members = nil
		c.mu.Unlock()
		return
	}

	members, err := c.client.ListChatMembers(chatID)
	if err != nil {
		c.logger.WithError(err).WithField("chat_id", chatID).Warn("Unable to refresh the chat member list")
		members = nil
	}

	c.mu.Lock()
	c.members = members
	c.mu.Unlock()
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// Manager is the in-memory session registry. Sessions live only for the
// lifetime of the process.
type Manager struct {
	client  msgraph.Client
	logger  *logrus.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	sessions map[string]*Controller
}

func NewManager(client msgraph.Client, logger *logrus.Logger, metrics *metrics.Metrics) *Manager {
	return &Manager{
		client:   client,
		logger:   logger,
		metrics:  metrics,
		sessions: map[string]*Controller{},
	}
}

// NewSession builds a controller that is not yet retrievable; callers
// register it once its chat exists, so a failed create leaves nothing behind.
func (m *Manager) NewSession() *Controller {
	return &Controller{
		id:      uuid.NewString(),
		client:  m.client,
		logger:  m.logger,
		metrics: m.metrics,
	}
}

func (m *Manager) Register(controller *Controller) {
	m.mu.Lock()
	m.sessions[controller.id] = controller
	count := len(m.sessions)
	m.mu.Unlock()

	m.metrics.ObserveActiveSessionsTotal(int64(count))
}

func (m *Manager) Get(sessionID string) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	controller, ok := m.sessions[sessionID]
	return controller, ok
}
