package session

import (
	"net/http"
	"testing"

	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/teamstools/chatsessiond/server/msgraph/clientmodels"
	"github.com/teamstools/chatsessiond/server/msgraph/mocks"
)

func newTestController() (*Controller, *mocks.Client) {
	client := &mocks.Client{}
	controller := &Controller{
		id:     "mockSessionID",
		client: client,
		logger: logrus.New(),
	}
	return controller, client
}

func testMembers() []clientmodels.ChatMember {
	return []clientmodels.ChatMember{
		{ID: "membership-1", UserID: "user-1", DisplayName: "User One", Roles: []string{"owner"}},
		{ID: "membership-2", UserID: "user-2", DisplayName: "User Two", Roles: []string{"owner"}},
		{ID: "membership-3", UserID: "user-3", DisplayName: "User Three", Roles: []string{"owner"}},
	}
}

func TestCreateChat(t *testing.T) {
	controller, client := newTestController()

	client.On("GetUser", "a@example.com").Return(&clientmodels.User{ID: "id-a"}, nil)
	client.On("GetUser", "bad@example.com").Return(nil, errors.New("not found"))
	client.On("CreateGroupChat", "Test Chat", []string{"id-a", "creator-id"}, mock.AnythingOfType("time.Time")).Return(&clientmodels.Chat{ID: "chat-id"}, nil)
	client.On("SendChat", "chat-id", mock.AnythingOfType("string")).Return(&clientmodels.Message{ID: "msg-id"}, nil)
	client.On("ListChatMembers", "chat-id").Return(testMembers()[:2], nil)

	candidates := []Candidate{
		{Email: "a@example.com"},
		{Email: "bad@example.com"},
	}

	result, err := controller.CreateChat(candidates, "creator-id", "")
	require.Nil(t, err)
	assert.Equal(t, "chat-id", result.ChatID)
	assert.Equal(t, []string{"id-a", "creator-id"}, result.MemberIDs)
	assert.Equal(t, []Candidate{{Email: "bad@example.com"}}, result.Unresolved)

	snapshot := controller.Snapshot()
	assert.Equal(t, StatusCreated, snapshot.Status)
	assert.Equal(t, "chat-id", snapshot.ChatID)
	assert.Equal(t, "Test Chat", snapshot.Topic)
	assert.Len(t, snapshot.Members, 2)

	client.AssertExpectations(t)
}

func TestCreateChatNoUsersSelected(t *testing.T) {
	controller, client := newTestController()

	result, err := controller.CreateChat(nil, "creator-id", "Planning")
	require.NotNil(t, err)
	assert.Nil(t, result)
	assert.Equal(t, ErrNoUsersSelected, err.Kind)
	assert.Equal(t, StatusNoUsersSelected, controller.Snapshot().Status)
	assert.Empty(t, controller.ChatID())

	client.AssertNotCalled(t, "CreateGroupChat", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateChatAllCandidatesUnresolvable(t *testing.T) {
	controller, client := newTestController()

	client.On("GetUser", "gone@example.com").Return(nil, errors.New("request failed"))

	_, err := controller.CreateChat([]Candidate{{Email: "gone@example.com"}}, "creator-id", "")
	require.NotNil(t, err)
	assert.Equal(t, ErrNoUsersSelected, err.Kind)

	client.AssertNotCalled(t, "CreateGroupChat", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateChatDedupesCreator(t *testing.T) {
	controller, client := newTestController()

	client.On("GetUser", "creator@example.com").Return(&clientmodels.User{ID: "creator-id"}, nil)
	client.On("CreateGroupChat", "Test Chat", []string{"creator-id"}, mock.AnythingOfType("time.Time")).Return(&clientmodels.Chat{ID: "chat-id"}, nil)
	client.On("SendChat", "chat-id", mock.AnythingOfType("string")).Return(&clientmodels.Message{}, nil)
	client.On("ListChatMembers", "chat-id").Return(testMembers()[:1], nil)

	result, err := controller.CreateChat([]Candidate{{Email: "creator@example.com"}}, "creator-id", "")
	require.Nil(t, err)
	assert.Equal(t, []string{"creator-id"}, result.MemberIDs)

	client.AssertExpectations(t)
}

func TestCreateChatFailure(t *testing.T) {
	controller, client := newTestController()

	client.On("GetUser", "a@example.com").Return(&clientmodels.User{ID: "id-a"}, nil)
	client.On("CreateGroupChat", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("forbidden"))

	result, err := controller.CreateChat([]Candidate{{Email: "a@example.com"}}, "creator-id", "")
	require.NotNil(t, err)
	assert.Nil(t, result)
	assert.Equal(t, ErrRemote, err.Kind)
	assert.Equal(t, StatusFailed, controller.Snapshot().Status)
	assert.Empty(t, controller.ChatID())

	client.AssertNotCalled(t, "SendChat", mock.Anything, mock.Anything)
}

func TestCreateChatWelcomeMessageFailureStillCreated(t *testing.T) {
	controller, client := newTestController()

	client.On("GetUser", "a@example.com").Return(&clientmodels.User{ID: "id-a"}, nil)
	client.On("CreateGroupChat", mock.Anything, mock.Anything, mock.Anything).Return(&clientmodels.Chat{ID: "chat-id"}, nil)
	client.On("SendChat", "chat-id", mock.AnythingOfType("string")).Return(nil, errors.New("throttled"))
	client.On("ListChatMembers", "chat-id").Return(testMembers()[:2], nil)

	result, err := controller.CreateChat([]Candidate{{Email: "a@example.com"}}, "creator-id", "")
	require.Nil(t, err)
	assert.Equal(t, "chat-id", result.ChatID)
	assert.Equal(t, StatusCreated, controller.Snapshot().Status)
}

func TestAddMemberWithoutActiveChat(t *testing.T) {
	controller, client := newTestController()

	err := controller.AddMember("user-9")
	require.NotNil(t, err)
	assert.Equal(t, ErrNoActiveChat, err.Kind)

	client.AssertNotCalled(t, "AddChatMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMemberEmptyUserID(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	err := controller.AddMember("")
	require.NotNil(t, err)
	assert.Equal(t, ErrValidation, err.Kind)

	client.AssertNotCalled(t, "AddChatMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMember(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("AddChatMember", "chat-id", "user-9", mock.AnythingOfType("time.Time")).Return(&clientmodels.ChatMember{ID: "membership-9", UserID: "user-9"}, nil)
	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)

	err := controller.AddMember("user-9")
	require.Nil(t, err)
	assert.Len(t, controller.Snapshot().Members, 3)

	client.AssertExpectations(t)
}

func TestAddMemberFailure(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"
	controller.members = testMembers()[:1]

	client.On("AddChatMember", "chat-id", "user-9", mock.AnythingOfType("time.Time")).Return(nil, errors.New("duplicate member"))

	err := controller.AddMember("user-9")
	require.NotNil(t, err)
	assert.Equal(t, ErrRemote, err.Kind)
	assert.Len(t, controller.Snapshot().Members, 1)

	client.AssertNotCalled(t, "ListChatMembers", mock.Anything)
}

func TestRemoveMemberNotFound(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)

	err := controller.RemoveMember("user-404")
	require.NotNil(t, err)
	assert.Equal(t, ErrMemberNotFound, err.Kind)

	client.AssertNotCalled(t, "RemoveChatMember", mock.Anything, mock.Anything)
}

func TestRemoveMemberDeletesByMembershipID(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)
	client.On("RemoveChatMember", "chat-id", "membership-2").Return(nil)

	err := controller.RemoveMember("user-2")
	require.Nil(t, err)

	client.AssertExpectations(t)
}

func TestRemoveMemberGoneUpstream(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	gone := odataerrors.NewODataError()
	gone.ResponseStatusCode = http.StatusNotFound

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)
	client.On("RemoveChatMember", "chat-id", "membership-2").Return(gone)

	err := controller.RemoveMember("user-2")
	require.NotNil(t, err)
	assert.Equal(t, ErrMemberNotFound, err.Kind)
}

func TestRemoveAllMembersStopsOnFirstFailure(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)
	client.On("RemoveChatMember", "chat-id", "membership-1").Return(nil)
	client.On("RemoveChatMember", "chat-id", "membership-2").Return(errors.New("conflict"))

	err := controller.RemoveAllMembers()
	require.NotNil(t, err)
	assert.Equal(t, ErrRemote, err.Kind)
	assert.Contains(t, err.Message, "user-2")

	client.AssertNumberOfCalls(t, "RemoveChatMember", 2)
	client.AssertNotCalled(t, "RemoveChatMember", "chat-id", "membership-3")
}

func TestRemoveAllMembers(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)
	client.On("RemoveChatMember", "chat-id", "membership-1").Return(nil)
	client.On("RemoveChatMember", "chat-id", "membership-2").Return(nil)
	client.On("RemoveChatMember", "chat-id", "membership-3").Return(nil)

	err := controller.RemoveAllMembers()
	require.Nil(t, err)

	client.AssertNumberOfCalls(t, "RemoveChatMember", 3)
}

func TestRemoveAllMembersWithoutActiveChat(t *testing.T) {
	controller, client := newTestController()

	err := controller.RemoveAllMembers()
	require.NotNil(t, err)
	assert.Equal(t, ErrNoActiveChat, err.Kind)

	client.AssertNotCalled(t, "ListChatMembers", mock.Anything)
}

func TestRefreshIsIdempotent(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"

	client.On("ListChatMembers", "chat-id").Return(testMembers(), nil)

	require.Nil(t, controller.Refresh())
	first := controller.Snapshot().Members
	require.Nil(t, controller.Refresh())
	second := controller.Snapshot().Members

	assert.Equal(t, first, second)
	client.AssertNumberOfCalls(t, "ListChatMembers", 2)
}

func TestRefreshClearsMembersWithoutActiveChat(t *testing.T) {
	controller, client := newTestController()
	controller.members = testMembers()

	require.Nil(t, controller.Refresh())
	assert.Empty(t, controller.Snapshot().Members)

	client.AssertNotCalled(t, "ListChatMembers", mock.Anything)
}

func TestManagerRegistersOnlySuccessfulSessions(t *testing.T) {
	client := &mocks.Client{}
	manager := NewManager(client, logrus.New(), nil)

	failed := manager.NewSession()
	_, err := failed.CreateChat(nil, "creator-id", "")
	require.NotNil(t, err)

	_, ok := manager.Get(failed.ID())
	assert.False(t, ok)

	registered := manager.NewSession()
	manager.Register(registered)

	got, ok := manager.Get(registered.ID())
	require.True(t, ok)
	assert.Equal(t, registered, got)
}

func TestLoadingGateRejectsConcurrentOperation(t *testing.T) {
	controller, client := newTestController()
	controller.chatID = "chat-id"
	controller.loading = true

	err := controller.AddMember("user-9")
	require.NotNil(t, err)
	assert.Equal(t, ErrBusy, err.Kind)

	client.AssertNotCalled(t, "AddChatMember", mock.Anything, mock.Anything, mock.Anything)
}
