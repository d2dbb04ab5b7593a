//go:generate mockery --name=Client
package msgraph

import (
	"time"

	"github.com/teamstools/chatsessiond/server/msgraph/clientmodels"
)

type Client interface {
	Connect() error
	CreateGroupChat(topic string, userIDs []string, visibleHistoryStart time.Time) (*clientmodels.Chat, error)
	SendChat(chatID, message string) (*clientmodels.Message, error)
	ListChatMembers(chatID string) ([]clientmodels.ChatMember, error)
	AddChatMember(chatID, userID string, visibleHistoryStart time.Time) (*clientmodels.ChatMember, error)
	RemoveChatMember(chatID, membershipID string) error
	ListChatMessages(chatID string) ([]clientmodels.Message, error)
	GetUser(emailOrID string) (*clientmodels.User, error)
}
