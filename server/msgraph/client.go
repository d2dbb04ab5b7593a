package msgraph

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/enescakir/emoji"
	abstractions "github.com/microsoft/kiota-abstractions-go"
	azauth "github.com/microsoft/kiota-authentication-azure-go"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
	"github.com/microsoftgraph/msgraph-sdk-go/users"
	"gitlab.com/golang-commonmark/markdown"

	"github.com/teamstools/chatsessiond/server/metrics"
	"github.com/teamstools/chatsessiond/server/msgraph/clientmodels"
)

var teamsDefaultScopes = []string{"https://graph.microsoft.com/.default"}

type ClientImpl struct {
	client       *msgraphsdk.GraphServiceClient
	adapter      abstractions.RequestAdapter
	ctx          context.Context
	tenantID     string
	clientID     string
	clientSecret string
	metrics      *metrics.Metrics
	logError     func(msg string, keyValuePairs ...any)
}

func New(tenantID, clientID, clientSecret string, logError func(string, ...any), metrics *metrics.Metrics) Client {
	return &ClientImpl{
		ctx:          context.Background(),
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
		metrics:      metrics,
		logError:     logError,
	}
}

func (tc *ClientImpl) Connect() error {
	cred, err := azidentity.NewClientSecretCredential(
		tc.tenantID,
		tc.clientID,
		tc.clientSecret,
		&azidentity.ClientSecretCredentialOptions{
			ClientOptions: azcore.ClientOptions{
				Transport: getAuthClient(),
			},
		},
	)
	if err != nil {
		return err
	}

	authProvider, err := azauth.NewAzureIdentityAuthenticationProviderWithScopes(cred, teamsDefaultScopes)
	if err != nil {
		return err
	}

	adapter, err := msgraphsdk.NewGraphRequestAdapterWithParseNodeFactoryAndSerializationWriterFactoryAndHttpClient(authProvider, nil, nil, getHTTPClient())
	if err != nil {
		return err
	}

	tc.adapter = adapter
	tc.client = msgraphsdk.NewGraphServiceClient(adapter)

	return nil
}

func (tc *ClientImpl) CreateGroupChat(topic string, userIDs []string, visibleHistoryStart time.Time) (*clientmodels.Chat, error) {
	chat := models.NewChat()
	chatType := models.GROUP_CHATTYPE
	chat.SetChatType(&chatType)
	chat.SetTopic(&topic)

	members := make([]models.ConversationMemberable, 0, len(userIDs))
	for _, userID := range userIDs {
		members = append(members, newConversationMember(userID, visibleHistoryStart))
	}
	chat.SetMembers(members)

	res, err := tc.client.Chats().Post(tc.ctx, chat, nil)
	tc.observe("CreateGroupChat", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	return convertToChat(res), nil
}

func (tc *ClientImpl) SendChat(chatID, message string) (*clientmodels.Message, error) {
	md := markdown.New(markdown.XHTMLOutput(true))
	content := md.RenderToString([]byte(emoji.Parse(message)))

	contentType := models.HTML_BODYTYPE
	body := models.NewItemBody()
	body.SetContentType(&contentType)
	body.SetContent(&content)

	rmsg := models.NewChatMessage()
	rmsg.SetBody(body)

	res, err := tc.client.Chats().ByChatId(chatID).Messages().Post(tc.ctx, rmsg, nil)
	tc.observe("SendChat", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	return convertToMessage(res, chatID), nil
}

func (tc *ClientImpl) ListChatMembers(chatID string) ([]clientmodels.ChatMember, error) {
	res, err := tc.client.Chats().ByChatId(chatID).Members().Get(tc.ctx, nil)
	tc.observe("ListChatMembers", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	members := make([]clientmodels.ChatMember, 0, len(res.GetValue()))
	for _, member := range res.GetValue() {
		members = append(members, convertToChatMember(member))
	}

	return members, nil
}

func (tc *ClientImpl) AddChatMember(chatID, userID string, visibleHistoryStart time.Time) (*clientmodels.ChatMember, error) {
	member := newConversationMember(userID, visibleHistoryStart)

	res, err := tc.client.Chats().ByChatId(chatID).Members().Post(tc.ctx, member, nil)
	tc.observe("AddChatMember", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	converted := convertToChatMember(res)
	return &converted, nil
}

func (tc *ClientImpl) RemoveChatMember(chatID, membershipID string) error {
	err := tc.client.Chats().ByChatId(chatID).Members().ByConversationMemberId(membershipID).Delete(tc.ctx, nil)
	tc.observe("RemoveChatMember", err)
	if err != nil {
		return normalizeGraphAPIError(err)
	}
	return nil
}

// ListChatMessages follows the @odata.nextLink continuation until the last
// page; messages are returned in server order.
func (tc *ClientImpl) ListChatMessages(chatID string) ([]clientmodels.Message, error) {
	res, err := tc.client.Chats().ByChatId(chatID).Messages().Get(tc.ctx, nil)
	tc.observe("ListChatMessages", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	pageIterator, err := msgraphcore.NewPageIterator[models.ChatMessageable](res, tc.adapter, models.CreateChatMessageCollectionResponseFromDiscriminatorValue)
	if err != nil {
		return nil, err
	}

	messages := []clientmodels.Message{}
	err = pageIterator.Iterate(tc.ctx, func(message models.ChatMessageable) bool {
		messages = append(messages, *convertToMessage(message, chatID))
		return true
	})
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	return messages, nil
}

func (tc *ClientImpl) GetUser(emailOrID string) (*clientmodels.User, error) {
	query := &users.UserItemRequestBuilderGetQueryParameters{
		Select: []string{"displayName", "id", "mail", "userPrincipalName"},
	}
	res, err := tc.client.Users().ByUserId(emailOrID).Get(tc.ctx, &users.UserItemRequestBuilderGetRequestConfiguration{
		QueryParameters: query,
	})
	tc.observe("GetUser", err)
	if err != nil {
		return nil, normalizeGraphAPIError(err)
	}

	user := &clientmodels.User{}
	if res.GetId() != nil {
		user.ID = *res.GetId()
	}
	if res.GetDisplayName() != nil {
		user.DisplayName = *res.GetDisplayName()
	}
	if res.GetMail() != nil {
		user.Mail = *res.GetMail()
	}
	if res.GetUserPrincipalName() != nil {
		user.UserPrincipalName = *res.GetUserPrincipalName()
	}

	return user, nil
}

func (tc *ClientImpl) observe(method string, err error) {
	tc.metrics.ObserveGraphCall(method, err == nil)
	if err != nil {
		tc.logError("Graph API call failed", "method", method, "error", err.Error())
	}
}

func newConversationMember(userID string, visibleHistoryStart time.Time) models.ConversationMemberable {
	member := models.NewAadUserConversationMember()
	member.SetRoles([]string{"owner"})
	member.SetVisibleHistoryStartDateTime(&visibleHistoryStart)
	member.SetAdditionalData(map[string]interface{}{
		"user@odata.bind": "https://graph.microsoft.com/v1.0/users('" + userID + "')",
	})
	return member
}

func convertToChat(chat models.Chatable) *clientmodels.Chat {
	converted := &clientmodels.Chat{}
	if chat.GetId() != nil {
		converted.ID = *chat.GetId()
	}
	if chat.GetTopic() != nil {
		converted.Topic = *chat.GetTopic()
	}
	if chat.GetChatType() != nil {
		converted.Type = chat.GetChatType().String()
	}
	for _, member := range chat.GetMembers() {
		converted.Members = append(converted.Members, convertToChatMember(member))
	}
	return converted
}

func convertToChatMember(member models.ConversationMemberable) clientmodels.ChatMember {
	converted := clientmodels.ChatMember{}
	if member.GetId() != nil {
		converted.ID = *member.GetId()
	}
	if member.GetDisplayName() != nil {
		converted.DisplayName = *member.GetDisplayName()
	}
	converted.Roles = member.GetRoles()
	if aadMember, ok := member.(models.AadUserConversationMemberable); ok {
		if aadMember.GetUserId() != nil {
			converted.UserID = *aadMember.GetUserId()
		}
		if aadMember.GetEmail() != nil {
			converted.Email = *aadMember.GetEmail()
		}
	}
	return converted
}

func convertToMessage(msg models.ChatMessageable, chatID string) *clientmodels.Message {
	userID := ""
	userDisplayName := ""
	if msg.GetFrom() != nil && msg.GetFrom().GetUser() != nil {
		if msg.GetFrom().GetUser().GetId() != nil {
			userID = *msg.GetFrom().GetUser().GetId()
		}
		if msg.GetFrom().GetUser().GetDisplayName() != nil {
			userDisplayName = *msg.GetFrom().GetUser().GetDisplayName()
		}
	}

	text := ""
	if msg.GetBody() != nil && msg.GetBody().GetContent() != nil {
		text = *msg.GetBody().GetContent()
	}

	msgID := ""
	if msg.GetId() != nil {
		msgID = *msg.GetId()
	}

	createAt := time.Time{}
	if msg.GetCreatedDateTime() != nil {
		createAt = *msg.GetCreatedDateTime()
	}

	lastUpdateAt := createAt
	if msg.GetLastModifiedDateTime() != nil {
		lastUpdateAt = *msg.GetLastModifiedDateTime()
	}

	return &clientmodels.Message{
		ID:              msgID,
		UserID:          userID,
		UserDisplayName: userDisplayName,
		Text:            text,
		ChatID:          chatID,
		CreateAt:        createAt,
		LastUpdateAt:    lastUpdateAt,
	}
}

func normalizeGraphAPIError(err error) error {
	var oDataError *odataerrors.ODataError
	if errors.As(err, &oDataError) {
		if terr := oDataError.GetErrorEscaped(); terr != nil {
			code := ""
			message := ""
			if terr.GetCode() != nil {
				code = *terr.GetCode()
			}
			if terr.GetMessage() != nil {
				message = *terr.GetMessage()
			}
			return fmt.Errorf("graph api error: %s: %s: %w", code, message, err)
		}
	}
	return err
}

// IsErrorNotFound reports whether err carries a Graph 404.
func IsErrorNotFound(err error) bool {
	var oDataError *odataerrors.ODataError
	return errors.As(err, &oDataError) && oDataError.ResponseStatusCode == http.StatusNotFound
}
