package session

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/teamstools/chatsessiond/server/msgraph/clientmodels"
)

type TranscriptFormat string

const (
	FormatText     TranscriptFormat = "text"
	FormatMarkdown TranscriptFormat = "markdown"
)

// timestampLayout follows the shape of a browser's toLocaleString().
const timestampLayout = "1/2/2006, 3:04:05 PM"

// tagRE strips anything between < and >. Entities are not unescaped and a
// literal angle bracket inside a body can over-strip.
var tagRE = regexp.MustCompile("<[^>]*>")

type Transcript struct {
	Filename string
	Content  string
	Lines    int
}

func ParseTranscriptFormat(value string) (TranscriptFormat, bool) {
	switch value {
	case "", string(FormatText):
		return FormatText, true
	case string(FormatMarkdown):
		return FormatMarkdown, true
	}
	return "", false
}

// ExportTranscript fetches every page of the chat's messages and renders one
// line per message in server order. A failed page fetch discards the whole
// export; nothing partial is returned.
func (c *Controller) ExportTranscript(format TranscriptFormat) (*Transcript, *Error) {
	chatID := c.ChatID()
	if chatID == "" {
		return nil, newError(ErrNoActiveChat, "no active chat", nil)
	}
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	messages, err := c.client.ListChatMessages(chatID)
	if err != nil {
		return nil, newError(ErrRemote, "failed to export transcript", err)
	}

	var converter *md.Converter
	extension := ".txt"
	if format == FormatMarkdown {
		converter = md.NewConverter("", true, nil)
		extension = ".md"
	}

	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		lines = append(lines, formatTranscriptLine(message, converter))
	}

	c.metrics.ObserveTranscriptExport(string(format), int64(len(lines)))

	return &Transcript{
		Filename: "chat-" + chatID + extension,
		Content:  strings.Join(lines, "\n"),
		Lines:    len(lines),
	}, nil
}

func formatTranscriptLine(message clientmodels.Message, converter *md.Converter) string {
	sender := message.UserDisplayName
	if sender == "" {
		sender = "Unknown"
	}

	body := ""
	if converter != nil {
		converted, err := converter.ConvertString(message.Text)
		if err == nil {
			body = converted
		} else {
			body = stripTags(message.Text)
		}
	} else {
		body = stripTags(message.Text)
	}

	return fmt.Sprintf("[%s] %s: %s", message.CreateAt.Local().Format(timestampLayout), sender, body)
}

func stripTags(content string) string {
	return tagRE.ReplaceAllString(content, "")
}
