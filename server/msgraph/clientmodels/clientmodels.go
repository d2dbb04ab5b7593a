package clientmodels

import (
	"time"
)

type Chat struct {
	ID      string
	Topic   string
	Type    string
	Members []ChatMember
}

// ChatMember is one participant's association with a chat. ID is the
// membership record id, which is the deletion key; UserID is the
// participant's directory object id.
type ChatMember struct {
	ID          string
	UserID      string
	DisplayName string
	Email       string
	Roles       []string
}

type Message struct {
	ID              string
	UserID          string
	UserDisplayName string
	Text            string
	ChatID          string
	CreateAt        time.Time
	LastUpdateAt    time.Time
}

type User struct {
	ID                string
	DisplayName       string
	Mail              string
	UserPrincipalName string
}
