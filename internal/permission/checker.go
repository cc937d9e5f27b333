package permission

import (
	log "github.com/sirupsen/logrus"
)

// Role classifies a user for gating purposes.
type Role int

const (
	Member Role = iota
	Admin
	Owner
)

func (r Role) String() string {
	switch r {
	case Owner:
		return "owner"
	case Admin:
		return "admin"
	default:
		return "member"
	}
}

// AdminChecker answers whether a user holds owner or administrator status in
// a chat. Implemented by the Telegram layer via getChatMember.
type AdminChecker interface {
	IsChatAdmin(chatID, userID int64) (bool, error)
}

// Checker decides command access. The configured bot owner passes every
// check. Lookup failures fail closed.
type Checker struct {
	ownerID int64
	admins  AdminChecker
}

func NewChecker(ownerID int64, admins AdminChecker) *Checker {
	return &Checker{ownerID: ownerID, admins: admins}
}

// IsOwner reports whether the user is the configured bot owner.
func (c *Checker) IsOwner(userID int64) bool {
	return c.ownerID != 0 && userID == c.ownerID
}

// RoleIn resolves the user's role in a chat. Private chats count as an admin
// context since the user is talking to the bot directly.
func (c *Checker) RoleIn(chatID, userID int64, private bool) Role {
	if c.IsOwner(userID) {
		return Owner
	}
	if private {
		return Admin
	}
	isAdmin, err := c.admins.IsChatAdmin(chatID, userID)
	if err != nil {
		log.Errorf("admin lookup for user %d in chat %d: %s", userID, chatID, err)
		return Member
	}
	if isAdmin {
		return Admin
	}
	return Member
}

// CanManageGroup reports whether the user may run admin commands in the chat.
func (c *Checker) CanManageGroup(chatID, userID int64, private bool) bool {
	return c.RoleIn(chatID, userID, private) >= Admin
}
