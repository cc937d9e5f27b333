package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Auto-delete delays for bot replies in groups.
const (
	adminReplyTTL = 30 * time.Second
	infoReplyTTL  = 45 * time.Second
)

// basicCommands stay available to everyone while owner-only mode is active.
var basicCommands = map[string]bool{
	"time":        true,
	"timehere":    true,
	"when":        true,
	"settimezone": true,
	"mytimezone":  true,
	"help":        true,
	"start":       true,
}

// HandleUpdate processes Telegram updates
func (b *Bot) HandleUpdate(u tgbotapi.Update) {
	if u.Message == nil || !u.Message.IsCommand() {
		return
	}
	msg := u.Message
	if msg.From == nil {
		return
	}
	log.Debugf("received command: %s from user %d in chat %d", msg.Command(), msg.From.ID, msg.Chat.ID)

	command := msg.Command()
	if b.ownerOnlyBlocked(msg, command) {
		return
	}

	switch command {
	case "time":
		b.handleTime(msg)
	case "time_live":
		b.handleTimeLive(msg)
	case "timehere":
		b.handleTimeHere(msg)
	case "when":
		b.handleWhen(msg)
	case "settimezone":
		b.handleSetTimezone(msg)
	case "mytimezone":
		b.handleMyTimezone(msg)
	case "addtime":
		b.handleAddTime(msg)
	case "removetime":
		b.handleRemoveTime(msg)
	case "listtimes":
		b.handleListTimes(msg)
	case "timeconfig":
		b.handleTimeConfig(msg)
	case "timeexport":
		b.handleTimeExport(msg)
	case "timehealth":
		b.handleTimeHealth(msg)
	case "ownermode":
		b.handleOwnerMode(msg)
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	}
}

// ownerOnlyBlocked enforces owner-only mode. The owner and the basic command
// set always pass.
func (b *Bot) ownerOnlyBlocked(msg *tgbotapi.Message, command string) bool {
	if b.Perms.IsOwner(msg.From.ID) || basicCommands[command] {
		return false
	}
	if !b.Store.OwnerOnlyMode() {
		return false
	}
	b.reply(msg, "🔒 <b>Owner-Only Mode Active</b>\n\n"+
		"This command is currently restricted.\n"+
		"Only basic commands are available:\n"+
		"<code>/time</code>, <code>/timehere</code>, <code>/when</code>,\n"+
		"<code>/settimezone</code>, <code>/mytimezone</code>, <code>/help</code>")
	return true
}

// reply answers a message and returns the sent message ID, 0 on failure.
func (b *Bot) reply(msg *tgbotapi.Message, text string) int {
	id, err := b.SendMessage(Message{
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      text,
	})
	if err != nil {
		log.Errorf("replying in chat %d: %s", msg.Chat.ID, err)
		return 0
	}
	return id
}

// replyEphemeral answers a message and, in groups, schedules the reply for
// auto-deletion after ttl.
func (b *Bot) replyEphemeral(msg *tgbotapi.Message, text string, ttl time.Duration) int {
	id := b.reply(msg, text)
	if id != 0 && !msg.Chat.IsPrivate() {
		b.scheduleDelete(msg.Chat.ID, id, ttl)
	}
	return id
}

func (b *Bot) scheduleDelete(chatID int64, messageID int, ttl time.Duration) {
	if err := b.Store.ScheduleDelete(chatID, messageID, time.Now().UTC().Add(ttl)); err != nil {
		log.Warnf("scheduling delete of message %d in chat %d: %s", messageID, chatID, err)
	}
}

// requireAdmin replies with a denial when the user may not manage the chat.
func (b *Bot) requireAdmin(msg *tgbotapi.Message, denial string) bool {
	if b.Perms.CanManageGroup(msg.Chat.ID, msg.From.ID, msg.Chat.IsPrivate()) {
		return true
	}
	b.replyEphemeral(msg, "⛔ <b>Permission Denied</b>\n\n"+denial, adminReplyTTL)
	return false
}
