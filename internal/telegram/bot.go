package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/permission"
	"github.com/dickrael/time-bot/internal/ratelimit"
	"github.com/dickrael/time-bot/internal/store"
	"github.com/dickrael/time-bot/internal/timezone"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, st *store.Store, tz *timezone.Service) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	b := &Bot{
		Bot:      bot,
		Config:   c,
		Store:    st,
		Timezone: tz,
		Limiter:  ratelimit.NewLimiter(),
		username: bot.Self.UserName,
	}
	b.Perms = permission.NewChecker(c.OwnerID, b)
	return b, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// RegisterCommands publishes the command list shown in the Telegram client.
func (b *Bot) RegisterCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "time", Description: "Show current times for all group timezones"},
		tgbotapi.BotCommand{Command: "time_live", Description: "Live updating time display (admins)"},
		tgbotapi.BotCommand{Command: "timehere", Description: "Show your personal time"},
		tgbotapi.BotCommand{Command: "when", Description: "Convert time between timezones"},
		tgbotapi.BotCommand{Command: "settimezone", Description: "Set your personal timezone"},
		tgbotapi.BotCommand{Command: "mytimezone", Description: "Check your timezone setting"},
		tgbotapi.BotCommand{Command: "addtime", Description: "Add timezone to group (admins)"},
		tgbotapi.BotCommand{Command: "removetime", Description: "Remove timezone from group (admins)"},
		tgbotapi.BotCommand{Command: "listtimes", Description: "List all group timezones"},
		tgbotapi.BotCommand{Command: "timeconfig", Description: "Group settings (admins)"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help message"},
	)
	_, err := b.Bot.Request(cfg)
	return errors.Wrap(err, "could not register bot commands")
}

// SendMessage sends an HTML message and returns the sent message ID. One
// retry covers transient network failures.
func (b *Bot) SendMessage(m Message) (int, error) {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = tgbotapi.ModeHTML

	sent, err := b.Bot.Send(msg)
	if err != nil {
		log.Warnf("send to chat %d failed, retrying: %s", m.ChatID, err)
		time.Sleep(time.Second)
		sent, err = b.Bot.Send(msg)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "could not send message to chat %d", m.ChatID)
	}
	return sent.MessageID, nil
}

// SendMessageHTML sends a standalone HTML message to a chat, without the
// reply threading of SendMessage.
func (b *Bot) SendMessageHTML(chatID int64, text string) (int, error) {
	return b.SendMessage(Message{ChatID: chatID, Text: text})
}

// EditMessageHTML replaces a message's text, keeping HTML parse mode.
func (b *Bot) EditMessageHTML(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.Bot.Request(edit)
	return errors.Wrapf(err, "could not edit message %d in chat %d", messageID, chatID)
}

// DeleteMessage removes a message. Deletion of already-gone messages is not
// an error worth surfacing, so callers usually log and move on.
func (b *Bot) DeleteMessage(chatID int64, messageID int) error {
	_, err := b.Bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return errors.Wrapf(err, "could not delete message %d in chat %d", messageID, chatID)
}

// SendDocument sends a file to a chat with an HTML caption.
func (b *Bot) SendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeHTML
	_, err := b.Bot.Send(doc)
	return errors.Wrapf(err, "could not send document to chat %d", chatID)
}

// IsChatAdmin reports whether the user is the chat creator or an
// administrator. Satisfies permission.AdminChecker.
func (b *Bot) IsChatAdmin(chatID, userID int64) (bool, error) {
	member, err := b.Bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return false, errors.Wrapf(err, "could not look up member %d in chat %d", userID, chatID)
	}
	return member.IsCreator() || member.IsAdministrator(), nil
}
