package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/lib/helpers"
)

const startPrivateText = "<b>Welcome to Time Bot!</b>\n\n" +
	"I help you track times across different timezones in your groups.\n\n" +
	"<b>Quick Start:</b>\n" +
	"1. Add me to a group\n" +
	"2. Make me admin (to delete messages)\n" +
	"3. Use /addtime to add timezones\n" +
	"4. Use /time to see current times\n\n" +
	"Use /help for detailed commands."

const helpText = "<b>Time Bot Commands</b>\n\n" +
	"<b>Everyone:</b>\n" +
	"/time - Show current times (one-time)\n" +
	"/timehere - Show your personal time\n" +
	"/when <code>&lt;time&gt; &lt;zone&gt;</code> - Convert time\n" +
	"/settimezone <code>&lt;city&gt;</code> - Set your timezone\n" +
	"/mytimezone - Check your timezone\n" +
	"/help - Show this help\n\n" +
	"<b>Admins only:</b>\n" +
	"/time_live - Live updating time display\n" +
	"/addtime <code>&lt;city&gt;</code> - Add timezone to group\n" +
	"/removetime <code>&lt;city&gt;</code> - Remove timezone\n" +
	"/listtimes - List group timezones\n" +
	"/timeconfig - Group settings\n" +
	"/timeexport - Export data as CSV\n" +
	"/timehealth - Bot health status\n\n" +
	"<b>Examples:</b>\n" +
	"<code>/addtime Tokyo</code>\n" +
	"<code>/addtime New York</code>\n" +
	"<code>/when 18:00 Tokyo</code>\n" +
	"<code>/settimezone London</code>"

const helpTextRestricted = "<b>Time Bot Commands</b>\n\n" +
	"🔒 <i>Owner-only mode is active. Some commands are restricted.</i>\n\n" +
	"<b>Available commands:</b>\n" +
	"/time - Show current times (one-time)\n" +
	"/timehere - Show your personal time\n" +
	"/when <code>&lt;time&gt; &lt;zone&gt;</code> - Convert time\n" +
	"/settimezone <code>&lt;city&gt;</code> - Set your timezone\n" +
	"/mytimezone - Check your timezone\n" +
	"/help - Show this help\n\n" +
	"<b>Examples:</b>\n" +
	"<code>/when 18:00 Tokyo</code>\n" +
	"<code>/settimezone London</code>"

// handleSetTimezone stores the caller's personal zone.
func (b *Bot) handleSetTimezone(msg *tgbotapi.Message) {
	userID := msg.From.ID

	query := strings.TrimSpace(msg.CommandArguments())
	if query == "" {
		current := "<b>Current timezone:</b> Not set\n\n"
		if user, ok := b.Store.UserTimezone(userID); ok {
			current = fmt.Sprintf("<b>Current timezone:</b> %s (<code>%s</code>)\n\n",
				helpers.EscapeHTML(user.DisplayName), user.Timezone)
		}
		b.reply(msg, "📍 <b>Set Your Timezone</b>\n\n"+current+
			"<b>Usage:</b> <code>/settimezone &lt;city or timezone&gt;</code>\n\n"+
			"<b>Examples:</b>\n"+
			"• <code>/settimezone Tokyo</code>\n"+
			"• <code>/settimezone New York</code>\n"+
			"• <code>/settimezone America/Los_Angeles</code>\n"+
			"• <code>/settimezone PST</code>\n"+
			"• <code>/settimezone UK</code>")
		return
	}

	tzID, displayName, ok := b.Timezone.Resolve(query)
	if !ok {
		b.reply(msg, unknownTimezoneText(query))
		return
	}

	if err := b.Store.SetUserTimezone(userID, tzID, displayName); err != nil {
		log.Errorf("saving timezone for user %d: %s", userID, err)
		b.reply(msg, "An error occurred. Please try again.")
		return
	}

	b.reply(msg, "✅ <b>Timezone Set!</b>\n\n"+
		b.Timezone.UserTimeDisplay(tzID, displayName)+
		"\n\n<i>Use /timehere to check your time anytime.</i>")
	log.Infof("user %d set timezone to %s", userID, tzID)
}

// handleMyTimezone shows the caller's stored zone without changing it.
func (b *Bot) handleMyTimezone(msg *tgbotapi.Message) {
	user, ok := b.Store.UserTimezone(msg.From.ID)
	if !ok {
		b.reply(msg, "📍 <b>No Timezone Set</b>\n\n"+
			"You haven't set your timezone yet.\n\n"+
			"Set it with <code>/settimezone &lt;city&gt;</code>")
		return
	}
	b.reply(msg, b.Timezone.UserTimeDisplay(user.Timezone, user.DisplayName)+
		"\n\n<i>Change with /settimezone &lt;city&gt;</i>")
}

// handleOwnerMode toggles owner-only mode. Owner only.
func (b *Bot) handleOwnerMode(msg *tgbotapi.Message) {
	if !b.Perms.IsOwner(msg.From.ID) {
		b.reply(msg, "⛔ <b>Permission Denied</b>\n\n"+
			"This command is only available to the bot owner.")
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		status := "🔓 <b>Disabled</b>"
		if b.Store.OwnerOnlyMode() {
			status = "🔒 <b>Enabled</b>"
		}
		b.reply(msg, fmt.Sprintf("⚙️ <b>Owner-Only Mode</b>\n\n"+
			"Current status: %s\n\n"+
			"<b>Usage:</b>\n"+
			"• <code>/ownermode on</code> - Enable owner-only mode\n"+
			"• <code>/ownermode off</code> - Disable owner-only mode\n\n"+
			"<i>When enabled, only basic commands are available to other users.</i>", status))
		return
	}

	switch strings.ToLower(args[0]) {
	case "on", "enable", "1", "true":
		if err := b.Store.SetOwnerOnlyMode(true); err != nil {
			log.Errorf("enabling owner-only mode: %s", err)
			return
		}
		b.reply(msg, "🔒 <b>Owner-Only Mode Enabled</b>\n\n"+
			"Only basic commands are now available to other users:\n"+
			"<code>/time</code>, <code>/timehere</code>, <code>/when</code>,\n"+
			"<code>/settimezone</code>, <code>/mytimezone</code>, <code>/help</code>")
		log.Infof("owner-only mode enabled by user %d", msg.From.ID)
	case "off", "disable", "0", "false":
		if err := b.Store.SetOwnerOnlyMode(false); err != nil {
			log.Errorf("disabling owner-only mode: %s", err)
			return
		}
		b.reply(msg, "🔓 <b>Owner-Only Mode Disabled</b>\n\n"+
			"All commands are now available to admins.")
		log.Infof("owner-only mode disabled by user %d", msg.From.ID)
	default:
		b.reply(msg, "❌ <b>Invalid Option</b>\n\n"+
			"Use <code>/ownermode on</code> or <code>/ownermode off</code>")
	}
}

// handleStart greets in private, and in groups posts a short note with a
// deep-link button that opens the help text in a private chat.
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	// Deep link /start help opens the full reference.
	if strings.TrimSpace(msg.CommandArguments()) == "help" {
		b.handleHelp(msg)
		return
	}

	if msg.Chat.IsPrivate() {
		b.reply(msg, startPrivateText)
		return
	}

	deepLink := fmt.Sprintf("https://t.me/%s?start=help", b.username)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("How to use", deepLink),
		),
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, "<b>Time Bot</b> - Track times across timezones\n"+
		"Tap the button below for usage guide.")
	reply.ReplyToMessageID = msg.MessageID
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = keyboard

	sent, err := b.Bot.Send(reply)
	if err != nil {
		log.Errorf("sending start message in chat %d: %s", msg.Chat.ID, err)
		return
	}
	b.scheduleDelete(msg.Chat.ID, sent.MessageID, infoReplyTTL)
}

// handleHelp shows the command reference, trimmed while owner-only mode is
// active for everyone but the owner.
func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	text := helpText
	if b.Store.OwnerOnlyMode() && !b.Perms.IsOwner(msg.From.ID) {
		text = helpTextRestricted
	}
	b.replyEphemeral(msg, text, infoReplyTTL)
}
