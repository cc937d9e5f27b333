package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/ratelimit"
	"github.com/dickrael/time-bot/internal/timezone"
	"github.com/dickrael/time-bot/lib/helpers"
)

const noUserTimezoneText = "<b>No Timezone Set</b>\n\n" +
	"Set your timezone with:\n" +
	"<code>/settimezone &lt;city&gt;</code>\n\n" +
	"<b>Examples:</b>\n" +
	"• <code>/settimezone Tokyo</code>\n" +
	"• <code>/settimezone New York</code>\n" +
	"• <code>/settimezone PST</code>"

func unknownTimezoneText(query string) string {
	return fmt.Sprintf("❌ <b>Unknown Timezone</b>\n\n"+
		"Could not resolve <code>%s</code>.\n\n"+
		"<b>Try using:</b>\n"+
		"• City names: <code>Tokyo</code>, <code>London</code>, <code>Paris</code>\n"+
		"• Country names: <code>Japan</code>, <code>Germany</code>, <code>UK</code>\n"+
		"• Abbreviations: <code>PST</code>, <code>EST</code>, <code>CET</code>\n"+
		"• IANA IDs: <code>America/New_York</code>",
		helpers.EscapeHTML(query))
}

// handleTime shows the time board once. In private chats it shows the user's
// own time instead. Group usage is rate limited per user.
func (b *Bot) handleTime(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.Chat.IsPrivate() {
		if user, ok := b.Store.UserTimezone(userID); ok {
			b.reply(msg, b.Timezone.UserTimeDisplay(user.Timezone, user.DisplayName))
		} else {
			b.reply(msg, noUserTimezoneText)
		}
		return
	}

	cfg := b.Store.GroupConfig(chatID)
	cooldown := time.Duration(cfg.CooldownSeconds) * time.Second
	if ok, remaining := b.Limiter.Check(chatID, userID, "time", cooldown); !ok {
		// A repeated denial replaces the previous notice instead of
		// stacking another one under it.
		if old, tracked := b.notices.take(chatID, userID); tracked {
			if err := b.DeleteMessage(chatID, old); err != nil {
				log.Debugf("deleting stale cooldown notice %d in chat %d: %s", old, chatID, err)
			}
		}
		sentID := b.replyEphemeral(msg, "<b>Cooldown Active</b>\n\n"+ratelimit.WaitMessage(remaining), 10*time.Second)
		if sentID != 0 {
			b.notices.set(chatID, userID, sentID)
		}
		return
	}

	text := b.Timezone.FormatAllTimes(b.Store.Timezones(chatID), false, cfg.ShowUTCOffset, b.Config.LiveInterval)
	b.replyEphemeral(msg, text, b.Config.LiveInterval)
	log.Infof("/time by user %d in chat %d", userID, chatID)
}

// handleTimeLive starts (or replaces) the live updating board. Admin only,
// groups only.
func (b *Bot) handleTimeLive(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Chat.IsPrivate() {
		b.reply(msg, "<b>Not Available</b>\n\n"+
			"Live time updates are only available in groups.\n"+
			"Use /time to see your current time.")
		return
	}
	if !b.Perms.CanManageGroup(chatID, msg.From.ID, false) {
		b.replyEphemeral(msg, "<b>Permission Denied</b>\n\n"+
			"Live time updates (/time_live) are only available to admins.\n"+
			"Use /time for a one-time display.", adminReplyTTL)
		return
	}

	entries := b.Store.Timezones(chatID)
	cfg := b.Store.GroupConfig(chatID)
	text := b.Timezone.FormatAllTimes(entries, true, cfg.ShowUTCOffset, b.Config.LiveInterval)

	sentID := b.reply(msg, text)
	if sentID == 0 {
		return
	}
	// An empty board has nothing to update, so no loop for it.
	if len(entries) > 0 {
		if err := b.Tasks.StartLive(chatID, sentID); err != nil {
			log.Errorf("starting live display in chat %d: %s", chatID, err)
		}
	}
	log.Infof("/time_live started by admin %d in chat %d", msg.From.ID, chatID)
}

// handleTimeHere shows the user's personal time card.
func (b *Bot) handleTimeHere(msg *tgbotapi.Message) {
	user, ok := b.Store.UserTimezone(msg.From.ID)
	if !ok {
		b.replyEphemeral(msg, noUserTimezoneText, adminReplyTTL)
		return
	}
	text := b.Timezone.UserTimeDisplay(user.Timezone, user.DisplayName) +
		"\n\n<i>Update with /settimezone &lt;city&gt;</i>"
	b.replyEphemeral(msg, text, adminReplyTTL)
}

// handleWhen converts a wall-clock time from a source zone to every group
// zone plus the caller's personal zone.
func (b *Bot) handleWhen(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	private := msg.Chat.IsPrivate()

	args := strings.SplitN(strings.TrimSpace(msg.CommandArguments()), " ", 2)
	if len(args) < 2 || args[0] == "" {
		b.replyEphemeral(msg, "📖 <b>Usage:</b> <code>/when &lt;time&gt; &lt;timezone&gt;</code>\n\n"+
			"<b>Examples:</b>\n"+
			"• <code>/when 18:00 Tokyo</code>\n"+
			"• <code>/when 3pm PST</code>\n"+
			"• <code>/when 14:30 London</code>\n"+
			"• <code>/when 9am America/New_York</code>\n\n"+
			"<b>Supported time formats:</b>\n"+
			"• 24-hour: <code>18:00</code>, <code>1430</code>\n"+
			"• 12-hour: <code>6pm</code>, <code>3:30am</code>", infoReplyTTL)
		return
	}
	timeStr, tzQuery := args[0], strings.TrimSpace(args[1])

	sourceTZ, _, ok := b.Timezone.Resolve(tzQuery)
	if !ok {
		b.replyEphemeral(msg, unknownTimezoneText(tzQuery), infoReplyTTL)
		return
	}

	var targets []timezone.ConversionTarget
	if !private {
		for _, entry := range b.Store.Timezones(chatID) {
			if entry.TZ != sourceTZ {
				targets = append(targets, timezone.ConversionTarget{TZ: entry.TZ, DisplayName: entry.DisplayName})
			}
		}
	}
	if user, ok := b.Store.UserTimezone(msg.From.ID); ok && user.Timezone != sourceTZ {
		seen := false
		for _, t := range targets {
			if t.TZ == user.Timezone {
				seen = true
				break
			}
		}
		if !seen {
			targets = append(targets, timezone.ConversionTarget{
				TZ:          user.Timezone,
				DisplayName: user.DisplayName + " (you)",
			})
		}
	}

	if len(targets) == 0 {
		hint := "Set your timezone with <code>/settimezone &lt;city&gt;</code> to see conversions."
		if !private {
			hint = "Add group timezones with <code>/addtime &lt;city&gt;</code> or\n" +
				"set your personal timezone with <code>/settimezone &lt;city&gt;</code>."
		}
		b.replyEphemeral(msg, "ℹ️ <b>No timezones to convert to</b>\n\n"+hint, infoReplyTTL)
		return
	}

	result, ok := b.Timezone.ConvertTime(timeStr, sourceTZ, targets)
	if !ok {
		b.replyEphemeral(msg, fmt.Sprintf("❌ <b>Invalid Time Format</b>\n\n"+
			"Could not parse <code>%s</code>.\n\n"+
			"<b>Supported formats:</b>\n"+
			"• 24-hour: <code>18:00</code>, <code>14:30</code>, <code>0900</code>\n"+
			"• 12-hour: <code>6pm</code>, <code>3:30am</code>, <code>12:00pm</code>",
			helpers.EscapeHTML(timeStr)), infoReplyTTL)
		return
	}

	b.replyEphemeral(msg, result, infoReplyTTL)
	log.Infof("time conversion by user %d: %s %s -> %d targets", msg.From.ID, timeStr, tzQuery, len(targets))
}
