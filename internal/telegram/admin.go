package telegram

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/dickrael/time-bot/internal/timezone"
	"github.com/dickrael/time-bot/lib/helpers"
	"github.com/dickrael/time-bot/lib/translation"
)

// handleAddTime adds a zone to the group board. Admin only in groups.
func (b *Bot) handleAddTime(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.requireAdmin(msg, translation.Translate("Only group administrators can add timezones.")) {
		return
	}

	query := strings.TrimSpace(msg.CommandArguments())
	if query == "" {
		b.replyEphemeral(msg, "📖 <b>Usage:</b> <code>/addtime &lt;city or timezone&gt;</code>\n\n"+
			"<b>Examples:</b>\n"+
			"• <code>/addtime Tokyo</code>\n"+
			"• <code>/addtime New York</code>\n"+
			"• <code>/addtime America/Los_Angeles</code>\n"+
			"• <code>/addtime PST</code>\n"+
			"• <code>/addtime UK</code>", adminReplyTTL)
		return
	}

	tzID, displayName, ok := b.Timezone.Resolve(query)
	if !ok {
		b.replyEphemeral(msg, unknownTimezoneText(query), adminReplyTTL)
		return
	}

	added, err := b.Store.AddTimezone(chatID, tzID, displayName, msg.From.ID)
	if err != nil {
		log.Errorf("adding timezone %s to chat %d: %s", tzID, chatID, err)
		b.replyEphemeral(msg, translation.Translate("An error occurred. Please try again."), adminReplyTTL)
		return
	}
	if !added {
		b.replyEphemeral(msg, fmt.Sprintf("⚠️ <b>Already Exists</b>\n\n"+
			"The timezone <b>%s</b> (<code>%s</code>) is already configured for this group.",
			helpers.EscapeHTML(displayName), tzID), adminReplyTTL)
		return
	}

	b.replyEphemeral(msg, fmt.Sprintf("✅ <b>Timezone Added!</b>\n\n"+
		"📍 <b>%s</b> (<code>%s</code>)\n"+
		"🕐 Current time: %s\n\n"+
		"<i>Use /time to see all group timezones.</i>",
		helpers.EscapeHTML(displayName), tzID, b.Timezone.Now(tzID).Format("15:04")), adminReplyTTL)

	if !msg.Chat.IsPrivate() {
		b.Tasks.Refresh(chatID)
	}
	log.Infof("added timezone %s to chat %d by user %d", tzID, chatID, msg.From.ID)
}

// handleRemoveTime drops a zone matched by name fragment or identifier.
func (b *Bot) handleRemoveTime(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.requireAdmin(msg, translation.Translate("Only group administrators can remove timezones.")) {
		return
	}

	query := strings.TrimSpace(msg.CommandArguments())
	if query == "" {
		entries := b.Store.Timezones(chatID)
		if len(entries) == 0 {
			b.replyEphemeral(msg, "📭 No timezones configured for this group.\n\n"+
				"Add one with <code>/addtime &lt;city&gt;</code>", adminReplyTTL)
			return
		}
		var list strings.Builder
		for _, entry := range entries {
			fmt.Fprintf(&list, "• <code>%s</code> (%s)\n", helpers.EscapeHTML(entry.DisplayName), entry.TZ)
		}
		b.replyEphemeral(msg, "📖 <b>Usage:</b> <code>/removetime &lt;city or timezone&gt;</code>\n\n"+
			"<b>Current timezones:</b>\n"+strings.TrimRight(list.String(), "\n"), adminReplyTTL)
		return
	}

	removedName, removed, err := b.Store.RemoveTimezone(chatID, query)
	if err != nil {
		log.Errorf("removing timezone %q from chat %d: %s", query, chatID, err)
		b.replyEphemeral(msg, translation.Translate("An error occurred. Please try again."), adminReplyTTL)
		return
	}
	if !removed {
		b.replyEphemeral(msg, fmt.Sprintf("❌ <b>Not Found</b>\n\n"+
			"No timezone matching <code>%s</code> found in this group.\n\n"+
			"Use /listtimes to see configured timezones.", helpers.EscapeHTML(query)), adminReplyTTL)
		return
	}

	b.replyEphemeral(msg, fmt.Sprintf("✅ <b>Timezone Removed</b>\n\n"+
		"Removed <b>%s</b> from this group.", helpers.EscapeHTML(removedName)), adminReplyTTL)

	if !msg.Chat.IsPrivate() {
		b.Tasks.Refresh(chatID)
	}
	log.Infof("removed timezone %s from chat %d", removedName, chatID)
}

// handleListTimes lists the board entries with their current times.
func (b *Bot) handleListTimes(msg *tgbotapi.Message) {
	entries := b.Store.Timezones(msg.Chat.ID)
	if len(entries) == 0 {
		b.replyEphemeral(msg, "📭 <b>No Timezones Configured</b>\n\n"+
			"This group has no timezones set up.\n\n"+
			"Admins can add timezones with <code>/addtime &lt;city&gt;</code>", adminReplyTTL)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Group Timezones</b>\n")
	for _, entry := range entries {
		fmt.Fprintf(&sb, "\n• <b>%s</b> - %s\n  <code>%s</code>",
			helpers.EscapeHTML(entry.DisplayName), b.Timezone.Now(entry.TZ).Format("15:04"), entry.TZ)
		if added, err := time.Parse(time.RFC3339, entry.AddedAt); err == nil {
			fmt.Fprintf(&sb, " · added %s", humanize.Time(added))
		}
	}
	fmt.Fprintf(&sb, "\n\n<i>Total: %d timezone(s)</i>", len(entries))

	b.replyEphemeral(msg, sb.String(), adminReplyTTL)
}

// handleTimeConfig shows or edits the group's cooldown and offset display.
func (b *Bot) handleTimeConfig(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.requireAdmin(msg, translation.Translate("Only group administrators can view or edit configuration.")) {
		return
	}

	cfg := b.Store.GroupConfig(chatID)
	args := strings.Fields(msg.CommandArguments())

	if len(args) == 0 {
		offsetStatus := "Off"
		if cfg.ShowUTCOffset {
			offsetStatus = "On"
		}
		b.replyEphemeral(msg, fmt.Sprintf("⚙️ <b>Group Configuration</b>\n\n"+
			"<b>Cooldown:</b> %d seconds\n"+
			"<b>Show UTC offset:</b> %s\n"+
			"<b>Timezones:</b> %d configured\n\n"+
			"<b>Edit settings:</b>\n"+
			"• <code>/timeconfig cooldown &lt;seconds&gt;</code>\n"+
			"• <code>/timeconfig offset on/off</code>",
			cfg.CooldownSeconds, offsetStatus, len(b.Store.Timezones(chatID))), adminReplyTTL)
		return
	}

	if len(args) >= 2 && strings.EqualFold(args[0], "cooldown") {
		seconds, err := strconv.Atoi(args[1])
		if err != nil || seconds < 0 || seconds > 3600 {
			b.replyEphemeral(msg, "❌ <b>Invalid Value</b>\n\n"+
				"Cooldown must be a number between 0 and 3600.", adminReplyTTL)
			return
		}
		cfg.CooldownSeconds = seconds
		if err := b.Store.SetGroupConfig(chatID, cfg); err != nil {
			log.Errorf("updating config for chat %d: %s", chatID, err)
			b.replyEphemeral(msg, translation.Translate("An error occurred. Please try again."), adminReplyTTL)
			return
		}
		// The old window was measured against the previous cooldown, so
		// the admin can verify the new setting right away.
		b.Limiter.Reset(chatID, msg.From.ID, "time")
		b.replyEphemeral(msg, fmt.Sprintf("✅ <b>Configuration Updated</b>\n\n"+
			"Cooldown set to <b>%d</b> seconds.", seconds), adminReplyTTL)
		log.Infof("updated cooldown for chat %d to %ds", chatID, seconds)
		return
	}

	if len(args) >= 2 && strings.EqualFold(args[0], "offset") {
		switch strings.ToLower(args[1]) {
		case "on", "true", "1", "yes":
			cfg.ShowUTCOffset = true
		case "off", "false", "0", "no":
			cfg.ShowUTCOffset = false
		default:
			b.replyEphemeral(msg, "❌ <b>Invalid Value</b>\n\n"+
				"Use <code>/timeconfig offset on</code> or <code>/timeconfig offset off</code>", adminReplyTTL)
			return
		}
		if err := b.Store.SetGroupConfig(chatID, cfg); err != nil {
			log.Errorf("updating config for chat %d: %s", chatID, err)
			b.replyEphemeral(msg, translation.Translate("An error occurred. Please try again."), adminReplyTTL)
			return
		}
		state := "disabled"
		if cfg.ShowUTCOffset {
			state = "enabled"
		}
		b.replyEphemeral(msg, fmt.Sprintf("✅ <b>Configuration Updated</b>\n\n"+
			"UTC offset display is now <b>%s</b>.", state), adminReplyTTL)
		return
	}

	b.replyEphemeral(msg, "📖 <b>Usage:</b>\n"+
		"• <code>/timeconfig</code> - Show current config\n"+
		"• <code>/timeconfig cooldown &lt;seconds&gt;</code> - Set cooldown (0-3600)\n"+
		"• <code>/timeconfig offset on/off</code> - Show/hide UTC offset", adminReplyTTL)
}

// handleTimeExport sends the group's zone list as a CSV file to the caller's
// private chat.
func (b *Bot) handleTimeExport(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.requireAdmin(msg, translation.Translate("Only group administrators can export data.")) {
		return
	}

	entries := b.Store.Timezones(chatID)
	if len(entries) == 0 {
		b.replyEphemeral(msg, "📭 <b>No Data to Export</b>\n\n"+
			"This group has no timezones configured.", adminReplyTTL)
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Display Name", "Timezone ID", "UTC Offset", "Added By", "Added At"})
	for _, entry := range entries {
		w.Write([]string{
			entry.DisplayName,
			entry.TZ,
			timezone.FormatOffset(b.Timezone.Now(entry.TZ)),
			strconv.FormatInt(entry.AddedBy, 10),
			entry.AddedAt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Errorf("building export for chat %d: %s", chatID, err)
		b.replyEphemeral(msg, translation.Translate("An error occurred. Please try again."), adminReplyTTL)
		return
	}

	name := fmt.Sprintf("timebot_export_%d.csv", chatID)
	caption := fmt.Sprintf("📦 <b>Group Data Export</b>\n\n"+
		"Exported %d timezone(s) from chat <code>%d</code>", len(entries), chatID)

	if err := b.SendDocument(msg.From.ID, name, buf.Bytes(), caption); err != nil {
		log.Errorf("sending export to user %d: %s", msg.From.ID, err)
		b.replyEphemeral(msg, "❌ <b>Could not send DM</b>\n\n"+
			"Please start a private chat with me first, then try again.", adminReplyTTL)
		return
	}
	if !msg.Chat.IsPrivate() {
		b.replyEphemeral(msg, "✅ <b>Export Sent</b>\n\n"+
			"The CSV export has been sent to your DM.", adminReplyTTL)
	}
}

// handleTimeHealth reports storage integrity, cache size and live displays.
func (b *Bot) handleTimeHealth(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg, translation.Translate("Only group administrators can view health status.")) {
		return
	}

	integrity := b.Store.Integrity()

	var sb strings.Builder
	sb.WriteString("🏥 <b>Bot Health Status</b>\n\n<b>JSON Storage:</b>\n")
	for _, name := range []string{"groups.json", "users.json", "state.json", "cache.json"} {
		status := integrity[name]
		icon := "❌"
		switch status.Status {
		case "ok":
			icon = "✅"
		case "missing":
			icon = "⚠️"
		}
		fmt.Fprintf(&sb, "  %s %s: %s (%s)\n", icon, name, status.Status, helpers.FormatBytesUS(status.Size))
	}

	fmt.Fprintf(&sb, "\n<b>Cache:</b>\n  • Alias cache entries: %s\n", helpers.FormatCountUS(int64(b.Store.CacheSize())))
	fmt.Fprintf(&sb, "\n<b>Active Tasks:</b>\n  • Live /time messages: %d\n", b.Tasks.ActiveCount())
	fmt.Fprintf(&sb, "\n<i>Checked at %s UTC</i>", time.Now().UTC().Format("2006-01-02 15:04:05"))

	b.replyEphemeral(msg, sb.String(), adminReplyTTL)
}
