package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xaenox/agenda-bot/internal/models"
)

var weekdayNames = [...]string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"}

// renderReply builds the Telegram message for a pipeline reply. Created
// events carry inline buttons with the calendar deep links.
func renderReply(chatID int64, reply *models.Reply) tgbotapi.MessageConfig {
	switch {
	case reply.Created != nil:
		msg := tgbotapi.NewMessage(chatID, formatCreated(reply.Created))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = calendarKeyboard(reply.Created)
		return msg
	case reply.List != nil:
		msg := tgbotapi.NewMessage(chatID, formatList(reply.List))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		return msg
	case reply.Cancel != nil:
		msg := tgbotapi.NewMessage(chatID, formatCancel(reply.Cancel))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		return msg
	case reply.Help != nil:
		return tgbotapi.NewMessage(chatID, reply.Help.Text)
	default:
		return tgbotapi.NewMessage(chatID, "Não entendi. Use /ajuda.")
	}
}

func formatCreated(ev *models.CreatedEvent) string {
	var sb strings.Builder
	sb.WriteString("✅ *Evento criado*\n\n")
	sb.WriteString(fmt.Sprintf("📌 %s\n", escapeMarkdown(ev.Title)))
	sb.WriteString(fmt.Sprintf("🗓 %s\n", escapeMarkdown(formatDay(ev.StartDate))))
	sb.WriteString(fmt.Sprintf("🕒 %s até %s\n\n",
		ev.StartDate.Format("15:04"), ev.EndDate.Format("15:04")))
	sb.WriteString("Adicione ao seu calendário:")
	return sb.String()
}

func calendarKeyboard(ev *models.CreatedEvent) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Google Calendar", ev.GoogleLink),
			tgbotapi.NewInlineKeyboardButtonURL("Outlook", ev.OutlookLink),
		),
	)
}

func formatList(list *models.ListResponse) string {
	if len(list.Entries) == 0 {
		return escapeMarkdown("Você ainda não tem eventos. Mande algo como \"reunião amanhã às 15h\".")
	}

	var sb strings.Builder
	sb.WriteString("*Seus eventos:*\n\n")
	for _, entry := range list.Entries {
		line := fmt.Sprintf("%d. %s - %s %s",
			entry.Index, entry.Title, formatDay(entry.StartDate), entry.StartDate.Format("15:04"))
		sb.WriteString(escapeMarkdown(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(escapeMarkdown("Para cancelar: /cancelar <número>"))
	return sb.String()
}

func formatCancel(result *models.CancelResult) string {
	if !result.Found {
		return escapeMarkdown("Não encontrei esse evento. Use /eventos para ver a lista.")
	}
	return fmt.Sprintf("🗑 Evento cancelado: *%s*", escapeMarkdown(result.RemovedTitle))
}

// formatDay renders "terça, 27/05/2025".
func formatDay(t time.Time) string {
	return fmt.Sprintf("%s, %s", weekdayNames[t.Weekday()], t.Format("02/01/2006"))
}

// escapeMarkdown escapes the characters MarkdownV2 reserves.
func escapeMarkdown(text string) string {
	specialChars := []string{"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}
