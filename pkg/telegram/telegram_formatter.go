package telegram

import (
	"fmt"
	"strings"
	"time"

	"stock-event-calendar/internal/entity"
)

const maxMessageLen = 4090

var categoryIcons = map[entity.EventCategory]string{
	entity.CategoryEarnings:        "💰",
	entity.CategoryEconomicData:    "📊",
	entity.CategoryFedPolicy:       "🏦",
	entity.CategoryGovPolicy:       "🏛",
	entity.CategoryRegulatory:      "⚖️",
	entity.CategoryCorporateAction: "🏢",
	entity.CategoryMacroEvent:      "🌍",
}

// FormatUpcomingEvents renders a digest of events into one or more Markdown
// messages, each under Telegram's length limit.
func FormatUpcomingEvents(events []entity.Event, from, to time.Time, loc *time.Location) []string {
	if len(events) == 0 {
		return []string{fmt.Sprintf("📅 No market events between %s and %s.",
			from.In(loc).Format("Jan 2"), to.In(loc).Format("Jan 2"))}
	}

	var messages []string
	var current strings.Builder
	part := 1

	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📅 *Upcoming market events* (%s to %s)\n\n",
				from.In(loc).Format("Jan 2"), to.In(loc).Format("Jan 2")))
		} else {
			current.WriteString(fmt.Sprintf("--- *Upcoming market events, part %d* ---\n\n", part))
		}
	}
	startNewPart()

	for _, e := range events {
		entry := formatEventEntry(e, loc)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	messages = append(messages, current.String())

	return messages
}

func formatEventEntry(e entity.Event, loc *time.Location) string {
	var b strings.Builder

	icon, ok := categoryIcons[e.Category]
	if !ok {
		icon = "•"
	}
	b.WriteString(fmt.Sprintf("%s *%s* - %s\n", icon, escapeMarkdown(e.Title), e.EventDate.In(loc).Format("Mon Jan 2")))

	var tickers []string
	if t := e.PrimaryTickerValue(); t != "" {
		tickers = append(tickers, t)
	}
	for _, t := range e.AffectedTickers {
		if t != e.PrimaryTickerValue() {
			tickers = append(tickers, t)
		}
	}
	if e.ImpactScope == entity.ScopeMarket {
		b.WriteString("   Scope: market-wide\n")
	} else if len(tickers) > 0 {
		b.WriteString(fmt.Sprintf("   Tickers: %s\n", strings.Join(tickers, ", ")))
	}
	if e.IsFixedDate {
		b.WriteString("   📌 Fixed date\n")
	}
	b.WriteString("\n")

	return b.String()
}

var markdownReplacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}
