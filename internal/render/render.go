// Package render draws encounters and treasure as terminal cards
package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	lootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			PaddingLeft(2)
)

var difficultyColors = map[dnd5e.Difficulty]lipgloss.Color{
	dnd5e.DifficultyEasy:   lipgloss.Color("#5FAF5F"),
	dnd5e.DifficultyMedium: lipgloss.Color("#D7AF00"),
	dnd5e.DifficultyHard:   lipgloss.Color("#FF8700"),
	dnd5e.DifficultyDeadly: lipgloss.Color("#D70000"),
}

// Encounter renders one encounter card
func Encounter(e *entities.Encounter) string {
	if e == nil {
		return ""
	}

	difficulty := lipgloss.NewStyle().
		Foreground(difficultyColors[e.Difficulty]).
		Bold(true).
		Render(string(e.Difficulty))

	lines := []string{
		titleStyle.Render("Encounter " + e.ID),
		fmt.Sprintf("%s %d  %s %d x%.1f = %d  %s",
			labelStyle.Render("target"), e.TargetXP,
			labelStyle.Render("xp"), e.BaseXP, e.Multiplier, e.AdjustedXP,
			difficulty),
		fmt.Sprintf("%s %s  %s %s",
			labelStyle.Render("strategy"), e.Strategy,
			labelStyle.Render("relaxation"), e.Relaxation),
	}
	if len(e.Filters) > 0 {
		lines = append(lines, labelStyle.Render("filters")+" "+formatFilters(e.Filters))
	}
	lines = append(lines, "")

	for _, c := range e.Creatures {
		lines = append(lines, fmt.Sprintf("%2d. %s (CR %s, %d XP)", c.Ordinal, c.Name, c.ChallengeRating, c.XP))
		if c.Loot != nil {
			lines = append(lines, lootLines(c.Loot)...)
		}
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Treasure renders one card per loot roll
func Treasure(loot []*entities.Loot) string {
	cards := make([]string, 0, len(loot))
	for i, l := range loot {
		lines := []string{titleStyle.Render(fmt.Sprintf("Treasure %d", i+1))}
		lines = append(lines, lootLines(l)...)
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Creatures renders a catalog listing
func Creatures(creatures []*dnd5e.Creature, total int) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%d of %d creatures", len(creatures), total))}
	for _, c := range creatures {
		detail := strings.Join(nonEmpty(c.Size, c.CreatureType, c.Alignment), ", ")
		line := fmt.Sprintf("%s (CR %s, %d XP)", c.Name, c.ChallengeRating, c.EffectiveXP())
		if detail != "" {
			line += " " + labelStyle.Render(detail)
		}
		lines = append(lines, line)
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func lootLines(l *entities.Loot) []string {
	if l == nil {
		return nil
	}
	var lines []string
	if len(l.Items) == 0 {
		lines = append(lines, lootStyle.Render("no items"))
	}
	for _, item := range l.Items {
		lines = append(lines, lootStyle.Render(fmt.Sprintf("%s [%s] %d gp", item.Name, item.Rarity, item.Value)))
	}
	lines = append(lines, lootStyle.Render(fmt.Sprintf("gold %d of %d left", l.RemainingGold, l.StartingGold)))
	return lines
}

func formatFilters(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+filters[k])
	}
	return strings.Join(parts, " ")
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
