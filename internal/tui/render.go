package tui

import (
	"fmt"
	"strings"

	"serpentaware/internal/models"
)

func bullets(sb *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(sb, "  • %s\n", it)
	}
}

func numbered(sb *strings.Builder, items []string) {
	for i, it := range items {
		fmt.Fprintf(sb, "  %d. %s\n", i+1, it)
	}
}

// renderSnake lays out the detail page. Safety guidance is only printed for
// venomous species.
func renderSnake(st Styles, s models.Snake) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render(s.Name) + "\n")
	sb.WriteString(st.Subtitle.Render(s.ScientificName) + "\n\n")

	venom := "✅ No"
	if s.IsVenomous {
		venom = "⚠️ Yes"
	}
	fmt.Fprintf(&sb, "Danger: %s   Size: %s   Venomous: %s\n\n", st.Badge(s.DangerLevel), s.SizeRange, venom)

	sb.WriteString(st.Section.Render("Description") + "\n")
	sb.WriteString(s.Description + "\n\n")

	sb.WriteString(st.Section.Render("Countries") + "\n")
	sb.WriteString("  " + strings.Join(s.Countries, ", ") + "\n\n")
	sb.WriteString(st.Section.Render("Habitat") + "\n")
	bullets(&sb, s.Habitat)
	sb.WriteString("\n")

	sb.WriteString(st.Section.Render("Identification Features") + "\n")
	bullets(&sb, s.IdentificationFeatures)
	sb.WriteString("\n")

	if s.IsVenomous {
		sb.WriteString(st.Danger.Render("🚨 Safety Information") + "\n\n")
		sb.WriteString(st.Section.Render("What TO Do") + "\n")
		bullets(&sb, s.WhatToDo)
		sb.WriteString(st.Section.Render("What NOT To Do") + "\n")
		bullets(&sb, s.WhatNotToDo)
		sb.WriteString(st.Section.Render("First Aid Steps") + "\n")
		numbered(&sb, s.FirstAid)
		sb.WriteString("\n")
	}

	sb.WriteString(st.Section.Render("Behavior") + "\n")
	sb.WriteString(s.Behavior + "\n\n")
	sb.WriteString(st.Section.Render("Diet") + "\n")
	sb.WriteString(s.Diet + "\n\n")
	sb.WriteString(st.Section.Render("Interesting Facts") + "\n")
	bullets(&sb, s.InterestingFacts)
	return sb.String()
}

func renderEmergency(st Styles, infos []models.EmergencyInfo) string {
	var sb strings.Builder
	sb.WriteString(st.Danger.Render("🚨 Emergency Information") + "\n\n")
	for _, info := range infos {
		sb.WriteString(st.Title.Render(strings.TrimSpace(info.Icon+" "+info.Title)) + "\n")
		sb.WriteString("Quick Steps:\n")
		numbered(&sb, info.QuickSteps)
		if len(info.EmergencyNumbers) > 0 {
			sb.WriteString("Emergency Numbers: " + strings.Join(info.EmergencyNumbers, " | ") + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderSnake formats one species for plain terminal output.
func RenderSnake(s models.Snake) string { return renderSnake(NewStyles(), s) }

// RenderEmergency formats the emergency procedures for plain terminal output.
func RenderEmergency(infos []models.EmergencyInfo) string {
	return renderEmergency(NewStyles(), infos)
}
