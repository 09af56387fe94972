package tui

import (
	"strings"
)

// MenuEntry is one numbered line of the console menu.
type MenuEntry struct {
	Key   string
	Title string
}

// RenderMenu draws the numbered console menu.
func RenderMenu(title string, entries []MenuEntry) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(BannerStyle.Render("*** " + title + " ***"))
	b.WriteString("\n")
	for _, e := range entries {
		b.WriteString(KeyStyle.Render(e.Key + "."))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(e.Title))
		b.WriteString("\n")
	}
	return b.String()
}
