package main

import (
	"Revamp/internal/favorites"
	"Revamp/pkg/apiclient"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	pendingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#565f89"))
)

func renderFavorites(w io.Writer, records []favorites.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, pendingStyle.Render("no favorites yet"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ZONE", "DESCRIPTION", "USED", "LAST USED")
	for _, r := range records {
		lastUsed := "-"
		if r.LastUsed != nil {
			lastUsed = r.LastUsed.Local().Format("2006-01-02 15:04")
		}
		code := r.ZoneCode
		if r.Pending() {
			code = pendingStyle.Render(code + " (saving)")
		}
		t.Row(strconv.Itoa(r.DisplayOrder), code, r.Description(), strconv.Itoa(r.TimesUsed), lastUsed)
	}
	fmt.Fprintln(w, t.Render())
}

func renderUser(w io.Writer, server string, u apiclient.User, favoriteCount int) {
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("server"), server)
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("email"), u.Email)
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("username"), u.Username)
	if u.FullName != nil {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render("name"), *u.FullName)
	}
	fmt.Fprintf(w, "%s %d\n", titleStyle.Render("favorites"), favoriteCount)
}

func renderZoneMatches(w io.Writer, matches []zoneMatch) {
	if len(matches) == 0 {
		fmt.Fprintln(w, pendingStyle.Render("no matching zones"))
		return
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("CODE", "DESCRIPTION")
	for _, m := range matches {
		t.Row(m.Code, m.Description)
	}
	fmt.Fprintln(w, t.Render())
}
