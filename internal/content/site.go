// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package content holds the static catalogs the site is rendered from.
package content

// Link is a labelled external or internal URL.
type Link struct {
	Label string
	URL   string
}

// Site is the site-wide configuration shown in the layout and used for SEO.
type Site struct {
	Name        string
	Title       string
	Description string
	URL         string
	Email       string
	Social      []Link
	Skills      []string
}

// SiteConfig is the single source for links and copy repeated across pages.
var SiteConfig = Site{
	Name:        "NoamBuilds",
	Title:       "NoamBuilds · Full-Stack Developer & System Architect",
	Description: "Building robust full-stack applications with React, Expo, Supabase, and AI-driven workflows.",
	URL:         "https://noambuilds.com",
	Email:       "noambuilds@gmail.com",
	Social: []Link{
		{Label: "GitHub", URL: "https://github.com/NoamBuilds"},
		{Label: "LinkedIn", URL: "https://www.linkedin.com/company/noambuilds/"},
		{Label: "Instagram", URL: "https://www.instagram.com/noambuilds/"},
		{Label: "TikTok", URL: "https://www.tiktok.com/@noambuilds"},
		{Label: "YouTube", URL: "https://www.youtube.com/@NoamBuilds"},
		{Label: "X", URL: "https://x.com/NoamBuilds"},
		{Label: "Threads", URL: "https://www.threads.com/@noambuilds"},
	},
	Skills: []string{"React", "Expo", "Supabase", "Full-Stack", "LangChain", "SQL", "Cursor"},
}

// NavItem is an entry in the main navigation. Label is an i18n message ID.
type NavItem struct {
	Label string
	Href  string
}

// Nav is the main navigation in display order.
var Nav = []NavItem{
	{Label: "nav_home", Href: "/"},
	{Label: "nav_apps", Href: "/apps"},
	{Label: "nav_projects", Href: "/projects"},
	{Label: "nav_about", Href: "/about"},
	{Label: "nav_contact", Href: "/contact"},
}
