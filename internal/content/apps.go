// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package content

import (
	"cmp"
	"slices"
)

// AppStatus is the release state of an app.
type AppStatus string

const (
	StatusLive       AppStatus = "live"
	StatusBeta       AppStatus = "beta"
	StatusComingSoon AppStatus = "coming-soon"
)

// MessageID returns the i18n message ID for the status badge.
func (s AppStatus) MessageID() string {
	switch s {
	case StatusLive:
		return "status_live"
	case StatusBeta:
		return "status_beta"
	default:
		return "status_coming_soon"
	}
}

// Step is one entry of an app's "how it works" section.
type Step struct {
	Title       string
	Description string
}

// Feature is a user-facing benefit of an app.
type Feature struct {
	Title       string
	Description string
}

// App is a product with its own landing page and, optionally, a waitlist.
// ID doubles as the URL slug and the waitlist product identifier.
type App struct { //nolint:govet // fieldalignment: readability over optimization
	ID              string
	Title           string
	Tagline         string
	Summary         string
	Problem         string
	Solution        string
	HowItWorks      []Step
	Features        []Feature
	Status          AppStatus
	CTALabel        string
	WaitlistEnabled bool
	AppStoreLink    string
	PlayStoreLink   string
	Featured        bool
	Order           int
	Category        string
	Platforms       string
}

// Apps is the app catalog.
var Apps = []App{
	{
		ID:       "nudgeme",
		Title:    "NudgeMe",
		Tagline:  "Turn big goals into daily wins",
		Summary:  "AI-powered productivity that breaks down your ambitions into actionable steps with smart reminders that actually work.",
		Problem:  "You have big goals but struggle to make consistent progress. Traditional to-do apps don't understand your projects, and you lose momentum.",
		Solution: "NudgeMe uses AI to understand your goals, create realistic plans, and nudge you at the right moments to keep moving forward.",
		HowItWorks: []Step{
			{Title: "Tell it your goal", Description: "Chat naturally about what you want to achieve"},
			{Title: "Get a real plan", Description: "AI breaks it into phases, tasks, and milestones"},
			{Title: "Stay on track", Description: "Smart reminders adapt to your progress and schedule"},
		},
		Features: []Feature{
			{Title: "Conversational Planning", Description: "Just describe your goal, the AI handles the breakdown into actionable tasks"},
			{Title: "Adaptive Reminders", Description: "Notifications that learn your patterns and nudge you when you're most likely to act"},
			{Title: "Visual Roadmaps", Description: "See your entire project at a glance with phases, dependencies, and progress"},
			{Title: "Streak & Progress", Description: "Daily goals and streaks keep you motivated without overwhelming you"},
		},
		Status:          StatusBeta,
		CTALabel:        "Join the Waitlist",
		WaitlistEnabled: true,
		Featured:        true,
		Order:           1,
		Category:        "ProductivityApplication",
		Platforms:       "iOS, Android",
	},
	{
		ID:       "panic-poll",
		Title:    "PanicPoll",
		Tagline:  "Fast decisions from people you trust",
		Summary:  "Poll your inner circle and get real answers in minutes, not hours of back-and-forth in group chats.",
		Problem:  "You need quick input on a decision but group chats are chaos, and you don't want to bug people individually. By the time everyone responds, the moment has passed.",
		Solution: "PanicPoll lets you create focused polls for your trusted contacts. They respond with one tap, you see results instantly, and nobody's inbox explodes.",
		HowItWorks: []Step{
			{Title: "Create your circle", Description: "Import contacts and organize them into groups (family, team, advisors)"},
			{Title: "Launch a poll", Description: "Ask your question, add options or images, set urgency"},
			{Title: "Get answers fast", Description: "Push notifications bring responses in, you watch results live and save them to history"},
		},
		Features: []Feature{
			{Title: "Private Circles", Description: "Organize contacts into trusted groups: family, team, close friends, advisors"},
			{Title: "Rich Polls", Description: "Yes/No, A/B comparisons, multiple choice. Attach images for visual decisions"},
			{Title: "Instant Notifications", Description: "Recipients get a push, tap to vote, done. No app-hopping required"},
			{Title: "Decision History", Description: "Every poll saved and searchable. Reference past decisions anytime"},
		},
		Status:          StatusBeta,
		CTALabel:        "Join PanicPoll Beta",
		WaitlistEnabled: true,
		Featured:        true,
		Order:           2,
		Category:        "Social",
		Platforms:       "iOS, Android",
	},
}

// FeaturedApps returns the featured apps in display order.
func FeaturedApps() []App {
	return sortedApps(func(a App) bool { return a.Featured })
}

// AllApps returns every app in display order.
func AllApps() []App {
	return sortedApps(func(App) bool { return true })
}

// AppByID finds an app by its identifier.
func AppByID(id string) (App, bool) {
	i := slices.IndexFunc(Apps, func(a App) bool { return a.ID == id })
	if i < 0 {
		return App{}, false
	}
	return Apps[i], true
}

// ProductName is the display name used in confirmation emails.
// Unknown identifiers are returned unchanged.
func ProductName(id string) string {
	if app, ok := AppByID(id); ok {
		return app.Title
	}
	return id
}

func sortedApps(keep func(App) bool) []App {
	var out []App
	for _, a := range Apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b App) int { return cmp.Compare(a.Order, b.Order) })
	return out
}
