// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package templates_test

import (
	"context"
	"strings"
	"testing"

	"codeberg.org/noambuilds/site/internal/content"
	"codeberg.org/noambuilds/site/internal/ctxkeys"
	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/markdown"
	"codeberg.org/noambuilds/site/internal/templates"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(ctx, &sb))
	return sb.String()
}

func englishContext(t *testing.T) context.Context {
	t.Helper()
	require.NoError(t, i18n.Init())
	return i18n.WithLocale(context.Background(), language.English)
}

func TestContextHelpers_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, templates.CSRFToken(ctx))
	assert.Equal(t, "/static/css/styles.css", templates.CSSPath(ctx))
	assert.Equal(t, "/static/js/app.js", templates.JSPath(ctx))
}

func TestContextHelpers_FromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxkeys.CSRFToken{}, "tok")
	ctx = context.WithValue(ctx, ctxkeys.CSSPath{}, "/static/css/styles.abcd1234.css")

	assert.Equal(t, "tok", templates.CSRFToken(ctx))
	assert.Equal(t, "/static/css/styles.abcd1234.css", templates.CSSPath(ctx))
}

func TestLayout(t *testing.T) {
	ctx := englishContext(t)
	ctx = context.WithValue(ctx, ctxkeys.CSRFToken{}, "csrf-value")

	out := render(t, templ.WithChildren(ctx, templ.Raw("<p>body</p>")), templates.Layout("Apps"))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<title>Apps · NoamBuilds</title>")
	assert.Contains(t, out, `content="csrf-value"`)
	assert.Contains(t, out, "<p>body</p>")
	assert.Contains(t, out, `href="/projects"`)
}

func TestLayout_DefaultTitle(t *testing.T) {
	out := render(t, englishContext(t), templates.Layout(""))

	assert.Contains(t, out, "<title>NoamBuilds · Full-Stack Developer &amp; System Architect</title>")
}

func TestHome_WithNotice(t *testing.T) {
	out := render(t, englishContext(t), templates.Home(&templates.Notice{MessageID: "waitlist_invalid_token_banner"}))

	assert.Contains(t, out, "notice-error")
	assert.Contains(t, out, "That confirmation link is invalid or has already been used.")
	assert.Contains(t, out, `href="/apps/nudgeme"`)
	assert.Contains(t, out, `href="/projects/platformer"`)
}

func TestAppPage(t *testing.T) {
	app, ok := content.AppByID("nudgeme")
	require.True(t, ok)

	out := render(t, englishContext(t), templates.AppPage(app,
		&templates.Notice{Success: true, MessageID: "waitlist_confirmed_banner"},
		map[string]string{"utm_source": "newsletter", "ignored": "x"}))

	assert.Contains(t, out, "notice-success")
	assert.Contains(t, out, `name="appId" value="nudgeme"`)
	assert.Contains(t, out, `name="utm_source" value="newsletter"`)
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, `hx-post="/api/waitlist/signup"`)
	assert.Contains(t, out, "Join the Waitlist")
	assert.Contains(t, out, "Adaptive Reminders")
}

func TestProjectPage_RendersMarkdown(t *testing.T) {
	project, ok := content.ProjectByID("platformer")
	require.True(t, ok)

	out := render(t, englishContext(t), templates.ProjectPage(project))

	assert.Contains(t, out, `<h4 class="md-subheading">Gameplay Systems:</h4>`)
	assert.Contains(t, out, `href="https://github.com/moanzx/Platformer"`)
}

func TestProjectPage_PrivateSourceHidden(t *testing.T) {
	project, ok := content.ProjectByID("rekem")
	require.True(t, ok)

	out := render(t, englishContext(t), templates.ProjectPage(project))

	assert.NotContains(t, out, `class="source"`)
}

func TestProjectPage_UnsafeLinkSanitized(t *testing.T) {
	project := content.Project{
		ID:         "x",
		Title:      "X",
		DemoLink:   "javascript:alert(1)",
		GithubLink: "https://github.com/NoamBuilds/x",
	}

	out := render(t, englishContext(t), templates.ProjectPage(project))

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `<a class="demo" href="about:invalid#TemplFailedSanitizationURL">Demo</a>`)
	assert.Contains(t, out, `href="https://github.com/NoamBuilds/x"`)
}

func TestWaitlistForm(t *testing.T) {
	ctx := context.WithValue(englishContext(t), ctxkeys.CSRFToken{}, "tok")

	out := render(t, ctx, templates.WaitlistForm("panicpoll", "", map[string]string{"utm_term": `"><script>`}))

	assert.Contains(t, out, `hx-target="#waitlist-result-panicpoll"`)
	assert.Contains(t, out, `<div id="waitlist-result-panicpoll" aria-live="polite"></div>`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
	assert.Contains(t, out, `name="utm_term" value="&#34;&gt;&lt;script&gt;"`)
	assert.Contains(t, out, ">Join</button>")
}

func TestMarkdown_EscapesText(t *testing.T) {
	doc := markdown.Parse("- **<b>bold</b>** item\n\n1. one\n\n<script>x</script>")

	out := render(t, context.Background(), templates.Markdown(doc))

	assert.Contains(t, out, `<ul class="md-list"><li><strong>&lt;b&gt;bold&lt;/b&gt;</strong> item</li></ul>`)
	assert.Contains(t, out, `<ol class="md-list"><li>one</li></ol>`)
	assert.Contains(t, out, `<p class="md-paragraph">&lt;script&gt;x&lt;/script&gt;</p>`)
	assert.NotContains(t, out, "<script>")
}

func TestFormResult(t *testing.T) {
	ok := render(t, context.Background(), templates.FormResult(true, "Check your email"))
	failed := render(t, context.Background(), templates.FormResult(false, "<bad>"))

	assert.Equal(t, `<p class="form-result form-result-success">Check your email</p>`, ok)
	assert.Equal(t, `<p class="form-result form-result-error">&lt;bad&gt;</p>`, failed)
}

func TestWaitlistConfirmationEmail(t *testing.T) {
	out := render(t, englishContext(t), templates.WaitlistConfirmationEmail("PanicPoll", "https://noambuilds.com/confirm?token=abc"))

	assert.Contains(t, out, "Thanks for signing up for the PanicPoll waitlist!")
	assert.Contains(t, out, `href="https://noambuilds.com/confirm?token=abc"`)
	assert.Contains(t, out, "Confirm My Spot")
}

func TestContactEmail_EscapesMessage(t *testing.T) {
	out := render(t, englishContext(t), templates.ContactEmail("Ada & Co", "ada@example.com", "hi <there>\nline two"))

	assert.Contains(t, out, "Ada &amp; Co")
	assert.Contains(t, out, "hi &lt;there&gt;<br>line two")
	assert.Contains(t, out, "mailto:ada@example.com")
}

func TestNotFound_German(t *testing.T) {
	require.NoError(t, i18n.Init())
	ctx := i18n.WithLocale(context.Background(), language.German)

	out := render(t, ctx, templates.NotFound())

	assert.Contains(t, out, `<html lang="de">`)
	assert.Contains(t, out, "Seite nicht gefunden")
}
