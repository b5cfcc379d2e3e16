package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
	"github.com/splshield/splshield-web/internal/countdown"
	"github.com/splshield/splshield-web/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout"

// page is one server-rendered route.
type page struct {
	route    string
	template string
	titleKey string
	legal    *content.LegalPage
}

// phaseView is a roadmap phase with its status resolved at render time.
type phaseView struct {
	content.Phase
	Status string
}

// pageData is what the templates see.
type pageData struct {
	Tr        locale.Translator
	Lang      string
	Languages []string
	Route     string
	Title     string
	Site      *content.Site

	Segments []content.Segment
	Presale  []content.PresaleDetail
	Phases   []phaseView

	Countdown   countdown.Display
	Active      bool
	Deadline    string
	DeadlineISO string
	Year        int

	Legal content.LegalPage

	printer *message.Printer
}

// Number formats n with the grouping rules of the page language.
func (d pageData) Number(n int) string {
	return d.printer.Sprint(number.Decimal(n))
}

// parseTemplates builds one template set per page body on top of the layout.
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New(layoutTemplate).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplateParse, err)
	}

	sets := make(map[string]*template.Template)
	for _, name := range []string{"home", "whitepaper", "contact", "legal"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrTemplateParse, err)
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrTemplateParse, name, err)
		}
		sets[name] = clone
	}
	return sets, nil
}

// pages lists every route rendered into the cache.
func (s *Server) pages() []page {
	out := []page{
		{route: config.RouteRoot, template: "home", titleKey: config.TKeyNavHome},
		{route: config.RouteWhitepaper, template: "whitepaper", titleKey: config.TKeyNavWhitepaper},
		{route: config.RouteContact, template: "contact", titleKey: config.TKeyNavContact},
	}
	for i := range s.site.Legal {
		out = append(out, page{route: s.site.Legal[i].Route, template: "legal", legal: &s.site.Legal[i]})
	}
	return out
}

// renderPage executes one page for one language.
func (s *Server) renderPage(p page, lang string, now, deadline time.Time, segments []content.Segment) ([]byte, error) {
	tr := s.catalog.For(lang)
	remaining := countdown.Calculate(deadline, now)

	phases := make([]phaseView, 0, len(s.site.Roadmap))
	for _, ph := range s.site.Roadmap {
		phases = append(phases, phaseView{Phase: ph, Status: ph.StatusAt(now)})
	}

	data := pageData{
		Tr:          tr,
		Lang:        lang,
		Languages:   s.catalog.Languages(),
		Route:       p.route,
		Site:        s.site,
		Segments:    segments,
		Presale:     s.site.Tokenomics.Details(lang),
		Phases:      phases,
		Countdown:   remaining.Display(),
		Active:      remaining.Active,
		Deadline:    deadline.UTC().Format(config.DeadlineDisplayLayout),
		DeadlineISO: deadline.UTC().Format(time.RFC3339),
		Year:        now.UTC().Year(),
		printer:     message.NewPrinter(language.Make(lang)),
	}
	if p.legal != nil {
		data.Legal = *p.legal
		data.Title = p.legal.Title
	} else {
		data.Title = tr.T(p.titleKey)
	}

	var buf bytes.Buffer
	if err := s.templates[p.template].ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrTemplateRender, p.route, err)
	}
	return buf.Bytes(), nil
}
