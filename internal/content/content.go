// Package content holds the display data of the landing site.
package content

import (
	"strings"

	"github.com/splshield/splshield-web/internal/config"
)

// Link is a navigation target. External links open in a new tab.
type Link struct {
	Name     string
	URL      string
	External bool
}

// LinkGroup is a titled footer column. Title is a translation key.
type LinkGroup struct {
	Title string
	Links []Link
}

// Stat is a hero counter.
type Stat struct {
	Label string
	Value int
}

// Feature is a showcased capability.
type Feature struct {
	Title       string
	Description string
	Benefits    []string
}

// Product is one of the two flagship products.
type Product struct {
	Name        string
	Tagline     string
	Description string
	Features    []string
	CTA         string
	URL         string
}

// ContactMethod is a channel listed next to the contact form.
type ContactMethod struct {
	Title       string
	Description string
	Contact     string
	Action      string
	Href        string
}

// WhitepaperSection summarizes one chapter of the whitepaper.
type WhitepaperSection struct {
	Title       string
	Description string
	Topics      []string
}

// Site is everything the pages render.
type Site struct {
	Links      config.Links
	Stats      []Stat
	Features   []Feature
	Highlights []Feature
	Products   []Product
	Tokenomics Tokenomics
	Roadmap    []Phase
	Whitepaper []WhitepaperSection
	Contact    []ContactMethod
	Social     []Link
	Footer     []LinkGroup
	Legal      []LegalPage
}

// New assembles the site content around the configured external links.
func New(links config.Links) *Site {
	return &Site{
		Links: links,
		Stats: []Stat{
			{Label: "Scans Completed", Value: 50000},
			{Label: "Tokens Analyzed", Value: 15000},
			{Label: "Users Protected", Value: 8500},
			{Label: "Risks Prevented", Value: 12000},
		},
		Features: []Feature{
			{
				Title:       "Advanced Risk Scanning",
				Description: "AI-powered analysis of Solana tokens and wallets with real-time risk assessment and detailed security reports.",
				Benefits:    []string{"Real-time scanning", "Comprehensive reports", "Risk scoring", "Historical data"},
			},
			{
				Title:       "AI Security Intelligence",
				Description: "Machine learning models flag suspicious patterns, rugpull indicators and emerging threats.",
				Benefits:    []string{"Pattern recognition", "Threat detection", "Smart alerts", "Predictive analysis"},
			},
			{
				Title:       "TDL Token Ecosystem",
				Description: "A utility token with transparent tokenomics, managed liquidity and long-term incentives.",
				Benefits:    []string{"Utility token", "Transparent allocation", "Liquidity control", "Governance rights"},
			},
		},
		Highlights: []Feature{
			{Title: "Multi-layer Security", Description: "Layered protections for user data and transactions."},
			{Title: "Real-time Monitoring", Description: "Continuous portfolio monitoring with instant alerts."},
			{Title: "Deep Analysis", Description: "Inspection of token contracts and liquidity pools."},
			{Title: "Risk Metrics", Description: "Risk scores with actionable recommendations."},
			{Title: "Community Driven", Description: "Built with the community on open-source principles."},
			{Title: "Global Access", Description: "Available worldwide with multi-language support."},
		},
		Products: []Product{
			{
				Name:        "SPL Shield Scanner",
				Tagline:     "AI-Powered Risk Analysis",
				Description: "Analyzes Solana tokens and wallets in real time to catch rugpulls, scams and suspicious activity before you trade.",
				Features: []string{
					"Real-time Token Scanning", "Risk Assessment Dashboard", "Threat Detection Engine",
					"Portfolio Monitoring", "Community Reports", "Precision Analytics",
				},
				CTA: "Launch Scanner",
				URL: links.ScannerURL,
			},
			{
				Name:        "TDL Token",
				Tagline:     "Utility & Governance",
				Description: "The utility token powering premium scans, staking rewards and governance across the SPL Shield ecosystem.",
				Features: []string{
					"Utility Token Design", "Institutional-Grade Custody", "Liquidity Management",
					"Staking Rewards", "Fast Transactions", "Secure Protocol",
				},
				CTA: "Visit Exchange",
				URL: links.ExchangeURL,
			},
		},
		Tokenomics: DefaultTokenomics(),
		Roadmap:    DefaultRoadmap(),
		Whitepaper: []WhitepaperSection{
			{
				Title:       "Security Architecture",
				Description: "The layered security model and the risk detection pipeline.",
				Topics:      []string{"Risk Assessment Engine", "Threat Detection Models", "Security Protocols", "Data Protection"},
			},
			{
				Title:       "Technical Implementation",
				Description: "Solana program architecture and smart contract design.",
				Topics:      []string{"Smart Contract Design", "Solana Integration", "API Architecture", "Performance Optimization"},
			},
			{
				Title:       "TDL Token Economics",
				Description: "Token utility, governance model and economic incentives.",
				Topics:      []string{"Token Utility", "Burn Mechanisms", "Governance Model", "Economic Incentives"},
			},
			{
				Title:       "Ecosystem & Roadmap",
				Description: "Where SPL Shield is heading and how the community steers it.",
				Topics:      []string{"Development Roadmap", "Community Governance", "Partnership Strategy", "Future Features"},
			},
		},
		Contact: []ContactMethod{
			{
				Title:       "Email Support",
				Description: "Get in touch with our team",
				Contact:     config.SupportEmail,
				Action:      "Send Email",
				Href:        "mailto:" + config.SupportEmail,
			},
			{
				Title:       "Telegram Community",
				Description: "Chat with our moderators in real time",
				Contact:     CommunityHandle(links.TelegramURL),
				Action:      "Join Telegram",
				Href:        links.TelegramURL,
			},
			{
				Title:       "Discord Server",
				Description: "Collaborate with builders and get product updates",
				Contact:     CommunityHandle(links.DiscordURL),
				Action:      "Join Discord",
				Href:        links.DiscordURL,
			},
			{
				Title:       "X (Twitter)",
				Description: "Follow product updates and announcements",
				Contact:     config.SocialHandle,
				Action:      "Visit X Profile",
				Href:        "https://x.com/splshield",
			},
		},
		Social: []Link{
			{Name: "X (Twitter)", URL: "https://x.com/splshield", External: true},
			{Name: "Facebook", URL: "https://www.facebook.com/splshield", External: true},
			{Name: "Instagram", URL: "https://www.instagram.com/splshield", External: true},
			{Name: "Discord", URL: links.DiscordURL, External: true},
			{Name: "Telegram", URL: links.TelegramURL, External: true},
		},
		Footer: []LinkGroup{
			{
				Title: config.TKeyFooterProducts,
				Links: []Link{
					{Name: "SPL Shield Scanner", URL: links.ScannerURL, External: true},
					{Name: "TDL Token Exchange", URL: links.ExchangeURL, External: true},
					{Name: "Security Features", URL: "/#features"},
					{Name: "Roadmap", URL: "/#roadmap"},
				},
			},
			{
				Title: config.TKeyFooterResources,
				Links: []Link{
					{Name: "Whitepaper", URL: config.RouteWhitepaper},
					{Name: "Tokenomics", URL: "/#tokenomics"},
					{Name: "Product Suite", URL: "/#products"},
					{Name: "Presale Calendar", URL: config.RouteCalendar},
				},
			},
			{
				Title: config.TKeyFooterSupport,
				Links: []Link{
					{Name: "Help Center", URL: "/#contact"},
					{Name: "Contact Us", URL: config.RouteContact},
					{Name: "Status Page", URL: "https://status.splshield.com", External: true},
					{Name: "Knowledge Base", URL: "https://docs.splshield.com", External: true},
				},
			},
			{
				Title: config.TKeyFooterLegal,
				Links: []Link{
					{Name: "Privacy Policy", URL: config.RoutePrivacy},
					{Name: "Terms of Service", URL: config.RouteTerms},
					{Name: "Cookie Policy", URL: config.RouteCookies},
					{Name: "Disclaimer", URL: config.RouteDisclaimer},
				},
			},
		},
		Legal: DefaultLegalPages(),
	}
}

// CommunityHandle strips the scheme for display: "https://t.me/x" -> "t.me/x".
func CommunityHandle(url string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(url, scheme) {
			return strings.TrimPrefix(url, scheme)
		}
	}
	return url
}

// External reports whether the method opens another site.
func (c ContactMethod) External() bool {
	return !strings.HasPrefix(c.Href, "mailto:")
}

// LegalPage returns the legal page served at route.
func (s *Site) LegalPage(route string) (LegalPage, bool) {
	for _, p := range s.Legal {
		if p.Route == route {
			return p, true
		}
	}
	return LegalPage{}, false
}
