package content

import "github.com/splshield/splshield-web/internal/config"

// LegalUpdated is the revision date shown on every legal page.
const LegalUpdated = "September 1, 2025"

// LegalSection is a heading with its paragraphs.
type LegalSection struct {
	Heading    string
	Paragraphs []string
}

// LegalPage is a static policy page.
type LegalPage struct {
	Route    string
	Title    string
	Summary  string
	Updated  string
	Sections []LegalSection
}

// DefaultLegalPages returns the four policy pages linked from the footer.
func DefaultLegalPages() []LegalPage {
	contact := "Questions about this page can be sent to " + config.SupportEmail + "."

	return []LegalPage{
		{
			Route:   config.RoutePrivacy,
			Title:   "Privacy Policy",
			Summary: "How SPL Shield collects, uses and protects your information.",
			Updated: LegalUpdated,
			Sections: []LegalSection{
				{Heading: "Information We Collect", Paragraphs: []string{
					"We collect the details you submit through the contact form and public wallet addresses you ask us to scan.",
					"We never ask for private keys or seed phrases.",
				}},
				{Heading: "How We Use Information", Paragraphs: []string{
					"Submitted details are used to answer support requests and to improve risk analysis.",
				}},
				{Heading: "Your Rights", Paragraphs: []string{
					"You may request access to, correction of or deletion of your personal data at any time.",
				}},
				{Heading: "International Users", Paragraphs: []string{
					"Data may be processed in countries other than your own under equivalent safeguards.",
				}},
				{Heading: "Contact Us", Paragraphs: []string{contact}},
			},
		},
		{
			Route:   config.RouteTerms,
			Title:   "Terms of Service",
			Summary: "The rules for using SPL Shield products and this website.",
			Updated: LegalUpdated,
			Sections: []LegalSection{
				{Heading: "Acceptance of Terms", Paragraphs: []string{
					"By using SPL Shield you agree to these terms.",
				}},
				{Heading: "Prohibited Uses", Paragraphs: []string{
					"You may not use the service for unlawful activity, abuse of the API or attempts to disrupt the platform.",
				}},
				{Heading: "Intellectual Property", Paragraphs: []string{
					"The SPL Shield name, logo and software remain the property of their owners.",
				}},
				{Heading: "Account Termination", Paragraphs: []string{
					"Access may be suspended for accounts that violate these terms.",
				}},
				{Heading: "Governing Law", Paragraphs: []string{
					"These terms are governed by the laws of the jurisdiction where SPL Shield is registered.",
				}},
				{Heading: "Updates to Terms", Paragraphs: []string{
					"We may revise these terms. The revision date at the top of the page reflects the latest change.",
					contact,
				}},
			},
		},
		{
			Route:   config.RouteCookies,
			Title:   "Cookie Policy",
			Summary: "How this website uses cookies and similar technologies.",
			Updated: LegalUpdated,
			Sections: []LegalSection{
				{Heading: "What are Cookies?", Paragraphs: []string{
					"Cookies are small text files stored by your browser.",
				}},
				{Heading: "How We Use Cookies", Paragraphs: []string{
					"This site sets no cookies. Your language is picked from your browser settings or the lang link parameter.",
				}},
				{Heading: "Third-Party Services", Paragraphs: []string{
					"Linked services such as the scanner, the exchange or community platforms apply their own policies.",
				}},
				{Heading: "Browser Cookie Controls", Paragraphs: []string{
					"You can block or delete cookies from your browser settings.",
					contact,
				}},
			},
		},
		{
			Route:   config.RouteDisclaimer,
			Title:   "Disclaimer",
			Summary: "Important information about risk and the nature of SPL Shield products.",
			Updated: LegalUpdated,
			Sections: []LegalSection{
				{Heading: "Important Risk Warning", Paragraphs: []string{
					"Digital assets are highly volatile. You may lose all the funds you commit.",
				}},
				{Heading: "Key Risk Factors", Paragraphs: []string{
					"Risk scores are estimates and can miss threats. Smart contracts, liquidity and regulation can change without notice.",
				}},
				{Heading: "Jurisdiction & Compliance", Paragraphs: []string{
					"You are responsible for complying with the laws of your jurisdiction before taking part in the presale.",
				}},
				{Heading: "Beta Software Notice", Paragraphs: []string{
					"Parts of the platform are in beta and may contain defects.",
				}},
				{Heading: "No Warranty", Paragraphs: []string{
					"The service is provided as is, without warranty of any kind.",
				}},
				{Heading: "Limitation of Liability", Paragraphs: []string{
					"SPL Shield is not liable for losses arising from the use of the service or the TDL token.",
					contact,
				}},
			},
		},
	}
}
