// Package handler contains HTTP handlers for the Savant website.
//
// This file implements the home page.
package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/savant/internal/calculator"
	"github.com/DukeRupert/savant/internal/contactform"
	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/notify"
)

// =============================================================================
// Template Data Types
// =============================================================================

// HomePageData contains data for the home page.
type HomePageData struct {
	CurrentPath  string
	Services     []ServiceCard
	Steps        []ProcessStep
	Testimonials []Testimonial
	Calculator   CalculatorData
	Contact      ContactData
}

// ServiceCard is one tile in the services grid.
type ServiceCard struct {
	Icon        string
	Title       string
	Description string
}

// ProcessStep is one step of the loan process timeline.
type ProcessStep struct {
	Title       string
	Description string
}

// Testimonial is a client quote.
type Testimonial struct {
	Quote string
	Name  string
}

// CalculatorData holds the slider bounds and the initial result card.
type CalculatorData struct {
	Loan          domain.LoanParameters
	Card          template.HTML
	MinPrincipal  float64
	MaxPrincipal  float64
	PrincipalStep float64
	MinRate       float64
	MaxRate       float64
	RateStep      float64
	MinTerm       int
	MaxTerm       int
}

// ContactData configures the enquiry form and its client script.
type ContactData struct {
	Endpoint       string
	Services       []string
	DefaultService string
	DismissAfterMs int64
	SuccessMessage string
	FailureMessage string
	Email          string
	Phone          string
}

// =============================================================================
// Page Content
// =============================================================================

var serviceCards = []ServiceCard{
	{"🏠", "Residential Purchase Loans", "Achieve your dream of owning a home with flexible loan options, competitive rates, and expert guidance for first-time buyers and upgraders."},
	{"🏢", "Commercial Purchase Loans", "Secure offices, warehouses, or other commercial properties with tailored lending solutions and guidance at every step."},
	{"🔁", "Refinance", "Lower your rate, consolidate debt, or access equity. We review your current structure and help you move to a smarter solution."},
	{"🌉", "Bridging Finance", "Short-term funding to help you move between properties without stress. Fast approvals and flexible terms to keep plans moving."},
	{"🏗️", "Construction Loans", "Finance to build your home or commercial project, with support through each stage, from pre-approval to completion."},
	{"♿", "NDIS Loans", "Specialist lending for NDIS-approved properties or modifications, with a team that understands the program's unique requirements."},
	{"📈", "SMSF Loans", "Use your self-managed super fund to invest in property or other assets, with lending structured around SMSF rules and tax benefits."},
	{"🧾", "Alt Doc & Low Doc Loans", "Options for self-employed clients and non-traditional income. We work with you to find solutions beyond standard payslip lending."},
	{"🧭", "Financial Guidance & Support", "Clear, ongoing guidance to help you understand your options, make informed decisions, and stay on track with your goals."},
}

var processSteps = []ProcessStep{
	{"Get in touch", "Share your goals with us. We listen, understand your situation, and outline your next steps."},
	{"Borrowing capacity check", "We run a free credit check and assess your borrowing capacity so you know what's achievable."},
	{"Gathering documents", "We help you collect all required documents and understand your asset position."},
	{"Loan preparation", "We prepare your application, structuring the loan to fit your goals and strategy."},
	{"Review & submission", "We review everything with you, answer questions, then lodge your application to our lenders."},
	{"Lender assessment", "Approval typically takes 7-10 business days depending on circumstances."},
	{"Additional info", "If lenders need more details, we manage it and keep you updated at every step."},
	{"Loan documents issued", "Once approved, loan docs are issued, usually within 48 hours. We explain key details."},
	{"Settlement", "Once docs are signed and returned, we book and settle your loan on the same day."},
	{"Repayments begin", "Your first repayment is due exactly one month after settlement. We're here anytime."},
}

var testimonials = []Testimonial{
	{"Absolutely seamless refinance. They explained everything clearly and saved us a significant amount each month.", "Mia K."},
	{"Swift pre-approval and settlement. The team handled the paperwork and kept us updated at every step.", "Daniel & Priya"},
	{"Professional, responsive, and genuinely on our side. Highly recommend.", "Jacob R."},
}

// =============================================================================
// Handler Configuration
// =============================================================================

// SiteHandler serves the marketing page.
type SiteHandler struct {
	renderer  TemplateRenderer
	formatter *calculator.Formatter
	logger    *slog.Logger
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(renderer TemplateRenderer, formatter *calculator.Formatter, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		renderer:  renderer,
		formatter: formatter,
		logger:    logger,
	}
}

// RegisterRoutes registers the page routes.
//
// Routes:
// - GET /{$} -> Home
// - GET /    -> 404 for anything no other route matched
func (h *SiteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("/", h.NotFound)
}

// =============================================================================
// GET / - Home
// =============================================================================

// Home renders the one-page site with the calculator at its default values.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	const op = "site.home"

	loan := domain.DefaultLoanParameters()
	card, err := renderRepaymentCard(r.Context(), h.formatter, loan, false)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, domain.Internal(err, op, "failed to render repayment card"))
		return
	}

	data := HomePageData{
		CurrentPath:  r.URL.Path,
		Services:     serviceCards,
		Steps:        processSteps,
		Testimonials: testimonials,
		Calculator: CalculatorData{
			Loan:          loan,
			Card:          card,
			MinPrincipal:  domain.MinPrincipal,
			MaxPrincipal:  domain.MaxPrincipal,
			PrincipalStep: domain.PrincipalStep,
			MinRate:       domain.MinAnnualRate,
			MaxRate:       domain.MaxAnnualRate,
			RateStep:      domain.AnnualRateStep,
			MinTerm:       domain.MinTermYears,
			MaxTerm:       domain.MaxTermYears,
		},
		Contact: ContactData{
			Endpoint:       contactform.DefaultEndpoint,
			Services:       domain.Services,
			DefaultService: domain.DefaultService,
			DismissAfterMs: notify.DismissAfter.Milliseconds(),
			SuccessMessage: contactform.SuccessMessage,
			FailureMessage: contactform.FailureMessage,
			Email:          "info@savantfs.com.au",
			Phone:          "+61 401 656 014",
		},
	}

	h.renderer.RenderHTTP(w, "home", data)
}

// NotFound answers every unmatched path.
func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundResponse(w, r, h.logger)
}
