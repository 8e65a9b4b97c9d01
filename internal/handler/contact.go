package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/DukeRupert/savant/internal/domain"
)

// MaxEnquiryBytes bounds the request body of POST /api/contact.
const MaxEnquiryBytes = 64 << 10

// contactFailureMessage is the only error text a client ever sees.
const contactFailureMessage = "Failed to send email"

// EnquiryDispatcher sends an enquiry to the operator mailbox.
type EnquiryDispatcher interface {
	Dispatch(ctx context.Context, e domain.Enquiry) error
}

// ContactResponse is the body of every /api/contact response.
type ContactResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ContactHandler accepts enquiries from the contact form.
type ContactHandler struct {
	enquiries EnquiryDispatcher
	logger    *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(enquiries EnquiryDispatcher, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		enquiries: enquiries,
		logger:    logger,
	}
}

// RegisterRoutes registers the contact API.
//
// Routes:
// - POST /api/contact -> Submit
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/contact", h.Submit)
}

// Submit decodes an enquiry and dispatches it.
//
// Every failure, whether the body could not be read or the relay refused the
// message, produces the same 500 response; the cause is only logged.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "contact.submit"

	r.Body = http.MaxBytesReader(w, r.Body, MaxEnquiryBytes)

	e, err := decodeEnquiry(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, domain.Wrap(err, domain.ETOOLARGE, op, "enquiry body too large"))
			return
		}
		h.fail(w, r, domain.Wrap(err, domain.EINVALID, op, "enquiry body is not usable JSON"))
		return
	}

	if err := h.enquiries.Dispatch(r.Context(), e); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ContactResponse{OK: true})
}

// fail logs err at the level its code calls for and answers with the one
// failure shape the form understands.
func (h *ContactHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logError(h.logger, r, err)
	writeJSON(w, http.StatusInternalServerError, ContactResponse{OK: false, Error: contactFailureMessage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Body decoding
// =============================================================================

var errNullEnquiry = errors.New("enquiry body is null")

// decodeEnquiry reads exactly one JSON value and picks the five fields out of
// it. The form always sends strings, but the endpoint takes whatever JSON it
// is given: a non-object body yields empty fields, and a field of another type
// is written out as its text ("42", "true"). Falsy values (0, false, "")
// become empty. Only a null body, malformed JSON or trailing data fail.
func decodeEnquiry(body io.Reader) (domain.Enquiry, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return domain.Enquiry{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after enquiry body")
		}
		return domain.Enquiry{}, err
	}
	if v == nil {
		return domain.Enquiry{}, errNullEnquiry
	}

	fields, _ := v.(map[string]any)
	return domain.Enquiry{
		Name:    fieldText(fields["name"]),
		Email:   fieldText(fields["email"]),
		Phone:   fieldText(fields["phone"]),
		Service: fieldText(fields["service"]),
		Message: fieldText(fields["message"]),
	}, nil
}

// fieldText renders one field, treating falsy values as absent.
func fieldText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if !x {
			return ""
		}
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
	}
	return valueText(v)
}

// valueText is the string form of a decoded JSON value.
func valueText(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String()
		}
		if a := math.Abs(f); a != 0 && (a >= 1e21 || a < 1e-6) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			if el != nil {
				parts[i] = valueText(el)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
