package web

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	goahttp "goa.design/goa/v3/http"

	"github.com/123NE456/kb-booking-app/internal/config"
	"github.com/123NE456/kb-booking-app/internal/schedule"
	"github.com/123NE456/kb-booking-app/internal/services"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

// Handlers exposes the HTTP surface: informational pages, the booking and
// contact forms, and the JWT-protected admin endpoints.
type Handlers struct {
	booking *services.BookingService
	contact *services.ContactService
	auth    *services.AuthService
	health  *services.HealthService
	salon   config.SalonConfig
	tmpl    *template.Template
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	booking *services.BookingService,
	contact *services.ContactService,
	auth *services.AuthService,
	health *services.HealthService,
	salon config.SalonConfig,
	tmpl *template.Template,
) *Handlers {
	return &Handlers{
		booking: booking,
		contact: contact,
		auth:    auth,
		health:  health,
		salon:   salon,
		tmpl:    tmpl,
	}
}

// Mount registers all routes on the muxer
func (h *Handlers) Mount(mux goahttp.Muxer) error {
	staticRoot, err := StaticFS()
	if err != nil {
		return err
	}
	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot)))

	mux.Handle("GET", "/", h.handleHome)
	mux.Handle("GET", "/products", h.handleProducts)
	mux.Handle("GET", "/about", h.handleAbout)
	mux.Handle("GET", "/contact", h.handleContact)
	mux.Handle("GET", "/static/{*path}", fileServer.ServeHTTP)
	mux.Handle("GET", "/health", h.handleHealth)

	mux.Handle("POST", "/book", h.handleBook)
	mux.Handle("POST", "/send-message", h.handleSendMessage)

	mux.Handle("POST", "/admin/login", h.handleAdminLogin)
	mux.Handle("GET", "/admin/reservations", h.requireAdmin(h.handleAdminReservations))
	mux.Handle("GET", "/admin/messages", h.requireAdmin(h.handleAdminMessages))
	return nil
}

type pageData struct {
	SalonName    string
	ContactEmail string
	Message      string
	Success      string
	Error        string
	Slots        []string
}

func (h *Handlers) newPageData() pageData {
	return pageData{
		SalonName:    h.salon.Name,
		ContactEmail: h.salon.ContactEmail,
		Slots:        schedule.Slots(),
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[WEB] render %s failed: %v", name, err)
	}
}

func (h *Handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", h.newPageData())
}

func (h *Handlers) handleProducts(w http.ResponseWriter, r *http.Request) {
	data := h.newPageData()
	data.Message = r.URL.Query().Get("message")
	h.render(w, "products.html", data)
}

func (h *Handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, "about.html", h.newPageData())
}

func (h *Handlers) handleContact(w http.ResponseWriter, r *http.Request) {
	h.render(w, "contact.html", h.newPageData())
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	result, _ := h.health.Check(r.Context())
	writeJSON(w, http.StatusOK, result)
}

// bookResponse is the JSON body for POST /book
type bookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handlers) handleBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, bookResponse{Success: false, Error: "invalid form data"})
		return
	}

	req := services.BookingRequest{
		Name:      r.FormValue("name"),
		Phone:     r.FormValue("phone"),
		Email:     r.FormValue("email"),
		Hairstyle: r.FormValue("hairstyle"),
		Date:      r.FormValue("date"),
		Time:      r.FormValue("time"),
	}
	if missing := missingBookingFields(req); missing != "" {
		writeJSON(w, http.StatusBadRequest, bookResponse{Success: false, Error: missing + " is required"})
		return
	}

	result, err := h.booking.Book(r.Context(), req)
	if err != nil {
		// Infrastructure fault. Logged server-side already; the client
		// only sees a generic failure.
		writeJSON(w, http.StatusInternalServerError, bookResponse{Success: false, Error: "booking could not be processed, please try again later"})
		return
	}
	if !result.Confirmed {
		writeJSON(w, http.StatusOK, bookResponse{Success: false, Error: result.Message})
		return
	}
	writeJSON(w, http.StatusOK, bookResponse{Success: true, Message: result.Message})
}

func (h *Handlers) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.newPageData()
		data.Error = "Invalid form data"
		h.render(w, "contact.html", data)
		return
	}

	req := services.ContactRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}

	data := h.newPageData()
	if _, err := h.contact.Submit(r.Context(), req); err != nil {
		if apperrors.Code(err) == apperrors.ErrCodeBadRequest {
			data.Error = "Please fill in all fields"
		} else {
			data.Error = "Your message could not be sent, please try again later"
		}
		h.render(w, "contact.html", data)
		return
	}
	data.Success = "Message sent ✅"
	h.render(w, "contact.html", data)
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			writeError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r.URL.Query())
	reservations, err := h.booking.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reservations")
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *Handlers) handleAdminMessages(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r.URL.Query())
	messages, err := h.contact.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// requireAdmin wraps a handler with bearer-token authentication
func (h *Handlers) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		user, err := h.auth.Authenticate(r.Context(), parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if !user.IsAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

func missingBookingFields(req services.BookingRequest) string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "name"
	case strings.TrimSpace(req.Phone) == "":
		return "phone"
	case strings.TrimSpace(req.Email) == "":
		return "email"
	case strings.TrimSpace(req.Hairstyle) == "":
		return "hairstyle"
	case strings.TrimSpace(req.Date) == "":
		return "date"
	case strings.TrimSpace(req.Time) == "":
		return "time"
	}
	return ""
}

func pagination(q url.Values) (offset, limit int) {
	offset, _ = strconv.Atoi(q.Get("skip"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return offset, limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WEB] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
