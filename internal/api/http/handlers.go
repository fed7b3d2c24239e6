package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cardapioltdelima/cardapio-painel/internal/analytics"
	"github.com/cardapioltdelima/cardapio-painel/internal/auth"
	"github.com/cardapioltdelima/cardapio-painel/internal/domain"
	"github.com/cardapioltdelima/cardapio-painel/internal/receipt"
	"github.com/cardapioltdelima/cardapio-painel/internal/share"
)

// PanelStore is the slice of the data access layer the handlers consume.
// Implemented by store.Store.
type PanelStore interface {
	Categories() []domain.Category
	Products() []domain.Product
	Orders() []domain.Order
	Order(id string) (domain.Order, bool)
	Product(id string) (domain.Product, bool)
	UpdateOrderStatus(orderID string, status domain.OrderStatus) error
	UpdatePaymentStatus(orderID string, status domain.PaymentStatus) error
	SaveProduct(p domain.Product) (domain.Product, error)
	DeleteProduct(productID string) error
	Err() string
}

// SessionStore is the current-actor state. Implemented by auth.Session.
type SessionStore interface {
	Users() []domain.User
	Current(ctx context.Context) (domain.User, error)
	Switch(ctx context.Context, userID int) (domain.User, error)
	Logout(ctx context.Context) error
}

// Uploader stores a product image and returns its public URL. Implemented
// by storage.UploadStore.
type Uploader interface {
	Save(filename string, r io.Reader) (string, error)
}

// timeNow is swapped in tests to pin the aggregation window.
var timeNow = time.Now

type Handler struct {
	Store   PanelStore
	Session SessionStore
	Uploads Uploader
}

func NewHandler(store PanelStore, session SessionStore, uploads Uploader) *Handler {
	return &Handler{Store: store, Session: session, Uploads: uploads}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")

	r.HandleFunc("/api/products", h.getProducts).Methods("GET")
	r.HandleFunc("/api/products", h.saveProduct).Methods("POST")
	r.HandleFunc("/api/products/{id}", h.deleteProduct).Methods("DELETE")
	r.HandleFunc("/api/products/{id}/image", h.uploadProductImage).Methods("POST")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.updateOrder).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/transitions", h.getTransitions).Methods("GET")
	r.HandleFunc("/api/orders/{id}/receipt", h.getReceipt).Methods("GET")
	r.HandleFunc("/api/orders/{id}/whatsapp", h.getWhatsAppLink).Methods("GET")
	r.HandleFunc("/api/orders/{id}/whatsapp/qrcode", h.getWhatsAppQRCode).Methods("GET")

	r.HandleFunc("/api/dashboard/stats", h.getDashboardStats).Methods("GET")

	r.HandleFunc("/api/users", h.getUsers).Methods("GET")
	r.HandleFunc("/api/session", h.getSession).Methods("GET")
	r.HandleFunc("/api/session", h.switchSession).Methods("PUT")
	r.HandleFunc("/api/session", h.logout).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "cardapio-painel"})
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Categories())
}

func (h *Handler) getProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Products())
}

func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if product.Name == "" || product.Price < 0 {
		http.Error(w, "Invalid product payload", http.StatusBadRequest)
		return
	}

	inserting := product.ID == "" || !isPersistedID(product.ID)
	saved, err := h.Store.SaveProduct(product)
	RecordStoreOperation("save_product", err == nil)
	if err != nil {
		http.Error(w, h.Store.Err(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if inserting {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, ok := h.Store.Product(id); !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	err := h.Store.DeleteProduct(id)
	RecordStoreOperation("delete_product", err == nil)
	if err != nil {
		http.Error(w, h.Store.Err(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadProductImage stores the image first and only then patches the
// product record, so a failed upload never leaves a half-saved product.
func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, ok := h.Store.Product(id)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !allowedImageTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
		return
	}

	imageURL, err := h.Uploads.Save(header.Filename, file)
	if err != nil {
		log.Printf("[painel] image upload failed: %v", err)
		http.Error(w, "Erro no upload da imagem: "+err.Error(), http.StatusInternalServerError)
		return
	}

	product.ImageURL = imageURL
	if _, err := h.Store.SaveProduct(product); err != nil {
		http.Error(w, h.Store.Err(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders()
	if filter := r.URL.Query().Get("status"); filter != "" {
		filtered := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if string(o.Status) == filter {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderUpdateRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// updateOrder commits a staged change. Only the fields that actually differ
// from the last committed values are sent to the remote store.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	order, ok := h.Store.Order(id)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	var req orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		if !domain.ValidOrderStatus(status) {
			http.Error(w, "Invalid order status", http.StatusBadRequest)
			return
		}
		if status != order.Status {
			err := h.Store.UpdateOrderStatus(id, status)
			RecordStoreOperation("update_order_status", err == nil)
			if err != nil {
				http.Error(w, h.Store.Err(), http.StatusInternalServerError)
				return
			}
		}
	}

	if req.PaymentStatus != nil {
		payment := domain.PaymentStatus(*req.PaymentStatus)
		if !domain.ValidPaymentStatus(payment) {
			http.Error(w, "Invalid payment status", http.StatusBadRequest)
			return
		}
		if payment != order.PaymentStatus {
			err := h.Store.UpdatePaymentStatus(id, payment)
			RecordStoreOperation("update_payment_status", err == nil)
			if err != nil {
				http.Error(w, h.Store.Err(), http.StatusInternalServerError)
				return
			}
		}
	}

	updated, _ := h.Store.Order(id)
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) getTransitions(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	allowed := domain.AllowedTransitions(order.Status)
	if allowed == nil {
		allowed = []domain.OrderStatus{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   order.Status,
		"allowed":  allowed,
		"terminal": domain.IsTerminal(order.Status),
	})
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	format, err := receipt.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := receipt.Render(order, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc)
}

func (h *Handler) getWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"link":         share.Link(order),
		"summary_link": share.SummaryLink(order),
		"summary_text": share.SummaryText(order),
	})
}

func (h *Handler) getWhatsAppQRCode(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Order(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	png, err := share.QRCode(order)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) getDashboardStats(w http.ResponseWriter, r *http.Request) {
	window := analytics.Window(r.URL.Query().Get("window"))
	switch window {
	case "":
		window = analytics.WindowToday
	case analytics.WindowToday, analytics.Window7Days, analytics.Window30Days:
	default:
		http.Error(w, "Invalid window", http.StatusBadRequest)
		return
	}

	orders := h.Store.Orders()
	now := timeNow()
	stats := analytics.WindowStats(orders, window, now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"window":           window,
		"stats":            stats,
		"revenue_display":  domain.FormatBRL(stats.Revenue),
		"status_histogram": analytics.StatusHistogram(orders),
		"revenue_series":   analytics.RevenueSeries(orders, window, now),
		"top_products":     analytics.TopProducts(orders, window, now, 5),
	})
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Users())
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	user, err := h.Session.Current(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) switchSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	user, err := h.Session.Switch(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isPersistedID(id string) bool {
	_, err := strconv.ParseInt(id, 10, 64)
	return err == nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
