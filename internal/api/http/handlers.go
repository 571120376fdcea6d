package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dinesync/internal/client"
	"dinesync/internal/domain"
	"dinesync/internal/qr"
	"dinesync/internal/service"
	"dinesync/internal/session"

	"github.com/gorilla/mux"
)

type Handler struct {
	Session  *session.Store
	Menu     service.MenuServiceInterface
	Orders   service.OrderServiceInterface
	Payments service.PaymentServiceInterface
	QR       qr.Generator
}

func NewHandler(store *session.Store, menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface, paymentSvc service.PaymentServiceInterface, generator qr.Generator) *Handler {
	return &Handler{
		Session:  store,
		Menu:     menuSvc,
		Orders:   orderSvc,
		Payments: paymentSvc,
		QR:       generator,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu", h.getRestaurantMenu).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{productId}", h.updateCartItem).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{productId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/table", h.bindTable).Methods("POST")
	r.HandleFunc("/api/table", h.getTable).Methods("GET")
	r.HandleFunc("/api/table", h.clearTable).Methods("DELETE")
	r.HandleFunc("/api/tables/{tableId}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/order", h.getCurrentOrder).Methods("GET")
	r.HandleFunc("/api/order", h.clearCurrentOrder).Methods("DELETE")

	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/tables/{tableId}/orders", h.getTableOrders).Methods("GET")

	r.HandleFunc("/api/payments/init", h.initPayment).Methods("POST")
	r.HandleFunc("/api/payments/ussd", h.initUSSDPayment).Methods("POST")
	r.HandleFunc("/api/payments/confirm", h.confirmPayment).Methods("POST")
	r.HandleFunc("/api/payments/{orderId}/status", h.getPaymentStatus).Methods("GET")

	r.HandleFunc("/api/invoices/{orderId}", h.getInvoice).Methods("GET")
	r.HandleFunc("/api/invoices/{orderId}/pdf", h.getInvoicePDF).Methods("GET")

	r.HandleFunc("/api/locale", h.setLocale).Methods("PUT")
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// backendError maps a backend status error onto the response, everything
// else becomes a 502: the failure happened upstream, not here.
func backendError(w http.ResponseWriter, err error) {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		http.Error(w, statusErr.Body, statusErr.Code)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "dinesync",
		"online":    h.Session.Online(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	binding := h.Session.Table()
	if binding == nil {
		http.Error(w, "No table bound for this session", http.StatusConflict)
		return
	}
	menu, err := h.Menu.GetMenu(r.Context(), binding.RestaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantId"]
	menu, err := h.Menu.GetMenu(r.Context(), restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	items, total := h.Session.Cart()
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var item domain.OrderItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.ProductID == "" || item.Quantity < 1 {
		http.Error(w, "Item needs a productId and a quantity of at least 1", http.StatusBadRequest)
		return
	}
	h.Session.AddItem(item)
	items, total := h.Session.Cart()
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Session.UpdateQuantity(productID, payload.Quantity)
	items, total := h.Session.Cart()
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	h.Session.RemoveItem(mux.Vars(r)["productId"])
	items, total := h.Session.Cart()
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "total": total})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Session.ClearCart()
	w.WriteHeader(http.StatusNoContent)
}

// bindTable accepts either a raw scanned QR payload or explicit ids, the two
// ways a session gets its table.
func (h *Handler) bindTable(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Payload      string `json:"payload"`
		RestaurantID string `json:"restaurantId"`
		TableID      string `json:"tableId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	binding := domain.TableBinding{RestaurantID: payload.RestaurantID, TableID: payload.TableID}
	if payload.Payload != "" {
		decoded, err := qr.Decode(payload.Payload)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		binding = decoded
	}
	if binding.RestaurantID == "" || binding.TableID == "" {
		http.Error(w, "Missing restaurantId or tableId", http.StatusBadRequest)
		return
	}

	h.Session.SetTable(binding.RestaurantID, binding.TableID)
	writeJSON(w, http.StatusOK, binding)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	binding := h.Session.Table()
	if binding == nil {
		http.Error(w, "No table bound for this session", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, binding)
}

func (h *Handler) clearTable(w http.ResponseWriter, r *http.Request) {
	h.Session.ClearTable()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["tableId"]
	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		http.Error(w, "Missing restaurantId", http.StatusBadRequest)
		return
	}

	png, err := h.QR.Generate(restaurantID, tableID)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// checkout turns the session cart into an order. It is refused until a
// table binding exists; on success the order becomes the session's current
// order and the cart is cleared. A 202 means the order was queued for sync.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Notes string `json:"notes"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&payload)
	}

	binding := h.Session.Table()
	if binding == nil {
		http.Error(w, "Scan a table QR code before checking out", http.StatusConflict)
		return
	}
	items, _ := h.Session.Cart()
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	order, queued, err := h.Orders.Create(r.Context(), domain.CreateOrderRequest{
		RestaurantID: binding.RestaurantID,
		TableID:      binding.TableID,
		Items:        items,
		Notes:        payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Session.SetOrder(order)
	h.Session.ClearCart()

	code := http.StatusCreated
	if queued {
		code = http.StatusAccepted
	}
	writeJSON(w, code, map[string]interface{}{"order": order, "queued": queued})
}

func (h *Handler) getCurrentOrder(w http.ResponseWriter, r *http.Request) {
	order := h.Session.CurrentOrder()
	if order == nil {
		http.Error(w, "No current order", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) clearCurrentOrder(w http.ResponseWriter, r *http.Request) {
	h.Session.ClearOrder()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTableOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.TableOrders(r.Context(), mux.Vars(r)["tableId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		http.Error(w, "Missing restaurantId", http.StatusBadRequest)
		return
	}
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, err := h.Orders.List(r.Context(), restaurantID, status)
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload domain.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], payload.Status)
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) initPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.InitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Payments.Init(r.Context(), req)
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) initUSSDPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.USSDPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Payments.InitUSSD(r.Context(), req)
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := h.Payments.Confirm(r.Context(), req)
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getPaymentStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Payments.Status(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Payments.Invoice(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		backendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invoice": invoice})
}

func (h *Handler) getInvoicePDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Payments.InvoicePDF(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		backendError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(pdf)
}

func (h *Handler) setLocale(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Locale string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Locale != "en" && payload.Locale != "fr" {
		http.Error(w, "Unsupported locale", http.StatusBadRequest)
		return
	}
	h.Session.SetLocale(payload.Locale)
	writeJSON(w, http.StatusOK, map[string]string{"locale": payload.Locale})
}
