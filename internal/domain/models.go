package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleAtendente Role = "Atendente"
)

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar"`
}

// OrderStatus carries the display value used by the remote store, so the
// constants double as the wire contract.
type OrderStatus string

const (
	StatusAguardando OrderStatus = "Aguardando Aprovação"
	StatusEmPreparo  OrderStatus = "Em Preparo"
	StatusConcluido  OrderStatus = "Concluído"
	StatusCancelado  OrderStatus = "Cancelado"
)

type PaymentStatus string

const (
	PaymentPendente  PaymentStatus = "Pendente"
	PaymentPago      PaymentStatus = "Pago"
	PaymentNaEntrega PaymentStatus = "Pagamento na Entrega"
)

func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{StatusAguardando, StatusEmPreparo, StatusConcluido, StatusCancelado}
}

func AllPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPendente, PaymentPago, PaymentNaEntrega}
}

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusAguardando, StatusEmPreparo, StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPendente, PaymentPago, PaymentNaEntrega:
		return true
	}
	return false
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product ids are remote serials stringified, except for not-yet-persisted
// products which carry a client-generated "new-<millis>" placeholder.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CategoryID string  `json:"category_id"`
	Price      float64 `json:"price"`
	Size       string  `json:"size"`
	Unit       string  `json:"unit"`
	ImageURL   string  `json:"image_url"`
}

type Customer struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// OrderItem.Price is the unit price snapshot taken at order time. It must
// never be recomputed from the current product price.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order.Total is authoritative; the panel never reconciles it against the
// summed item prices.
type Order struct {
	ID            string        `json:"id"`
	Customer      Customer      `json:"customer"`
	Items         []OrderItem   `json:"items"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"created_at"`
	ScheduledDate string        `json:"scheduled_date,omitempty"`
	Shift         string        `json:"shift,omitempty"`
	ScheduledTime string        `json:"scheduled_time,omitempty"`
}

// ShortID returns the trailing six characters of an order id, the form shown
// on receipts and customer messages.
func ShortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
