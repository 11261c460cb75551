package domain

import "encoding/json"

// Role values used by the LightShop backend.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User mirrors the backend user record. The password never reaches clients.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
	Balance  float64 `json:"balance"`
	Role     int     `json:"role"`
	Status   int     `json:"status"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Credentials carries a login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration carries a register request body.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// AuthPayload is the data field of a successful login or register response.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// CartItem mirrors one cart line as the backend serializes it. Product
// fields are a snapshot joined in server-side at read time; productPrice is
// authoritative there and never recomputed locally.
type CartItem struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"productId"`
	Quantity     int     `json:"quantity"`
	Selected     bool    `json:"selected"`
	ProductName  string  `json:"productName,omitempty"`
	ProductPrice float64 `json:"productPrice"`
	ProductImage string  `json:"productImage,omitempty"`
	ProductStock int     `json:"productStock,omitempty"`
}

// Subtotal is price times quantity for a single line.
func (i CartItem) Subtotal() float64 { return i.ProductPrice * float64(i.Quantity) }

// CartPayload is the data field of GET /cart. The server ships aggregate
// fields alongside the items; the client recomputes them from Items and
// ignores the shipped values so the two can never drift apart.
type CartPayload struct {
	Items         []CartItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	TotalQuantity int        `json:"totalQuantity"`
	SelectedCount int        `json:"selectedCount"`
	AllSelected   bool       `json:"allSelected"`
}

// ToastType classifies a toast message.
type ToastType string

const (
	ToastInfo    ToastType = "info"
	ToastSuccess ToastType = "success"
	ToastWarning ToastType = "warning"
	ToastError   ToastType = "error"
)

// Toast is one transient user-facing message. DurationMS <= 0 means the
// message persists until dismissed explicitly.
type Toast struct {
	ID         int64     `json:"id"`
	Message    string    `json:"message"`
	Type       ToastType `json:"type"`
	DurationMS int       `json:"duration"`
}

// Envelope is the uniform wire wrapper every backend response follows.
// Code 200 means success regardless of the HTTP status line.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Product mirrors the backend catalog record.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	CategoryID  int     `json:"categoryId"`
	Status      int     `json:"status"`
	Sales       int     `json:"sales"`
}

// Category mirrors a backend category record.
type Category struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon,omitempty"`
	Sort   int    `json:"sort"`
	Status int    `json:"status"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID           int     `json:"id"`
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	Quantity     int     `json:"quantity"`
}

// Order mirrors a backend order record.
type Order struct {
	ID          int         `json:"id"`
	OrderNo     string      `json:"orderNo"`
	Status      int         `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	Address     string      `json:"address,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
}

// Address mirrors a backend shipping address record.
type Address struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	District  string `json:"district"`
	Detail    string `json:"detail"`
	IsDefault bool   `json:"isDefault"`
}

// Favorite mirrors a backend favorite record.
type Favorite struct {
	ID        int      `json:"id"`
	ProductID int      `json:"productId"`
	Product   *Product `json:"product,omitempty"`
}

// Page is the generic paginated list payload used by list endpoints.
type Page[T any] struct {
	List     []T `json:"list"`
	Total    int `json:"total"`
	PageNum  int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DashboardStats is the admin dashboard summary payload.
type DashboardStats struct {
	UserCount    int     `json:"userCount"`
	ProductCount int     `json:"productCount"`
	OrderCount   int     `json:"orderCount"`
	TotalSales   float64 `json:"totalSales"`
}
