// Package e2e drives the full client data layer against an in-process fake
// of the LightShop backend.
package e2e

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/SeimoDev/LightShop/domain"
)

const jwtSecret = "e2e-backend-secret"

// BackendUser is a fixture account with its bcrypt-hashed password.
type BackendUser struct {
	domain.User
	PasswordHash string
}

// FakeBackend is an in-memory LightShop backend speaking the production
// wire contract: bearer auth, envelope responses, HTTP status mirroring the
// envelope code on failures.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	users    map[string]*BackendUser // by username
	nextUser int
	carts    map[int][]domain.CartItem // by user id
	nextItem int
	products map[int]domain.Product

	failNextCartGet bool
}

// NewFakeBackend starts the fake backend with the given fixture users.
func NewFakeBackend(users ...*BackendUser) *FakeBackend {
	b := &FakeBackend{
		users:    make(map[string]*BackendUser),
		carts:    make(map[int][]domain.CartItem),
		products: make(map[int]domain.Product),
	}
	for _, u := range users {
		b.nextUser = max(b.nextUser, u.ID)
		b.users[u.Username] = u
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	b.routes(router)
	b.Server = httptest.NewServer(router)
	return b
}

// Close shuts the backend down.
func (b *FakeBackend) Close() { b.Server.Close() }

// URL is the backend's base URL.
func (b *FakeBackend) URL() string { return b.Server.URL }

// Fixture builds a BackendUser with a bcrypt-hashed password.
func Fixture(id int, username, password string, role int) *BackendUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &BackendUser{
		User:         domain.User{ID: id, Username: username, Email: username + "@example.com", Role: role, Status: 1},
		PasswordHash: string(hash),
	}
}

// AddProduct seeds a catalog entry.
func (b *FakeBackend) AddProduct(p domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[p.ID] = p
}

// FailNextCartGet makes the next GET /cart return a 500, for refetch
// failure scenarios.
func (b *FakeBackend) FailNextCartGet() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNextCartGet = true
}

// CartOf returns a copy of one user's server-side cart.
func (b *FakeBackend) CartOf(userID int) []domain.CartItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.CartItem, len(b.carts[userID]))
	copy(out, b.carts[userID])
	return out
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 200, "message": "success", "data": data})
}

// fail mirrors the production backend: the HTTP status repeats the envelope
// code for 4xx/5xx failures.
func fail(c *gin.Context, code int, message string) {
	status := code
	if status < 400 || status >= 600 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "message": message, "data": nil})
}

func (b *FakeBackend) routes(r *gin.Engine) {
	r.POST("/auth/login", b.login)
	r.POST("/auth/register", b.register)

	authed := r.Group("", b.authMiddleware)
	authed.GET("/auth/profile", b.profile)
	authed.PUT("/auth/profile", b.updateProfile)

	authed.GET("/cart", b.getCart)
	authed.POST("/cart", b.addCartItem)
	// "selectAll" and "selected" share the :id segment; the handlers
	// dispatch on the raw value.
	authed.PUT("/cart/:id", b.updateCartItem)
	authed.DELETE("/cart", b.clearCart)
	authed.DELETE("/cart/:id", b.deleteCartItem)

	r.GET("/products", b.listProducts)
}

func issueToken(userID, role int) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func (b *FakeBackend) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		fail(c, 401, "未登录")
		return
	}
	tok, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(*jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !tok.Valid {
		fail(c, 401, "登录已过期")
		return
	}
	claims := tok.Claims.(jwt.MapClaims)
	c.Set("userId", int(claims["user_id"].(float64)))
	c.Next()
}

func (b *FakeBackend) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		fail(c, 400, "参数错误")
		return
	}

	b.mu.Lock()
	user, found := b.users[creds.Username]
	b.mu.Unlock()
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		fail(c, 400, "用户名或密码错误")
		return
	}

	ok(c, domain.AuthPayload{Token: issueToken(user.ID, user.Role), User: &user.User})
}

func (b *FakeBackend) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		fail(c, 400, "参数错误")
		return
	}

	b.mu.Lock()
	if _, exists := b.users[reg.Username]; exists {
		b.mu.Unlock()
		fail(c, 400, "用户名已存在")
		return
	}
	b.nextUser++
	user := Fixture(b.nextUser, reg.Username, reg.Password, domain.RoleUser)
	user.Email = reg.Email
	b.users[reg.Username] = user
	b.mu.Unlock()

	ok(c, domain.AuthPayload{Token: issueToken(user.ID, user.Role), User: &user.User})
}

func (b *FakeBackend) currentUser(c *gin.Context) *BackendUser {
	id := c.GetInt("userId")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (b *FakeBackend) profile(c *gin.Context) {
	user := b.currentUser(c)
	if user == nil {
		fail(c, 404, "用户不存在")
		return
	}
	ok(c, user.User)
}

func (b *FakeBackend) updateProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		fail(c, 400, "参数错误")
		return
	}
	user := b.currentUser(c)
	if user == nil {
		fail(c, 404, "用户不存在")
		return
	}

	b.mu.Lock()
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	b.mu.Unlock()
	ok(c, user.User)
}

func (b *FakeBackend) getCart(c *gin.Context) {
	b.mu.Lock()
	if b.failNextCartGet {
		b.failNextCartGet = false
		b.mu.Unlock()
		fail(c, 500, "服务器错误")
		return
	}
	userID := c.GetInt("userId")
	items := make([]domain.CartItem, len(b.carts[userID]))
	copy(items, b.carts[userID])
	b.mu.Unlock()

	payload := domain.CartPayload{Items: items}
	for _, item := range items {
		payload.TotalQuantity += item.Quantity
		if item.Selected {
			payload.TotalAmount += item.Subtotal()
			payload.SelectedCount++
		}
	}
	payload.AllSelected = len(items) > 0 && payload.SelectedCount == len(items)
	ok(c, payload)
}

func (b *FakeBackend) addCartItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "参数错误")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	product, found := b.products[req.ProductID]
	if !found || product.Status != 1 {
		fail(c, 400, "商品不存在或已下架")
		return
	}

	userID := c.GetInt("userId")
	// The server owns merge behavior: an existing line for the product
	// absorbs the quantity instead of creating a duplicate.
	for i := range b.carts[userID] {
		if b.carts[userID][i].ProductID == req.ProductID {
			b.carts[userID][i].Quantity += req.Quantity
			ok(c, nil)
			return
		}
	}
	b.nextItem++
	b.carts[userID] = append(b.carts[userID], domain.CartItem{
		ID: b.nextItem, ProductID: req.ProductID, Quantity: req.Quantity,
		Selected: true, ProductName: product.Name, ProductPrice: product.Price,
	})
	ok(c, nil)
}

func (b *FakeBackend) updateCartItem(c *gin.Context) {
	var req struct {
		Quantity *int  `json:"quantity"`
		Selected *bool `json:"selected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "参数错误")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	userID := c.GetInt("userId")

	if c.Param("id") == "selectAll" {
		if req.Selected == nil {
			fail(c, 400, "参数错误")
			return
		}
		for i := range b.carts[userID] {
			b.carts[userID][i].Selected = *req.Selected
		}
		ok(c, nil)
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, 400, "参数错误")
		return
	}
	for i := range b.carts[userID] {
		if b.carts[userID][i].ID == itemID {
			if req.Quantity != nil {
				if *req.Quantity < 1 {
					fail(c, 400, "数量必须大于0")
					return
				}
				b.carts[userID][i].Quantity = *req.Quantity
			}
			if req.Selected != nil {
				b.carts[userID][i].Selected = *req.Selected
			}
			ok(c, nil)
			return
		}
	}
	fail(c, 404, "购物车项不存在")
}

func (b *FakeBackend) deleteCartItem(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	userID := c.GetInt("userId")

	if c.Param("id") == "selected" {
		var kept []domain.CartItem
		for _, item := range b.carts[userID] {
			if !item.Selected {
				kept = append(kept, item)
			}
		}
		b.carts[userID] = kept
		ok(c, nil)
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, 400, "参数错误")
		return
	}
	for i, item := range b.carts[userID] {
		if item.ID == itemID {
			b.carts[userID] = append(b.carts[userID][:i], b.carts[userID][i+1:]...)
			ok(c, nil)
			return
		}
	}
	fail(c, 404, "购物车项不存在")
}

func (b *FakeBackend) clearCart(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.carts[c.GetInt("userId")] = nil
	ok(c, nil)
}

func (b *FakeBackend) listProducts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page := domain.Page[domain.Product]{PageNum: 1}
	for _, p := range b.products {
		page.List = append(page.List, p)
	}
	page.Total = len(page.List)
	ok(c, page)
}
