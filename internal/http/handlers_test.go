package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abheydecbs/webshop-eksamen/internal/auth"
	"github.com/abheydecbs/webshop-eksamen/internal/cache"
	"github.com/abheydecbs/webshop-eksamen/internal/cartstore"
	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/abheydecbs/webshop-eksamen/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory ProductRepository.
type fakeCatalog struct {
	m        sync.RWMutex
	products map[int64]*domain.Product
	err      error
}

func (f *fakeCatalog) GetAllProducts(context.Context) ([]*domain.Product, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}

func (f *fakeCatalog) GetProductsByIDs(_ context.Context, ids []int64) (map[int64]*domain.Product, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	if f.err != nil {
		return nil, f.err
	}
	out := map[int64]*domain.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeCatalog) SearchProducts(_ context.Context, query string) ([]*domain.Product, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Product
	for _, p := range f.products {
		if strings.Contains(p.Name, query) || strings.Contains(p.Brand, query) || strings.Contains(p.Description, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeUsers is an in-memory UserRepository.
type fakeUsers struct {
	m      sync.Mutex
	nextID int64
	byMail map[string]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byMail: map[string]*domain.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, email, passwordHash string) (int64, error) {
	f.m.Lock()
	defer f.m.Unlock()
	if _, ok := f.byMail[email]; ok {
		return 0, repository.ErrEmailTaken
	}
	f.nextID++
	f.byMail[email] = &domain.User{ID: f.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	return f.nextID, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.m.Lock()
	defer f.m.Unlock()
	if u, ok := f.byMail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

// fakeOrders is an in-memory OrderRepository.
type fakeOrders struct {
	m          sync.Mutex
	nextCustID int64
	customers  map[string]*domain.Customer
	orders     []*domain.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{customers: map[string]*domain.Customer{}}
}

func (f *fakeOrders) CreateOrder(_ context.Context, customer *domain.Customer, order *domain.Order) error {
	f.m.Lock()
	defer f.m.Unlock()
	f.nextCustID++
	customer.ID = f.nextCustID
	order.CustomerID = customer.ID
	order.CreatedAt = time.Now()
	f.customers[order.OrderID] = customer
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrders) ListOrders(context.Context) ([]*domain.OrderSummary, error) {
	f.m.Lock()
	defer f.m.Unlock()
	out := make([]*domain.OrderSummary, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		out = append(out, f.summaryLocked(f.orders[i]))
	}
	return out, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID string) (*domain.OrderSummary, []*domain.OrderLine, error) {
	f.m.Lock()
	defer f.m.Unlock()
	for _, o := range f.orders {
		if o.OrderID == orderID {
			lines := make([]*domain.OrderLine, 0, len(o.Lines))
			for i := range o.Lines {
				lines = append(lines, &o.Lines[i])
			}
			return f.summaryLocked(o), lines, nil
		}
	}
	return nil, nil, repository.ErrOrderNotFound
}

func (f *fakeOrders) summaryLocked(o *domain.Order) *domain.OrderSummary {
	c := f.customers[o.OrderID]
	return &domain.OrderSummary{
		OrderID:            o.OrderID,
		TotalPrice:         o.TotalPrice,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		CustomerName:       c.Name,
		CustomerEmail:      c.Email,
		CustomerPhone:      c.Phone,
		CustomerAddress:    c.Address,
		CustomerPostalCode: c.PostalCode,
		CustomerCity:       c.City,
	}
}

// memCartStore is an in-memory cartstore.Store.
type memCartStore struct {
	m     sync.Mutex
	carts map[int64]*domain.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[int64]*domain.Cart{}}
}

func (s *memCartStore) GetCart(_ context.Context, userID int64) (*domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if cart, ok := s.carts[userID]; ok {
		return cart, nil
	}
	return nil, cartstore.ErrCartNotFound
}

func (s *memCartStore) AddLine(_ context.Context, userID int64, line domain.CartLine) error {
	s.m.Lock()
	defer s.m.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &domain.Cart{UserID: userID}
		s.carts[userID] = cart
	}
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == line.ProductID {
			cart.Lines[i].Quantity += line.Quantity
			return nil
		}
	}
	cart.Lines = append(cart.Lines, line)
	return nil
}

func (s *memCartStore) SetLineQuantity(_ context.Context, userID, productID int64, quantity int) error {
	s.m.Lock()
	defer s.m.Unlock()
	if cart, ok := s.carts[userID]; ok {
		for i := range cart.Lines {
			if cart.Lines[i].ProductID == productID {
				cart.Lines[i].Quantity = quantity
				return nil
			}
		}
	}
	return cartstore.ErrLineNotFound
}

func (s *memCartStore) RemoveLine(_ context.Context, userID, productID int64) error {
	s.m.Lock()
	defer s.m.Unlock()
	if cart, ok := s.carts[userID]; ok {
		kept := cart.Lines[:0]
		for _, l := range cart.Lines {
			if l.ProductID != productID {
				kept = append(kept, l)
			}
		}
		cart.Lines = kept
	}
	return nil
}

func (s *memCartStore) DeleteCart(_ context.Context, userID int64) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.carts, userID)
	return nil
}

// missCache never hits; the cache path itself is covered by the cache tests.
type missCache struct{}

func (missCache) Get(context.Context, int64) (*domain.Cart, error) {
	return nil, cache.ErrCacheMiss
}
func (missCache) Set(context.Context, int64, *domain.Cart) error { return nil }
func (missCache) Delete(context.Context, int64) error            { return nil }

type testEnv struct {
	router  chi.Router
	tokens  *auth.TokenManager
	catalog *fakeCatalog
	users   *fakeUsers
	orders  *fakeOrders
	carts   *memCartStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalog := &fakeCatalog{products: map[int64]*domain.Product{
		12: {ID: 12, Name: "Keychron K2", Price: 799, Description: "Mekanisk tastatur, RGB", Category: "tilbehor", Brand: "Keychron"},
		14: {ID: 14, Name: "AirPods Pro 2", Price: 2499, Description: "Active Noise Cancelling", Category: "tilbehor", Brand: "Apple"},
	}}
	users := newFakeUsers()
	orders := newFakeOrders()
	carts := newMemCartStore()
	tokens := auth.NewTokenManager("test-hemmelighed")

	cartService := service.NewCartService(carts, missCache{}, catalog)
	orderService := service.NewOrderService(orders)

	productHandler := NewProductHandler(catalog)
	cartHandler := NewCartHandler(cartService, catalog)
	orderHandler := NewOrderHandler(orderService)
	authHandler := NewAuthHandler(users, tokens)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(AuthMiddleware(tokens)).Get("/me", authHandler.Me)
		})
		r.Route("/produkter", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/søg/{query}", productHandler.SearchProducts)
			r.Get("/{id}", productHandler.GetProduct)
		})
		r.Route("/kurv", func(r chi.Router) {
			r.Use(AuthMiddleware(tokens))
			r.Get("/", cartHandler.GetCart)
			r.Post("/add", cartHandler.AddLine)
			r.Put("/item/{produktId}", cartHandler.SetQuantity)
			r.Delete("/item/{produktId}", cartHandler.RemoveLine)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Route("/ordre", func(r chi.Router) {
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/", orderHandler.ListOrders)
			r.Get("/{ordreId}", orderHandler.GetOrder)
		})
	})

	return &testEnv{
		router:  r,
		tokens:  tokens,
		catalog: catalog,
		users:   users,
		orders:  orders,
		carts:   carts,
	}
}

func (e *testEnv) authCookie(t *testing.T, userID int64, email string) *http.Cookie {
	t.Helper()
	token, err := e.tokens.Issue(userID, email)
	require.NoError(t, err)
	return &http.Cookie{Name: AuthCookieName, Value: token}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
