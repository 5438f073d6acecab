package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/xenking/pos-admin/internal/domain/auth"
	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/pricing"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/domain/vendor"
)

// --- In-memory repositories ---

type memProducts struct {
	mu   sync.Mutex
	byID map[string]product.Product
}

var _ product.Repository = (*memProducts)(nil)

func (m *memProducts) List(_ context.Context, f product.Filter) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []product.Product
	for _, p := range m.byID {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Create(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.SKU == p.SKU {
			return product.ErrDuplicateSKU
		}
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Update(_ context.Context, p *product.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return product.ErrNotFound
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return product.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memCustomers struct {
	mu   sync.Mutex
	byID map[string]customer.Customer
}

var _ customer.Repository = (*memCustomers)(nil)

func (m *memCustomers) List(_ context.Context, f customer.Filter) ([]customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []customer.Customer
	for _, c := range m.byID {
		if f.Matches(&c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (m *memCustomers) Create(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == c.Email {
			return customer.ErrDuplicateEmail
		}
	}
	m.byID[c.ID] = *c
	return nil
}

func (m *memCustomers) Update(_ context.Context, c *customer.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = *c
	return nil
}

func (m *memCustomers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return customer.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memCustomers) AdjustCredit(_ context.Context, tx customer.CreditTransaction) (*customer.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[tx.CustomerID]
	if !ok {
		return nil, customer.ErrNotFound
	}
	balance := c.CreditBalance.Add(tx.Amount)
	if balance.IsNegative() {
		return nil, customer.ErrInsufficientCredit
	}
	c.CreditBalance = balance
	m.byID[c.ID] = c
	return &c, nil
}

type memVendors struct {
	byID map[string]vendor.Vendor
}

var _ vendor.Repository = (*memVendors)(nil)

func (m *memVendors) List(_ context.Context, _ vendor.Filter) ([]vendor.Vendor, error) {
	var out []vendor.Vendor
	for _, v := range m.byID {
		out = append(out, v)
	}
	return out, nil
}

func (m *memVendors) GetByID(_ context.Context, id string) (*vendor.Vendor, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}
	return &v, nil
}

func (m *memVendors) Create(_ context.Context, v *vendor.Vendor) error {
	m.byID[v.ID] = *v
	return nil
}

func (m *memVendors) Update(_ context.Context, v *vendor.Vendor) error {
	if _, ok := m.byID[v.ID]; !ok {
		return vendor.ErrNotFound
	}
	m.byID[v.ID] = *v
	return nil
}

func (m *memVendors) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return vendor.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memOrders struct {
	mu        sync.Mutex
	byID      map[string]*order.Order
	createErr error
}

var _ order.Repository = (*memOrders)(nil)

func (m *memOrders) Create(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	o.ReceiptNumber = order.FormatReceiptNumber(o.CreatedAt, int64(len(m.byID)+1))
	m.byID[o.ID] = o
	return nil
}

func (m *memOrders) List(_ context.Context, f order.Filter) ([]order.Order, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []order.Order
	for _, o := range m.byID {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, *o)
	}
	total := len(out)
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) Update(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[o.ID] = o
	return nil
}

type memKeys map[string]auth.APIKeyInfo

func (m memKeys) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	info, ok := m[hash]
	if !ok {
		return nil, auth.ErrKeyNotFound
	}
	return &info, nil
}

func (m memKeys) Create(_ context.Context, info *auth.APIKeyInfo) error {
	m[info.KeyHash] = *info
	return nil
}

type nopPublisher struct{}

func (nopPublisher) OrderPlaced(context.Context, *order.Order) error { return nil }

// --- Fixture ---

const (
	managerKey  = "manager-key"
	cashierKey  = "cashier-key"
	employeeKey = "employee-key"
)

var testPepper = []byte("test-pepper")

type fixture struct {
	products  *memProducts
	customers *memCustomers
	vendors   *memVendors
	orders    *memOrders
	srv       http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	keys := memKeys{}
	for key, role := range map[string]auth.Role{
		managerKey:  auth.RoleManager,
		cashierKey:  auth.RoleCashier,
		employeeKey: auth.RoleEmployee,
	} {
		hash := auth.HashKey(testPepper, key)
		keys[hash] = auth.APIKeyInfo{ID: key, KeyHash: hash, Name: "Staff " + string(role), Role: role}
	}

	f := &fixture{
		products: &memProducts{byID: map[string]product.Product{
			"p1": {
				ID: "p1", Name: "Wireless Headphones", SKU: "WH-001", Category: "Electronics",
				Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(6),
				Stock: 25, MinStockLevel: 10, Status: product.StatusActive,
			},
			"p2": {
				ID: "p2", Name: "Desk Lamp", SKU: "DL-002", Category: "Home",
				Price: decimal.NewFromInt(30), Stock: 0, MinStockLevel: 10,
				Status: product.StatusInactive,
			},
		}},
		customers: &memCustomers{byID: map[string]customer.Customer{
			"c1": {
				ID: "c1", Name: "Jane Smith", Email: "jane@example.com", Phone: "555-0101",
				CreditBalance: decimal.NewFromInt(5),
			},
		}},
		vendors: &memVendors{byID: map[string]vendor.Vendor{}},
		orders:  &memOrders{byID: map[string]*order.Order{}},
	}

	h, err := NewHandler(Services{
		Products:  product.NewService(f.products),
		Customers: customer.NewService(f.customers),
		Vendors:   vendor.NewService(f.vendors),
		Orders: order.NewService(
			f.products, f.customers, f.orders, nopPublisher{}, decimal.NewFromInt(8),
		),
	}, auth.NewAuthenticator(keys, testPepper), noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	f.srv = h.Routes()
	return f
}

func (f *fixture) do(t *testing.T, method, path, key, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec, decodeEnvelope(t, rec.Body.Bytes())
}

type envelope struct {
	Success bool
	Data    jx.Raw
	Total   int
	Message string
	Error   string
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "success":
			env.Success, err = d.Bool()
		case "data":
			env.Data, err = d.Raw()
		case "total":
			env.Total, err = d.Int()
		case "message":
			env.Message, err = d.Str()
		case "error":
			env.Error, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}), string(body))
	return env
}

// member returns the raw JSON text of an object member, unquoted for strings.
func member(t *testing.T, raw jx.Raw, key string) string {
	t.Helper()
	var out string
	require.NoError(t, jx.DecodeBytes(raw).Obj(func(d *jx.Decoder, k string) error {
		if k != key {
			return d.Skip()
		}
		v, err := d.Raw()
		out = strings.Trim(v.String(), `"`)
		return err
	}))
	return out
}

// --- Tests ---

func TestIndex(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POS API is working!", member(t, rec.Body.Bytes(), "message"))
	assert.Equal(t, "2026-03-01T12:00:00Z", member(t, rec.Body.Bytes(), "timestamp"))
	assert.Contains(t, member(t, rec.Body.Bytes(), "endpoints"), "/api/orders")
}

func TestAuthentication(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
		errMsg string
	}{
		{"missing key", http.MethodGet, "/api/products", "", http.StatusUnauthorized, "Unauthorized"},
		{"unknown key", http.MethodGet, "/api/products", "nope", http.StatusUnauthorized, "Unauthorized"},
		{"employee views products", http.MethodGet, "/api/products", employeeKey, http.StatusOK, ""},
		{"employee deletes product", http.MethodDelete, "/api/products/p1", employeeKey, http.StatusForbidden, "Forbidden"},
		{"employee patches order", http.MethodPatch, "/api/orders/o1", employeeKey, http.StatusForbidden, "Forbidden"},
		{"cashier creates vendor", http.MethodPost, "/api/vendors", cashierKey, http.StatusForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec, env := f.do(t, tt.method, tt.path, tt.key, "")

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.errMsg == "", env.Success)
			assert.Equal(t, tt.errMsg, env.Error)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec, env := f.do(t, http.MethodGet, "/api/reports", managerKey, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", env.Error)
}

func TestProducts(t *testing.T) {
	t.Run("list by status", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodGet, "/api/products?status=inactive", employeeKey, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, env.Total)
		assert.Contains(t, env.Data.String(), `"DL-002"`)
	})

	t.Run("create derives low stock", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/api/products", managerKey,
			`{"name":"Mug","category":"Home","sku":"MG-003","price":"12.50","stock":3}`)

		require.Equal(t, http.StatusCreated, rec.Code, env.Error)
		assert.Equal(t, "Product created successfully", env.Message)
		assert.Equal(t, "low-stock", member(t, env.Data, "status"))
		assert.Equal(t, "12.50", member(t, env.Data, "price"))
		assert.NotEmpty(t, member(t, env.Data, "id"))
	})

	t.Run("duplicate sku", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/api/products", managerKey,
			`{"name":"Clone","category":"Electronics","sku":"WH-001","price":1}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, product.ErrDuplicateSKU.Error(), env.Error)
	})

	t.Run("missing name", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/api/products", managerKey, `{"sku":"X"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid name: is required", env.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/api/products", managerKey, `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, env.Error, "invalid request body")
	})

	t.Run("update and delete", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPut, "/api/products/p1", managerKey,
			`{"name":"Headphones","category":"Electronics","sku":"WH-001","price":15,"stock":40}`)
		require.Equal(t, http.StatusOK, rec.Code, env.Error)
		assert.Equal(t, "15.00", member(t, env.Data, "price"))
		assert.Equal(t, "p1", member(t, env.Data, "id"))

		rec, _ = f.do(t, http.MethodDelete, "/api/products/p1", managerKey, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, env = f.do(t, http.MethodGet, "/api/products/p1", managerKey, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", env.Error)
	})
}

func TestCustomers(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodGet, "/api/customers?search=JANE", cashierKey, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Customers fetched successfully", env.Message)
		assert.Equal(t, 1, env.Total)
	})

	t.Run("create requires contact fields", func(t *testing.T) {
		f := newFixture(t)
		rec, env := f.do(t, http.MethodPost, "/api/customers", managerKey, `{"name":"Bob"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name, email, and phone are required fields", env.Error)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		rec, _ := f.do(t, http.MethodPost, "/api/customers", managerKey,
			`{"name":"Jane","email":"JANE@example.com","phone":"1"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("credit", func(t *testing.T) {
		tests := []struct {
			name    string
			body    string
			code    int
			message string
			balance string
		}{
			{"add", `{"amount":10,"operation":"add"}`, http.StatusOK, "Credit added successfully", "15.00"},
			{"deduct", `{"amount":"2.5","operation":"deduct"}`, http.StatusOK, "Credit deducted successfully", "2.50"},
			{"overdraw", `{"amount":6,"operation":"deduct"}`, http.StatusUnprocessableEntity, "", ""},
			{"zero amount", `{"amount":0,"operation":"add"}`, http.StatusBadRequest, "", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				rec, env := f.do(t, http.MethodPost, "/api/customers/c1/credit", managerKey, tt.body)

				require.Equal(t, tt.code, rec.Code, env.Error)
				if tt.message != "" {
					assert.Equal(t, tt.message, env.Message)
					assert.Equal(t, tt.balance, member(t, env.Data, "creditBalance"))
				}
			})
		}
	})
}

func TestVendors(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodPost, "/api/vendors", managerKey,
		`{"name":"Ann Lee","company":"Acme Supply","email":"ann@acme.test"}`)
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	id := member(t, env.Data, "id")
	assert.Equal(t, "USD", member(t, env.Data, "currency"))

	rec, env = f.do(t, http.MethodPut, "/api/vendors/"+id, managerKey,
		`{"name":"Ann Lee","company":"Acme Supply","email":"bad-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid email: Please enter a valid email address", env.Error)

	rec, env = f.do(t, http.MethodGet, "/api/vendors", employeeKey, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Total)

	rec, _ = f.do(t, http.MethodDelete, "/api/vendors/missing", managerKey, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_Quote(t *testing.T) {
	f := newFixture(t)
	rec, env := f.do(t, http.MethodPost, "/api/orders/quote", employeeKey,
		`{"items":[{"productId":"p1","quantity":2}],"discount":{"type":"percentage","value":10}}`)

	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Contains(t, env.Data.String(), `"grandTotal":19.44`)
	assert.Empty(t, f.orders.byID, "quote must not persist")
}

func TestOrders_QuoteOutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "huge tax rate",
			body:  `{"items":[{"productId":"p1","quantity":1}],"taxRate":"1e20000000"}`,
			field: `field "taxRate"`,
		},
		{
			name:  "tiny discount value",
			body:  `{"items":[{"productId":"p1","quantity":1}],"discount":{"type":"percentage","value":"1e-20000000"}}`,
			field: `field "value"`,
		},
		{
			name:  "huge cash received",
			body:  `{"items":[{"productId":"p1","quantity":1}],"cashReceived":1e400}`,
			field: `field "cashReceived"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec, env := f.do(t, http.MethodPost, "/api/orders/quote", employeeKey, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, "invalid request body")
			assert.Contains(t, env.Error, tt.field)
			assert.Contains(t, env.Error, "out of range")
		})
	}
}

func TestOrders_Place(t *testing.T) {
	f := newFixture(t)
	rec, env := f.do(t, http.MethodPost, "/api/orders", cashierKey,
		`{"customerId":"c1","items":[{"productId":"p1","quantity":2}],"paymentMethod":"cash","cashReceived":50}`)

	require.Equal(t, http.StatusCreated, rec.Code, env.Error)
	assert.Equal(t, "Order created successfully", env.Message)
	assert.Equal(t, "21.60", member(t, env.Data, "total"))
	assert.Equal(t, "28.40", member(t, env.Data, "changeGiven"))
	assert.Equal(t, "Staff cashier", member(t, env.Data, "createdBy"))
	assert.Regexp(t, `^RCP-\d{8}-0001$`, member(t, env.Data, "receiptNumber"))

	id := member(t, env.Data, "id")
	rec, env = f.do(t, http.MethodPatch, "/api/orders/"+id, cashierKey, `{"status":"refunded","paymentStatus":"refunded"}`)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	assert.Equal(t, "refunded", member(t, env.Data, "status"))

	rec, env = f.do(t, http.MethodGet, "/api/orders?customerId=c1", cashierKey, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Total)
}

func TestOrders_PlaceErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		createErr error
		code      int
		errMsg    string
	}{
		{
			name:   "empty items",
			body:   `{"customerId":"c1","items":[]}`,
			code:   http.StatusBadRequest,
			errMsg: "items required",
		},
		{
			name:   "unknown product",
			body:   `{"customerId":"c1","items":[{"productId":"nope","quantity":1}]}`,
			code:   http.StatusUnprocessableEntity,
			errMsg: "product nope not found",
		},
		{
			name:   "over stock",
			body:   `{"customerId":"c1","items":[{"productId":"p1","quantity":26}]}`,
			code:   http.StatusUnprocessableEntity,
			errMsg: "insufficient stock for product p1: requested 26, available 25",
		},
		{
			name:   "inactive product",
			body:   `{"customerId":"c1","items":[{"productId":"p2","quantity":1}]}`,
			code:   http.StatusBadRequest,
			errMsg: "invalid items[0].productId: product is not available for sale",
		},
		{
			name:   "unknown customer",
			body:   `{"customerId":"ghost","items":[{"productId":"p1","quantity":1}]}`,
			code:   http.StatusNotFound,
			errMsg: "Customer not found",
		},
		{
			name:   "credit overdraw",
			body:   `{"customerId":"c1","items":[{"productId":"p1","quantity":1}],"creditUsed":6}`,
			code:   http.StatusUnprocessableEntity,
			errMsg: pricing.ErrInsufficientCredit.Error(),
		},
		{
			name: "stock race in store",
			body: `{"customerId":"c1","items":[{"productId":"p1","quantity":1}]}`,
			createErr: &pricing.InsufficientStockError{
				ProductID: "p1", Requested: 1, Available: 0,
			},
			code:   http.StatusUnprocessableEntity,
			errMsg: "insufficient stock for product p1: requested 1, available 0",
		},
		{
			name:      "store failure",
			body:      `{"customerId":"c1","items":[{"productId":"p1","quantity":1}]}`,
			createErr: errors.New("connection reset"),
			code:      http.StatusInternalServerError,
			errMsg:    "Failed to create order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.orders.createErr = tt.createErr

			rec, env := f.do(t, http.MethodPost, "/api/orders", cashierKey, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.errMsg, env.Error)
		})
	}
}

func TestOrders_ListBadQuery(t *testing.T) {
	f := newFixture(t)
	rec, env := f.do(t, http.MethodGet, "/api/orders?limit=-1", cashierKey, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, `query "limit"`)
}
