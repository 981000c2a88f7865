package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-restaurant-pos/cosmic"
	"go-restaurant-pos/models"
	"go-restaurant-pos/notifications"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore stands in for the hosted object store behind the gateway.
type fakeStore struct {
	objectsByType  map[string][]map[string]interface{}
	objectsByID    map[string]map[string]interface{}
	insertedOrders []map[string]interface{}
	insertedUsers  []map[string]interface{}
	failFetch      bool
	failInsert     bool
}

func newStore() *fakeStore {
	return &fakeStore{
		objectsByType: make(map[string][]map[string]interface{}),
		objectsByID:   make(map[string]map[string]interface{}),
	}
}

func (f *fakeStore) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if f.failInsert {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		created := map[string]interface{}{
			"id":       fmt.Sprintf("created-%d", len(f.insertedOrders)+len(f.insertedUsers)+1),
			"title":    payload["title"],
			"metadata": payload["metadata"],
		}
		switch payload["type"] {
		case "orders":
			f.insertedOrders = append(f.insertedOrders, payload)
		case "users":
			f.insertedUsers = append(f.insertedUsers, payload)
			f.objectsByType["users"] = append(f.objectsByType["users"], created)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"object": created})
		return
	}

	if f.failFetch {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if rawQuery := r.URL.Query().Get("query"); rawQuery != "" {
		var query map[string]interface{}
		json.Unmarshal([]byte(rawQuery), &query)
		typ, _ := query["type"].(string)

		objects := f.objectsByType[typ]
		if email, ok := query["metadata.email"].(string); ok {
			matched := []map[string]interface{}{}
			for _, object := range objects {
				meta, _ := object["metadata"].(map[string]interface{})
				if meta != nil && meta["email"] == email {
					matched = append(matched, object)
				}
			}
			objects = matched
		}
		if len(objects) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"objects": objects, "total": len(objects)})
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	id := parts[len(parts)-1]
	object, ok := f.objectsByID[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"object": object})
}

func (f *fakeStore) addProduct(id, title, price string, available *bool, categoryID string) {
	metadata := map[string]interface{}{"price": price}
	if available != nil {
		metadata["available"] = *available
	}
	if categoryID != "" {
		metadata["category"] = map[string]interface{}{"id": categoryID, "title": categoryID}
	}
	f.objectsByType["products"] = append(f.objectsByType["products"], map[string]interface{}{
		"id": id, "title": title, "metadata": metadata,
	})
}

func setup(t *testing.T, f *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(server.Close)
	Init(cosmic.NewClientWithBase(server.URL, "test-bucket", "read-key", "write-key"), notifications.NewHub())

	router := gin.New()
	router.GET("/products", GetProducts())
	router.GET("/categories", GetCategories())
	router.GET("/tables", GetTables())
	router.GET("/orders", GetOrders())
	router.GET("/orders/:order_id", GetOrder())
	router.POST("/orders", CreateOrder())
	router.POST("/carts", CreateCart())
	router.GET("/carts/:cart_id", GetCart())
	router.POST("/carts/:cart_id/items", AddCartItem())
	router.PATCH("/carts/:cart_id/items/:product_id", UpdateCartItem())
	router.DELETE("/carts/:cart_id/items/:product_id", RemoveCartItem())
	router.POST("/carts/:cart_id/submit", SubmitCart())
	router.GET("/statistics", GetStatistics())
	router.GET("/dashboard", GetDashboard())
	router.POST("/users/signup", SignUp())
	router.POST("/users/login", Login())
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]interface{}
	if recorder.Body.Len() > 0 {
		json.Unmarshal(recorder.Body.Bytes(), &decoded)
	}
	return recorder, decoded
}

func TestCreateOrder_EmptyCartRejectedBeforeStoreCall(t *testing.T) {
	f := newStore()
	router := setup(t, f)

	recorder, _ := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"table_number": "3",
		"items":        []models.OrderLineItem{},
		"total_amount": 0,
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, f.insertedOrders)
}

func TestCreateOrder_Scenario(t *testing.T) {
	f := newStore()
	router := setup(t, f)

	recorder, body := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"table_number": "4",
		"items": []models.OrderLineItem{
			{ProductID: "p1", ProductTitle: "Steak", Quantity: 2, Price: 10.00, Subtotal: 20.00},
			{ProductID: "p2", ProductTitle: "Juice", Quantity: 1, Price: 5.50, Subtotal: 5.50},
		},
		"total_amount": 25.50,
		"notes":        "no ice",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body["success"])

	require.Len(t, f.insertedOrders, 1)
	payload := f.insertedOrders[0]
	title, _ := payload["title"].(string)
	require.True(t, strings.HasPrefix(title, "Order #"))
	assert.Len(t, strings.TrimPrefix(title, "Order #"), 6)

	meta := payload["metadata"].(map[string]interface{})
	assert.Equal(t, "25.50", meta["total_amount"])
	assert.Equal(t, models.StatusPreparing, meta["status"])
	assert.Equal(t, models.PaymentCash, meta["payment_method"]) // defaulted
	assert.Equal(t, "4", meta["table_number"])
	assert.Equal(t, "no ice", meta["notes"])

	items, err := models.ParseOrderLineItems(meta["items"].(string))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCreateOrder_StoreFailureKeepsNothing(t *testing.T) {
	f := newStore()
	f.failInsert = true
	router := setup(t, f)

	recorder, _ := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"items":        []models.OrderLineItem{{ProductID: "p1", Quantity: 1}},
		"total_amount": 5,
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCartFlow(t *testing.T) {
	f := newStore()
	f.addProduct("p1", "Steak", "10.00", nil, "")
	f.addProduct("p2", "Juice", "5.50", nil, "")
	router := setup(t, f)

	_, created := doJSON(t, router, http.MethodPost, "/carts", nil)
	cartID, _ := created["cart_id"].(string)
	require.NotEmpty(t, cartID)

	for _, productID := range []string{"p1", "p1", "p2"} {
		recorder, _ := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/items", map[string]string{"product_id": productID})
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder, body := doJSON(t, router, http.MethodGet, "/carts/"+cartID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.InDelta(t, 25.50, body["total"].(float64), 1e-9)

	recorder, body = doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/submit", map[string]string{
		"table_number":   "7",
		"payment_method": models.PaymentCheck,
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body["success"])

	require.Len(t, f.insertedOrders, 1)
	meta := f.insertedOrders[0]["metadata"].(map[string]interface{})
	assert.Equal(t, "25.50", meta["total_amount"])
	assert.Equal(t, models.PaymentCheck, meta["payment_method"])

	// the session is destroyed after a successful submission
	recorder, _ = doJSON(t, router, http.MethodGet, "/carts/"+cartID, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCartSubmit_EmptyCartRejected(t *testing.T) {
	f := newStore()
	router := setup(t, f)

	_, created := doJSON(t, router, http.MethodPost, "/carts", nil)
	cartID := created["cart_id"].(string)

	recorder, _ := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/submit", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, f.insertedOrders)
}

func TestCartSubmit_FailureKeepsCartForRetry(t *testing.T) {
	f := newStore()
	f.addProduct("p1", "Steak", "10.00", nil, "")
	router := setup(t, f)

	_, created := doJSON(t, router, http.MethodPost, "/carts", nil)
	cartID := created["cart_id"].(string)
	doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/items", map[string]string{"product_id": "p1"})

	f.failInsert = true
	recorder, _ := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/submit", map[string]string{})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	// cart survived, retry succeeds
	f.failInsert = false
	recorder, _ = doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/submit", map[string]string{})
	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, f.insertedOrders, 1)
}

func TestAddCartItem_UnavailableProductRejected(t *testing.T) {
	f := newStore()
	unavailable := false
	f.addProduct("p1", "Sold out dish", "8.00", &unavailable, "")
	router := setup(t, f)

	_, created := doJSON(t, router, http.MethodPost, "/carts", nil)
	cartID := created["cart_id"].(string)

	recorder, _ := doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/items", map[string]string{"product_id": "p1"})
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestUpdateCartItem_ZeroQuantityRemoves(t *testing.T) {
	f := newStore()
	f.addProduct("p1", "Steak", "10.00", nil, "")
	router := setup(t, f)

	_, created := doJSON(t, router, http.MethodPost, "/carts", nil)
	cartID := created["cart_id"].(string)
	doJSON(t, router, http.MethodPost, "/carts/"+cartID+"/items", map[string]string{"product_id": "p1"})

	recorder, body := doJSON(t, router, http.MethodPatch, "/carts/"+cartID+"/items/p1", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, body["items"])
	assert.Equal(t, 0.0, body["total"].(float64))
}

func TestGetProducts_CategoryFilterAndCounts(t *testing.T) {
	f := newStore()
	f.addProduct("p1", "Steak", "10.00", nil, "mains")
	f.addProduct("p2", "Soup", "4.00", nil, "starters")
	f.addProduct("p3", "Salad", "6.00", nil, "starters")
	router := setup(t, f)

	recorder, body := doJSON(t, router, http.MethodGet, "/products?category=starters", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, body["products"], 2)

	counts := body["category_counts"].(map[string]interface{})
	assert.Equal(t, 2.0, counts["starters"])
	assert.Equal(t, 1.0, counts["mains"])
}

func TestGetOrders_StatusFilterAndSearch(t *testing.T) {
	f := newStore()
	f.objectsByType["orders"] = []map[string]interface{}{
		{"id": "o1", "title": "Order #111111", "created_at": "2024-03-01T10:00:00Z",
			"metadata": map[string]interface{}{"status": models.StatusPaid, "table_number": "4"}},
		{"id": "o2", "title": "Order #222222", "created_at": "2024-03-02T10:00:00Z",
			"metadata": map[string]interface{}{"table_number": "9"}},
	}
	router := setup(t, f)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders?status=Paid", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	// absent status reads as Preparing for filtering
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders?status=Preparing", nil))
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders?q=111", nil))
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestGetOrders_StoreNotFoundIsEmptyList(t *testing.T) {
	router := setup(t, newStore())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", strings.TrimSpace(recorder.Body.String()))
}

func TestGetOrder_MalformedItemsReported(t *testing.T) {
	f := newStore()
	f.objectsByID["o1"] = map[string]interface{}{
		"id": "o1", "title": "Order #111111",
		"metadata": map[string]interface{}{"items": "{broken", "total_amount": "12.00"},
	}
	router := setup(t, f)

	recorder, body := doJSON(t, router, http.MethodGet, "/orders/o1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, body["items"])
	assert.NotEmpty(t, body["items_error"])
}

func TestGetStatistics(t *testing.T) {
	f := newStore()
	f.objectsByType["orders"] = []map[string]interface{}{
		{"id": "o1", "title": "Order #1", "created_at": "2024-01-01T10:00:00Z",
			"metadata": map[string]interface{}{"total_amount": "10.00", "order_date": nowRFC3339(-1)}},
		{"id": "o2", "title": "Order #2", "created_at": "2024-01-01T10:00:00Z",
			"metadata": map[string]interface{}{"total_amount": "20.00", "order_date": nowRFC3339(-2)}},
		{"id": "o3", "title": "Order #3", "created_at": "2024-01-01T10:00:00Z",
			"metadata": map[string]interface{}{"total_amount": "30.00", "order_date": nowRFC3339(-3)}},
	}
	router := setup(t, f)

	recorder, body := doJSON(t, router, http.MethodGet, "/statistics?period=month", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "month", body["period"])

	result := body["stats"].(map[string]interface{})
	assert.Equal(t, 3.0, result["order_count"])
	assert.InDelta(t, 60.0, result["total_revenue"].(float64), 1e-9)
	assert.InDelta(t, 20.0, result["average_order"].(float64), 1e-9)

	recorder, _ = doJSON(t, router, http.MethodGet, "/statistics?period=decade", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetDashboard(t *testing.T) {
	f := newStore()
	f.addProduct("p1", "Steak", "10.00", nil, "")
	f.objectsByType["tables"] = []map[string]interface{}{
		{"id": "t1", "title": "Table 1", "metadata": map[string]interface{}{"status": models.TableOccupied}},
		{"id": "t2", "title": "Table 2", "metadata": map[string]interface{}{}},
	}
	f.objectsByType["orders"] = []map[string]interface{}{
		{"id": "o1", "title": "Order #1", "created_at": "2024-01-01T10:00:00Z",
			"metadata": map[string]interface{}{"total_amount": "15.00", "order_date": nowRFC3339(-1)}},
	}
	router := setup(t, f)

	recorder, body := doJSON(t, router, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1.0, body["today_orders"])
	assert.InDelta(t, 15.0, body["today_revenue"].(float64), 1e-9)
	assert.Equal(t, 1.0, body["product_count"])
	assert.Equal(t, 1.0, body["free_tables"])
}

func TestSignUpAndLogin(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	f := newStore()
	router := setup(t, f)

	signup := map[string]string{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "hunter22",
		"phone":    "555-0101",
		"role":     "WAITER",
	}
	recorder, body := doJSON(t, router, http.MethodPost, "/users/signup", signup)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, body["token"])
	require.Len(t, f.insertedUsers, 1)

	recorder, body = doJSON(t, router, http.MethodPost, "/users/login", map[string]string{
		"email": "ana@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, body["token"])
	assert.Nil(t, body["password"])

	recorder, _ = doJSON(t, router, http.MethodPost, "/users/login", map[string]string{
		"email": "ana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// duplicate email
	recorder, _ = doJSON(t, router, http.MethodPost, "/users/signup", signup)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func nowRFC3339(minutesAgo int) string {
	return time.Now().Add(time.Duration(minutesAgo) * time.Minute).Format(time.RFC3339)
}
