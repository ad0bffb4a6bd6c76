package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/models"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func validCheckoutBody() map[string]interface{} {
	return map[string]interface{}{
		"customerName": "June Carter",
		"email":        "june@example.com",
		"number":       "555-0102",
		"address":      "12 Ring Road",
		"cart": []map[string]interface{}{
			{"product": "Linen Tote", "size": "M", "quantity": 2},
		},
	}
}

func TestCheckout(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(body map[string]interface{})
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Successful checkout",
			mutate:         func(body map[string]interface{}) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing customer name",
			mutate:         func(body map[string]interface{}) { delete(body, "customerName") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Missing email",
			mutate:         func(body map[string]interface{}) { delete(body, "email") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Missing phone number",
			mutate:         func(body map[string]interface{}) { delete(body, "number") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Missing address",
			mutate:         func(body map[string]interface{}) { delete(body, "address") },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Empty cart",
			mutate:         func(body map[string]interface{}) { body["cart"] = []map[string]interface{}{} },
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Zero quantity item",
			mutate: func(body map[string]interface{}) {
				body["cart"] = []map[string]interface{}{
					{"product": "Linen Tote", "size": "M", "quantity": 0},
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupOrderTestDB(t)
			config.SetDB(db)

			router := setupTestRouter()
			router.POST("/checkout", Checkout)

			requestBody := validCheckoutBody()
			tt.mutate(requestBody)

			body, _ := json.Marshal(requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			var orderCount int64
			db.Model(&models.Order{}).Count(&orderCount)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])

				// Validation failures create no orders
				assert.Equal(t, int64(0), orderCount)
			} else {
				assert.True(t, response["success"].(bool))
				assert.Equal(t, "Checkout successful! Your order has been received.", response["message"])
				assert.Equal(t, int64(1), orderCount)

				var order models.Order
				require.NoError(t, db.First(&order).Error)
				assert.Equal(t, "June Carter", order.CustomerName)
				assert.Equal(t, "555-0102", order.PhoneNumber)
				assert.Equal(t, models.OrderStatusPending, order.Status)
				assert.Len(t, order.Items, 1)
				assert.Equal(t, "Linen Tote", order.Items[0].Product)
				assert.WithinDuration(t, time.Now(), order.CreatedAt, 5*time.Second)
			}
		})
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)

	// Insert with explicit creation times out of order
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"oldest", "middle", "newest"} {
		order := models.Order{
			CustomerName: name,
			Email:        name + "@example.com",
			PhoneNumber:  "555-0100",
			Address:      "1 Test St",
			Items:        []models.OrderItem{{Product: "Tote", Size: "M", Quantity: 1}},
			Status:       models.OrderStatusPending,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&order).Error)
	}

	router := setupTestRouter()
	router.GET("/admin/orders", ListOrders)

	req, _ := http.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool           `json:"success"`
		Data    []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 3)
	assert.Equal(t, "newest", response.Data[0].CustomerName)
	assert.Equal(t, "middle", response.Data[1].CustomerName)
	assert.Equal(t, "oldest", response.Data[2].CustomerName)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)

	order := models.Order{
		CustomerName: "June Carter",
		Email:        "june@example.com",
		PhoneNumber:  "555-0102",
		Address:      "12 Ring Road",
		Items:        []models.OrderItem{{Product: "Linen Tote", Size: "M", Quantity: 2}},
		Status:       models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	tests := []struct {
		name           string
		orderID        string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Mark completed",
			orderID:        fmt.Sprintf("%d", order.ID),
			requestBody:    map[string]interface{}{"status": "Completed"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Back to pending",
			orderID:        fmt.Sprintf("%d", order.ID),
			requestBody:    map[string]interface{}{"status": "Pending"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Unknown status rejected",
			orderID:        fmt.Sprintf("%d", order.ID),
			requestBody:    map[string]interface{}{"status": "Shipped"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Missing status rejected",
			orderID:        fmt.Sprintf("%d", order.ID),
			requestBody:    map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Unknown order id",
			orderID:        "99999",
			requestBody:    map[string]interface{}{"status": "Completed"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.PATCH("/admin/orders/:id", UpdateOrderStatus)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPatch, "/admin/orders/"+tt.orderID, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			} else {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, tt.requestBody["status"], data["status"])
			}
		})
	}
}

func TestUpdateOrderStatus_OnlyStatusChanges(t *testing.T) {
	db := setupOrderTestDB(t)
	config.SetDB(db)

	order := models.Order{
		CustomerName: "June Carter",
		Email:        "june@example.com",
		PhoneNumber:  "555-0102",
		Address:      "12 Ring Road",
		Items:        []models.OrderItem{{Product: "Linen Tote", Size: "M", Quantity: 2}},
		Status:       models.OrderStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	var before models.Order
	require.NoError(t, db.First(&before, order.ID).Error)

	router := setupTestRouter()
	router.PATCH("/admin/orders/:id", UpdateOrderStatus)

	body, _ := json.Marshal(map[string]string{"status": "Completed"})
	req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/orders/%d", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Order
	require.NoError(t, db.First(&after, order.ID).Error)

	assert.Equal(t, models.OrderStatusCompleted, after.Status)
	assert.Equal(t, before.CustomerName, after.CustomerName)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.PhoneNumber, after.PhoneNumber)
	assert.Equal(t, before.Address, after.Address)
	assert.Equal(t, before.Items, after.Items)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}
