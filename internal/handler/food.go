package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/arminveh/cinema-box-office/internal/catalog"
	"github.com/arminveh/cinema-box-office/internal/model"
)

// FoodOrderStore is the persistence surface FoodHandler needs.
type FoodOrderStore interface {
	Create(ctx context.Context, order *model.FoodOrder) error
	ListByUser(ctx context.Context, userID uint64) ([]model.FoodOrder, error)
}

// FoodHandler serves the concession menu and food orders.
type FoodHandler struct {
	Catalog *catalog.Catalog
	Orders  FoodOrderStore
}

func NewFoodHandler(cat *catalog.Catalog, orders FoodOrderStore) *FoodHandler {
	if cat == nil {
		panic("handler: nil catalog")
	}
	return &FoodHandler{Catalog: cat, Orders: orders}
}

// GetMenu handles GET /v1/menu.
func (h *FoodHandler) GetMenu(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Catalog.Menu()})
}

type foodOrderRequest struct {
	Items []struct {
		ItemID   uint64 `json:"item_id"`
		Quantity uint32 `json:"quantity"`
	} `json:"items"`
}

// CreateOrder handles POST /v1/orders. The total is computed server side
// from the menu so a client cannot price its own order.
func (h *FoodHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Orders == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "food ordering unavailable"})
	}

	var req foodOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order must contain at least one item"})
	}

	order := model.FoodOrder{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	for _, it := range req.Items {
		if it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
		menuItem, ok := h.Catalog.MenuItem(it.ItemID)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown menu item"})
		}
		order.Items = append(order.Items, model.FoodOrderItem{
			ItemID:     menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   it.Quantity,
			PriceCents: menuItem.PriceCents,
		})
		order.TotalCents += menuItem.PriceCents * it.Quantity
	}

	if err := h.Orders.Create(c.Request().Context(), &order); err != nil {
		c.Logger().Errorf("create food order: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
	}
	return c.JSON(http.StatusCreated, order)
}

// ListMyOrders handles GET /v1/my-orders.
func (h *FoodHandler) ListMyOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Orders == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "food ordering unavailable"})
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list food orders: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list orders"})
	}
	if orders == nil {
		orders = []model.FoodOrder{}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}
