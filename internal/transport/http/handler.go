package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/asquebay/star-burger-service/internal/model"
	"github.com/asquebay/star-burger-service/internal/repository/postgres"
	"github.com/asquebay/star-burger-service/internal/service"
)

// OrderService определяет интерфейс сервиса заказов со стороны HTTP
// это позволяет хэндлеру не зависеть от конкретной реализации сервиса
type OrderService interface {
	CreateOrder(ctx context.Context, payload model.OrderPayload) (model.Order, error)
	OrderByID(ctx context.Context, id int64) (model.Order, error)
	Dashboard(ctx context.Context) ([]model.DashboardOrder, error)
}

// CatalogService определяет интерфейс сервиса каталога со стороны HTTP
type CatalogService interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	ProductsWithAvailability(ctx context.Context) ([]model.ProductAvailability, error)
}

// Handler обрабатывает HTTP-запросы
type Handler struct {
	orders  OrderService
	catalog CatalogService
	log     *slog.Logger
	mux     *http.ServeMux
}

// NewHandler создает новый экземпляр Handler
func NewHandler(orders OrderService, catalog CatalogService, log *slog.Logger) *Handler {
	h := &Handler{
		orders:  orders,
		catalog: catalog,
		log:     log,
		mux:     http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP делает Handler совместимым с http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes регистрирует все эндпоинты
func (h *Handler) registerRoutes() {
	// приём заказов со стороны витрины
	h.mux.HandleFunc("POST /api/order", h.createOrder)
	h.mux.HandleFunc("GET /api/order/{id}", h.orderByID)

	// лента заказов для менеджера
	h.mux.HandleFunc("GET /api/orders", h.dashboard)

	// каталог для экранов менеджера
	h.mux.HandleFunc("GET /api/products", h.products)
	h.mux.HandleFunc("GET /api/restaurants", h.restaurants)

	// роутинг для статики дашборда (HTML/JS/CSS)
	fileServer := http.FileServer(http.Dir("./web/"))
	h.mux.Handle("/", http.StripPrefix("/", fileServer))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload model.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), payload)
	if err != nil {
		// ошибки валидации отдаём клиенту с деталями по полям
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			h.respondValidationError(w, validationErrs)
			return
		}
		if errors.Is(err, service.ErrProductUnavailable) {
			h.respondError(w, http.StatusBadRequest, "product is not available in any restaurant")
			return
		}
		h.log.Error("failed to create order", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// поля созданного заказа только для чтения: API не даёт их менять
	h.respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) orderByID(w http.ResponseWriter, r *http.Request) {
	// извлекаем id заказа из URL
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "order id must be an integer")
		return
	}

	order, err := h.orders.OrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.log.Error("internal server error", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Dashboard(r.Context())
	if err != nil {
		h.log.Error("failed to build dashboard", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ProductsWithAvailability(r.Context())
	if err != nil {
		h.log.Error("failed to load products", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

func (h *Handler) restaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.catalog.Restaurants(r.Context())
	if err != nil {
		h.log.Error("failed to load restaurants", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, restaurants)
}

// respondValidationError отдаёт 400 с расшифровкой по полям,
// чтобы витрина могла подсветить конкретные ошибки формы
func (h *Handler) respondValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	h.respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "validation failed",
		"details": details,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal JSON response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(response)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
