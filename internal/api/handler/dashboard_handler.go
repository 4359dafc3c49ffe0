package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/form"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/dashboard"
	"github.com/tokobarang/inventory-dashboard/internal/view"
)

// DashboardHandler drives one dashboard.Controller per request: mount, act,
// render, unmount.
type DashboardHandler struct {
	products ports.ProductResource
	log      zerolog.Logger
}

func NewDashboardHandler(products ports.ProductResource, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{products: products, log: log}
}

type dashboardPage struct {
	User        *domain.User
	RoleBadge   view.BadgeVariant
	Greeting    string
	Loading     bool
	ShowActions bool
	Rows        []view.Row
	Empty       *view.EmptyState
	Form        *formView
}

type formView struct {
	Title     string
	Submit    string
	Action    string
	Name      string
	UnitPrice string
	Quantity  string
	Errors    map[string]string
}

type confirmDeletePage struct {
	Message string
	Product domain.Product
}

// Show renders the product table.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      html
// @Success      200
// @Success      303
// @Router       /dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}
	return h.render(c, http.StatusOK, ctrl)
}

// New opens an empty product form.
//
// @Summary      Add product form
// @Tags         dashboard
// @Produce      html
// @Success      200
// @Failure      403
// @Router       /dashboard/products/new [get]
func (h *DashboardHandler) New(c echo.Context) error {
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	ctrl.OpenCreate()
	return h.render(c, http.StatusOK, ctrl)
}

// Edit opens the product form pre-populated with the product's values.
//
// @Summary      Edit product form
// @Tags         dashboard
// @Produce      html
// @Param        id   path  int  true  "Product ID"
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /dashboard/products/{id}/edit [get]
func (h *DashboardHandler) Edit(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	if !ctrl.Table(c.Request().Context(), nil).Edit(id) {
		return h.missing(c, ctrl)
	}
	return h.render(c, http.StatusOK, ctrl)
}

// Create validates the submitted form and creates the product.
//
// @Summary      Create product
// @Tags         dashboard
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Success      303
// @Failure      403
// @Failure      422
// @Failure      502
// @Router       /dashboard/products [post]
func (h *DashboardHandler) Create(c echo.Context) error {
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	ctrl.OpenCreate()
	return h.save(c, ctrl)
}

// Update validates the submitted form and replaces the product's fields.
//
// @Summary      Update product
// @Tags         dashboard
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id   path  int  true  "Product ID"
// @Success      303
// @Failure      403
// @Failure      404
// @Failure      422
// @Failure      502
// @Router       /dashboard/products/{id} [post]
func (h *DashboardHandler) Update(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	p, ok := ctrl.Find(id)
	if !ok {
		return h.missing(c, ctrl)
	}
	ctrl.OpenEdit(p)
	return h.save(c, ctrl)
}

// ConfirmDelete asks before deleting.
//
// @Summary      Delete confirmation
// @Tags         dashboard
// @Produce      html
// @Param        id   path  int  true  "Product ID"
// @Success      200
// @Failure      403
// @Failure      404
// @Router       /dashboard/products/{id}/delete [get]
func (h *DashboardHandler) ConfirmDelete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	p, ok := ctrl.Find(id)
	if !ok {
		return h.missing(c, ctrl)
	}
	return c.Render(http.StatusOK, tmplConfirmDelete, confirmDeletePage{Message: view.DeleteConfirmation, Product: p})
}

// Delete removes the product when the request carries confirm=yes.
//
// @Summary      Delete product
// @Tags         dashboard
// @Accept       x-www-form-urlencoded
// @Param        id       path      int     true  "Product ID"
// @Param        confirm  formData  string  true  "yes to confirm"
// @Success      303
// @Failure      403
// @Failure      404
// @Router       /dashboard/products/{id}/delete [post]
func (h *DashboardHandler) Delete(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	ctrl, nav, err := h.mount(c)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()
	if nav.path != "" {
		return c.Redirect(http.StatusSeeOther, nav.path)
	}

	if _, ok := ctrl.Find(id); !ok {
		return h.missing(c, ctrl)
	}
	confirm := func(string) bool { return c.FormValue("confirm") == "yes" }
	ctrl.Table(c.Request().Context(), confirm).Delete(id)
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         session
// @Success      303
// @Router       /logout [post]
func (h *DashboardHandler) Logout(c echo.Context) error {
	store, err := sessionStore(c)
	if err != nil {
		return err
	}
	nav := &redirectRecorder{}
	dashboard.NewController(store, h.products, nav, h.requestLog(c)).Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, nav.path)
}

func (h *DashboardHandler) mount(c echo.Context) (*dashboard.Controller, *redirectRecorder, error) {
	store, err := sessionStore(c)
	if err != nil {
		return nil, nil, err
	}
	nav := &redirectRecorder{}
	ctrl := dashboard.NewController(store, h.products, nav, h.requestLog(c))
	ctrl.Mount(c.Request().Context())
	return ctrl, nav, nil
}

func (h *DashboardHandler) save(c echo.Context, ctrl *dashboard.Controller) error {
	raw := map[string]string{
		form.FieldName:      c.FormValue(form.FieldName),
		form.FieldUnitPrice: c.FormValue(form.FieldUnitPrice),
		form.FieldQuantity:  c.FormValue(form.FieldQuantity),
	}
	if ctrl.Save(c.Request().Context(), raw) {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}

	if ctrl.Form().HasErrors() {
		return h.render(c, http.StatusUnprocessableEntity, ctrl)
	}
	// The remote failure is only logged; the form stays open as submitted.
	return h.render(c, http.StatusBadGateway, ctrl)
}

// missing answers a lookup miss. When the product list could not be fetched
// the miss is not trusted and the request falls back to the dashboard.
func (h *DashboardHandler) missing(c echo.Context, ctrl *dashboard.Controller) error {
	if ctrl.LoadFailed() {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return domain.ErrProductNotFound
}

func (h *DashboardHandler) render(c echo.Context, status int, ctrl *dashboard.Controller) error {
	user := ctrl.User()
	if user == nil {
		return c.Redirect(http.StatusSeeOther, dashboard.SignInPath)
	}

	table := ctrl.Table(c.Request().Context(), nil)
	page := dashboardPage{
		User:        user,
		RoleBadge:   view.BadgeSecondary,
		Greeting:    ctrl.Greeting(),
		Loading:     ctrl.IsLoading(),
		ShowActions: table.ShowActions(),
		Rows:        table.Rows(),
		Empty:       table.Empty(),
	}
	if user.IsAdmin() {
		page.RoleBadge = view.BadgeDefault
	}
	if ctrl.FormOpen() {
		page.Form = newFormView(ctrl.Form(), ctrl.EditTarget())
	}
	return c.Render(status, tmplDashboard, page)
}

func newFormView(f *form.ProductForm, target *domain.Product) *formView {
	v := &formView{
		Title:     "Add New Product",
		Submit:    "Add Product",
		Action:    "/dashboard/products",
		Name:      f.Name,
		UnitPrice: f.UnitPrice,
		Quantity:  f.Quantity,
		Errors:    make(map[string]string),
	}
	if target != nil {
		v.Title = "Edit Product"
		v.Submit = "Update Product"
		v.Action = fmt.Sprintf("/dashboard/products/%d", target.ID)
	}
	for field, e := range f.Errors() {
		v.Errors[field] = e.Message
	}
	return v
}

func (h *DashboardHandler) requestLog(c echo.Context) zerolog.Logger {
	return h.log.With().
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Logger()
}
