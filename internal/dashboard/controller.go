// Package dashboard drives one dashboard instance: it checks the session,
// loads products, and routes create, edit and delete actions to the remote
// resource, refetching the list after every write.
package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/form"
	"github.com/tokobarang/inventory-dashboard/internal/core/ports"
	"github.com/tokobarang/inventory-dashboard/internal/view"
)

// SignInPath is where unauthenticated visitors are sent.
const SignInPath = "/signin"

const (
	greetingAdmin = "Anda memiliki akses penuh untuk mengelola produk dan melihat analitik."
	greetingUser  = "Anda dapat melihat informasi produk dan status inventaris."
)

// State is the lifecycle of a mounted dashboard.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthChecking
	StateAuthenticatedLoading
	StateAuthenticatedReady
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthChecking:
		return "auth_checking"
	case StateAuthenticatedLoading:
		return "authenticated_loading"
	case StateAuthenticatedReady:
		return "authenticated_ready"
	default:
		return "unknown"
	}
}

// Session is the part of the session store the dashboard relies on.
type Session interface {
	Initialize(ctx context.Context) error
	CurrentUser() *domain.User
	IsLoading() bool
	Logout(ctx context.Context)
}

// Navigator performs the redirect side effect.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

// Controller is one dashboard instance. The product collection it holds is a
// transient copy; every write is followed by a full refetch.
type Controller struct {
	session  Session
	products ports.ProductResource
	nav      Navigator
	log      zerolog.Logger

	mu         sync.Mutex
	items      []domain.Product
	loading    bool
	loadFailed bool
	form       *form.ProductForm
	formOpen   bool
	editTarget *domain.Product
	unmounted  bool
}

func NewController(session Session, products ports.ProductResource, nav Navigator, log zerolog.Logger) *Controller {
	return &Controller{
		session:  session,
		products: products,
		nav:      nav,
		log:      log,
		items:    []domain.Product{},
		loading:  true,
		form:     form.NewProductForm(),
	}
}

// Mount checks the session and, independently, fetches products. When the
// check ends without a user the visitor is redirected to the sign-in page.
func (c *Controller) Mount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := c.session.Initialize(ctx); err != nil {
			c.log.Warn().Err(err).Msg("session check interrupted")
			return
		}
		if c.isUnmounted() {
			return
		}
		if !c.session.IsLoading() && c.session.CurrentUser() == nil {
			c.nav.Redirect(SignInPath)
		}
	}()

	go func() {
		defer wg.Done()
		c.LoadProducts(ctx)
	}()

	wg.Wait()
}

// Unmount tears the instance down; results arriving afterwards are ignored.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
}

// LoadProducts replaces the held collection with a fresh list. On failure the
// previous collection is kept and the error is only logged.
func (c *Controller) LoadProducts(ctx context.Context) {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	items, err := c.products.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unmounted {
		return
	}
	c.loadFailed = err != nil
	if err != nil {
		c.log.Error().Err(err).Msg("failed to load products")
	} else {
		c.items = items
	}
	c.loading = false
}

// OpenCreate opens a fresh form with no edit target.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editTarget = nil
	c.form = form.NewProductForm()
	c.formOpen = true
}

// OpenEdit opens the form pre-populated from p and makes p the edit target.
func (c *Controller) OpenEdit(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editTarget = &p
	c.form = form.EditProductForm(p)
	c.formOpen = true
}

// CloseForm closes the form and clears the edit target.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
	c.editTarget = nil
}

// SetField edits one form field, clearing its error.
func (c *Controller) SetField(field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Set(field, value)
}

// Save applies raw field values to the open form and validates it. When it
// passes the product is created or updated, the list is refetched and the form
// closes. It reports whether the write happened; on failure the form stays open.
func (c *Controller) Save(ctx context.Context, raw map[string]string) bool {
	c.mu.Lock()
	if !c.formOpen || c.unmounted {
		c.mu.Unlock()
		return false
	}
	for field, value := range raw {
		c.form.Set(field, value)
	}
	in, ok := c.form.Validate()
	var target *domain.Product
	if c.editTarget != nil {
		t := *c.editTarget
		target = &t
	}
	c.mu.Unlock()

	if !ok {
		return false
	}

	var err error
	if target != nil {
		_, err = c.products.UpdateProduct(ctx, target.ID, in)
	} else {
		_, err = c.products.CreateProduct(ctx, in)
	}
	if err != nil {
		c.log.Error().Err(err).Msg("failed to save product")
		return false
	}

	c.LoadProducts(ctx)
	if c.isUnmounted() {
		return true
	}
	c.CloseForm()
	return true
}

// Delete asks confirm and, on an affirmative answer, deletes id and refetches
// the list. It reports whether the delete happened.
func (c *Controller) Delete(ctx context.Context, id int64, confirm view.Confirmer) bool {
	if confirm == nil || !confirm(view.DeleteConfirmation) {
		return false
	}
	return c.deleteConfirmed(ctx, id)
}

func (c *Controller) deleteConfirmed(ctx context.Context, id int64) bool {
	if c.isUnmounted() {
		return false
	}
	if err := c.products.DeleteProduct(ctx, id); err != nil {
		c.log.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false
	}
	c.LoadProducts(ctx)
	return true
}

// Logout ends the session and leaves the dashboard.
func (c *Controller) Logout(ctx context.Context) {
	c.session.Logout(ctx)
	c.nav.Redirect(SignInPath)
}

// Table renders the held products for the session user. Edit opens the form;
// delete goes through confirm first.
func (c *Controller) Table(ctx context.Context, confirm view.Confirmer) *view.ProductTable {
	return view.NewProductTable(
		c.Products(),
		c.IsAdmin(),
		c.OpenEdit,
		func(id int64) { c.deleteConfirmed(ctx, id) },
		confirm,
	)
}

// State reports where the instance is in its lifecycle.
func (c *Controller) State() State {
	if c.session.IsLoading() {
		return StateAuthChecking
	}
	if c.session.CurrentUser() == nil {
		return StateUnauthenticated
	}
	if c.IsLoading() {
		return StateAuthenticatedLoading
	}
	return StateAuthenticatedReady
}

// Products returns a copy of the held collection.
func (c *Controller) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the held product with id.
func (c *Controller) Find(id int64) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// LoadFailed reports whether the latest product fetch failed, leaving the
// collection as it was before.
func (c *Controller) LoadFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadFailed
}

func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Form returns the current form. Callers must not mutate it concurrently with
// the controller.
func (c *Controller) Form() *form.ProductForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) FormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formOpen
}

// EditTarget returns a copy of the product being edited, or nil.
func (c *Controller) EditTarget() *domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editTarget == nil {
		return nil
	}
	p := *c.editTarget
	return &p
}

func (c *Controller) User() *domain.User { return c.session.CurrentUser() }

func (c *Controller) IsAdmin() bool { return c.session.CurrentUser().IsAdmin() }

// Greeting is the role-dependent welcome line.
func (c *Controller) Greeting() string {
	if c.IsAdmin() {
		return greetingAdmin
	}
	return greetingUser
}

func (c *Controller) isUnmounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unmounted
}
