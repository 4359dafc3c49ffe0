package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/core/form"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSession struct {
	mu      sync.Mutex
	user    *domain.User
	loading bool
	err     error

	// restored is the user the session finds on Initialize.
	restored   *domain.User
	logoutSeen bool
}

func (s *stubSession) Initialize(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.user = s.restored
	s.loading = false
	return nil
}

func (s *stubSession) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *stubSession) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *stubSession) Logout(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.logoutSeen = true
}

type stubProducts struct {
	mu        sync.Mutex
	items     []domain.Product
	nextID    int64
	listErr   error
	writeErr  error
	listCalls int
	created   []domain.ProductInput
	updated   map[int64]domain.ProductInput
	deleted   []int64

	// gate, when set, blocks ListProducts until closed.
	gate chan struct{}
}

func (p *stubProducts) ListProducts(context.Context) ([]domain.Product, error) {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	return append([]domain.Product{}, p.items...), nil
}

func (p *stubProducts) CreateProduct(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return nil, p.writeErr
	}
	p.nextID++
	prod := domain.Product{ID: p.nextID, NamaProduk: in.NamaProduk, HargaSatuan: in.HargaSatuan, Quantity: in.Quantity}
	p.items = append(p.items, prod)
	p.created = append(p.created, in)
	return &prod, nil
}

func (p *stubProducts) UpdateProduct(_ context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return nil, p.writeErr
	}
	if p.updated == nil {
		p.updated = map[int64]domain.ProductInput{}
	}
	p.updated[id] = in
	for i := range p.items {
		if p.items[i].ID == id {
			p.items[i] = domain.Product{ID: id, NamaProduk: in.NamaProduk, HargaSatuan: in.HargaSatuan, Quantity: in.Quantity}
			return &p.items[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (p *stubProducts) DeleteProduct(_ context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return p.writeErr
	}
	p.deleted = append(p.deleted, id)
	kept := p.items[:0]
	for _, it := range p.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	p.items = kept
	return nil
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

var (
	admin  = &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin, FullName: "Admin"}
	viewer = &domain.User{ID: 2, Username: "user", Role: domain.RoleUser, FullName: "User"}
)

func seeded() *stubProducts {
	return &stubProducts{nextID: 2, items: []domain.Product{
		{ID: 1, NamaProduk: "Beras", HargaSatuan: 15000, Quantity: 20},
		{ID: 2, NamaProduk: "Gula", HargaSatuan: 14000, Quantity: 5},
	}}
}

func newTestController(user *domain.User, products *stubProducts) (*Controller, *stubSession, *recordingNavigator) {
	session := &stubSession{loading: true, restored: user}
	nav := &recordingNavigator{}
	return NewController(session, products, nav, zerolog.Nop()), session, nav
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMount_AuthenticatedLoadsProducts(t *testing.T) {
	c, _, nav := newTestController(admin, seeded())
	assert.Equal(t, StateAuthChecking, c.State())
	assert.True(t, c.IsLoading())

	c.Mount(context.Background())

	assert.Equal(t, StateAuthenticatedReady, c.State())
	assert.Len(t, c.Products(), 2)
	assert.False(t, c.LoadFailed())
	assert.Empty(t, nav.redirects())
	assert.Equal(t, admin, c.User())
}

func TestMount_NoUserRedirectsToSignIn(t *testing.T) {
	c, _, nav := newTestController(nil, seeded())

	c.Mount(context.Background())

	assert.Equal(t, StateUnauthenticated, c.State())
	assert.Equal(t, []string{SignInPath}, nav.redirects())
}

func TestMount_InterruptedCheckDoesNotRedirect(t *testing.T) {
	c, session, nav := newTestController(nil, seeded())
	session.err = context.Canceled

	c.Mount(context.Background())

	assert.Equal(t, StateAuthChecking, c.State())
	assert.Empty(t, nav.redirects())
}

func TestLoadProducts_FailureKeepsPreviousCollection(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())
	require.Len(t, c.Products(), 2)

	products.listErr = &domain.FetchError{Op: "list_products", Message: "failed to fetch products"}
	c.LoadProducts(context.Background())

	assert.Len(t, c.Products(), 2)
	assert.False(t, c.IsLoading())
	assert.Equal(t, StateAuthenticatedReady, c.State())
}

func TestLoadProducts_FirstFailureLeavesEmptyList(t *testing.T) {
	products := seeded()
	products.listErr = errors.New("down")
	c, _, _ := newTestController(admin, products)

	c.Mount(context.Background())

	assert.NotNil(t, c.Products())
	assert.Empty(t, c.Products())
	assert.False(t, c.IsLoading())
	assert.True(t, c.LoadFailed())
}

func TestSave_CreatesThenRefetchesAndCloses(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())

	c.OpenCreate()
	require.True(t, c.FormOpen())
	assert.Nil(t, c.EditTarget())

	ok := c.Save(context.Background(), map[string]string{
		form.FieldName:      "Kopi",
		form.FieldUnitPrice: "25000",
		form.FieldQuantity:  "3",
	})

	require.True(t, ok)
	assert.False(t, c.FormOpen())
	assert.Equal(t, []domain.ProductInput{{NamaProduk: "Kopi", HargaSatuan: 25000, Quantity: 3}}, products.created)
	assert.Len(t, c.Products(), 3)
	assert.Equal(t, 2, products.listCalls)
}

func TestSave_EditRoutesToUpdate(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())

	target, ok := c.Find(2)
	require.True(t, ok)
	c.OpenEdit(target)
	assert.Equal(t, "Gula", c.Form().Name)
	assert.Equal(t, "14000", c.Form().UnitPrice)
	assert.Equal(t, int64(2), c.EditTarget().ID)

	require.True(t, c.Save(context.Background(), map[string]string{form.FieldQuantity: "50"}))

	assert.Equal(t, domain.ProductInput{NamaProduk: "Gula", HargaSatuan: 14000, Quantity: 50}, products.updated[2])
	assert.Empty(t, products.created)
	assert.Nil(t, c.EditTarget())
	got, _ := c.Find(2)
	assert.Equal(t, 50, got.Quantity)
}

func TestSave_InvalidFormStaysOpenWithoutNetwork(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())
	calls := products.listCalls

	c.OpenCreate()
	ok := c.Save(context.Background(), map[string]string{
		form.FieldName:      "  ",
		form.FieldUnitPrice: "abc",
		form.FieldQuantity:  "1",
	})

	assert.False(t, ok)
	assert.True(t, c.FormOpen())
	assert.True(t, c.Form().HasErrors())
	assert.Empty(t, products.created)
	assert.Equal(t, calls, products.listCalls)
}

func TestSave_RemoteFailureKeepsFormOpen(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())

	c.OpenCreate()
	products.writeErr = &domain.FetchError{Op: "create_product", Message: "failed to create product"}
	ok := c.Save(context.Background(), map[string]string{
		form.FieldName:      "Kopi",
		form.FieldUnitPrice: "1",
		form.FieldQuantity:  "1",
	})

	assert.False(t, ok)
	assert.True(t, c.FormOpen())
	assert.Len(t, c.Products(), 2)
}

func TestSave_ClosedFormIsNoop(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)

	assert.False(t, c.Save(context.Background(), map[string]string{form.FieldName: "x"}))
	assert.Empty(t, products.created)
}

func TestCloseForm_ClearsEditTarget(t *testing.T) {
	c, _, _ := newTestController(admin, seeded())
	c.OpenEdit(domain.Product{ID: 9, NamaProduk: "Teh"})
	c.CloseForm()

	assert.False(t, c.FormOpen())
	assert.Nil(t, c.EditTarget())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())

	var prompt string
	declined := c.Delete(context.Background(), 1, func(msg string) bool {
		prompt = msg
		return false
	})
	assert.False(t, declined)
	assert.Equal(t, "Are you sure you want to delete this product?", prompt)
	assert.Empty(t, products.deleted)

	assert.False(t, c.Delete(context.Background(), 1, nil))

	require.True(t, c.Delete(context.Background(), 1, func(string) bool { return true }))
	assert.Equal(t, []int64{1}, products.deleted)
	assert.Len(t, c.Products(), 1)
}

func TestDelete_FailureKeepsList(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())
	products.writeErr = errors.New("boom")

	assert.False(t, c.Delete(context.Background(), 1, func(string) bool { return true }))
	assert.Len(t, c.Products(), 2)
}

func TestTable_WiresEditAndDelete(t *testing.T) {
	products := seeded()
	c, _, _ := newTestController(admin, products)
	c.Mount(context.Background())

	table := c.Table(context.Background(), func(string) bool { return true })
	require.True(t, table.ShowActions())

	require.True(t, table.Edit(1))
	assert.True(t, c.FormOpen())
	assert.Equal(t, int64(1), c.EditTarget().ID)

	require.True(t, table.Delete(2))
	assert.Equal(t, []int64{2}, products.deleted)
}

func TestTable_NonAdminHasNoActions(t *testing.T) {
	c, _, _ := newTestController(viewer, seeded())
	c.Mount(context.Background())

	assert.False(t, c.Table(context.Background(), nil).ShowActions())
	assert.False(t, c.IsAdmin())
}

func TestLogout_RedirectsToSignIn(t *testing.T) {
	c, session, nav := newTestController(admin, seeded())
	c.Mount(context.Background())

	c.Logout(context.Background())

	assert.True(t, session.logoutSeen)
	assert.Equal(t, []string{SignInPath}, nav.redirects())
	assert.Equal(t, StateUnauthenticated, c.State())
}

func TestUnmount_IgnoresLateResults(t *testing.T) {
	products := seeded()
	products.gate = make(chan struct{})
	c, _, _ := newTestController(admin, products)

	done := make(chan struct{})
	go func() {
		c.LoadProducts(context.Background())
		close(done)
	}()

	c.Unmount()
	close(products.gate)
	<-done

	assert.Empty(t, c.Products())
	assert.True(t, c.IsLoading(), "late result must not touch state")
}

func TestGreeting_ByRole(t *testing.T) {
	a, _, _ := newTestController(admin, seeded())
	a.Mount(context.Background())
	assert.Contains(t, a.Greeting(), "akses penuh")

	u, _, _ := newTestController(viewer, seeded())
	u.Mount(context.Background())
	assert.Contains(t, u.Greeting(), "dapat melihat")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "auth_checking", StateAuthChecking.String())
	assert.Equal(t, "authenticated_ready", StateAuthenticatedReady.String())
}
