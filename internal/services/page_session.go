package services

import (
	"errors"
	"sync"

	"stockroom/internal/domain"
)

// ErrNoItem means an action referenced a product that is not in the current
// working set (deleted, or gone after a refetch).
var ErrNoItem = errors.New("product not in the current view")

// PageSession is the page orchestrator: it resolves the user from the email
// query value, drives the product query and the category store, keeps one
// ItemController per rendered product and owns the two creation modals. It
// is the only place that replaces the shared collections; item controllers
// request replacement through callbacks.
type PageSession struct {
	mu  sync.Mutex
	gws Gateways

	email       string
	user        *domain.User
	userLoading bool

	query *ProductQuery
	store *CategoryStore
	items map[int]*ItemController

	productModalOpen  bool
	categoryModalOpen bool
	productDraft      domain.Product
	categoryDraft     string

	notice string // one-shot failure notice, cleared on read
}

func NewPageSession(gws Gateways, email string) *PageSession {
	return &PageSession{
		gws:   gws,
		email: email,
		query: NewProductQuery(gws.Products),
		store: NewCategoryStore(gws.Categories),
		items: map[int]*ItemController{},
	}
}

// Start resolves the user and loads categories and products. A user that
// does not resolve (empty or unknown email) leaves the key at zero: the
// product query stays disabled and the page renders empty without erroring.
// A category-load failure degrades to an empty dropdown; it is returned so
// the caller can log it, never surfaced as a blocking error.
func (s *PageSession) Start() error {
	var catErr error

	s.mu.Lock()
	email := s.email
	s.userLoading = email != ""
	s.mu.Unlock()

	if email != "" {
		u, err := s.gws.Users.ByEmail(email)
		s.mu.Lock()
		if err == nil {
			s.user = &u
		}
		s.userLoading = false
		s.productDraft.UserID = s.userID()
		s.mu.Unlock()
	}

	if err := s.store.Load(); err != nil {
		catErr = err
	}

	_ = s.query.SetKey(s.UserID())
	s.rebuildItems()
	return catErr
}

// userID expects s.mu held.
func (s *PageSession) userID() int {
	if s.user == nil {
		return 0
	}
	return s.user.ID
}

func (s *PageSession) UserID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID()
}

func (s *PageSession) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *PageSession) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Loading gates rendering: while the user is being resolved or the product
// list is in flight, only a loading indicator is shown.
func (s *PageSession) Loading() bool {
	s.mu.Lock()
	ul := s.userLoading
	s.mu.Unlock()
	return ul || s.query.Loading()
}

func (s *PageSession) ProductsErrored() bool { return s.query.Errored() }

func (s *PageSession) Categories() []domain.Category { return s.store.Categories() }

// Groups derives the category-ordered view from the cached list. Derived,
// never stored.
func (s *PageSession) Groups() []domain.Group {
	data, _ := s.query.Data()
	return GroupByCategory(data)
}

// Item returns the controller for a product currently in the view.
func (s *PageSession) Item(id int) (*ItemController, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ic, ok := s.items[id]
	if !ok {
		return nil, ErrNoItem
	}
	return ic, nil
}

// rebuildItems replaces every controller with a fresh one over the current
// canonical data. Transient per-item state deliberately does not survive a
// refetch.
func (s *PageSession) rebuildItems() {
	data, _ := s.query.Data()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[int]*ItemController, len(data))
	for _, p := range data {
		s.items[p.ID] = NewItemController(s.gws.Products, p, s.removeLocal, s.RefetchProducts)
	}
}

// removeLocal drops a deleted product from the working set without a
// refetch.
func (s *PageSession) removeLocal(id int) {
	s.query.Remove(id)
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// RefetchProducts re-fetches the whole list and rebuilds the controllers.
// Every mutation that changes set membership or fields funnels through here.
func (s *PageSession) RefetchProducts() error {
	err := s.query.Refetch()
	if err != nil {
		return err
	}
	s.rebuildItems()
	return nil
}

// --- notices ---

// SetNotice records a blocking failure notice for the next render.
func (s *PageSession) SetNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

// TakeNotice returns the pending notice and clears it.
func (s *PageSession) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

// --- add product modal ---

func (s *PageSession) OpenProductModal() {
	s.mu.Lock()
	s.productModalOpen = true
	s.mu.Unlock()
}

// CancelProductModal closes the modal and resets the draft to blank
// defaults; the draft's user id keeps tracking the resolved user.
func (s *PageSession) CancelProductModal() {
	s.mu.Lock()
	s.productModalOpen = false
	s.productDraft = domain.Product{UserID: s.userID()}
	s.mu.Unlock()
}

func (s *PageSession) ProductModalOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productModalOpen
}

func (s *PageSession) ProductDraft() domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productDraft
}

// SetProductDraft replaces the draft's editable fields. The user id is not
// form-controlled; it always tracks the resolved user.
func (s *PageSession) SetProductDraft(d domain.Product) {
	s.mu.Lock()
	d.ID = 0
	d.UserID = s.userID()
	s.productDraft = d
	s.mu.Unlock()
}

// SelectDraftCategory handles the category selector inside the product
// modal. The sentinel "add_new" opens the category-creation modal instead
// of picking a category.
func (s *PageSession) SelectDraftCategory(value string, categoryID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == CategorySentinel {
		s.categoryModalOpen = true
		return
	}
	s.productDraft.CategoryID = categoryID
}

// CategorySentinel is the selector option that opens the category modal.
const CategorySentinel = "add_new"

// AddProduct submits the draft. Creation failure keeps the modal and draft
// so the user can retry. Once the create has landed the modal closes and
// the draft resets no matter what: a failed refresh afterwards only leaves
// the list stale, which the query's error flag reports, and re-submitting
// the draft would duplicate the record.
func (s *PageSession) AddProduct() error {
	s.mu.Lock()
	draft := s.productDraft
	s.mu.Unlock()

	if _, err := s.gws.Products.Create(draft); err != nil {
		return err
	}
	s.CancelProductModal()
	_ = s.RefetchProducts()
	return nil
}

// --- add category modal ---

func (s *PageSession) OpenCategoryModal() {
	s.mu.Lock()
	s.categoryModalOpen = true
	s.mu.Unlock()
}

func (s *PageSession) CancelCategoryModal() {
	s.mu.Lock()
	s.categoryModalOpen = false
	s.categoryDraft = ""
	s.mu.Unlock()
}

func (s *PageSession) CategoryModalOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryModalOpen
}

func (s *PageSession) CategoryDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryDraft
}

func (s *PageSession) SetCategoryDraft(name string) {
	s.mu.Lock()
	s.categoryDraft = name
	s.mu.Unlock()
}

// AddCategory creates the category and appends it to the store's list (no
// refetch). Success closes the modal and resets the name field; failure
// keeps both.
func (s *PageSession) AddCategory() (domain.Category, error) {
	s.mu.Lock()
	name := s.categoryDraft
	s.mu.Unlock()

	created, err := s.store.Add(name)
	if err != nil {
		return domain.Category{}, err
	}
	s.CancelCategoryModal()
	return created, nil
}
