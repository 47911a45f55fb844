package services

import (
	"errors"
	"sync"
	"time"

	"stockroom/internal/domain"
)

var (
	// ErrBusy rejects a second mutation while one is in flight for the same
	// product. At most one in-flight mutation per product is a hard
	// invariant here, not just a disabled button.
	ErrBusy = errors.New("another update for this product is in progress")

	// ErrNotConfirmed rejects a delete that skipped the confirmation step.
	ErrNotConfirmed = errors.New("delete requires confirmation")

	// ErrNoDraft rejects an edit save when the edit modal was never opened.
	ErrNoDraft = errors.New("no edit in progress")
)

// warningTTL is how long an advisory message stays visible before it
// dismisses itself.
const warningTTL = 6 * time.Second

// ItemController owns one product card's transient state: the displayed
// quantity (view state shadowing the canonical record), the edit draft, the
// delete-confirmation and edit-modal flags, the busy flag and the advisory
// warning slot. Controllers are rebuilt wholesale on every list refetch, so
// all of this resets whenever fresh canonical data arrives.
type ItemController struct {
	mu           sync.Mutex
	gw           ProductGateway
	product      domain.Product // canonical, last confirmed by the server
	quantity     int            // displayed; converges to the server's value
	busy         bool
	warning      string
	warningUntil time.Time
	deleteOpen   bool
	editOpen     bool
	draft        domain.Product

	now       func() time.Time
	onRemoved func(id int) // remove from the working set, no refetch
	onEdited  func() error // full list refetch
}

func NewItemController(gw ProductGateway, p domain.Product, onRemoved func(int), onEdited func() error) *ItemController {
	return &ItemController{
		gw:        gw,
		product:   p,
		quantity:  p.Quantity,
		now:       time.Now,
		onRemoved: onRemoved,
		onEdited:  onEdited,
	}
}

func (ic *ItemController) Product() domain.Product {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.product
}

func (ic *ItemController) Quantity() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.quantity
}

func (ic *ItemController) Busy() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.busy
}

// Warning returns the advisory message, or "" once dismissed or expired.
func (ic *ItemController) Warning() string {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.warning == "" || ic.now().After(ic.warningUntil) {
		return ""
	}
	return ic.warning
}

// DismissWarning clears the advisory note without touching the quantity.
func (ic *ItemController) DismissWarning() {
	ic.mu.Lock()
	ic.warning = ""
	ic.mu.Unlock()
}

// begin claims the single in-flight slot.
func (ic *ItemController) begin() error {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.busy {
		return ErrBusy
	}
	ic.busy = true
	return nil
}

func (ic *ItemController) finish() {
	ic.mu.Lock()
	ic.busy = false
	ic.mu.Unlock()
}

// UpdateQuantity sends the requested quantity and converges the displayed
// value on whatever the server stored — the server may clamp or reject, and
// its answer wins. An advisory message on the response becomes the warning.
// On failure the displayed quantity is left as it was.
func (ic *ItemController) UpdateQuantity(requested int) error {
	if err := ic.begin(); err != nil {
		return err
	}
	defer ic.finish()

	res, err := ic.gw.PatchQuantity(ic.Product().ID, requested)
	if err != nil {
		return err
	}

	ic.mu.Lock()
	ic.quantity = res.Quantity
	ic.product.Quantity = res.Quantity
	if res.Message != "" {
		ic.warning = res.Message
		ic.warningUntil = ic.now().Add(warningTTL)
	}
	ic.mu.Unlock()
	return nil
}

func (ic *ItemController) Increment() error {
	return ic.UpdateQuantity(ic.Quantity() + 1)
}

// Decrement is a no-op at zero: no request is issued and the quantity stays
// put. The affordance is disabled in the view via CanDecrement as well.
func (ic *ItemController) Decrement() error {
	q := ic.Quantity()
	if q <= 0 {
		return nil
	}
	return ic.UpdateQuantity(q - 1)
}

func (ic *ItemController) CanDecrement() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.quantity > 0 && !ic.busy
}

// --- delete ---

func (ic *ItemController) OpenDeleteConfirm() {
	ic.mu.Lock()
	ic.deleteOpen = true
	ic.mu.Unlock()
}

func (ic *ItemController) CancelDelete() {
	ic.mu.Lock()
	ic.deleteOpen = false
	ic.mu.Unlock()
}

func (ic *ItemController) DeleteConfirmOpen() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.deleteOpen
}

// ConfirmDelete deletes the product after an explicit confirmation. On
// success the dialog closes and the owning collection drops the product
// locally — the record is gone server-side, no refetch needed. On failure
// the dialog stays open and the item stays in place.
func (ic *ItemController) ConfirmDelete() error {
	ic.mu.Lock()
	if !ic.deleteOpen {
		ic.mu.Unlock()
		return ErrNotConfirmed
	}
	ic.mu.Unlock()

	if err := ic.begin(); err != nil {
		return err
	}
	defer ic.finish()

	id := ic.Product().ID
	if err := ic.gw.Delete(id); err != nil {
		return err
	}

	ic.mu.Lock()
	ic.deleteOpen = false
	ic.mu.Unlock()
	if ic.onRemoved != nil {
		ic.onRemoved(id)
	}
	return nil
}

// --- edit ---

// OpenEdit resets the draft to the current canonical record every time, so
// an abandoned edit never leaks into the next session.
func (ic *ItemController) OpenEdit() {
	ic.mu.Lock()
	ic.draft = ic.product
	ic.editOpen = true
	ic.mu.Unlock()
}

func (ic *ItemController) CancelEdit() {
	ic.mu.Lock()
	ic.editOpen = false
	ic.mu.Unlock()
}

func (ic *ItemController) EditOpen() bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.editOpen
}

func (ic *ItemController) Draft() domain.Product {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.draft
}

// SetDraft replaces the editable fields of the draft. Identity fields are
// pinned to the canonical record.
func (ic *ItemController) SetDraft(d domain.Product) {
	ic.mu.Lock()
	d.ID = ic.product.ID
	d.UserID = ic.product.UserID
	ic.draft = d
	ic.mu.Unlock()
}

// SaveEdit sends the full record. On success the modal closes and the
// owning collection refetches the whole list: the edit may have moved the
// product to another category, and a refetch is the simplest correct way to
// re-derive the groups. On failure the modal stays open with the draft. A
// refetch failure is not an edit failure — the update already landed, and
// the list's error flag reports the staleness.
func (ic *ItemController) SaveEdit() error {
	ic.mu.Lock()
	if !ic.editOpen {
		ic.mu.Unlock()
		return ErrNoDraft
	}
	draft := ic.draft
	ic.mu.Unlock()

	if err := ic.begin(); err != nil {
		return err
	}
	defer ic.finish()

	if _, err := ic.gw.Update(draft); err != nil {
		return err
	}

	ic.mu.Lock()
	ic.editOpen = false
	ic.mu.Unlock()
	if ic.onEdited != nil {
		_ = ic.onEdited()
	}
	return nil
}
