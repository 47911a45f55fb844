package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
)

func newTestItem(fp *fakeProducts, p domain.Product) (*ItemController, *int, *int) {
	removed := 0
	edited := 0
	ic := NewItemController(fp, p,
		func(int) { removed++ },
		func() error { edited++; return nil })
	return ic, &removed, &edited
}

func TestDecrementFloorIssuesNoRequest(t *testing.T) {
	fp := &fakeProducts{}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 0})

	require.NoError(t, ic.Decrement())

	assert.Equal(t, 0, fp.patchCount(), "decrement at zero must not call the server")
	assert.Equal(t, 0, ic.Quantity())
	assert.False(t, ic.CanDecrement())
}

func TestUpdateQuantityConvergesOnServerValue(t *testing.T) {
	fp := &fakeProducts{patchRes: domain.QuantityResult{Quantity: 7}}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 3})

	require.NoError(t, ic.UpdateQuantity(99))

	assert.Equal(t, 7, ic.Quantity(), "the server's value wins over the requested one")
	assert.Equal(t, []int{99}, fp.patchedQty, "requested value is sent as-is")
	assert.False(t, ic.Busy())
}

func TestUpdateQuantityFailureLeavesQuantity(t *testing.T) {
	fp := &fakeProducts{patchErr: errRemote}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 3})

	require.Error(t, ic.UpdateQuantity(5))

	assert.Equal(t, 3, ic.Quantity())
	assert.False(t, ic.Busy(), "busy always clears")
}

func TestAdvisoryWarningSurfacedAndDismissed(t *testing.T) {
	fp := &fakeProducts{patchRes: domain.QuantityResult{Quantity: 2, Message: "Below minimal threshold"}}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 5})

	now := time.Now()
	ic.now = func() time.Time { return now }

	require.NoError(t, ic.UpdateQuantity(2))
	assert.Equal(t, 2, ic.Quantity())
	assert.Equal(t, "Below minimal threshold", ic.Warning())

	ic.DismissWarning()
	assert.Empty(t, ic.Warning())
	assert.Equal(t, 2, ic.Quantity(), "dismissing must not alter quantity")
}

func TestAdvisoryWarningExpires(t *testing.T) {
	fp := &fakeProducts{patchRes: domain.QuantityResult{Quantity: 2, Message: "Capped"}}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 5})

	now := time.Now()
	ic.now = func() time.Time { return now }
	require.NoError(t, ic.UpdateQuantity(2))
	require.Equal(t, "Capped", ic.Warning())

	now = now.Add(warningTTL + time.Second)
	assert.Empty(t, ic.Warning(), "warning auto-dismisses after the interval")
}

func TestAtMostOneInFlightMutation(t *testing.T) {
	gate := &patchGate{started: make(chan struct{}, 1), release: make(chan struct{})}
	fp := &fakeProducts{gate: gate}
	ic, _, _ := newTestItem(fp, domain.Product{ID: 4, Quantity: 1})

	done := make(chan error, 1)
	go func() { done <- ic.UpdateQuantity(2) }()
	<-gate.started

	assert.True(t, ic.Busy())
	assert.ErrorIs(t, ic.Increment(), ErrBusy)
	assert.ErrorIs(t, ic.SaveEdit(), ErrNoDraft, "edit without a draft is rejected regardless of busy")
	ic.OpenEdit()
	assert.ErrorIs(t, ic.SaveEdit(), ErrBusy)

	close(gate.release)
	require.NoError(t, <-done)
	assert.False(t, ic.Busy())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	fp := &fakeProducts{}
	ic, removed, _ := newTestItem(fp, domain.Product{ID: 9})

	assert.ErrorIs(t, ic.ConfirmDelete(), ErrNotConfirmed)
	assert.Empty(t, fp.deleted)
	assert.Zero(t, *removed)
}

func TestDeleteSuccessClosesAndRemovesLocally(t *testing.T) {
	fp := &fakeProducts{}
	ic, removed, _ := newTestItem(fp, domain.Product{ID: 9})

	ic.OpenDeleteConfirm()
	require.True(t, ic.DeleteConfirmOpen())
	require.NoError(t, ic.ConfirmDelete())

	assert.False(t, ic.DeleteConfirmOpen())
	assert.Equal(t, []int{9}, fp.deleted)
	assert.Equal(t, 1, *removed, "collection is told to drop the item, no refetch")
	assert.Equal(t, 0, fp.listCount())
}

func TestDeleteFailureKeepsDialogOpen(t *testing.T) {
	fp := &fakeProducts{deleteErr: errRemote}
	ic, removed, _ := newTestItem(fp, domain.Product{ID: 9})

	ic.OpenDeleteConfirm()
	require.Error(t, ic.ConfirmDelete())

	assert.True(t, ic.DeleteConfirmOpen(), "dialog closes only on success")
	assert.Zero(t, *removed)
	assert.False(t, ic.Busy())
}

func TestOpenEditResetsDraftToCanonical(t *testing.T) {
	fp := &fakeProducts{}
	p := domain.Product{ID: 9, Name: "Bolts", Quantity: 4, CategoryID: 2}
	ic, _, _ := newTestItem(fp, p)

	// abandon an edit
	ic.OpenEdit()
	draft := ic.Draft()
	draft.Name = "Screws"
	ic.SetDraft(draft)
	ic.CancelEdit()

	// re-opening discards the stale draft
	ic.OpenEdit()
	assert.Equal(t, "Bolts", ic.Draft().Name)
	assert.Equal(t, p.ID, ic.Draft().ID)
}

func TestSaveEditSuccessClosesAndRefetches(t *testing.T) {
	fp := &fakeProducts{}
	ic, _, edited := newTestItem(fp, domain.Product{ID: 9, Name: "Bolts", UserID: 7})

	ic.OpenEdit()
	draft := ic.Draft()
	draft.Name = "Hex Bolts"
	draft.CategoryID = 3
	ic.SetDraft(draft)
	require.NoError(t, ic.SaveEdit())

	assert.False(t, ic.EditOpen())
	require.Len(t, fp.updated, 1)
	assert.Equal(t, "Hex Bolts", fp.updated[0].Name)
	assert.Equal(t, 9, fp.updated[0].ID, "identity fields stay pinned")
	assert.Equal(t, 7, fp.updated[0].UserID)
	assert.Equal(t, 1, *edited, "exactly one refetch request per successful edit")
}

func TestSaveEditFailureKeepsModalOpen(t *testing.T) {
	fp := &fakeProducts{updateErr: errRemote}
	ic, _, edited := newTestItem(fp, domain.Product{ID: 9})

	ic.OpenEdit()
	require.Error(t, ic.SaveEdit())

	assert.True(t, ic.EditOpen(), "modal stays open so the draft can be fixed")
	assert.Zero(t, *edited)
	assert.False(t, ic.Busy())
}
