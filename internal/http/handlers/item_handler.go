package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type ItemHandler struct {
	Sessions *services.SessionManager
}

// item resolves the session and the product controller for an action route.
// A nil controller return means the response has already been written.
func (h *ItemHandler) item(c *fiber.Ctx) (*services.PageSession, *services.ItemController, error) {
	sess, ok := h.Sessions.Current(sid(c))
	if !ok {
		return nil, nil, c.Redirect("/inventory", fiber.StatusSeeOther)
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return nil, nil, backToPage(c, sess)
	}
	ic, err := sess.Item(id)
	if err != nil {
		sess.SetNotice("That product is no longer in the list.")
		return nil, nil, backToPage(c, sess)
	}
	return sess, ic, nil
}

// fail turns a mutation error into the page's blocking notice. Busy gets a
// retry hint instead of a failure message.
func fail(c *fiber.Ctx, sess *services.PageSession, action, msg string, err error) error {
	if errors.Is(err, services.ErrBusy) {
		log.Warn(c, action+".busy", err, nil)
		sess.SetNotice("Another update for this product is still running. Please retry.")
		return backToPage(c, sess)
	}
	log.Error(c, action+".fail", err, nil)
	sess.SetNotice(msg)
	return backToPage(c, sess)
}

// UpdateQuantity posts the quantity field as typed; the server may clamp,
// and its value wins.
func (h *ItemHandler) UpdateQuantity(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	qty, ok := validate.Qty(c.FormValue("quantity"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "quantity"})
		sess.SetNotice("Quantity must be a whole number.")
		return backToPage(c, sess)
	}
	if err := ic.UpdateQuantity(qty); err != nil {
		return fail(c, sess, "item.quantity.update", "Failed to update quantity. Please try again.", err)
	}
	log.Info(c, "item.quantity.update", map[string]any{"id": ic.Product().ID, "quantity": ic.Quantity()})
	return backToPage(c, sess)
}

func (h *ItemHandler) Increment(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	if err := ic.Increment(); err != nil {
		return fail(c, sess, "item.quantity.update", "Failed to update quantity. Please try again.", err)
	}
	return backToPage(c, sess)
}

func (h *ItemHandler) Decrement(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	if err := ic.Decrement(); err != nil {
		return fail(c, sess, "item.quantity.update", "Failed to update quantity. Please try again.", err)
	}
	return backToPage(c, sess)
}

func (h *ItemHandler) DismissWarning(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	ic.DismissWarning()
	return backToPage(c, sess)
}

// --- delete flow ---

func (h *ItemHandler) OpenDelete(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	ic.OpenDeleteConfirm()
	return backToPage(c, sess)
}

func (h *ItemHandler) CancelDelete(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	ic.CancelDelete()
	return backToPage(c, sess)
}

func (h *ItemHandler) ConfirmDelete(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	id := ic.Product().ID
	if err := ic.ConfirmDelete(); err != nil {
		return fail(c, sess, "item.delete", "Failed to delete product. Please try again.", err)
	}
	log.Info(c, "item.delete", map[string]any{"id": id})
	return backToPage(c, sess)
}

// --- edit flow ---

func (h *ItemHandler) OpenEdit(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	ic.OpenEdit()
	return backToPage(c, sess)
}

func (h *ItemHandler) CancelEdit(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}
	ic.CancelEdit()
	return backToPage(c, sess)
}

// SaveEdit applies the form to the draft and submits the full record. On
// success the list refetches (the edit may have moved the product between
// groups); on failure the modal stays open with the draft intact.
func (h *ItemHandler) SaveEdit(c *fiber.Ctx) error {
	sess, ic, err := h.item(c)
	if ic == nil {
		return err
	}

	draft := ic.Draft()
	if v, ok := validate.Name(c.FormValue("name")); ok {
		draft.Name = v
	}
	draft.Description = c.FormValue("description")
	if q, ok := validate.Qty(c.FormValue("quantity")); ok {
		draft.Quantity = q
	}
	if t, ok := validate.Qty(c.FormValue("minimalThreshold")); ok {
		draft.MinimalThreshold = t
	}
	if id, ok := validate.ID(c.FormValue("categoryId")); ok {
		draft.CategoryID = id
	}
	ic.SetDraft(draft)

	if err := ic.SaveEdit(); err != nil {
		return fail(c, sess, "item.edit", "Failed to update product. Please try again.", err)
	}
	log.Info(c, "item.edit", map[string]any{"id": draft.ID})
	return backToPage(c, sess)
}
