package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/domain"
	"stockroom/internal/log"
	"stockroom/internal/services"
	"stockroom/internal/validate"
)

type InventoryHandler struct {
	Sessions *services.SessionManager
}

// Page renders the grouped inventory for the email in the query string. An
// absent or unresolvable email renders an empty, non-erroring view. While
// the user or the product list is still resolving, only the loading
// indicator is shown.
func (h *InventoryHandler) Page(c *fiber.Ctx) error {
	email := c.Query("email", "")
	if email != "" {
		if v, ok := validate.Email(email); ok {
			email = v
		} else {
			log.Security(c, "validation.fail", map[string]any{"field": "email"})
			email = ""
		}
	}

	sess, started, err := h.Sessions.Session(sid(c), email)
	if err != nil {
		// degraded mode: the category dropdown stays empty
		log.Warn(c, "categories.load.fail", err, nil)
	}
	if started {
		log.Info(c, "session.start", map[string]any{"email": email, "user_id": sess.UserID()})
	}

	if sess.Loading() {
		return render(c, "loading", fiber.Map{"Email": email})
	}

	return render(c, "inventory", fiber.Map{
		"Email":             sess.Email(),
		"User":              sess.User(),
		"Groups":            groupViews(sess),
		"Categories":        sess.Categories(),
		"ProductsErrored":   sess.ProductsErrored(),
		"Notice":            sess.TakeNotice(),
		"ProductModalOpen":  sess.ProductModalOpen(),
		"CategoryModalOpen": sess.CategoryModalOpen(),
		"ProductDraft":      sess.ProductDraft(),
		"CategoryDraft":     sess.CategoryDraft(),
		"CategorySentinel":  services.CategorySentinel,
	})
}

// State is the JSON mirror of the page, for scripts and probes.
func (h *InventoryHandler) State(c *fiber.Ctx) error {
	sess, ok := h.Sessions.Current(sid(c))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no session"})
	}
	return c.JSON(fiber.Map{
		"email":      sess.Email(),
		"user":       sess.User(),
		"loading":    sess.Loading(),
		"error":      sess.ProductsErrored(),
		"groups":     groupViews(sess),
		"categories": sess.Categories(),
	})
}

// current fetches the live session for a mutating request. Actions without
// a session (expired server, direct POST) bounce back to the page.
func (h *InventoryHandler) current(c *fiber.Ctx) (*services.PageSession, error) {
	sess, ok := h.Sessions.Current(sid(c))
	if !ok {
		return nil, c.Redirect("/inventory", fiber.StatusSeeOther)
	}
	return sess, nil
}

// --- add-product modal ---

func (h *InventoryHandler) OpenProductModal(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}
	sess.OpenProductModal()
	return backToPage(c, sess)
}

func (h *InventoryHandler) CancelProductModal(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}
	sess.CancelProductModal()
	return backToPage(c, sess)
}

// AddProduct submits the creation form. Selecting the "add new category"
// sentinel in the category dropdown opens the category modal instead of
// submitting; the draft is retained either way until the create succeeds.
func (h *InventoryHandler) AddProduct(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}

	draft := domain.Product{}
	draft.Name, _ = validate.Name(c.FormValue("name"))
	draft.Description = c.FormValue("description")
	if q, ok := validate.Qty(c.FormValue("quantity")); ok {
		draft.Quantity = q
	}
	if t, ok := validate.Qty(c.FormValue("minimalThreshold")); ok {
		draft.MinimalThreshold = t
	}

	catValue := c.FormValue("category")
	if catValue == services.CategorySentinel {
		// keep whatever category was picked before
		draft.CategoryID = sess.ProductDraft().CategoryID
		sess.SetProductDraft(draft)
		sess.SelectDraftCategory(catValue, 0)
		return backToPage(c, sess)
	}
	if id, ok := validate.ID(catValue); ok {
		draft.CategoryID = id
	}
	sess.SetProductDraft(draft)

	if err := sess.AddProduct(); err != nil {
		log.Error(c, "product.create.fail", err, map[string]any{"name": draft.Name})
		sess.SetNotice("Failed to add product. Please try again.")
		return backToPage(c, sess)
	}
	log.Info(c, "product.create", map[string]any{"name": draft.Name})
	return backToPage(c, sess)
}

// --- add-category modal ---

func (h *InventoryHandler) OpenCategoryModal(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}
	sess.OpenCategoryModal()
	return backToPage(c, sess)
}

func (h *InventoryHandler) CancelCategoryModal(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}
	sess.CancelCategoryModal()
	return backToPage(c, sess)
}

func (h *InventoryHandler) AddCategory(c *fiber.Ctx) error {
	sess, err := h.current(c)
	if sess == nil {
		return err
	}

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "categoryName"})
		sess.SetNotice("Category name is required.")
		return backToPage(c, sess)
	}
	sess.SetCategoryDraft(name)

	created, err := sess.AddCategory()
	if err != nil {
		log.Error(c, "category.create.fail", err, map[string]any{"name": name})
		sess.SetNotice("Failed to add category. Please try again.")
		return backToPage(c, sess)
	}
	log.Info(c, "category.create", map[string]any{"id": created.ID, "name": created.Name})
	return backToPage(c, sess)
}
