package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the inventory page, its action routes and the JSON state
// endpoint on the app.
func Register(app *fiber.App, deps *Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/inventory", fiber.StatusSeeOther)
	})
	app.Get("/inventory", deps.Inventory.Page)

	app.Post("/inventory/products/modal/open", deps.Inventory.OpenProductModal)
	app.Post("/inventory/products/modal/cancel", deps.Inventory.CancelProductModal)
	app.Post("/inventory/products", deps.Inventory.AddProduct)

	app.Post("/inventory/categories/modal/open", deps.Inventory.OpenCategoryModal)
	app.Post("/inventory/categories/modal/cancel", deps.Inventory.CancelCategoryModal)
	app.Post("/inventory/categories", deps.Inventory.AddCategory)

	items := app.Group("/inventory/items/:id<[0-9]+>")
	items.Post("/quantity", deps.Items.UpdateQuantity)
	items.Post("/increment", deps.Items.Increment)
	items.Post("/decrement", deps.Items.Decrement)
	items.Post("/warning/dismiss", deps.Items.DismissWarning)
	items.Post("/edit/open", deps.Items.OpenEdit)
	items.Post("/edit/cancel", deps.Items.CancelEdit)
	items.Post("/edit", deps.Items.SaveEdit)
	items.Post("/delete/open", deps.Items.OpenDelete)
	items.Post("/delete/cancel", deps.Items.CancelDelete)
	items.Post("/delete", deps.Items.ConfirmDelete)

	api := app.Group("/api/v1")
	api.Get("/state", deps.Inventory.State)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
