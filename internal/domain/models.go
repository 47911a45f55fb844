package domain

// Product mirrors the remote inventory API's product shape. The server is the
// system of record; the client keeps a read-mostly cached copy.
type Product struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
	MinimalThreshold int    `json:"minimalThreshold"`
	CategoryID       int    `json:"categoryId"`
	CategoryName     string `json:"categoryName"`
	UserID           int    `json:"userId"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Group is one category's slice of the product list. Groups are kept in a
// slice, in first-appearance order, so it doubles as an ordered map.
type Group struct {
	CategoryID   int       `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Products     []Product `json:"products"`
}

// QuantityResult is the settled outcome of a quantity patch: the quantity the
// server actually stored (it may clamp or reject the requested value) plus an
// optional advisory note such as "Below minimal threshold".
type QuantityResult struct {
	Quantity int
	Message  string
}
