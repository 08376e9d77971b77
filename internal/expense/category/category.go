package category

// Category is a spending classification shared by all users.
//
// Categories are created by admins and referenced by expenses; names are
// unique across the system.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
