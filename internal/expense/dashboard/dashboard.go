// Package dashboard aggregates a user's spending for reporting views.
package dashboard

// CategoryTotal is one row of the top-categories report: a category name and
// the summed amount spent on it in the period.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
