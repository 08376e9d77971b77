package category

import "context"

type Repository interface {
	List(context context.Context) ([]*Category, error)
	Create(context context.Context, name string) (*Category, error)
}
