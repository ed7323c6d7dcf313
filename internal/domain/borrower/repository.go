package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByID(ctx context.Context, id uint64) (*Borrower, error)
	GetByUserID(ctx context.Context, userID uint64) (*Borrower, error)
	// List returns one page of borrowers with their user preloaded plus the total match count.
	List(ctx context.Context, f Filter) ([]Borrower, int64, error)
	Count(ctx context.Context) (int64, error)
}
