package main

// SweetStore is the catalog repository. The MySQL implementation lives in
// mysqlstore.go; tests substitute an in-memory one.
type SweetStore interface {
	Create(draft SweetDraft) (SweetModel, error)
	GetByID(id int) (SweetModel, error)
	List() ([]SweetModel, error)
	Search(filter SweetFilter) ([]SweetModel, error)
	Update(id int, patch SweetPatch) (SweetModel, error)
	Delete(id int) error

	// Purchase decrements quantity by n only if n is still on hand, in one
	// atomic operation, and returns the updated item. Returns
	// ErrSweetNotFound or InsufficientStockError otherwise.
	Purchase(id, n int) (SweetModel, error)

	// Restock increments quantity by n and returns the updated item.
	Restock(id, n int) (SweetModel, error)
}

// UserStore is the account repository.
type UserStore interface {
	// Create persists a new account. Returns ErrEmailTaken or
	// ErrUsernameTaken on a duplicate unique field.
	Create(username, email, passwordHash, role string) (User, error)
	FindByEmail(email string) (User, bool, error)
}
