package planner

import "fmt"

// StorageError wraps a failed call to the Store. The generation is aborted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PoolExhaustion is the warning raised when too few exercises survive
// filtering. Generation still proceeds.
type PoolExhaustion struct {
	Available int
	Minimum   int
}

func (p *PoolExhaustion) Error() string {
	return fmt.Sprintf("only %d exercises left after filtering (minimum %d), days will be shorter than budgeted", p.Available, p.Minimum)
}
