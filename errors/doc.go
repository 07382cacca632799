/*
Package errors provides semantic error types for the handlestore library.

Backend operations never panic on expected failures; they return one of the
error types below, which can be checked with the standard errors.Is() function
or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("handle not found")
	    ErrAlreadyExists   = errors.New("handle already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrServiceFailure  = errors.New("handle service failure")
	    ErrUnknownBackend  = errors.New("unknown handle backend")
	)

Usage:

	target, err := h.ReadHandle(ctx, handlemodels.RawHandle("1234567/abc:123"))
	if err != nil {
	    if errors.IsNotFound(err) {
	        // the handle was never minted
	    }
	    return err
	}

	err := errors.NewNotFoundError("1234567/abc:123")
	err := errors.NewServiceError("create", "1234567/abc:123", 500, 0, "internal error")
*/
package errors
