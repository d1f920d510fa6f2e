package realtime

import (
	"fmt"

	"resto-erp-ws/internal/model"
)

// FetchError reports the table whose read aborted a refresh.
type FetchError struct {
	Table model.Table
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
