package categorization

import "errors"

var (
	ErrNotFound        = errors.New("task not found")
	ErrUnsupportedFile = errors.New("only .xlsx and .csv files are supported")
	ErrNoRows          = errors.New("the file contains no data rows")
	ErrBadBatchSize    = errors.New("batch_size must be 5, 10, 15 or 20")
	ErrResultNotReady  = errors.New("result is not ready")
)
