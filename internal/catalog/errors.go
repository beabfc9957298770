package catalog

import "fmt"

// FileNotFoundError indicates a dataset document that does not exist.
// Fatal for the sets index, tolerated for per-set card files.
type FileNotFoundError struct {
	Name string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("catalog file not found: %s", e.Name)
}

// InvalidDataError indicates a dataset document that decoded but does not
// describe a usable catalog.
type InvalidDataError struct {
	Message string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid catalog data: %s", e.Message)
}

// DecodingError indicates a dataset document that could not be decoded.
type DecodingError struct {
	Message string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("catalog decoding failed: %s", e.Message)
}
