package advert

import "errors"

var (
	ErrInvalidPrice  = errors.New("price must look like 1.234,56")
	ErrNotEditing    = errors.New("advertisement is not in the editing step")
	ErrNotPreviewing = errors.New("advertisement is not in the preview step")
)
