package aperture

import (
	"errors"
)

var (
	// ErrInvalidParameter is wrapped by every error New returns for a bad
	// aperture geometry.
	ErrInvalidParameter = errors.New("aperture: invalid parameter")
	// ErrInvalidArgument is wrapped by errors returned for bad arguments to
	// the diffraction engine, such as an unknown trap shape.
	ErrInvalidArgument = errors.New("aperture: invalid argument")
	// ErrNoPupil is returned by operations which need a raster pupil when the
	// aperture has neither a resolution nor a pupil override.
	ErrNoPupil = errors.New("aperture: no raster pupil")
)
