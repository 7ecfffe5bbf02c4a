package aperture

// OpticalResponse is implemented by every optical model the diffraction
// engine can integrate.
type OpticalResponse interface {
	// OTF returns the optical transfer function at a separation r in the
	// pupil plane. It is normalized so that OTF(0) = 1.
	OTF(r float64) float64
	// PSF returns the point spread function at spatial frequency f
	// (angle / wavelength). It must be the Fourier transform of OTF.
	PSF(f float64) float64
	// FullWidthHalfMax returns the width of the PSF core in the same units
	// as the argument of PSF.
	FullWidthHalfMax() (float64, error)
}

var _ OpticalResponse = &Airy{}
