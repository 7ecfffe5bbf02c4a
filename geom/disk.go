/*package geom rasterizes the simple shapes which make up telescope pupils.*/
package geom

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Disk returns a frame x frame raster containing a filled disk which is
// diameter pixels across and centered in the frame. A pixel is set to 1 if its
// center lies within the disk and to 0 otherwise.
func Disk(diameter, frame int) *mat.Dense {
	checkSizes(diameter, frame)
	m := mat.NewDense(frame, frame, nil)
	fillDisk(m, diameter, 1)
	return m
}

// Annulus returns a frame x frame raster containing a disk of outer pixels
// with a concentric hole of inner pixels removed. An inner diameter of zero
// gives the same raster as Disk.
func Annulus(outer, inner, frame int) *mat.Dense {
	checkSizes(outer, frame)
	if inner < 0 || inner > outer {
		panic(fmt.Sprintf("Inner diameter %d out of range [0, %d].",
			inner, outer))
	}

	m := Disk(outer, frame)
	if inner > 0 { fillDisk(m, inner, 0) }
	return m
}

// Sum returns the sum of every pixel in m.
func Sum(m mat.Matrix) float64 {
	r, c := m.Dims()
	row := make([]float64, c)
	sum := 0.0
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		sum += floats.Sum(row)
	}
	return sum
}

// Logical converts a raster into a boolean mask, true wherever m > 0.
func Logical(m mat.Matrix) [][]bool {
	r, c := m.Dims()
	out := make([][]bool, r)
	for i := range out {
		out[i] = make([]bool, c)
		for j := range out[i] { out[i][j] = m.At(i, j) > 0 }
	}
	return out
}

func checkSizes(diameter, frame int) {
	if frame <= 0 {
		panic(fmt.Sprintf("Raster frame size %d is not positive.", frame))
	} else if diameter < 0 {
		panic(fmt.Sprintf("Disk diameter %d is negative.", diameter))
	}
}

// fillDisk sets every pixel whose center is within diameter/2 of the frame
// center to val. Coordinates are measured in pixels from the frame center, so
// disks of any diameter share exactly the same center.
func fillDisk(m *mat.Dense, diameter int, val float64) {
	frame, _ := m.Dims()
	c := float64(frame) / 2
	r2 := float64(diameter) * float64(diameter) / 4

	for i := 0; i < frame; i++ {
		y := float64(i) + 0.5 - c
		for j := 0; j < frame; j++ {
			x := float64(j) + 0.5 - c
			if x*x+y*y <= r2 { m.Set(i, j, val) }
		}
	}
}
