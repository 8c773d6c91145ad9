// SPDX-License-Identifier: MPL-2.0

// Package graphs extracts chart images from DOCX compliance reports.
// A DOCX file is a zip archive with its embedded media under word/media/;
// extraction filters that media through a heuristic tuned for the graphs
// technical reports embed, discarding logos, icons, and decorations.
package graphs

import (
	"image"
	"sort"
)

// Size gates for the likely-graph heuristic.
const (
	minWidth  = 100
	minHeight = 80
	minArea   = 8000

	minAspect = 0.3
	maxAspect = 8.0

	// fallbackWidth/Height admit large images that fail every content
	// check, such as solid-background exports.
	fallbackWidth  = 200
	fallbackHeight = 120
)

// LikelyGraph reports whether an image looks like a chart or technical
// diagram. Charts show varied brightness, busy edges (axes, borders), and
// moderate color complexity; photographs and flat decorations fail most
// of these while tiny icons fail the size gates.
func LikelyGraph(img image.Image) bool {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width < minWidth || height < minHeight {
		return false
	}
	if width*height < minArea {
		return false
	}

	aspect := float64(width) / float64(height)
	if aspect < minAspect || aspect > maxAspect {
		return false
	}

	pixels := grayPixels(img)
	total := len(pixels)
	if total == 0 {
		return false
	}

	var sum int
	bins := [4]int{}
	for _, p := range pixels {
		sum += int(p)
		switch {
		case p < 64:
			bins[0]++
		case p < 128:
			bins[1]++
		case p < 192:
			bins[2]++
		default:
			bins[3]++
		}
	}
	avg := float64(sum) / float64(total)

	// Varied brightness: no single shade dominates.
	maxBin := 0
	for _, b := range bins {
		if b > maxBin {
			maxBin = b
		}
	}
	if float64(maxBin)/float64(total) < 0.85 {
		return true
	}

	// Busy edges: axes and borders deviate from the average brightness.
	if edgeVariance(img, avg) > 500 {
		return true
	}

	// High contrast: a wide interquartile brightness range.
	sorted := make([]uint8, total)
	copy(sorted, pixels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	if total >= 4 {
		q1 := sorted[total/4]
		q3 := sorted[3*total/4]
		if int(q3)-int(q1) > 80 {
			return true
		}
	}

	// Moderate complexity: more than a flat fill, less than noise.
	sample := total
	if sample > 1000 {
		sample = 1000
	}
	unique := map[uint8]bool{}
	for _, p := range pixels[:sample] {
		unique[p] = true
	}
	complexity := float64(len(unique)) / float64(sample)
	if complexity >= 0.1 && complexity <= 0.8 {
		return true
	}

	return width >= fallbackWidth && height >= fallbackHeight
}

// grayPixels flattens the image to 8-bit luminance values in row order.
func grayPixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	pixels := make([]uint8, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, luminance(img, x, y))
		}
	}
	return pixels
}

func luminance(img image.Image, x, y int) uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	// ITU-R 601 weights over 16-bit channel values.
	l := (299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000
	return uint8(l >> 8)
}

// edgeVariance samples the border pixels and returns their brightness
// variance against the image average.
func edgeVariance(img image.Image, avg float64) float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var samples []uint8

	stepX := width / 20
	if stepX < 1 {
		stepX = 1
	}
	for x := 0; x < width; x += stepX {
		samples = append(samples,
			luminance(img, bounds.Min.X+x, bounds.Min.Y),
			luminance(img, bounds.Min.X+x, bounds.Max.Y-1))
	}

	stepY := height / 20
	if stepY < 1 {
		stepY = 1
	}
	for y := 0; y < height; y += stepY {
		samples = append(samples,
			luminance(img, bounds.Min.X, bounds.Min.Y+y),
			luminance(img, bounds.Max.X-1, bounds.Min.Y+y))
	}

	if len(samples) == 0 {
		return 0
	}

	var variance float64
	for _, s := range samples {
		d := float64(s) - avg
		variance += d * d
	}
	return variance / float64(len(samples))
}
