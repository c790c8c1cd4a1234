package render

import "image/color"

// fillGridRGBA paints a side x side background into buf with a one pixel
// grid line at every tile boundary. buf must hold 4*side*side bytes.
func fillGridRGBA(buf []byte, side, cells int, bg, line color.RGBA) {
	if side <= 0 || cells <= 0 || len(buf) < 4*side*side {
		return
	}
	onLine := make([]bool, side)
	for i := 0; i <= cells; i++ {
		p := i * side / cells
		if p >= side {
			p = side - 1
		}
		onLine[p] = true
	}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			col := bg
			if onLine[x] || onLine[y] {
				col = line
			}
			base := (y*side + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
