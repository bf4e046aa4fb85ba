package xochip

const (
	// Width is the display width in pixels.
	Width = 128
	// Height is the display height in pixels.
	Height = 64

	planeCount = 2
	planeBytes = Width * Height / 8
	rowBytes   = Width / 8
)

// Plane selection mask bits.
const (
	Plane1 uint8 = 1 << iota
	Plane2

	PlaneNone uint8 = 0
	PlaneBoth       = Plane1 | Plane2
)

// Display is the two plane pixel surface. Each plane stores one bit per
// pixel, rows top to bottom, the most significant bit of a byte being the
// leftmost pixel.
type Display struct {
	planes   [planeCount][planeBytes]byte
	selected uint8
	dirty    bool
	lowRes   bool
}

// Pixel returns the color index of the pixel at x, y: bit 0 is set if the
// pixel is lit on plane 1, bit 1 if it is lit on plane 2.
func (d *Display) Pixel(x, y int) uint8 {
	var c uint8
	for p := range d.planes {
		if d.get(p, x, y) {
			c |= 1 << p
		}
	}
	return c
}

// Plane returns a copy of the packed bits of the given plane (0 or 1).
func (d *Display) Plane(plane int) [planeBytes]byte {
	return d.planes[plane]
}

// Selected returns the plane selection mask.
func (d *Display) Selected() uint8 {
	return d.selected
}

// LowRes returns whether the display is in 64x32 low resolution mode.
func (d *Display) LowRes() bool {
	return d.lowRes
}

// Dirty returns whether the pixels changed since the last Clean call.
func (d *Display) Dirty() bool {
	return d.dirty
}

// Clean marks the current frame as consumed by the host.
func (d *Display) Clean() {
	d.dirty = false
}

func (d *Display) reset(lowRes bool) {
	*d = Display{
		selected: Plane1,
		dirty:    true,
		lowRes:   lowRes,
	}
}

// clear zeroes the planes in mask.
func (d *Display) clear(mask uint8) {
	for p := range d.planes {
		if mask&(1<<p) != 0 {
			d.planes[p] = [planeBytes]byte{}
		}
	}
	d.dirty = true
}

func (d *Display) get(plane, x, y int) bool {
	i := y*rowBytes + x/8
	return d.planes[plane][i]&(0x80>>(x%8)) != 0
}

func (d *Display) set(plane, x, y int, on bool) {
	i := y*rowBytes + x/8
	bit := byte(0x80 >> (x % 8))
	if on {
		d.planes[plane][i] |= bit
	} else {
		d.planes[plane][i] &^= bit
	}
}

// flip XORs a size x size block of pixels at x, y on the plane. It returns
// whether a lit pixel was turned off.
func (d *Display) flip(plane, x, y, size int) bool {
	collision := false
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			px, py := x+dx, y+dy
			lit := d.get(plane, px, py)
			if lit {
				collision = true
			}
			d.set(plane, px, py, !lit)
		}
	}
	d.dirty = true
	return collision
}

// scroll moves the pixels of the planes in mask by dx, dy. Pixels moved
// off the screen are lost, uncovered pixels are cleared.
func (d *Display) scroll(mask uint8, dx, dy int) {
	for p := range d.planes {
		if mask&(1<<p) == 0 {
			continue
		}
		src := d.planes[p]
		d.planes[p] = [planeBytes]byte{}
		for y := 0; y < Height; y++ {
			sy := y - dy
			if sy < 0 || sy >= Height {
				continue
			}
			for x := 0; x < Width; x++ {
				sx := x - dx
				if sx < 0 || sx >= Width {
					continue
				}
				if src[sy*rowBytes+sx/8]&(0x80>>(sx%8)) != 0 {
					d.set(p, x, y, true)
				}
			}
		}
	}
	d.dirty = true
}
