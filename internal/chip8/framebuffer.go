package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer is the monochrome display, one byte per pixel, row-major.
// A pixel value is either 0 or 1.
type Framebuffer [DisplayWidth * DisplayHeight]byte

// Pixel returns the value of the pixel at the given coordinates.
// Coordinates wrap around the display edges.
func (f *Framebuffer) Pixel(x, y int) byte {
	return f[index(x, y)]
}

// Lit returns the number of set pixels.
func (f *Framebuffer) Lit() int {
	var count int
	for _, pixel := range f {
		count += int(pixel)
	}
	return count
}

func (f *Framebuffer) clear() {
	*f = Framebuffer{}
}

// toggle XORs the pixel at the wrapped coordinates with 1 and returns
// whether the pixel was switched off.
func (f *Framebuffer) toggle(x, y int) bool {
	idx := index(x, y)
	erased := f[idx] == 1
	f[idx] ^= 1
	return erased
}

func index(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad is the pressed state of the hex keys 0x0-0xF.
type Keypad [KeyCount]bool

// FirstPressed returns the lowest pressed key.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for key, pressed := range k {
		if pressed {
			return uint8(key), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	*k = Keypad{}
}
