package notes

import "math/rand/v2"

// DefaultGradient is stored when a note is created without one.
const DefaultGradient = "linear-gradient(135deg, #1db954 0%, #1ed760 100%)"

// Gradients is the palette clients pick from when creating notes.
var Gradients = []string{
	DefaultGradient,
	"linear-gradient(135deg, #c850c0 0%, #ffcc70 100%)",
	"linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
	"linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
}

// RandomGradient returns a palette entry.
func RandomGradient() string {
	return Gradients[rand.IntN(len(Gradients))]
}
