package notestate

const DefaultColor = "#fff"

// Palette lists the color tokens a note background may take, in the order
// the client shows them.
var Palette = []string{
	DefaultColor,
	"#f28b82",
	"#fbbc04",
	"#fff475",
	"#ccff90",
	"#a7ffeb",
	"#cbf0f8",
	"#aecbfa",
	"#d7aefb",
	"#fdcfe8",
	"#e6c9a8",
	"#e8eaed",
}

func IsKnownColor(token string) bool {
	for _, c := range Palette {
		if c == token {
			return true
		}
	}
	return false
}
