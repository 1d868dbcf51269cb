package core

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

// String returns the side name as shown in the console prompt
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "-"
	}
}

// Code returns the FEN side-to-move letter
func (c Color) Code() string {
	return string(c)
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}
