package app

// Key binding constants used in handleKey.
const (
	KeyQuit        = "ctrl+c"
	KeyEsc         = "esc"
	KeyNextTab     = "tab"
	KeyPrevTab     = "shift+tab"
	KeyEnter       = "enter"
	KeyBackspace   = "backspace"
	KeyNewSession  = "ctrl+n"
	KeyNextSession = "ctrl+s"
	KeyRecord      = "ctrl+r"
)
