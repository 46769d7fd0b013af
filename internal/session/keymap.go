package session

import (
	"strings"

	"github.com/keybeat/keybeat/internal/model"
)

type fingerHand struct {
	finger model.Finger
	hand   model.Hand
}

// codeMap assigns conventional touch-typing fingers to physical key codes.
// Compiled once; unmapped codes fall back to the character map, then to
// absent.
var codeMap = map[string]fingerHand{
	"Backquote": {model.FingerLeftPinky, model.HandLeft},
	"Digit1":    {model.FingerLeftPinky, model.HandLeft},
	"Digit2":    {model.FingerLeftRing, model.HandLeft},
	"Digit3":    {model.FingerLeftMiddle, model.HandLeft},
	"Digit4":    {model.FingerLeftIndex, model.HandLeft},
	"Digit5":    {model.FingerLeftIndex, model.HandLeft},
	"Digit6":    {model.FingerRightIndex, model.HandRight},
	"Digit7":    {model.FingerRightIndex, model.HandRight},
	"Digit8":    {model.FingerRightMiddle, model.HandRight},
	"Digit9":    {model.FingerRightRing, model.HandRight},
	"Digit0":    {model.FingerRightPinky, model.HandRight},
	"Minus":     {model.FingerRightPinky, model.HandRight},
	"Equal":     {model.FingerRightPinky, model.HandRight},

	"KeyQ": {model.FingerLeftPinky, model.HandLeft},
	"KeyW": {model.FingerLeftRing, model.HandLeft},
	"KeyE": {model.FingerLeftMiddle, model.HandLeft},
	"KeyR": {model.FingerLeftIndex, model.HandLeft},
	"KeyT": {model.FingerLeftIndex, model.HandLeft},
	"KeyY": {model.FingerRightIndex, model.HandRight},
	"KeyU": {model.FingerRightIndex, model.HandRight},
	"KeyI": {model.FingerRightMiddle, model.HandRight},
	"KeyO": {model.FingerRightRing, model.HandRight},
	"KeyP": {model.FingerRightPinky, model.HandRight},

	"BracketLeft":  {model.FingerRightPinky, model.HandRight},
	"BracketRight": {model.FingerRightPinky, model.HandRight},
	"Backslash":    {model.FingerRightPinky, model.HandRight},

	"KeyA": {model.FingerLeftPinky, model.HandLeft},
	"KeyS": {model.FingerLeftRing, model.HandLeft},
	"KeyD": {model.FingerLeftMiddle, model.HandLeft},
	"KeyF": {model.FingerLeftIndex, model.HandLeft},
	"KeyG": {model.FingerLeftIndex, model.HandLeft},
	"KeyH": {model.FingerRightIndex, model.HandRight},
	"KeyJ": {model.FingerRightIndex, model.HandRight},
	"KeyK": {model.FingerRightMiddle, model.HandRight},
	"KeyL": {model.FingerRightRing, model.HandRight},

	"Semicolon": {model.FingerRightPinky, model.HandRight},
	"Quote":     {model.FingerRightPinky, model.HandRight},

	"KeyZ": {model.FingerLeftPinky, model.HandLeft},
	"KeyX": {model.FingerLeftRing, model.HandLeft},
	"KeyC": {model.FingerLeftMiddle, model.HandLeft},
	"KeyV": {model.FingerLeftIndex, model.HandLeft},
	"KeyB": {model.FingerLeftIndex, model.HandLeft},
	"KeyN": {model.FingerRightIndex, model.HandRight},
	"KeyM": {model.FingerRightIndex, model.HandRight},

	"Comma":  {model.FingerRightMiddle, model.HandRight},
	"Period": {model.FingerRightRing, model.HandRight},
	"Slash":  {model.FingerRightPinky, model.HandRight},

	"Space":      {model.FingerThumb, model.HandBoth},
	"Enter":      {model.FingerRightPinky, model.HandRight},
	"Backspace":  {model.FingerRightPinky, model.HandRight},
	"Tab":        {model.FingerLeftPinky, model.HandLeft},
	"ShiftLeft":  {model.FingerLeftPinky, model.HandLeft},
	"ShiftRight": {model.FingerRightPinky, model.HandRight},
}

// charMap is the fallback for capture layers that only deliver glyphs.
var charMap = map[string]fingerHand{
	"`": {model.FingerLeftPinky, model.HandLeft},
	"1": {model.FingerLeftPinky, model.HandLeft},
	"2": {model.FingerLeftRing, model.HandLeft},
	"3": {model.FingerLeftMiddle, model.HandLeft},
	"4": {model.FingerLeftIndex, model.HandLeft},
	"5": {model.FingerLeftIndex, model.HandLeft},
	"6": {model.FingerRightIndex, model.HandRight},
	"7": {model.FingerRightIndex, model.HandRight},
	"8": {model.FingerRightMiddle, model.HandRight},
	"9": {model.FingerRightRing, model.HandRight},
	"0": {model.FingerRightPinky, model.HandRight},
	"-": {model.FingerRightPinky, model.HandRight},
	"=": {model.FingerRightPinky, model.HandRight},

	"q": {model.FingerLeftPinky, model.HandLeft},
	"w": {model.FingerLeftRing, model.HandLeft},
	"e": {model.FingerLeftMiddle, model.HandLeft},
	"r": {model.FingerLeftIndex, model.HandLeft},
	"t": {model.FingerLeftIndex, model.HandLeft},
	"y": {model.FingerRightIndex, model.HandRight},
	"u": {model.FingerRightIndex, model.HandRight},
	"i": {model.FingerRightMiddle, model.HandRight},
	"o": {model.FingerRightRing, model.HandRight},
	"p": {model.FingerRightPinky, model.HandRight},
	"[": {model.FingerRightPinky, model.HandRight},
	"]": {model.FingerRightPinky, model.HandRight},

	"a": {model.FingerLeftPinky, model.HandLeft},
	"s": {model.FingerLeftRing, model.HandLeft},
	"d": {model.FingerLeftMiddle, model.HandLeft},
	"f": {model.FingerLeftIndex, model.HandLeft},
	"g": {model.FingerLeftIndex, model.HandLeft},
	"h": {model.FingerRightIndex, model.HandRight},
	"j": {model.FingerRightIndex, model.HandRight},
	"k": {model.FingerRightMiddle, model.HandRight},
	"l": {model.FingerRightRing, model.HandRight},
	";": {model.FingerRightPinky, model.HandRight},
	"'": {model.FingerRightPinky, model.HandRight},

	"z": {model.FingerLeftPinky, model.HandLeft},
	"x": {model.FingerLeftRing, model.HandLeft},
	"c": {model.FingerLeftMiddle, model.HandLeft},
	"v": {model.FingerLeftIndex, model.HandLeft},
	"b": {model.FingerLeftIndex, model.HandLeft},
	"n": {model.FingerRightIndex, model.HandRight},
	"m": {model.FingerRightIndex, model.HandRight},
	",": {model.FingerRightMiddle, model.HandRight},
	".": {model.FingerRightRing, model.HandRight},
	"/": {model.FingerRightPinky, model.HandRight},

	" ": {model.FingerThumb, model.HandBoth},
}

// Lookup resolves the finger and hand for a keystroke. The physical code is
// checked first, then the lowercased character, then the pair is absent.
func Lookup(code, key string) (model.Finger, model.Hand) {
	if fh, ok := codeMap[code]; ok {
		return fh.finger, fh.hand
	}
	if fh, ok := charMap[strings.ToLower(key)]; ok {
		return fh.finger, fh.hand
	}
	return "", ""
}
