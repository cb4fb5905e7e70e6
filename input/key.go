package input

import (
	"fmt"
	"strings"
)

// Key is a platform-independent key code. Only keys the editor binds are
// listed; platforms map everything else to KeyUnknown.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyR
	KeyQ
	KeyE
	KeyEscape
	KeyDelete
	KeySpace
	KeyEnter
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyR:       "r",
	KeyQ:       "q",
	KeyE:       "e",
	KeyEscape:  "escape",
	KeyDelete:  "delete",
	KeySpace:   "space",
	KeyEnter:   "enter",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// ParseKey maps a configured key name to a Key.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "esc" {
		s = "escape"
	}
	for k, name := range keyNames {
		if k != KeyUnknown && name == s {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("input: unknown key %q", s)
}
