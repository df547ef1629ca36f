package variant

import "strings"

// Code is an ACMG/AMP evidence criterion.
type Code uint8

// Evidence codes evaluated by the rule engine, in report order.
const (
	PVS1 Code = iota
	PS1
	PS2
	PM2
	PM4
	PM5
	PP2
	PP3
	PP5
	BA1
	BS1
	BP1
	BP3
	BP4
	BP6
	BP7

	NumCodes
)

var codeNames = [NumCodes]string{
	"PVS1", "PS1", "PS2", "PM2", "PM4", "PM5", "PP2", "PP3", "PP5",
	"BA1", "BS1", "BP1", "BP3", "BP4", "BP6", "BP7",
}

// String returns the upper-case criterion name, e.g. "PM2".
func (c Code) String() string {
	if c >= NumCodes {
		return "UNKNOWN"
	}
	return codeNames[c]
}

// Key returns the lower-case flag key, e.g. "pm2".
func (c Code) Key() string {
	return strings.ToLower(c.String())
}

// ParseCode looks up a criterion by name, ignoring case.
func ParseCode(s string) (Code, bool) {
	for i, name := range codeNames {
		if strings.EqualFold(name, s) {
			return Code(i), true
		}
	}
	return 0, false
}

// AllCodes returns every evidence code in report order.
func AllCodes() []Code {
	codes := make([]Code, NumCodes)
	for i := range codes {
		codes[i] = Code(i)
	}
	return codes
}

// Strength grades PVS1 evidence.
type Strength uint8

const (
	StrengthNone Strength = iota
	StrengthSupporting
	StrengthModerate
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthSupporting:
		return "Supporting"
	case StrengthModerate:
		return "Moderate"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "VeryStrong"
	}
	return "None"
}

// Flags is the evidence-flag set of one record. A code that was never
// written is "not evaluated", which differs from evaluated-and-not-assigned.
type Flags struct {
	evaluated uint32
	assigned  uint32
	strength  Strength
}

// Set records the outcome of evaluating c.
func (f *Flags) Set(c Code, assigned bool) {
	bit := uint32(1) << c
	f.evaluated |= bit
	if assigned {
		f.assigned |= bit
	} else {
		f.assigned &^= bit
	}
	if c == PVS1 {
		f.strength = StrengthNone
		if assigned {
			f.strength = StrengthVeryStrong
		}
	}
}

// SetStrength records a graded PVS1 outcome; StrengthNone means not assigned.
func (f *Flags) SetStrength(s Strength) {
	f.Set(PVS1, s != StrengthNone)
	f.strength = s
}

// Strength returns the PVS1 strength tag.
func (f Flags) Strength() Strength {
	return f.strength
}

// Get returns whether c is assigned and whether it has been evaluated.
func (f Flags) Get(c Code) (assigned, evaluated bool) {
	bit := uint32(1) << c
	return f.assigned&bit != 0, f.evaluated&bit != 0
}

// Assigned reports whether c was evaluated and met.
func (f Flags) Assigned(c Code) bool {
	return f.assigned&(uint32(1)<<c) != 0
}

// Evaluated reports whether any rule has written c.
func (f Flags) Evaluated(c Code) bool {
	return f.evaluated&(uint32(1)<<c) != 0
}

// Codes returns the assigned codes in report order.
func (f Flags) Codes() []Code {
	var codes []Code
	for c := Code(0); c < NumCodes; c++ {
		if f.Assigned(c) {
			codes = append(codes, c)
		}
	}
	return codes
}

// Only reports whether c is the single assigned code.
func (f Flags) Only(c Code) bool {
	return f.assigned == uint32(1)<<c
}
