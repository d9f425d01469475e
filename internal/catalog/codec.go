package catalog

import (
	"path"
	"strings"

	"camctl/internal/trigger"
)

// The camera stores each recording under a name like
//
//	Mp4Record/2023-05-15/RecM02_20230515_071811_071835_6D28900_13CE8C7.mp4
//
// where the second-to-last underscore field is a hex bitfield carrying the
// detection flags. Older firmware writes six underscore fields with a 7-digit
// flags field; newer firmware writes seven fields (an extra version marker)
// with a 10-digit flags field and a different bit placement. The two layouts
// are tried as an ordered chain: each strategy only decodes names whose
// structural signature it recognizes, so a modern name is never misread
// through legacy bit positions.

type layout interface {
	// recognizes reports whether the underscore fields match this layout's
	// structural signature.
	recognizes(fields []string) bool
	decode(fields []string) trigger.Set
}

var layouts = []layout{legacyLayout{}, modernLayout{}}

// DecodeTriggers extracts the trigger set encoded in an on-camera recording
// name. Unknown bits are ignored and a name neither layout recognizes yields
// the empty set; decoding is pure and deterministic.
func DecodeTriggers(name string) trigger.Set {
	base := path.Base(name)
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		base = base[:dot]
	}
	fields := strings.Split(base, "_")

	for _, l := range layouts {
		if l.recognizes(fields) {
			return l.decode(fields)
		}
	}
	return trigger.None
}

// legacyLayout is the fixed-bitfield layout written by older firmware:
// six fields, flags field of at least seven hex digits. The first four digits
// are a device model prefix; the trigger nibbles follow.
//
//	digit 4: bit3=face bit2=person bit1=animal bit0=vehicle
//	digit 5: bit2=doorbell (bit0 is a timer marker, not a detection)
//	digit 6: bit3=motion
type legacyLayout struct{}

func (legacyLayout) recognizes(fields []string) bool {
	return len(fields) == 6 && len(fields[4]) >= 7
}

func (legacyLayout) decode(fields []string) trigger.Set {
	hex := fields[4]
	set := trigger.None

	if nib, ok := hexDigit(hex, 4); ok {
		if nib&0x8 != 0 {
			set = set.With(trigger.Face)
		}
		if nib&0x4 != 0 {
			set = set.With(trigger.Person)
		}
		if nib&0x2 != 0 {
			set = set.With(trigger.Animal)
		}
		if nib&0x1 != 0 {
			set = set.With(trigger.Vehicle)
		}
	}
	if nib, ok := hexDigit(hex, 5); ok && nib&0x4 != 0 {
		set = set.With(trigger.Doorbell)
	}
	if nib, ok := hexDigit(hex, 6); ok && nib&0x8 != 0 {
		set = set.With(trigger.Motion)
	}
	return set
}

// modernLayout is the layout written by newer firmware: seven fields (the
// fifth is a version marker the legacy layout cannot produce) and a flags
// field of at least ten hex digits with a five-digit model prefix.
//
//	digit 5: bit3=face bit2=animal bit1=vehicle bit0=person
//	digit 6: bit0=doorbell
//	digit 7: bit0=motion
type modernLayout struct{}

func (modernLayout) recognizes(fields []string) bool {
	return len(fields) == 7 && len(fields[5]) >= 10
}

func (modernLayout) decode(fields []string) trigger.Set {
	hex := fields[5]
	set := trigger.None

	if nib, ok := hexDigit(hex, 5); ok {
		if nib&0x8 != 0 {
			set = set.With(trigger.Face)
		}
		if nib&0x4 != 0 {
			set = set.With(trigger.Animal)
		}
		if nib&0x2 != 0 {
			set = set.With(trigger.Vehicle)
		}
		if nib&0x1 != 0 {
			set = set.With(trigger.Person)
		}
	}
	if nib, ok := hexDigit(hex, 6); ok && nib&0x1 != 0 {
		set = set.With(trigger.Doorbell)
	}
	if nib, ok := hexDigit(hex, 7); ok && nib&0x1 != 0 {
		set = set.With(trigger.Motion)
	}
	return set
}

func hexDigit(s string, index int) (byte, bool) {
	if index >= len(s) {
		return 0, false
	}
	c := s[index]
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
