package catalog_test

import (
	"testing"

	"camctl/internal/catalog"
	"camctl/internal/trigger"
)

func TestDecodeTriggersLegacyLayout(t *testing.T) {
	tests := []struct {
		name string
		want trigger.Set
	}{
		// digit 4 = 4 -> person
		{"Mp4Record/2023-05-15/RecM02_20230515_071811_071835_6D28400_13CE8C7.mp4", trigger.Person},
		// digit 4 = 5 -> person|vehicle
		{"RecM02_20230515_071811_071835_6D28500_13CE8C7.mp4", trigger.Person | trigger.Vehicle},
		// digit 4 = A -> face|animal
		{"RecM02_20230515_071811_071835_6D28A00_13CE8C7.mp4", trigger.Face | trigger.Animal},
		// digit 5 = 4 -> doorbell
		{"RecM02_20230515_071811_071835_6D28040_13CE8C7.mp4", trigger.Doorbell},
		// digit 5 = 1 is the timer marker, not a detection
		{"RecM02_20230515_071811_071835_6D28010_13CE8C7.mp4", trigger.None},
		// digit 6 = 8 -> motion
		{"RecM02_20230515_071811_071835_6D28008_13CE8C7.mp4", trigger.Motion},
		// combined: person + motion
		{"RecM02_20230515_071811_071835_6D28408_13CE8C7.mp4", trigger.Person | trigger.Motion},
		// unknown high bits ignored
		{"RecM02_20230515_071811_071835_6D28082_13CE8C7.mp4", trigger.None},
	}
	for _, tt := range tests {
		if got := catalog.DecodeTriggers(tt.name); got != tt.want {
			t.Errorf("DecodeTriggers(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeTriggersModernLayout(t *testing.T) {
	tests := []struct {
		name string
		want trigger.Set
	}{
		// digit 5 = 1 -> person
		{"RecM07_20260220_000000_000024_0_6D280100FF_E386CE.mp4", trigger.Person},
		// digit 5 = 6 -> vehicle|animal
		{"RecM07_20260220_000000_000024_0_6D280600FF_E386CE.mp4", trigger.Vehicle | trigger.Animal},
		// digit 6 = 1 -> doorbell
		{"RecM07_20260220_000000_000024_0_6D280010FF_E386CE.mp4", trigger.Doorbell},
		// digit 7 = 1 -> motion
		{"RecM07_20260220_000000_000024_0_6D280001FF_E386CE.mp4", trigger.Motion},
		// face + motion
		{"RecM07_20260220_000000_000024_0_6D280801FF_E386CE.mp4", trigger.Face | trigger.Motion},
	}
	for _, tt := range tests {
		if got := catalog.DecodeTriggers(tt.name); got != tt.want {
			t.Errorf("DecodeTriggers(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeTriggersModernNeverReadThroughLegacyPositions(t *testing.T) {
	// A modern name whose hex digits would decode to person under the legacy
	// bit positions must still be read with the modern layout only.
	name := "RecM07_20260220_000000_000024_0_6D284400FF_E386CE.mp4"
	if got := catalog.DecodeTriggers(name); got != trigger.Animal {
		t.Fatalf("DecodeTriggers(%q) = %v, want animal via modern layout", name, got)
	}
}

func TestDecodeTriggersUnrecognizedYieldsEmpty(t *testing.T) {
	names := []string{
		"",
		"snapshot.jpg",
		"Rec_20230515.mp4",
		// five fields: neither signature
		"RecM02_20230515_071811_071835_6D28900.mp4",
		// legacy field count but flags field too short
		"RecM02_20230515_071811_071835_6D2_13CE8C7.mp4",
		// non-hex digits in the trigger region
		"RecM02_20230515_071811_071835_6D28ZZZ_13CE8C7.mp4",
	}
	for _, name := range names {
		if got := catalog.DecodeTriggers(name); got != trigger.None {
			t.Errorf("DecodeTriggers(%q) = %v, want none", name, got)
		}
	}
}

func TestDecodeTriggersDeterministic(t *testing.T) {
	name := "RecM02_20230515_071811_071835_6D28408_13CE8C7.mp4"
	first := catalog.DecodeTriggers(name)
	for i := 0; i < 100; i++ {
		if got := catalog.DecodeTriggers(name); got != first {
			t.Fatalf("decode not deterministic: %v != %v", got, first)
		}
	}
}
