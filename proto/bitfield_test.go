package proto

import "testing"

func TestContentHintStringPeelsCompositeFirst(t *testing.T) {
	cases := []struct {
		v    ZwpTextInputV1ContentHint
		want string
	}{
		{ContentHintNone, "NONE"},
		{ContentHintDefault, "DEFAULT"},
		{ContentHintPassword, "PASSWORD"},
		{ContentHintDefault | ContentHintLatin, "DEFAULT | LATIN"},
		{ContentHintAutoCompletion | ContentHintAutoCorrection | ContentHintAutoCapitalization, "DEFAULT"},
		{ContentHintHiddenText | ContentHintSensitiveData, "PASSWORD"},
		{ContentHintMultiline, "MULTILINE"},
		{ContentHintAutoCompletion | ContentHintHiddenText | ContentHintMultiline, "AUTO_COMPLETION | HIDDEN_TEXT | MULTILINE"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("ContentHint(%#x).String() = %q, want %q", uint32(c.v), got, c.want)
		}
	}
}

func TestContentHintContains(t *testing.T) {
	v := ContentHintDefault | ContentHintLatin
	if !v.Contains(ContentHintAutoCompletion) {
		t.Fatal("DEFAULT should contain AUTO_COMPLETION")
	}
	if v.Contains(ContentHintPassword) {
		t.Fatal("value without PASSWORD bits must not Contain it")
	}
}

func TestWlSeatCapabilitiesString(t *testing.T) {
	cases := []struct {
		v    WlSeatCapabilities
		want string
	}{
		{0, "none"},
		{WlSeatCapabilityPointer, "pointer"},
		{WlSeatCapabilityPointer | WlSeatCapabilityKeyboard, "pointer | keyboard"},
		{WlSeatCapabilityPointer | WlSeatCapabilityKeyboard | WlSeatCapabilityTouch, "pointer | keyboard | touch"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("WlSeatCapabilities(%d).String() = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestPurposeStringUnknown(t *testing.T) {
	if got := ZwpTextInputV1Purpose(99).String(); got != "unknown" {
		t.Errorf("Purpose(99).String() = %q, want unknown", got)
	}
}
