package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// ZwpTextInputV1ContentHint is the content-hint bitfield, decoded exactly
// as original_source/wl-proxy/src/protocols/text_input_unstable_v1/zwp_text_input_v1.rs
// defines it: two composite values (DEFAULT, PASSWORD) built from several
// of the singleton bits below, which String() must peel off greedily
// before falling back to the singleton bits themselves.
type ZwpTextInputV1ContentHint uint32

const (
	ContentHintNone               ZwpTextInputV1ContentHint = 0x0
	ContentHintDefault            ZwpTextInputV1ContentHint = 0x7
	ContentHintPassword           ZwpTextInputV1ContentHint = 0xc0
	ContentHintAutoCompletion     ZwpTextInputV1ContentHint = 0x1
	ContentHintAutoCorrection     ZwpTextInputV1ContentHint = 0x2
	ContentHintAutoCapitalization ZwpTextInputV1ContentHint = 0x4
	ContentHintLowercase          ZwpTextInputV1ContentHint = 0x8
	ContentHintUppercase          ZwpTextInputV1ContentHint = 0x10
	ContentHintTitlecase          ZwpTextInputV1ContentHint = 0x20
	ContentHintHiddenText         ZwpTextInputV1ContentHint = 0x40
	ContentHintSensitiveData      ZwpTextInputV1ContentHint = 0x80
	ContentHintLatin              ZwpTextInputV1ContentHint = 0x100
	ContentHintMultiline          ZwpTextInputV1ContentHint = 0x200
)

// String renders the bitfield the way the original's Debug impl does:
// DEFAULT and PASSWORD are checked (and their bits peeled off) before any
// remaining singleton bit is named, so e.g. DEFAULT|LATIN renders as
// "DEFAULT | LATIN" rather than spelling out all three of DEFAULT's
// constituent bits plus LATIN.
func (h ZwpTextInputV1ContentHint) String() string {
	composites := []namedBit{
		{uint32(ContentHintDefault), "DEFAULT"},
		{uint32(ContentHintPassword), "PASSWORD"},
	}
	singles := []namedBit{
		{uint32(ContentHintAutoCompletion), "AUTO_COMPLETION"},
		{uint32(ContentHintAutoCorrection), "AUTO_CORRECTION"},
		{uint32(ContentHintAutoCapitalization), "AUTO_CAPITALIZATION"},
		{uint32(ContentHintLowercase), "LOWERCASE"},
		{uint32(ContentHintUppercase), "UPPERCASE"},
		{uint32(ContentHintTitlecase), "TITLECASE"},
		{uint32(ContentHintHiddenText), "HIDDEN_TEXT"},
		{uint32(ContentHintSensitiveData), "SENSITIVE_DATA"},
		{uint32(ContentHintLatin), "LATIN"},
		{uint32(ContentHintMultiline), "MULTILINE"},
	}
	return renderBitfield(uint32(h), composites, singles, "NONE")
}

// Contains reports whether every bit in other is set in h.
func (h ZwpTextInputV1ContentHint) Contains(other ZwpTextInputV1ContentHint) bool {
	return uint32(h)&uint32(other) == uint32(other)
}

// ZwpTextInputV1Purpose is the companion non-bitfield enum; singleton
// values only, so it uses a plain switch rather than renderBitfield.
type ZwpTextInputV1Purpose uint32

const (
	PurposeNormal ZwpTextInputV1Purpose = iota
	PurposeAlpha
	PurposeDigits
	PurposeNumber
	PurposePhone
	PurposeURL
	PurposeEmail
	PurposeName
	PurposePassword
	PurposeDate
	PurposeTime
	PurposeDatetime
	PurposeTerminal
)

var purposeNames = [...]string{
	"normal", "alpha", "digits", "number", "phone", "url", "email",
	"name", "password", "date", "time", "datetime", "terminal",
}

func (p ZwpTextInputV1Purpose) String() string {
	if int(p) < len(purposeNames) {
		return purposeNames[p]
	}
	return "unknown"
}

// ZwpTextInputV1 is the text-input object's stub.
type ZwpTextInputV1 struct {
	*object.Core
}

// NewZwpTextInputV1 wraps core as a ZwpTextInputV1.
func NewZwpTextInputV1(core *object.Core) *ZwpTextInputV1 {
	return &ZwpTextInputV1{Core: core}
}

// TrySendActivate forwards an activate request, translating the seat
// argument.
func (t *ZwpTextInputV1) TrySendActivate(seatClientID uint32) *object.Error {
	seatServerID, err := t.ResolveForServer(seatClientID)
	if err != nil {
		return err
	}
	return t.SendToServer(0, wire.NewWriter().Uint32(seatServerID))
}

// TrySendDeactivate forwards a deactivate request, translating the seat
// argument.
func (t *ZwpTextInputV1) TrySendDeactivate(seatClientID uint32) *object.Error {
	seatServerID, err := t.ResolveForServer(seatClientID)
	if err != nil {
		return err
	}
	return t.SendToServer(1, wire.NewWriter().Uint32(seatServerID))
}

// TrySendReset forwards a reset request.
func (t *ZwpTextInputV1) TrySendReset() *object.Error {
	return t.SendToServer(2, wire.NewWriter())
}

// TrySendSetContentType forwards a set_content_type request.
func (t *ZwpTextInputV1) TrySendSetContentType(hint ZwpTextInputV1ContentHint, purpose ZwpTextInputV1Purpose) *object.Error {
	w := wire.NewWriter().Uint32(uint32(hint)).Uint32(uint32(purpose))
	return t.SendToServer(3, w)
}

// ZwpTextInputV1Table is the request-side dispatch table for the subset
// of zwp_text_input_v1 requests this proxy models.
var ZwpTextInputV1Table = dispatch.Table{
	{
		Name:      "activate",
		Signature: []wire.ArgKind{wire.ArgObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			seatID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpTextInputV1{core}).TrySendActivate(seatID))
		},
	},
	{
		Name:      "deactivate",
		Signature: []wire.ArgKind{wire.ArgObject},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			seatID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpTextInputV1{core}).TrySendDeactivate(seatID))
		},
	},
	{
		Name: "reset", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwpTextInputV1{core}).TrySendReset())
		},
	},
	{
		Name:      "set_content_type",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			hint, err := r.ReadUint32()
			if err != nil {
				return err
			}
			purpose, err := r.ReadUint32()
			if err != nil {
				return err
			}
			t := &ZwpTextInputV1{core}
			return errOrNil(t.TrySendSetContentType(ZwpTextInputV1ContentHint(hint), ZwpTextInputV1Purpose(purpose)))
		},
	},
}
