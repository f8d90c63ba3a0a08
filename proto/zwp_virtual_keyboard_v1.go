package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

// Linux input-event key codes used by zwp_virtual_keyboard_v1.key's
// "key" argument. The original virtual_keyboard package used the same
// table to build a client-side typing helper; here they only document
// what the proxy is relaying, not used to synthesize events.
const (
	KeyReserved  = 0
	KeyEsc       = 1
	KeySpace     = 57
	KeyEnter     = 28
	KeyLeftShift = 42
	KeyLeftCtrl  = 29
	KeyLeftAlt   = 56
	KeyLeftMeta  = 125
)

// Key-state and keymap-format constants (zwp_virtual_keyboard_v1 wire
// values).
const (
	KeyStateReleased = 0
	KeyStatePressed  = 1

	KeymapFormatNoKeymap = 0
	KeymapFormatXKBV1    = 1
)

// Modifier bitmask values, as used in the xkb_state mods arguments of
// the modifiers request.
const (
	ModShift = 1 << 0
	ModCaps  = 1 << 1
	ModCtrl  = 1 << 2
	ModAlt   = 1 << 3
	ModNum   = 1 << 4
	ModMod3  = 1 << 5
	ModLogo  = 1 << 6
	ModMod5  = 1 << 7
)

const (
	MsgZwpVirtualKeyboardV1KeymapSince    uint32 = 1
	MsgZwpVirtualKeyboardV1KeySince       uint32 = 1
	MsgZwpVirtualKeyboardV1ModifiersSince uint32 = 1
	MsgZwpVirtualKeyboardV1DestroySince   uint32 = 1
)

// ZwpVirtualKeyboardV1 is the virtual-keyboard object's stub: a client
// synthesizes raw key/modifier events which this proxy forwards, fd
// included for the keymap request, exactly like any other request; the
// proxy has no special-cased input-injection logic of its own.
type ZwpVirtualKeyboardV1 struct {
	*object.Core
}

// NewZwpVirtualKeyboardV1 wraps core as a ZwpVirtualKeyboardV1.
func NewZwpVirtualKeyboardV1(core *object.Core) *ZwpVirtualKeyboardV1 {
	return &ZwpVirtualKeyboardV1{Core: core}
}

// TrySendKeymap forwards a keymap request, passing the client's keymap
// fd through to the server untouched.
func (k *ZwpVirtualKeyboardV1) TrySendKeymap(format uint32, fd int, size uint32) *object.Error {
	w := wire.NewWriter().Uint32(format).FD(fd).Uint32(size)
	return k.SendToServer(0, w)
}

// TrySendKey forwards a key request.
func (k *ZwpVirtualKeyboardV1) TrySendKey(time, key, state uint32) *object.Error {
	w := wire.NewWriter().Uint32(time).Uint32(key).Uint32(state)
	return k.SendToServer(1, w)
}

// TrySendModifiers forwards a modifiers request.
func (k *ZwpVirtualKeyboardV1) TrySendModifiers(depressed, latched, locked, group uint32) *object.Error {
	w := wire.NewWriter().Uint32(depressed).Uint32(latched).Uint32(locked).Uint32(group)
	return k.SendToServer(2, w)
}

// TrySendDestroy forwards a destroy request.
func (k *ZwpVirtualKeyboardV1) TrySendDestroy() *object.Error {
	k.MarkDestroyed()
	return k.SendToServer(3, wire.NewWriter())
}

// ZwpVirtualKeyboardV1Table is the request-side dispatch table.
var ZwpVirtualKeyboardV1Table = dispatch.Table{
	{
		Name:      "keymap",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgFD, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			format, err := r.ReadUint32()
			if err != nil {
				return err
			}
			fd, err := r.ReadFD()
			if err != nil {
				return err
			}
			size, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpVirtualKeyboardV1{core}).TrySendKeymap(format, fd, size))
		},
	},
	{
		Name:      "key",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			time, key, state, err := read3Uint(r)
			if err != nil {
				return err
			}
			return errOrNil((&ZwpVirtualKeyboardV1{core}).TrySendKey(time, key, state))
		},
	},
	{
		Name:      "modifiers",
		Signature: []wire.ArgKind{wire.ArgUint, wire.ArgUint, wire.ArgUint, wire.ArgUint},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			depressed, err := r.ReadUint32()
			if err != nil {
				return err
			}
			latched, err := r.ReadUint32()
			if err != nil {
				return err
			}
			locked, err := r.ReadUint32()
			if err != nil {
				return err
			}
			group, err := r.ReadUint32()
			if err != nil {
				return err
			}
			return errOrNil((&ZwpVirtualKeyboardV1{core}).TrySendModifiers(depressed, latched, locked, group))
		},
	},
	{
		Name: "destroy", Since: 1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			return errOrNil((&ZwpVirtualKeyboardV1{core}).TrySendDestroy())
		},
	},
}

func read3Uint(r *wire.Reader) (a, b, c uint32, err error) {
	if a, err = r.ReadUint32(); err != nil {
		return
	}
	if b, err = r.ReadUint32(); err != nil {
		return
	}
	c, err = r.ReadUint32()
	return
}
