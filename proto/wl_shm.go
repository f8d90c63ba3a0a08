package proto

import (
	"github.com/veilproto/wlveil/internal/dispatch"
	"github.com/veilproto/wlveil/internal/object"
	"github.com/veilproto/wlveil/internal/wire"
)

const MsgWlShmCreatePoolSince uint32 = 1

// WlShmFormat is the pixel-format enum wl_shm.format events carry; it has
// no bitfield composites, only singleton values, so its String() falls
// back to a plain name-or-hex lookup rather than the greedy algorithm.
type WlShmFormat uint32

const (
	WlShmFormatARGB8888 WlShmFormat = 0
	WlShmFormatXRGB8888 WlShmFormat = 1
)

func (f WlShmFormat) String() string {
	switch f {
	case WlShmFormatARGB8888:
		return "argb8888"
	case WlShmFormatXRGB8888:
		return "xrgb8888"
	default:
		return renderBitfield(uint32(f), nil, nil, "unknown")
	}
}

// WlShm is the shared-memory pool factory; its only request hands the
// server an fd to mmap.
type WlShm struct {
	*object.Core
}

// NewWlShm wraps core as a WlShm.
func NewWlShm(core *object.Core) *WlShm {
	return &WlShm{Core: core}
}

// NewSendCreatePool forwards a create_pool request, passing the client's
// memory-backing fd through to the server untouched (the proxy never
// needs to interpret shared-memory contents, only conserve the fd across
// the hop) and adopting the new wl_shm_pool child object.
func (s *WlShm) NewSendCreatePool(newPoolClientID uint32, fd int, size int32) (*WlShmPool, *object.Error) {
	child, adoptErr := s.AdoptNewID(object.WlShmPool, s.Version, newPoolClientID)
	if adoptErr != nil {
		return nil, adoptErr
	}
	serverID, err := s.AllocServerID()
	if err != nil {
		return nil, err
	}
	s.Owner.BindServerID(child, serverID)
	w := wire.NewWriter().Uint32(serverID).FD(fd).Int32(size)
	if sendErr := s.SendToServer(0, w); sendErr != nil {
		return nil, sendErr
	}
	return NewWlShmPool(child), nil
}

// WlShmTable is the request-side dispatch table.
var WlShmTable = dispatch.Table{
	{
		Name:      "create_pool",
		Signature: []wire.ArgKind{wire.ArgNewID, wire.ArgFD, wire.ArgInt},
		Since:     1,
		Handle: func(core *object.Core, r *wire.Reader) error {
			newID, err := r.ReadUint32()
			if err != nil {
				return err
			}
			fd, err := r.ReadFD()
			if err != nil {
				return err
			}
			size, err := r.ReadInt32()
			if err != nil {
				return err
			}
			_, sendErr := (&WlShm{core}).NewSendCreatePool(newID, fd, size)
			return errOrNil(sendErr)
		},
	},
}
