package mpris

import (
	"fmt"
	"sort"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/godbus/dbus/v5"
)

const statusFields = 4

// DecodeStatus converts the (iiii) status struct into named fields.
// Anything other than four integers with a known play state is a protocol error.
func DecodeStatus(fields []any) (domain.Status, error) {
	if len(fields) != statusFields {
		return domain.Status{}, fmt.Errorf("%w: status has %d fields, want %d", domain.ErrProtocol, len(fields), statusFields)
	}

	var ints [statusFields]int64
	for i, f := range fields {
		n, ok := domain.Int64(f)
		if !ok {
			return domain.Status{}, fmt.Errorf("%w: status field %d is %T, want integer", domain.ErrProtocol, i, f)
		}
		ints[i] = n
	}

	state := domain.PlayState(ints[0])
	switch state {
	case domain.StatePlaying, domain.StatePaused, domain.StateStopped:
	default:
		return domain.Status{}, fmt.Errorf("%w: unknown play state %d", domain.ErrProtocol, ints[0])
	}

	return domain.Status{
		State:       state,
		Shuffle:     ints[1] != 0,
		RepeatTrack: ints[2] != 0,
		RepeatList:  ints[3] != 0,
	}, nil
}

// DecodeMetadata converts an a{sv} dictionary into a metadata record.
// D-Bus dictionaries arrive as Go maps, so entries are ordered by key.
func DecodeMetadata(v any) (domain.Metadata, error) {
	switch dict := v.(type) {
	case map[string]dbus.Variant:
		keys := make([]string, 0, len(dict))
		for k := range dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		meta := make(domain.Metadata, 0, len(keys))
		for _, k := range keys {
			meta = append(meta, domain.MetaEntry{Key: k, Value: dict[k].Value()})
		}
		return meta, nil
	case nil:
		return domain.Metadata{}, nil
	default:
		return nil, fmt.Errorf("%w: metadata is %T, want a{sv}", domain.ErrProtocol, v)
	}
}
