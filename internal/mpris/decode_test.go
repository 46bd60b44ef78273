package mpris

import (
	"errors"
	"testing"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/godbus/dbus/v5"
)

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		name        string
		fields      []any
		expectError bool
		expected    domain.Status
	}{
		{
			name:     "Playing Shuffle Loop",
			fields:   []any{int32(0), int32(1), int32(0), int32(1)},
			expected: domain.Status{State: domain.StatePlaying, Shuffle: true, RepeatList: true},
		},
		{
			name:     "Paused Repeat Track",
			fields:   []any{int32(1), int32(0), int32(1), int32(0)},
			expected: domain.Status{State: domain.StatePaused, RepeatTrack: true},
		},
		{
			name:     "Stopped Other Integer Types",
			fields:   []any{uint32(2), int64(0), int16(0), uint8(0)},
			expected: domain.Status{State: domain.StateStopped},
		},
		{
			name:        "Error - Three Fields",
			fields:      []any{int32(0), int32(0), int32(0)},
			expectError: true,
		},
		{
			name:        "Error - Five Fields",
			fields:      []any{int32(0), int32(0), int32(0), int32(0), int32(0)},
			expectError: true,
		},
		{
			name:        "Error - Non Integer Field",
			fields:      []any{int32(0), "yes", int32(0), int32(0)},
			expectError: true,
		},
		{
			name:        "Error - Unknown Play State",
			fields:      []any{int32(7), int32(0), int32(0), int32(0)},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeStatus(tt.fields)
			if tt.expectError {
				if !errors.Is(err, domain.ErrProtocol) {
					t.Fatalf("expected protocol error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestDecodeMetadata(t *testing.T) {
	meta, err := DecodeMetadata(map[string]dbus.Variant{
		"title":  dbus.MakeVariant("Yeah Whatever"),
		"artist": dbus.MakeVariant("An Artist"),
		"time":   dbus.MakeVariant(uint32(143)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []string{"artist", "time", "title"}
	if len(meta) != len(wantKeys) {
		t.Fatalf("expected %d entries, got %d", len(wantKeys), len(meta))
	}
	for i, k := range wantKeys {
		if meta[i].Key != k {
			t.Errorf("entry %d: expected key %s, got %s", i, k, meta[i].Key)
		}
	}
	if v, _ := meta.Get("time"); v != uint32(143) {
		t.Errorf("expected time 143, got %v", v)
	}

	empty, err := DecodeMetadata(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty metadata for nil, got %v (%v)", empty, err)
	}

	if _, err := DecodeMetadata(int32(5)); !errors.Is(err, domain.ErrProtocol) {
		t.Errorf("expected protocol error for non-map metadata, got %v", err)
	}
}
