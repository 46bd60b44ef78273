package mpris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/genricoloni/mpris-remote/internal/mpris/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const testPlayer = "org.mpris.foo"

func newTestPlayer(t *testing.T) (*Player, *mocks.MockConn) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockConn := mocks.NewMockConn(ctrl)
	return NewPlayer(zap.NewNop(), mockConn, testPlayer), mockConn
}

func TestPlayer_WireCalls(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		path   dbus.ObjectPath
		member string
		args   []any
		invoke func(p *Player) error
	}{
		{"Quit", RootPath, "Quit", nil, func(p *Player) error { return p.Quit(ctx) }},
		{"Prev", PlayerPath, "Prev", nil, func(p *Player) error { return p.Prev(ctx) }},
		{"Next", PlayerPath, "Next", nil, func(p *Player) error { return p.Next(ctx) }},
		{"Stop", PlayerPath, "Stop", nil, func(p *Player) error { return p.Stop(ctx) }},
		{"Play", PlayerPath, "Play", nil, func(p *Player) error { return p.Play(ctx) }},
		{"Pause", PlayerPath, "Pause", nil, func(p *Player) error { return p.Pause(ctx) }},
		{"Repeat", PlayerPath, "Repeat", []any{true}, func(p *Player) error { return p.Repeat(ctx, true) }},
		{"VolumeSet", PlayerPath, "VolumeSet", []any{int32(42)}, func(p *Player) error { return p.SetVolume(ctx, 42) }},
		{"PositionSet", PlayerPath, "PositionSet", []any{int32(2123123123)}, func(p *Player) error { return p.SetPosition(ctx, 2123123123) }},
		{"PositionSet Clamped", PlayerPath, "PositionSet", []any{int32(math.MaxInt32)}, func(p *Player) error { return p.SetPosition(ctx, 99999999999) }},
		{"AddTrack", TrackListPath, "AddTrack", []any{"/tmp/a.ogg", false}, func(p *Player) error { return p.AddTrack(ctx, "/tmp/a.ogg", false) }},
		{"DelTrack", TrackListPath, "DelTrack", []any{int32(3)}, func(p *Player) error { return p.DelTrack(ctx, 3) }},
		{"SetLoop", TrackListPath, "SetLoop", []any{false}, func(p *Player) error { return p.SetLoop(ctx, false) }},
		{"SetRandom", TrackListPath, "SetRandom", []any{true}, func(p *Player) error { return p.SetRandom(ctx, true) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mockConn := newTestPlayer(t)
			mockConn.EXPECT().Call(gomock.Any(), testPlayer, tt.path, Interface+"."+tt.member, tt.args...).
				Return(nil, nil)

			if err := tt.invoke(p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPlayer_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("Identity", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, RootPath, Interface+".Identity").
			Return([]any{"Audacious 1.5"}, nil)

		got, err := p.Identity(ctx)
		if err != nil || got != "Audacious 1.5" {
			t.Errorf("expected 'Audacious 1.5', got '%s' (%v)", got, err)
		}
	})

	t.Run("Status", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, PlayerPath, Interface+".GetStatus").
			Return([]any{[]any{int32(1), int32(0), int32(0), int32(1)}}, nil)

		got, err := p.Status(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := domain.Status{State: domain.StatePaused, RepeatList: true}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("Status Wrong Shape", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, PlayerPath, Interface+".GetStatus").
			Return([]any{int32(0), int32(0), int32(0), int32(0)}, nil)

		if _, err := p.Status(ctx); !errors.Is(err, domain.ErrProtocol) {
			t.Errorf("expected protocol error, got %v", err)
		}
	})

	t.Run("TrackMetadata", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, TrackListPath, Interface+".GetMetadata", int32(8)).
			Return([]any{map[string]dbus.Variant{"title": dbus.MakeVariant("x")}}, nil)

		got, err := p.TrackMetadata(ctx, 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v, ok := got.Get("title"); !ok || v != "x" {
			t.Errorf("expected title 'x', got %v", got)
		}
	})

	t.Run("Length", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, TrackListPath, Interface+".GetLength").
			Return([]any{int32(9)}, nil)

		got, err := p.Length(ctx)
		if err != nil || got != 9 {
			t.Errorf("expected 9, got %d (%v)", got, err)
		}
	})

	t.Run("Length Negative", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, TrackListPath, Interface+".GetLength").
			Return([]any{int32(-1)}, nil)

		if _, err := p.Length(ctx); !errors.Is(err, domain.ErrProtocol) {
			t.Errorf("expected protocol error, got %v", err)
		}
	})

	t.Run("MprisVersion", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, RootPath, Interface+".MprisVersion").
			Return([]any{[]any{uint16(1), uint16(0)}}, nil)

		got, err := p.MprisVersion(ctx)
		if err != nil || got != (domain.Version{Major: 1, Minor: 0}) {
			t.Errorf("expected 1.0, got %+v (%v)", got, err)
		}
	})

	t.Run("Transport Error", func(t *testing.T) {
		p, mockConn := newTestPlayer(t)
		mockConn.EXPECT().Call(gomock.Any(), testPlayer, PlayerPath, Interface+".PositionGet").
			Return(nil, fmt.Errorf("connection timeout"))

		if _, err := p.Position(ctx); !errors.Is(err, domain.ErrTransport) {
			t.Errorf("expected transport error, got %v", err)
		}
	})
}
