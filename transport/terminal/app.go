package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/wricardo/knights-tour/game/engine"
)

type tickSignal struct{}
type stopSignal struct{}

// Run plays a game on screen until the player quits or ctx is cancelled.
// The screen is initialised and finalised here.
func Run(ctx context.Context, screen tcell.Screen, cfg *engine.GameConfig) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go clock(ctx, screen)

	return loop(screen, m)
}

// clock wakes the event loop once a second so the competition timer can tick
func clock(ctx context.Context, screen tcell.Screen) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			screen.PostEvent(tcell.NewEventInterrupt(stopSignal{}))
			return
		case <-ticker.C:
			screen.PostEvent(tcell.NewEventInterrupt(tickSignal{}))
		}
	}
}

func loop(screen tcell.Screen, m *Model) error {
	var lastButtons tcell.ButtonMask

	for !m.Done() {
		Draw(screen, m)

		switch ev := screen.PollEvent().(type) {
		case nil:
			// screen finalised
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			m.HandleKey(ev)
		case *tcell.EventMouse:
			buttons := ev.Buttons()
			pressed := buttons&tcell.Button1 != 0 && lastButtons&tcell.Button1 == 0
			lastButtons = buttons
			if pressed {
				x, y := ev.Position()
				if pos, ok := squareAt(m.State().BoardSize, x, y); ok {
					m.ClickAt(pos)
				}
			}
		case *tcell.EventInterrupt:
			if _, stop := ev.Data().(stopSignal); stop {
				return nil
			}
			m.Tick()
		}
	}
	return nil
}
