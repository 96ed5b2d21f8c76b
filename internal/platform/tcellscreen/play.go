package tcellscreen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/stacker/internal/input"
	"github.com/vovakirdan/stacker/internal/loop"
	"github.com/vovakirdan/stacker/internal/session"
)

// Run plays one session on an initialised screen. The caller owns the
// screen and finalises it afterwards, which also stops the input pump.
func Run(screen tcell.Screen, cfg session.Config) (loop.Stats, error) {
	screen.HideCursor()

	queue := input.NewQueue()
	go Pump(screen, queue)

	return session.Run(NewSurface(screen), queue, cfg)
}

// Play opens the terminal, plays one session and restores the terminal.
func Play(cfg session.Config) (loop.Stats, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return loop.Stats{Reason: loop.ReasonError}, fmt.Errorf("tcellscreen: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return loop.Stats{Reason: loop.ReasonError}, fmt.Errorf("tcellscreen: cannot init screen: %w", err)
	}
	defer screen.Fini()

	return Run(screen, cfg)
}
