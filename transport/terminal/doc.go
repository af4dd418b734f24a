// Package terminal is a full-screen terminal front end for the knight's tour.
//
// It drives a local engine.GameEngine directly, without the HTTP server.
// Model holds the game and the cursor, Draw renders a Model onto any
// tcell.Screen, and Run ties both to a screen's event loop:
//
//	screen, err := tcell.NewScreen()
//	if err != nil {
//		return err
//	}
//	return terminal.Run(ctx, screen, cfg)
//
// Keys: arrows or hjkl move the cursor, enter or space clicks, r resets,
// t toggles hints, + and - resize the board, c starts or stops a
// competition, q or Esc quits. A left mouse click selects a square.
package terminal
