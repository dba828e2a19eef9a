package game

import "github.com/pthm-cable/dodge/components"

// DirectionFromKeys combines held keys per axis. Diagonals are not
// normalized, so they move faster than straight lines.
func DirectionFromKeys(left, right, up, down bool) components.Vec2 {
	var d components.Vec2
	if left {
		d.X--
	}
	if right {
		d.X++
	}
	if up {
		d.Y--
	}
	if down {
		d.Y++
	}
	return d
}

// Key identifies one of the session control keys.
type Key int

const (
	KeyStart Key = iota
	KeyQuit
	KeyPause
	KeyRestart
	KeyAutopilot
)

// HandleKey updates the session for one pressed key. Returns true when the
// key asks to leave the game.
func (s *Session) HandleKey(k Key) (quit bool) {
	if k == KeyAutopilot {
		s.ToggleAutopilot()
		return false
	}

	switch s.State {
	case StateMenu:
		switch k {
		case KeyStart:
			s.Start()
		case KeyQuit:
			return true
		}
	case StatePlaying, StatePaused:
		if k == KeyPause {
			s.TogglePause()
		}
	case StateGameOver:
		switch k {
		case KeyRestart:
			s.ToMenu()
		case KeyQuit:
			return true
		}
	}
	return false
}
