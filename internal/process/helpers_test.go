package process

import (
	"github.com/Norgate-AV/procctl/internal/logger"
	"github.com/Norgate-AV/procctl/internal/testutil"
)

const (
	gamePID    uint32  = 4242
	gameBase   uintptr = 0x7FF600000000
	gameWindow uintptr = 0xA0A0
	gameThread uint32  = 77
	otherApp   uintptr = 0xB0B0
	ourThread  uint32  = 11
)

type mocks struct {
	proc *testutil.MockProcessAPI
	win  *testutil.MockWindowAPI
	kbd  *testutil.MockKeyboardAPI
	grab *testutil.MockPixelGrabber
	priv *testutil.MockPrivileges
	log  *testutil.CallLog
}

func newMocks() *mocks {
	log := testutil.NewCallLog()

	return &mocks{
		proc: testutil.NewMockProcessAPI(),
		win: testutil.NewMockWindowAPI().
			WithWindow("Game Window", gameWindow, gameThread).
			WithCurrentThread(ourThread).
			WithForeground(otherApp).
			WithCallLog(log),
		kbd:  testutil.NewMockKeyboardAPI().WithCallLog(log),
		grab: testutil.NewMockPixelGrabber(),
		priv: testutil.NewMockPrivileges(),
		log:  log,
	}
}

func (m *mocks) deps() *Dependencies {
	return &Dependencies{
		Processes:  m.proc,
		Windows:    m.win,
		Keyboard:   m.kbd,
		Grabber:    m.grab,
		Privileges: m.priv,
	}
}

// handle returns a Handle attached to the scripted game process
func (m *mocks) handle() *Handle {
	identity := Identity{PID: gamePID, Name: "game", BaseAddress: gameBase}
	return NewHandle(logger.NewNoOpLogger(), m.deps(), identity, "Game Window")
}
