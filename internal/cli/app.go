package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/savelinks/internal/common"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/services"
)

// getSimpleText and getPassword point to the interactive input helpers and
// can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

type App struct {
	authService services.AuthService
	linkService services.LinkService
	log         logging.Logger

	reader *bufio.Reader
	out    io.Writer

	userID    int64
	userName  string
	masterKey []byte
}

func NewApp(as services.AuthService, ls services.LinkService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		linkService: ls,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run starts the REPL and blocks until the user exits or input ends. Any
// session still open on return is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to savelinks (type 'help' for commands)")
	defer a.endSession()

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.masterKey != nil
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) endSession() {
	common.WipeByteArray(a.masterKey)
	a.masterKey = nil
	a.userID = 0
	a.userName = ""
}
