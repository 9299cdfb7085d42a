package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bujo/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Logout(ctx context.Context) error

	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Diary(ctx context.Context) error
	AddDiary(ctx context.Context) error
	Bullets(ctx context.Context) error
	AddBullet(ctx context.Context) error
	Averages(ctx context.Context) error
	Affirmations(ctx context.Context) error
	Gratitudes(ctx context.Context) error
	Passions(ctx context.Context) error
	Favorites(ctx context.Context) error
	Boards(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  help, register, login, forgot, home, exit
//
//	Logged in, additionally:
//	  profile, editprofile, diary, adddiary, bullets, addbullet, averages,
//	  affirmations, gratitudes, passions, favorites, boards, logout
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bujo%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := strings.ToLower(parts[0]); cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: home, profile, editprofile, diary, adddiary, bullets, addbullet, averages, affirmations, gratitudes, passions, favorites, boards, logout, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, home, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "forgot":
			cmdErr = a.ForgotPassword(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "home":
			cmdErr = a.Home(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "editprofile":
			cmdErr = a.EditProfile(ctx)
		case "diary":
			cmdErr = a.Diary(ctx)
		case "adddiary":
			cmdErr = a.AddDiary(ctx)
		case "bullets":
			cmdErr = a.Bullets(ctx)
		case "addbullet":
			cmdErr = a.AddBullet(ctx)
		case "averages":
			cmdErr = a.Averages(ctx)
		case "affirmations":
			cmdErr = a.Affirmations(ctx)
		case "gratitudes":
			cmdErr = a.Gratitudes(ctx)
		case "passions":
			cmdErr = a.Passions(ctx)
		case "favorites":
			cmdErr = a.Favorites(ctx)
		case "boards":
			cmdErr = a.Boards(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

// describe turns a service error into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthenticated):
		return "you need to log in first"
	case errors.Is(err, client.ErrUnauthorized):
		return "your session has expired, please log in again"
	case errors.Is(err, client.ErrUnavailable):
		return "the server is unavailable, try again later"
	default:
		return err.Error()
	}
}
