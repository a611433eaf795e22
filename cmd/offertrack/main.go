package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"offertrack/internal/accounts"
	"offertrack/internal/config"
	"offertrack/internal/events"
	"offertrack/internal/handlers"
	"offertrack/internal/logging"
	"offertrack/internal/notifications"
	"offertrack/internal/storage"
	"offertrack/internal/tracker"

	"github.com/jonboulle/clockwork"
	"golang.org/x/term"
)

const usage = `Usage: offertrack [-db <db_path>] <command> [arguments]

Account:
  signup -name <name> -email <email> [-password <password>]
  login -email <email> [-password <password>]
  demo
  logout
  whoami
  rename <name>
  delete-account [-yes]

Applications:
  app add -company <c> -role <r> -location <l> [-status <s>] [-date YYYY-MM-DD]
          [-salary <range>] [-url <posting>] [-website <site>] [-notes <text>]
  app list [-q <term>] [-status <s>]
  app search <term>
  app show <id>
  app update <id> [same flags as add]
  app delete <id>

Interviews:
  interview add -app <application id> -round <type> -date YYYY-MM-DD [-outcome <o>] [-notes <text>]
  interview update <id> [-round <type>] [-date YYYY-MM-DD] [-outcome <o>] [-notes <text>]
  interview delete <id>

Other:
  dashboard
  notifications [list | read <id> | read-all | clear <id> | clear-all]
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("offertrack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	dbPath := fs.String("db", "", "Path to database file (overrides DB_PATH)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	logging.InitLogger(stderr, cfg.LogLevel, cfg.LogFormat)

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	h, err := newHandlers(db, cfg, stdout, stderr)
	if err != nil {
		return err
	}

	c := &cli{h: h, stdin: stdin, in: bufio.NewReader(stdin), stdout: stdout, stderr: stderr}
	return c.dispatch(fs.Arg(0), fs.Args()[1:])
}

// newHandlers wires the stores to one event bus and replays the restored
// session so every store loads the signed-in account's data.
func newHandlers(db *storage.DB, cfg *config.Config, stdout, stderr io.Writer) (*handlers.Handlers, error) {
	bus := events.NewBus()
	clock := clockwork.NewRealClock()
	display := notifications.NewWriterDisplay(stderr)

	tr := tracker.NewStore(db, bus, tracker.WithClock(clock))
	notes := notifications.NewStore(db, bus, display, notifications.WithClock(clock))
	acc, err := accounts.NewStore(db, bus, accounts.WithClock(clock), accounts.WithHashCost(cfg.BcryptCost))
	if err != nil {
		return nil, err
	}
	acc.Announce()

	return handlers.NewHandlers(acc, tr, notes, display, clock, stdout), nil
}

type cli struct {
	h      *handlers.Handlers
	stdin  io.Reader
	in     *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) dispatch(cmd string, args []string) error {
	switch cmd {
	case "signup":
		return c.signup(args)
	case "login":
		return c.login(args)
	case "demo":
		_, err := c.h.Demo()
		return err
	case "logout":
		return c.h.Logout()
	case "whoami":
		return c.h.WhoAmI()
	case "rename":
		return c.h.Rename(strings.Join(args, " "))
	case "delete-account":
		return c.deleteAccount(args)
	case "app":
		return c.app(args)
	case "interview":
		return c.interview(args)
	case "dashboard":
		return c.h.Dashboard()
	case "notifications":
		return c.notifications(args)
	case "help":
		fmt.Fprint(c.stdout, usage)
		return nil
	default:
		fmt.Fprint(c.stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) signup(args []string) error {
	fs := c.flagSet("signup")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := handlers.SignupForm{Name: *name, Email: *email, Password: *passwordFlag, Confirm: *passwordFlag}
	if form.Password == "" {
		var err error
		if form.Password, err = c.prompt("Password: "); err != nil {
			return err
		}
		if form.Confirm, err = c.prompt("Confirm password: "); err != nil {
			return err
		}
	}
	_, err := c.h.Signup(form)
	return err
}

func (c *cli) login(args []string) error {
	fs := c.flagSet("login")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password := *passwordFlag
	if password == "" {
		var err error
		if password, err = c.prompt("Password: "); err != nil {
			return err
		}
	}
	_, err := c.h.Login(handlers.LoginForm{Email: *email, Password: password})
	return err
}

func (c *cli) deleteAccount(args []string) error {
	fs := c.flagSet("delete-account")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*yes {
		fmt.Fprint(c.stdout, "This deletes your account and all applications, interviews and notifications. Type \"yes\" to confirm: ")
		answer, err := readLine(c.in)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(c.stdout, "Cancelled")
			return nil
		}
	}
	return c.h.DeleteAccount()
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.stdout, label)
	secret, err := readPassword(c.stdin, c.in)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(c.stdout) // Print newline after password input
	return secret, nil
}

func readPassword(stdin io.Reader, fallback *bufio.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	return readLine(fallback)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// leadingID splits a positional id from the flags that follow it.
func leadingID(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}
