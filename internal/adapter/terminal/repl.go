package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bluemanta7/MantaMind/internal/entity"
	"github.com/bluemanta7/MantaMind/internal/usecase/account"
	"github.com/bluemanta7/MantaMind/internal/usecase/mastery"
	"github.com/bluemanta7/MantaMind/internal/usecase/quiz"
)

// Accounts is the account surface the REPL drives.
type Accounts interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	RequireLogin(ctx context.Context) (string, error)
	Settings(ctx context.Context) entity.Settings
	UpdateSettings(ctx context.Context, scope account.Scope, key, value string) error
}

// Quiz is the selector surface the REPL drives.
type Quiz interface {
	Dispatch(ctx context.Context, ev quiz.Event) error
	Start(ctx context.Context) error
	State() quiz.State
	Reset()
}

// Progress is the engine surface the REPL reads.
type Progress interface {
	Init(ctx context.Context) (mastery.Snapshot, error)
}

const helpText = `Commands:
  signup [name]            create an account and log in
  login [name]             log in
  logout                   log out
  start                    start or resume a challenge
  next                     go to the next question
  <n> | answer <n>         choose option n
  match 1=2 2=1 ...        pair words with definitions
  hint                     show synonyms of the current word
  giveup                   reveal the answer
  progress                 show progress details
  settings                 show settings
  settings <key> <value>   change one of your settings
  settings app <key> <value>
                           change an app-wide default
  exit | quit              leave`

// REPL is the read-eval-print loop of the play command.
type REPL struct {
	accounts Accounts
	quiz     Quiz
	progress Progress
	renderer *Renderer
	prompter *Prompter
	out      io.Writer
	logger   logrus.FieldLogger
}

// NewREPL wires a REPL. out should be the writer the renderer prints to.
func NewREPL(accounts Accounts, q Quiz, progress Progress, renderer *Renderer, prompter *Prompter, out io.Writer, logger logrus.FieldLogger) *REPL {
	return &REPL{
		accounts: accounts,
		quiz:     q,
		progress: progress,
		renderer: renderer,
		prompter: prompter,
		out:      out,
		logger:   logger,
	}
}

// Run reads commands until exit or end of input. Rejected operations are
// printed inline and never end the loop.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "MantaMind vocabulary trainer. Type 'help' for commands.")
	if user, err := r.accounts.RequireLogin(ctx); err == nil {
		fmt.Fprintf(r.out, "Logged in as %s.\n", user)
		r.showProgress(ctx)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, r.prompt(ctx))
		line, err := r.prompter.Line()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}
		if done := r.Exec(ctx, line); done {
			return nil
		}
	}
}

func (r *REPL) prompt(ctx context.Context) string {
	if user, err := r.accounts.RequireLogin(ctx); err == nil {
		return user + "> "
	}
	return "> "
}

// Exec runs one command line and reports whether the loop should end.
func (r *REPL) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "signup":
		err = r.credentials(ctx, args, r.accounts.Signup)
	case "login":
		err = r.credentials(ctx, args, r.accounts.Login)
	case "logout":
		r.quiz.Reset()
		if err = r.accounts.Logout(ctx); err == nil {
			fmt.Fprintln(r.out, "Logged out.")
		}
	case "start":
		err = r.start(ctx)
	case "next":
		err = r.dispatch(ctx, quiz.Event{Kind: quiz.Advance})
	case "answer":
		if len(args) != 1 {
			err = fmt.Errorf("%w: usage: answer <n>", entity.ErrInvalidSelection)
			break
		}
		err = r.choose(ctx, args[0])
	case "match":
		err = r.match(ctx, args)
	case "hint":
		err = r.dispatch(ctx, quiz.Event{Kind: quiz.HintRequested})
	case "giveup":
		err = r.dispatch(ctx, quiz.Event{Kind: quiz.GiveUp})
	case "progress":
		if err = r.requireLogin(ctx); err == nil {
			r.showProgress(ctx)
		}
	case "settings":
		err = r.settings(ctx, args)
	case "exit", "quit":
		fmt.Fprintln(r.out, "Bye!")
		return true
	default:
		if _, convErr := strconv.Atoi(cmd); convErr == nil && len(args) == 0 {
			err = r.choose(ctx, cmd)
			break
		}
		fmt.Fprintln(r.out, "Unknown command:", cmd)
	}

	if err != nil {
		r.logger.WithError(err).WithField("command", cmd).Debug("command rejected")
		r.renderer.ShowError(err)
	}
	return false
}

func (r *REPL) credentials(ctx context.Context, args []string, fn func(ctx context.Context, username, password string) error) error {
	var (
		username string
		err      error
	)
	if len(args) > 0 {
		username = args[0]
	} else if username, err = r.prompter.Text("Username"); err != nil {
		return err
	}
	password, err := r.prompter.Password("Password")
	if err != nil {
		return err
	}
	r.quiz.Reset()
	if err := fn(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Welcome, %s!\n", strings.TrimSpace(username))
	r.showProgress(ctx)
	return nil
}

func (r *REPL) requireLogin(ctx context.Context) error {
	_, err := r.accounts.RequireLogin(ctx)
	return err
}

// start resumes a stored challenge on first use and otherwise draws a new
// random word.
func (r *REPL) start(ctx context.Context) error {
	if err := r.requireLogin(ctx); err != nil {
		return err
	}
	switch r.quiz.State() {
	case quiz.NotStarted:
		return r.quiz.Dispatch(ctx, quiz.Event{Kind: quiz.Advance})
	case quiz.AwaitingAnswer:
		return entity.ErrAnswerPending
	default:
		return r.quiz.Start(ctx)
	}
}

func (r *REPL) dispatch(ctx context.Context, ev quiz.Event) error {
	if err := r.requireLogin(ctx); err != nil {
		return err
	}
	return r.quiz.Dispatch(ctx, ev)
}

func (r *REPL) choose(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Errorf("%w: %q is not an option number", entity.ErrInvalidSelection, arg)
	}
	return r.dispatch(ctx, quiz.Event{Kind: quiz.AnswerSelected, Selection: quiz.Selection{Choice: n - 1}})
}

func (r *REPL) match(ctx context.Context, args []string) error {
	pairs, err := ParsePairs(args)
	if err != nil {
		return err
	}
	return r.dispatch(ctx, quiz.Event{Kind: quiz.AnswerSelected, Selection: quiz.Selection{Pairs: pairs}})
}

// ParsePairs parses 1-based "left=right" tokens into 0-based pairs.
func ParsePairs(args []string) (map[int]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: usage: match 1=2 2=1 ...", entity.ErrInvalidSelection)
	}
	pairs := make(map[int]int, len(args))
	for _, tok := range args {
		l, rt, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a pair", entity.ErrInvalidSelection, tok)
		}
		li, lerr := strconv.Atoi(strings.TrimSpace(l))
		ri, rerr := strconv.Atoi(strings.TrimSpace(rt))
		if lerr != nil || rerr != nil || li < 1 || ri < 1 {
			return nil, fmt.Errorf("%w: %q is not a pair", entity.ErrInvalidSelection, tok)
		}
		if _, dup := pairs[li-1]; dup {
			return nil, fmt.Errorf("%w: word %d paired twice", entity.ErrInvalidSelection, li)
		}
		pairs[li-1] = ri - 1
	}
	return pairs, nil
}

func (r *REPL) showProgress(ctx context.Context) {
	snap, err := r.progress.Init(ctx)
	if err != nil {
		r.renderer.ShowError(err)
		return
	}
	fmt.Fprintln(r.out, snap.Details())
}

func (r *REPL) settings(ctx context.Context, args []string) error {
	scope := account.ScopeUser
	if len(args) > 0 && strings.EqualFold(args[0], string(account.ScopeApp)) {
		scope, args = account.ScopeApp, args[1:]
	}
	switch len(args) {
	case 0:
		if scope == account.ScopeApp {
			return fmt.Errorf("%w: usage: settings app <key> <value>", entity.ErrInvalidSetting)
		}
		r.renderer.ShowSettings(r.accounts.Settings(ctx))
		return nil
	case 2:
		if err := r.accounts.UpdateSettings(ctx, scope, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Set %s = %s (%s).\n", args[0], args[1], scope)
		return nil
	default:
		return fmt.Errorf("%w: usage: settings [app] <key> <value>; keys: %s", entity.ErrInvalidSetting, strings.Join(account.SettingKeys, ", "))
	}
}
