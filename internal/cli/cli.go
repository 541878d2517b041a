// Package cli is a line-oriented terminal front end for the roster.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/preston-bernstein/nba-roster-service/internal/app/session"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

const helpText = `Commands:
  list          show the roster
  add           add a player
  edit <id>     edit a player
  delete <id>   delete a player
  help          show this help
  quit          exit

When prompted for a field, press enter to keep the value in brackets or
type - to clear it.`

const clearValue = "-"

var errQuit = errors.New("quit")

// CLI reads commands from in and writes the roster UI to out.
type CLI struct {
	sess   *session.Session
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// New builds a CLI over the roster.
func New(r session.Roster, in io.Reader, out io.Writer, logger *slog.Logger) *CLI {
	return &CLI{
		sess:   session.New(r),
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run prints the roster and processes commands until quit, end of input or
// ctx cancellation.
func (c *CLI) Run(ctx context.Context) error {
	c.printTable()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := c.ask("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := c.dispatch(line); err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (c *CLI) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "list", "ls":
		c.printTable()
	case "add", "new":
		c.sess.OnCreate()
		return c.fillForm(session.Form{})
	case "edit":
		id, ok := c.parseID(args)
		if !ok {
			return nil
		}
		form, found := c.sess.OnEdit(id)
		if !found {
			c.println(session.MissingPlayerMsg)
			return nil
		}
		return c.fillForm(form)
	case "delete", "rm":
		id, ok := c.parseID(args)
		if !ok {
			return nil
		}
		return c.delete(id)
	case "help", "?":
		c.println(helpText)
	case "quit", "exit", "q":
		return errQuit
	default:
		c.printf("Unknown command %q. Type help for commands.\n", cmd)
	}
	return nil
}

// fillForm prompts for each field, offering defaults, until the roster
// accepts the submission.
func (c *CLI) fillForm(defaults session.Form) error {
	for {
		var form session.Form
		var err error
		if form.Number, err = c.askDefault("Number", defaults.Number); err != nil {
			c.sess.OnCancel()
			return err
		}
		if form.Name, err = c.askDefault("Name", defaults.Name); err != nil {
			c.sess.OnCancel()
			return err
		}
		if form.Position, err = c.askDefault("Position", defaults.Position); err != nil {
			c.sess.OnCancel()
			return err
		}

		res, err := c.sess.OnSubmit(form)
		switch {
		case errors.Is(err, roster.ErrValidation):
			c.println(res.Message)
			defaults = form
			continue
		case err != nil:
			logging.Error(c.logger, "save failed", err)
			c.println(res.Message)
			c.sess.OnCancel()
			return nil
		case !res.Found:
			c.println(res.Message)
		case res.Created:
			c.printf("Added %s (#%d).\n", res.Player.Name, res.Player.Number)
		default:
			c.printf("Updated %s.\n", res.Player.Name)
		}
		c.printTable()
		return nil
	}
}

func (c *CLI) delete(id int64) error {
	var askErr error
	confirm := func(prompt string) bool {
		answer, err := c.ask(prompt + " [y/N] ")
		if err != nil {
			askErr = err
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}

	if _, exists := c.lookup(id); !exists {
		c.println(session.MissingPlayerMsg)
		return nil
	}

	found, err := c.sess.OnDelete(id, confirm)
	if askErr != nil {
		return askErr
	}
	if err != nil {
		logging.Error(c.logger, "delete failed", err)
		c.printf("Could not delete player: %v\n", err)
		return nil
	}
	if found {
		c.println("Player deleted.")
		c.printTable()
	}
	return nil
}

func (c *CLI) lookup(id int64) (session.Row, bool) {
	for _, row := range c.sess.Rows() {
		if row.ID == id {
			return row, true
		}
	}
	return session.Row{}, false
}

func (c *CLI) parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		c.println("Usage: edit <id> | delete <id>")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		c.printf("Invalid player id %q.\n", args[0])
		return 0, false
	}
	return id, true
}

func (c *CLI) printTable() {
	rows := c.sess.Rows()
	if len(rows) == 0 {
		c.println(session.EmptyMessage)
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", strings.Join(session.Headers, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Number, r.Name, r.Position, r.GamesPlayed, r.PointsAvg)
	}
	_ = tw.Flush()
}

func (c *CLI) ask(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *CLI) askDefault(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	v, err := c.ask(prompt)
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(v) {
	case "":
		return def, nil
	case clearValue:
		return "", nil
	}
	return v, nil
}

func (c *CLI) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
