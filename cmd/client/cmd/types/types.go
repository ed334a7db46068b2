// Package types holds what the client subcommands share: the App carried in
// the command context and terminal prompts.
package types

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"primer/internal/app/client"
)

type ctxKey struct{}

// ClientAppKey is the context key under which root stores *client.App.
var ClientAppKey = ctxKey{}

func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, ClientAppKey, app)
}

// App returns the client App from the command context.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return app, nil
}

var stdin = bufio.NewReader(os.Stdin)

// ReadLine prints label and reads one line from stdin.
func ReadLine(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads without echo on a terminal and falls back to a plain
// line when stdin is piped.
func ReadSecret(out io.Writer, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ReadLine(out, label)
	}

	fmt.Fprint(out, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(b), nil
}
