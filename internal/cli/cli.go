// Package cli implements the devconnector command-line client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/ferdiebergado/devconnector/internal/client"
	"github.com/ferdiebergado/devconnector/internal/pkg/logging"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

// ErrNotLoggedIn is returned by commands that need a verified session.
var ErrNotLoggedIn = errors.New("not logged in")

const usage = `usage: devconnector <command> [flags]

commands:
  register -name NAME -email EMAIL -password PASSWORD
  login -email EMAIL -password PASSWORD
  logout
  whoami
  users
  profile
  profile save -status STATUS -skills a,b,c [-bio BIO] [-website URL]
               [-twitter URL] [-linkedin URL] [-github URL]

environment:
  DEVCONNECTOR_API_URL         API base URL (default http://localhost:5000)
  DEVCONNECTOR_AUTH_HEADER     credential header, must match the server's jwt.header
                               (default x-auth-token)
  DEVCONNECTOR_TOKEN_FILE      credential file (default in the user config dir)
  DEVCONNECTOR_RELOAD_TIMEOUT  identity reload timeout (default 10s)
  DEVCONNECTOR_HTTP_TIMEOUT    per-request timeout (default 30s)
  DEVCONNECTOR_LOG_LEVEL       debug, info, warn or error (default warn)
`

// Runner executes one command against a session.
type Runner struct {
	store  *client.Store
	api    *client.API
	stdout io.Writer
	stderr io.Writer
}

func NewRunner(store *client.Store, api *client.API, stdout, stderr io.Writer) *Runner {
	return &Runner{store: store, api: api, stdout: stdout, stderr: stderr}
}

// Run configures logging and the session from environ, then executes args.
func Run(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig(environ)
	if err != nil {
		return err
	}

	logging.SetupLogger("development", cfg.LogLevel, stderr)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	defer transport.CloseIdleConnections()

	store, api, err := client.NewSession(cfg.APIURL, client.NewFileStorage(cfg.TokenFile),
		[]client.StoreOption{client.WithReloadTimeout(cfg.ReloadTimeout)},
		client.WithHeader(cfg.Header),
		client.WithBaseTransport(transport),
		client.WithHTTPTimeout(cfg.HTTPTimeout))
	if err != nil {
		return err
	}
	defer store.Wait()

	slog.Debug("Session configured.", "api_url", cfg.APIURL, "auth_header", cfg.Header, "token_file", cfg.TokenFile)

	return NewRunner(store, api, stdout, stderr).Execute(ctx, args)
}

func (r *Runner) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(r.stderr, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return r.register(ctx, rest)
	case "login":
		return r.login(ctx, rest)
	case "logout":
		return r.logout()
	case "whoami":
		return r.whoami(ctx)
	case "users":
		return r.users(ctx)
	case "profile":
		if len(rest) > 0 && rest[0] == "save" {
			return r.saveProfile(ctx, rest[1:])
		}
		return r.profile(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(r.stdout, usage)
		return nil
	default:
		fmt.Fprint(r.stderr, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (r *Runner) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	return fs
}

func (r *Runner) register(ctx context.Context, args []string) error {
	fs := r.flagSet("register")
	var in client.RegisterInput
	fs.StringVar(&in.Name, "name", "", "display name")
	fs.StringVar(&in.Email, "email", "", "e-mail address")
	fs.StringVar(&in.Password, "password", "", "password (at least 6 characters)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	res := r.store.Register(ctx, in)
	if !res.Success {
		return errors.New(res.Error)
	}

	fmt.Fprintf(r.stdout, "Registered and logged in as %s.\n", r.store.State().User.Name)
	return nil
}

func (r *Runner) login(ctx context.Context, args []string) error {
	fs := r.flagSet("login")
	var in client.LoginInput
	fs.StringVar(&in.Email, "email", "", "e-mail address")
	fs.StringVar(&in.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	res := r.store.Login(ctx, in)
	if !res.Success {
		return errors.New(res.Error)
	}

	fmt.Fprintf(r.stdout, "Logged in as %s.\n", r.store.State().User.Name)
	return nil
}

func (r *Runner) logout() error {
	r.store.Logout()
	fmt.Fprintln(r.stdout, "Logged out.")
	return nil
}

// session starts the store and waits for the stored credential to settle.
func (r *Runner) session(ctx context.Context) (client.State, error) {
	select {
	case state := <-r.store.Start(ctx):
		return state, nil
	case <-ctx.Done():
		return client.State{}, ctx.Err()
	}
}

func (r *Runner) whoami(ctx context.Context) error {
	state, err := r.session(ctx)
	if err != nil {
		return err
	}
	if state.Status != client.StatusAuthenticated {
		fmt.Fprintln(r.stdout, "Not logged in.")
		return nil
	}

	fmt.Fprintf(r.stdout, "%s <%s>\n", state.User.Name, state.User.Email)
	return nil
}

func (r *Runner) users(ctx context.Context) error {
	users, err := r.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	return r.print(users)
}

func (r *Runner) profile(ctx context.Context) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	p, err := r.api.MyProfile(ctx)
	if err != nil {
		return err
	}
	return r.print(p)
}

func (r *Runner) saveProfile(ctx context.Context, args []string) error {
	fs := r.flagSet("profile save")
	var (
		in     client.ProfileInput
		skills string
	)
	fs.StringVar(&in.Status, "status", "", "professional status")
	fs.StringVar(&skills, "skills", "", "comma-separated skills")
	fs.StringVar(&in.Bio, "bio", "", "short bio")
	fs.StringVar(&in.Website, "website", "", "website URL")
	fs.StringVar(&in.Twitter, "twitter", "", "Twitter URL")
	fs.StringVar(&in.LinkedIn, "linkedin", "", "LinkedIn URL")
	fs.StringVar(&in.GitHub, "github", "", "GitHub URL")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	in.Skills = splitSkills(skills)

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	p, err := r.api.SaveProfile(ctx, in)
	if err != nil {
		return err
	}
	return r.print(p)
}

func (r *Runner) requireSession(ctx context.Context) error {
	state, err := r.session(ctx)
	if err != nil {
		return err
	}
	if state.Status != client.StatusAuthenticated {
		return ErrNotLoggedIn
	}
	return nil
}

func (r *Runner) print(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitSkills(s string) []string {
	var skills []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

// Describe turns err into the line shown to the user.
func Describe(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(apiErr.Message)
	if b.Len() == 0 {
		b.WriteString(apiErr.Error())
	}
	for _, field := range slices.Sorted(maps.Keys(apiErr.Fields)) {
		fmt.Fprintf(&b, "\n  %s: %s", field, apiErr.Fields[field])
	}
	return b.String()
}
