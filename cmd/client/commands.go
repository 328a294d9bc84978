package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/MKhiriev/go-fin-tracker/internal/adapter"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

const usage = `usage: fin-client [-s address] [-timeout d] [-token-file path] <command> [flags]

commands:
  register -username U -email E      create an account (password is prompted)
  login -email E                     sign in and store the access token
  logout                             revoke the session and forget the token
  add -amount A -category C -type T  record a transaction (-description, -date optional)
  list                               list transactions (-page, -per-page, -sort-by, -sort-order,
                                     -category, -type, -from, -to)
  get ID                             show one transaction
  delete ID                          delete one transaction
  health                             server health
  version                            client and server versions`

var (
	errUsage       = errors.New("invalid usage")
	errNotLoggedIn = errors.New("not logged in, run `fin-client login` first")
)

type cli struct {
	adapter   adapter.ServerAdapter
	tokenFile string

	stdin        io.Reader
	stdout       io.Writer
	readPassword func(prompt string) (string, error)

	logger *logger.Logger
}

func newCLI(serverAdapter adapter.ServerAdapter, tokenFile string, logger *logger.Logger) *cli {
	c := &cli{
		adapter:   serverAdapter,
		tokenFile: tokenFile,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		logger:    logger,
	}
	c.readPassword = c.promptPassword
	return c
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "register":
		return c.register(ctx, rest)
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.withToken(ctx, c.logout)
	case "add":
		return c.withToken(ctx, func(ctx context.Context) error { return c.add(ctx, rest) })
	case "list":
		return c.withToken(ctx, func(ctx context.Context) error { return c.list(ctx, rest) })
	case "get":
		return c.withToken(ctx, func(ctx context.Context) error { return c.get(ctx, rest) })
	case "delete":
		return c.withToken(ctx, func(ctx context.Context) error { return c.delete(ctx, rest) })
	case "health":
		return c.health(ctx)
	case "version":
		return c.version(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(c.stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// withToken loads the stored access token before fn runs. A rejected token
// is removed so that the next run asks for a fresh login.
func (c *cli) withToken(ctx context.Context, fn func(ctx context.Context) error) error {
	raw, err := os.ReadFile(c.tokenFile)
	if err != nil || strings.TrimSpace(string(raw)) == "" {
		return errNotLoggedIn
	}
	c.adapter.SetToken(string(raw))

	err = fn(ctx)
	if errors.Is(err, adapter.ErrUnauthorized) {
		c.forgetToken()
		return fmt.Errorf("%w (session expired, log in again)", err)
	}
	return err
}

func (c *cli) forgetToken() {
	if err := os.Remove(c.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn().Err(err).Str("func", "cli.forgetToken").Msg("cannot remove token file")
	}
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "login email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return fmt.Errorf("%w: register needs -username and -email", errUsage)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	registered, err := c.adapter.Register(ctx, models.RegisterRequest{Username: *username, Email: *email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "%s (id %d)\n", registered.Message, registered.UserID)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "login email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("%w: login needs -email", errUsage)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	tokens, err := c.adapter.Login(ctx, models.LoginRequest{Email: *email, Password: password})
	if err != nil {
		return err
	}

	if err = os.WriteFile(c.tokenFile, []byte(tokens.AccessToken), 0o600); err != nil {
		return fmt.Errorf("cannot save access token: %w", err)
	}

	fmt.Fprintln(c.stdout, "logged in")
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.adapter.Logout(ctx); err != nil {
		return err
	}

	c.forgetToken()
	fmt.Fprintln(c.stdout, "logged out successfully")
	return nil
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	amount := fs.String("amount", "", "positive amount, e.g. 12.50")
	category := fs.String("category", "", "category name")
	kind := fs.String("type", string(models.TransactionTypeExpense), "income or expense")
	description := fs.String("description", "", "free text")
	date := fs.String("date", "", "YYYY-MM-DD or RFC 3339, defaults to now")
	if err := fs.Parse(args); err != nil {
		return err
	}

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("%w: -amount must be a number", errUsage)
	}

	request := models.CreateTransactionRequest{
		Amount:          value,
		Category:        *category,
		TransactionType: models.TransactionType(*kind),
	}
	if *description != "" {
		request.Description = description
	}
	if request.Date, err = parseDate("date", *date); err != nil {
		return err
	}

	created, err := c.adapter.CreateTransaction(ctx, request)
	if err != nil {
		return err
	}

	return c.printJSON(created)
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	page := fs.Int("page", 0, "page number, from 1")
	perPage := fs.Int("per-page", 0, "rows per page, 1..100")
	sortBy := fs.String("sort-by", "", "created_at, amount, updated_at, category or transaction_type")
	sortOrder := fs.String("sort-order", "", "asc or desc")
	category := fs.String("category", "", "exact category")
	kind := fs.String("type", "", "income or expense")
	from := fs.String("from", "", "start date")
	to := fs.String("to", "", "end date, inclusive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := models.TransactionQuery{
		Page: models.PageRequest{Page: *page, PerPage: *perPage},
		Sort: models.Sort{SortBy: models.SortField(*sortBy), SortOrder: models.SortOrder(*sortOrder)},
	}
	if *category != "" {
		query.Filters.Category = category
	}
	if *kind != "" {
		transactionType := models.TransactionType(*kind)
		query.Filters.TransactionType = &transactionType
	}

	var err error
	if query.Filters.StartDate, err = parseDate("from", *from); err != nil {
		return err
	}
	if query.Filters.EndDate, err = parseDate("to", *to); err != nil {
		return err
	}

	result, err := c.adapter.ListTransactions(ctx, query)
	if err != nil {
		return err
	}

	c.printPage(result)
	return nil
}

func (c *cli) get(ctx context.Context, args []string) error {
	id, err := transactionIDArg(args)
	if err != nil {
		return err
	}

	found, err := c.adapter.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	return c.printJSON(found)
}

func (c *cli) delete(ctx context.Context, args []string) error {
	id, err := transactionIDArg(args)
	if err != nil {
		return err
	}

	deletedID, err := c.adapter.DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "transaction %d deleted\n", deletedID)
	return nil
}

func (c *cli) health(ctx context.Context) error {
	report, err := c.adapter.Health(ctx)
	if report.Status != "" {
		if printErr := c.printJSON(report); printErr != nil {
			return printErr
		}
	}
	return err
}

func (c *cli) version(ctx context.Context) error {
	printBuildInfo(c.stdout)

	server, err := c.adapter.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stdout, "Server version: %s (%s, %s)\n", server.Version, server.Date, server.Commit)
	return nil
}

func (c *cli) printJSON(v any) error {
	encoder := json.NewEncoder(c.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (c *cli) printPage(page models.TransactionPage) {
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, t := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.CreatedAt.Format(time.DateOnly), t.TransactionType, t.Amount.StringFixed(models.AmountPlaces), t.Category, t.Description)
	}
	_ = w.Flush()

	meta := page.Meta
	fmt.Fprintf(c.stdout, "page %d of %d, %d record(s)\n", meta.Page, meta.TotalPages, meta.TotalRecords)
}

// promptPassword reads without echo from a terminal and falls back to a
// plain line read when stdin is piped.
func (c *cli) promptPassword(prompt string) (string, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(c.stdout, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(c.stdout)
		if err != nil {
			return "", fmt.Errorf("cannot read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("cannot read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func transactionIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one transaction id", errUsage)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: transaction id must be a positive integer", errUsage)
	}
	return id, nil
}

func parseDate(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("%w: -%s must be YYYY-MM-DD or RFC 3339", errUsage, name)
}
