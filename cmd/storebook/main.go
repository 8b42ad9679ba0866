// Command storebook is a small front end over the ledger store: it
// registers and logs in users, manages stores, records ledger entries
// and prints the aggregate views. All state it holds between runs lives
// in the session file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/storebook/storebook/config"
	"github.com/storebook/storebook/infra"
	"github.com/storebook/storebook/infra/migration"
	infrarepo "github.com/storebook/storebook/infra/repository"
	"github.com/storebook/storebook/pkg/domain"
	domledger "github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	ledgersvc "github.com/storebook/storebook/pkg/service/ledger"
	"github.com/storebook/storebook/pkg/service/registry"
	"github.com/storebook/storebook/pkg/service/report"
	usersvc "github.com/storebook/storebook/pkg/service/user"
	"github.com/storebook/storebook/pkg/session"
)

const usage = `Usage: storebook <command> [arguments]

Commands:
  register <username> <email> <birth-date>   create an account (password is prompted)
  login <username>                           log in (password is prompted)
  logout                                     clear the saved session
  stores                                     list your stores
  add-store <your-name> <name> <type> <owner> create a store
  use-store <store-id>                       select the active store
  add <kind> [flags]                         record an entry
  list <kind> [-search text]                 list entries
  edit <kind> <id> [flags]                   edit an entry
  delete <kind> <id>                         delete an entry
  sum <kind> [-all]                          total one kind
  report                                     profit/loss report
  series <kind> [-months n]                  monthly totals
  recent [-limit n] [-all]                   latest entries across kinds
  export [-o path]                           write the CSV report

Kinds: capital, income, expenses, assets, liabilities`

type app struct {
	cfg      *config.AppConfig
	sessions *session.Store
	sess     *session.Session
	users    *usersvc.Service
	registry *registry.Service
	ledger   *ledgersvc.Service
	reports  *report.Service
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.LoadAppConfig(logger)
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		color.Red("Failed to open database: %v", err)
		os.Exit(1)
	}
	if err := migration.Run(db, logger); err != nil {
		color.Red("Failed to prepare database: %v", err)
		os.Exit(1)
	}

	uow := infrarepo.NewUoW(db)
	a := &app{
		cfg:      cfg,
		sessions: session.NewStore(cfg.Session.Path),
		users:    usersvc.New(uow, logger),
		registry: registry.New(uow, logger),
		ledger:   ledgersvc.New(uow, logger),
		reports:  report.New(uow, logger),
	}
	a.sess, err = a.sessions.Load()
	if err != nil {
		color.Red("Failed to read session: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := a.sessions.Clear(); err != nil {
			return err
		}
		color.Green("Logged out.")
		return nil
	case "stores":
		return a.listStores(ctx)
	case "add-store":
		return a.addStore(ctx, args)
	case "use-store":
		return a.useStore(ctx, args)
	case "add":
		return a.addEntry(ctx, args)
	case "list":
		return a.listEntries(ctx, args)
	case "edit":
		return a.editEntry(ctx, args)
	case "delete":
		return a.deleteEntry(ctx, args)
	case "sum":
		return a.sum(ctx, args)
	case "report":
		return a.profitLoss(ctx)
	case "series":
		return a.series(ctx, args)
	case "recent":
		return a.recent(ctx, args)
	case "export":
		return a.export(ctx, args)
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: register <username> <email> <birth-date>")
	}
	password, err := promptPassword("Choose a password: ")
	if err != nil {
		return err
	}
	u, err := a.users.Register(ctx, dto.UserCreate{
		Username:  args[0],
		Password:  password,
		Email:     args[1],
		BirthDate: args[2],
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("username already exists")
	}
	if err != nil {
		return err
	}
	a.sess = &session.Session{UserID: u.ID}
	if err := a.sessions.Save(*a.sess); err != nil {
		return err
	}
	color.Green("User %s registered. Add a store with: storebook add-store", u.Username)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: login <username>")
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	u, err := a.users.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	storeID, err := a.registry.ResolveActiveStore(ctx, u.ID, 0)
	if errors.Is(err, domain.ErrNoStore) {
		a.sess = &session.Session{UserID: u.ID}
		if err := a.sessions.Save(*a.sess); err != nil {
			return err
		}
		color.Yellow("No store associated with this user. Please add a store.")
		return nil
	}
	if err != nil {
		return err
	}
	a.sess = &session.Session{UserID: u.ID, StoreID: storeID}
	if err := a.sessions.Save(*a.sess); err != nil {
		return err
	}
	color.Green("Logged in as %s (store %d).", u.Username, storeID)
	return nil
}

func (a *app) listStores(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	stores, err := a.registry.ListStores(ctx, a.sess.UserID)
	if err != nil {
		return err
	}
	if len(stores) == 0 {
		fmt.Println("No stores yet.")
		return nil
	}
	for _, st := range stores {
		marker := " "
		if st.ID == a.sess.StoreID {
			marker = "*"
		}
		fmt.Printf("%s %d\t%s\n", marker, st.ID, st.StoreName)
	}
	return nil
}

func (a *app) addStore(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) < 4 {
		return fmt.Errorf("usage: add-store <your-name> <store-name> <store-type> <owner-name>")
	}
	id, err := a.registry.CreateStore(ctx, a.sess.UserID, dto.StoreCreate{
		Username:  args[0],
		StoreName: args[1],
		StoreType: args[2],
		OwnerName: args[3],
	})
	if err != nil {
		return err
	}
	a.sess.StoreID = id
	if err := a.sessions.Save(*a.sess); err != nil {
		return err
	}
	color.Green("Store %d created and selected.", id)
	return nil
}

func (a *app) useStore(ctx context.Context, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: use-store <store-id>")
	}
	preferred, err := parseID(args[0])
	if err != nil {
		return err
	}
	id, err := a.registry.ResolveActiveStore(ctx, a.sess.UserID, preferred)
	if err != nil {
		return err
	}
	if id != preferred {
		return fmt.Errorf("store %d does not belong to you", preferred)
	}
	a.sess.StoreID = id
	if err := a.sessions.Save(*a.sess); err != nil {
		return err
	}
	color.Green("Store %d selected.", id)
	return nil
}

func (a *app) addEntry(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: add <kind> [flags]")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	date := fs.String("date", "", "entry date (YYYY-MM-DD)")
	amount := fs.Float64("amount", 0, "amount or value")
	name := fs.String("name", "", "asset/liability name")
	category := fs.String("category", "", "category")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	id, err := a.ledger.Insert(ctx, kind, storeID, dto.EntryCreate{
		Date:        *date,
		Amount:      *amount,
		Name:        *name,
		Category:    *category,
		Description: *desc,
	})
	if err != nil {
		return err
	}
	color.Green("%s entry %d saved.", kind.Title(), id)
	return nil
}

func (a *app) listEntries(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: list <kind> [-search text]")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	search := fs.String("search", "", "substring filter")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	rows, err := a.ledger.List(ctx, kind, storeID, *search)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No records found.")
		return nil
	}
	for _, r := range rows {
		detail := r.Description
		if r.Name != "" {
			detail = r.Name
		}
		fmt.Printf("%d\t%s\t%.2f\t%s\t%s\n", r.ID, r.Date, r.Amount, r.Category, detail)
	}
	return nil
}

func (a *app) editEntry(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: edit <kind> <id> [flags]")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	date := fs.String("date", "", "entry date (YYYY-MM-DD)")
	amount := fs.String("amount", "", "amount or value")
	name := fs.String("name", "", "asset/liability name")
	category := fs.String("category", "", "category")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}
	var update dto.EntryUpdate
	if *date != "" {
		update.Date = date
	}
	if *amount != "" {
		v, err := strconv.ParseFloat(*amount, 64)
		if err != nil {
			return fmt.Errorf("please enter a valid number for amount: %w", err)
		}
		update.Amount = &v
	}
	if *name != "" {
		update.Name = name
	}
	if *category != "" {
		update.Category = category
	}
	if *desc != "" {
		update.Description = desc
	}
	if err := a.ledger.Update(ctx, kind, storeID, id, update); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("entry %d not found or does not belong to the current store", id)
		}
		return err
	}
	color.Green("Entry updated.")
	return nil
}

func (a *app) deleteEntry(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: delete <kind> <id>")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	if err := a.ledger.Delete(ctx, kind, storeID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("entry %d not found or does not belong to the current store", id)
		}
		return err
	}
	color.Green("Entry deleted.")
	return nil
}

func (a *app) sum(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sum <kind> [-all]")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("sum", flag.ContinueOnError)
	all := fs.Bool("all", false, "sum across all your stores")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	scope, err := a.scope(ctx, *all)
	if err != nil {
		return err
	}
	total, err := a.reports.Sum(ctx, kind, scope)
	if err != nil {
		return err
	}
	fmt.Printf("Total %s: %.2f\n", kind.Title(), total)
	return nil
}

func (a *app) profitLoss(ctx context.Context) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	r, err := a.reports.ProfitLoss(ctx, storeID)
	if err != nil {
		return err
	}
	fmt.Printf("Total Capital:      %.2f\n", r.TotalCapital)
	fmt.Printf("Total Income:       %.2f\n", r.TotalIncome)
	fmt.Printf("Total Expenses:     %.2f\n", r.TotalExpenses)
	fmt.Printf("Total Liabilities:  %.2f\n", r.TotalLiabilities)
	fmt.Printf("Total Assets Value: %.2f\n", r.TotalAssets)
	switch r.Classification {
	case domledger.Profit:
		color.Green("Profit: %.2f", r.Net)
	case domledger.Loss:
		color.Red("Loss: %.2f", -r.Net)
	default:
		fmt.Println("Break-even")
	}
	return nil
}

func (a *app) series(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: series <kind> [-months n]")
	}
	kind, err := domledger.ParseKind(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("series", flag.ContinueOnError)
	months := fs.Int("months", 6, "trailing months to include")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	series, err := a.reports.MonthlySeries(ctx, storeID, kind, *months)
	if err != nil {
		return err
	}
	for _, m := range series {
		fmt.Printf("%s\t%.2f\n", m.Month, m.Total)
	}
	return nil
}

func (a *app) recent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recent", flag.ContinueOnError)
	limit := fs.Int("limit", 3, "number of entries")
	all := fs.Bool("all", false, "across all your stores")
	if err := fs.Parse(args); err != nil {
		return err
	}
	scope, err := a.scope(ctx, *all)
	if err != nil {
		return err
	}
	rows, err := a.reports.RecentEntries(ctx, scope, *limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No entries found.")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%s\t%s\t%.2f\t%s\n", r.Kind, r.Date, r.Amount, r.Detail)
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", a.cfg.Export.Path, "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := a.reports.ExportCSV(ctx, f, storeID); err != nil {
		return err
	}
	color.Green("Report exported as %s", *out)
	return nil
}

func (a *app) requireUser() error {
	if a.sess == nil || a.sess.UserID == 0 {
		return fmt.Errorf("not logged in; run: storebook login <username>")
	}
	return nil
}

// requireStore resolves the active store for the session, falling back
// to the user's first store when the saved one is stale.
func (a *app) requireStore(ctx context.Context) (uint, error) {
	if err := a.requireUser(); err != nil {
		return 0, err
	}
	storeID, err := a.registry.ResolveActiveStore(ctx, a.sess.UserID, a.sess.StoreID)
	if errors.Is(err, domain.ErrNoStore) {
		return 0, fmt.Errorf("no store selected; run: storebook add-store")
	}
	if err != nil {
		return 0, err
	}
	if storeID != a.sess.StoreID {
		a.sess.StoreID = storeID
		if err := a.sessions.Save(*a.sess); err != nil {
			return 0, err
		}
	}
	return storeID, nil
}

func (a *app) scope(ctx context.Context, all bool) (domledger.Scope, error) {
	if all {
		if err := a.requireUser(); err != nil {
			return domledger.Scope{}, err
		}
		return a.registry.UserScope(ctx, a.sess.UserID)
	}
	storeID, err := a.requireStore(ctx)
	if err != nil {
		return domledger.Scope{}, err
	}
	return domledger.OneStore(storeID), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("entry id must be an integer")
	}
	return uint(id), nil
}
