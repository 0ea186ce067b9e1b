package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/paisawise/pw-mobile-go/config"
	"github.com/paisawise/pw-mobile-go/internal/adapters/loopback"
	"github.com/paisawise/pw-mobile-go/internal/bootstrap"
	"github.com/paisawise/pw-mobile-go/internal/domain/finance"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

const loginWait = 5 * time.Minute

// ensureSession rehydrates the persisted session and fails the command when
// no valid session exists.
func ensureSession(c *commandContext) error {
	state := c.Client.Auth.Restore(c.Ctx)
	if !state.Authenticated() {
		return errors.New(`not signed in; run "paisawise login"`)
	}
	return nil
}

func runLogin(c *commandContext, _ []string) error {
	if state := c.Client.Auth.Restore(c.Ctx); state.Authenticated() {
		fmt.Printf("already signed in as %s <%s>\n", state.User.Name, state.User.Email)
		return nil
	}

	source := bootstrap.BuildRedirectSource(&c.Config, c.Logger)
	defer source.Close() //nolint:errcheck // Best-effort cleanup on exit.

	events, err := source.Start(c.Ctx)
	if err != nil {
		return fmt.Errorf("start redirect source: %w", err)
	}

	callback := callbackURL(&c.Config, source)
	authURL := c.Client.Auth.BeginLogin(c.Ctx, callback)
	if authURL == "" {
		return errors.New("could not start the login flow")
	}
	fmt.Printf("complete the sign-in in your browser:\n  %s\n", authURL)
	if c.Config.Auth.Redirect == config.RedirectModeDeepLink {
		fmt.Println("paste the redirect URL below once the provider returns it:")
	}

	timer := time.NewTimer(loginWait)
	defer timer.Stop()
	for {
		select {
		case <-c.Ctx.Done():
			return c.Ctx.Err()
		case <-timer.C:
			return errors.New("timed out waiting for the login redirect")
		case url, open := <-events:
			if !open {
				return errors.New("redirect source closed before login completed")
			}
			if state := c.Client.Auth.HandleRedirect(c.Ctx, url); state.Authenticated() {
				fmt.Printf("signed in as %s <%s>\n", state.User.Name, state.User.Email)
				return nil
			}
			// A redirect without a usable credential stands down; keep
			// waiting for the real one until the deadline.
		}
	}
}

// callbackURL picks the runtime-appropriate redirect target: the loopback
// listener address in a browser context, the custom scheme for deep links.
func callbackURL(cfg *config.AppConfig, source ports.RedirectSource) string {
	if lb, ok := source.(*loopback.Source); ok {
		return lb.CallbackURL()
	}
	return cfg.Auth.CallbackScheme + "://auth/callback"
}

func runLogout(c *commandContext, _ []string) error {
	c.Client.Auth.Restore(c.Ctx)
	c.Client.Auth.Logout(c.Ctx)
	fmt.Println("signed out")
	return nil
}

func runStatus(c *commandContext, _ []string) error {
	state := c.Client.Auth.Restore(c.Ctx)
	if !state.Authenticated() {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("signed in as %s <%s>\n", state.User.Name, state.User.Email)
	return nil
}

func runDashboard(c *commandContext, _ []string) error {
	if err := ensureSession(c); err != nil {
		return err
	}
	dash, err := c.Client.Dashboard.Load(c.Ctx)
	if err != nil {
		return err
	}

	fmt.Printf("this month: income ₹%.2f, expenses ₹%.2f, savings ₹%.2f (%.1f%%)\n",
		dash.CashFlow.TotalIncome, dash.CashFlow.TotalExpenses,
		dash.CashFlow.Savings, dash.CashFlow.SavingsRate)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET") //nolint:errcheck
	for _, m := range dash.Monthly {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", m.Month.Format("2006-01"), m.Income, m.Expenses, m.Net()) //nolint:errcheck
	}
	fmt.Fprintln(w, "\nCATEGORY\tSPENT") //nolint:errcheck
	for _, ct := range dash.ByCategory {
		fmt.Fprintf(w, "%s\t%.2f\n", ct.Name, ct.Amount) //nolint:errcheck
	}
	return w.Flush()
}

func runRecord(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	amount := fs.Float64("amount", 0, "transaction amount")
	category := fs.String("category", "", "category name")
	typ := fs.String("type", "expense", "income or expense")
	desc := fs.String("desc", "", "description")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ensureSession(c); err != nil {
		return err
	}

	draft := finance.TransactionDraft{
		Amount:      *amount,
		Category:    *category,
		Type:        finance.TxnType(*typ),
		Description: *desc,
	}
	if *tags != "" {
		draft.Tags = strings.Split(*tags, ",")
	}
	txn, err := c.Client.Transactions.Record(c.Ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s: %s ₹%.2f (%s)\n", txn.ID, txn.Type, txn.Amount, txn.Category)
	return nil
}

func runTransactions(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("transactions", flag.ContinueOnError)
	typ := fs.String("type", "", "filter by income or expense")
	limit := fs.Int("limit", 25, "max rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := ensureSession(c); err != nil {
		return err
	}

	txns, err := c.Client.Transactions.List(c.Ctx, ports.TransactionQuery{
		Type:  finance.TxnType(*typ),
		Limit: *limit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION") //nolint:errcheck
	for _, t := range txns {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", //nolint:errcheck
			t.Date.Format("2006-01-02"), t.Type, t.Amount, t.Category, t.Description)
	}
	return w.Flush()
}

func runProfile(c *commandContext, _ []string) error {
	if err := ensureSession(c); err != nil {
		return err
	}
	profile, err := c.Client.Profile.Fetch(c.Ctx)
	if err != nil {
		return err
	}

	fmt.Printf("monthly salary: ₹%.2f\n", profile.MonthlySalary)
	fmt.Printf("invested: ₹%.2f across %d holdings\n", profile.TotalInvested(), len(profile.Investments))
	fmt.Printf("outstanding debt: ₹%.2f across %d loans\n", profile.TotalOutstandingDebt(), len(profile.Loans))
	fmt.Printf("insurance policies: %d\n", len(profile.Insurance))
	return nil
}

func runOffers(c *commandContext, _ []string) error {
	if err := ensureSession(c); err != nil {
		return err
	}
	offers, err := c.Client.Offers.List(c.Ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tPARTNER\tCATEGORY\tVALID TILL") //nolint:errcheck
	for _, o := range offers {
		valid := ""
		if !o.ValidTill.IsZero() {
			valid = o.ValidTill.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Title, o.Partner, o.Category, valid) //nolint:errcheck
	}
	return w.Flush()
}

func runInsight(c *commandContext, _ []string) error {
	if err := ensureSession(c); err != nil {
		return err
	}
	insight, err := c.Client.Insights.Current(c.Ctx)
	if err != nil {
		return err
	}
	fmt.Println(insight.Text)
	return nil
}
