// Command cafe is a terminal client for the café API.
//
//	cafe menu
//	cafe signup  -name Ana -email ana@example.com -password secret123
//	cafe login   -email ana@example.com -password secret123
//	cafe order   -token T -item 1x2 -item 101 -address "Main St 1" -item-address 101="Office 4"
//	cafe orders  -token T
//	cafe profile -token T [-name N] [-contact C] [-address A]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/cart"
	"github.com/MikeMC777/cafelove/internal/checkout"
	"github.com/MikeMC777/cafelove/internal/client"
	"github.com/MikeMC777/cafelove/internal/config"
	"github.com/MikeMC777/cafelove/internal/logging"
	"github.com/MikeMC777/cafelove/internal/order"
	"github.com/MikeMC777/cafelove/internal/user"
)

func main() {
	cfg := config.Load()
	log := logging.New("cafe", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api, err := client.New(client.Config{APIBaseURL: cfg.APIBaseURL, Timeout: 10 * time.Second})
	if err != nil {
		log.WithError(err).Fatal("client config")
	}
	if err := run(ctx, api, os.Args[1:], os.Stdout); err != nil {
		if apperr.Is(err, apperr.KindAuthentication) {
			log.WithError(err).Error("not authenticated; log in again")
		} else {
			log.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}

type app struct {
	api *client.Client
	out io.Writer
}

func run(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: cafe <menu|signup|login|order|orders|profile> [flags]")
	}
	a := &app{api: api, out: out}
	switch args[0] {
	case "menu":
		return a.menu(ctx)
	case "signup":
		return a.signup(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "order":
		return a.order(ctx, args[1:])
	case "orders":
		return a.orders(ctx, args[1:])
	case "profile":
		return a.profile(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// credentials are shared by every command that needs a session.
type credentials struct {
	token, email, password string
}

func (c *credentials) register(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", os.Getenv("CAFE_TOKEN"), "bearer token (or CAFE_TOKEN)")
	fs.StringVar(&c.email, "email", "", "email, used when no token is given")
	fs.StringVar(&c.password, "password", "", "password, used when no token is given")
}

func (a *app) session(ctx context.Context, c credentials) (*client.Session, error) {
	s := client.NewSession()
	if c.token != "" {
		s.Login(c.token)
		return s, nil
	}
	if c.email == "" {
		return nil, apperr.Authentication("pass -token or -email/-password")
	}
	if err := a.api.Login(ctx, s, c.email, c.password); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *app) menu(ctx context.Context) error {
	m, err := a.api.Menu(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tPRICE\tCATEGORY")
	for _, it := range m.All() {
		fmt.Fprintf(tw, "%d\t%s\t$%s\t%s\n", it.ID, it.Title, it.Price, it.Category)
	}
	return tw.Flush()
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	var in user.SignupRequest
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Password, "password", "", "password (min 6 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := a.api.Signup(ctx, in)
	if err != nil {
		return err
	}
	return a.printJSON(p)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var c credentials
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.token = ""
	s, err := a.session(ctx, c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, s.Token())
	return err
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	var (
		c         credentials
		items     multiFlag
		perItem   multiFlag
		globalAdr string
	)
	c.register(fs)
	fs.Var(&items, "item", "menu item as ID or IDxQTY; repeatable")
	fs.StringVar(&globalAdr, "address", "", "delivery address for every item")
	fs.Var(&perItem, "item-address", "per-item address as ID=ADDRESS; repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := a.api.Menu(ctx)
	if err != nil {
		return err
	}
	crt := cart.New(m.All())
	for _, raw := range items {
		id, qty, err := parseItem(raw)
		if err != nil {
			return err
		}
		// Repeated -item flags for the same ID add up.
		for i := 0; i < qty; i++ {
			if err := crt.Add(id); err != nil {
				return fmt.Errorf("item %d: %w", id, err)
			}
		}
	}
	policy := checkout.AddressPolicy{Global: globalAdr, PerItem: map[int]string{}}
	for _, raw := range perItem {
		k, v, ok := strings.Cut(raw, "=")
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if !ok || err != nil {
			return fmt.Errorf("bad -item-address %q, want ID=ADDRESS", raw)
		}
		policy.PerItem[id] = v
	}

	s, err := a.session(ctx, c)
	if err != nil {
		return err
	}
	o, err := checkout.NewSubmitter(a.api).PlaceOrder(ctx, s, crt, policy)
	if err != nil {
		return err
	}
	return a.printJSON(o)
}

func (a *app) orders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	var c credentials
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.session(ctx, c)
	if err != nil {
		return err
	}
	list, err := a.api.Orders(ctx, s)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tPLACED\tITEMS\tTOTAL\tSTATUS")
	for _, o := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%s\t%s\n", o.ID, o.CreatedAt.Local().Format(time.DateTime), summarize(o.Items), o.Total, o.Status)
	}
	return tw.Flush()
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	var (
		c   credentials
		upd user.UpdateProfileRequest
	)
	c.register(fs)
	fs.Func("name", "new name", func(v string) error { upd.Name = &v; return nil })
	fs.Func("contact", "new contact", func(v string) error { upd.Contact = &v; return nil })
	fs.Func("address", "new address", func(v string) error { upd.Address = &v; return nil })
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := a.session(ctx, c)
	if err != nil {
		return err
	}
	var p *user.Profile
	if upd.Name == nil && upd.Contact == nil && upd.Address == nil {
		p, err = a.api.Profile(ctx, s)
	} else {
		p, err = a.api.UpdateProfile(ctx, s, upd)
	}
	if err != nil {
		return err
	}
	return a.printJSON(p)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseItem reads "ID" or "IDxQTY".
func parseItem(raw string) (id, qty int, err error) {
	idPart, qtyPart, hasQty := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
	id, err = strconv.Atoi(idPart)
	if err != nil {
		return 0, 0, fmt.Errorf("bad -item %q, want ID or IDxQTY", raw)
	}
	qty = 1
	if hasQty {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil || qty < 1 {
			return 0, 0, fmt.Errorf("bad quantity in -item %q", raw)
		}
	}
	return id, qty, nil
}

func summarize(items []order.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s x%d", it.Title, it.Quantity)
	}
	return strings.Join(parts, ", ")
}

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }
