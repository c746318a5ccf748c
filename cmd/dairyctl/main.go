package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/dairy-collection-service/internal/client"
	"github.com/sangkips/dairy-collection-service/internal/dashboard"
	flag "github.com/spf13/pflag"
)

func main() {
	apiURL := flag.String("api-url", envOr("DAIRY_API_URL", "http://localhost:3001"), "base URL of the dairy collection API")
	verbose := flag.BoolP("verbose", "v", false, "log request failures")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &console{
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		board: dashboard.New(client.New(*apiURL)),
	}
	c.run(ctx)
}

type console struct {
	in    *bufio.Scanner
	out   io.Writer
	board *dashboard.Dashboard
}

func (c *console) run(ctx context.Context) {
	c.board.Load(ctx)
	c.render()
	c.printf("type 'help' for commands\n")

	for {
		line, ok := c.prompt("> ")
		if !ok || ctx.Err() != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			c.printCustomers()
			continue
		case "search":
			c.board.SetSearchID(arg(fields, 1))
			c.board.Search(ctx)
		case "add":
			c.board.SetCustomerForm(dashboard.CustomerForm{
				ID:     c.ask("Customer ID: "),
				Name:   c.ask("Name: "),
				Mobile: c.ask("Mobile: "),
			})
			c.board.AddCustomer(ctx)
		case "remove":
			c.board.RemoveCustomer(ctx, arg(fields, 1), dashboard.ConfirmFunc(c.confirm))
		case "entry":
			c.board.SetEntryForm(dashboard.EntryForm{Liters: arg(fields, 1), Fat: arg(fields, 2)})
			c.printf("Total amount: %.2f\n", c.board.AmountPreview())
			c.board.AddEntry(ctx)
		case "state":
			c.printState()
			continue
		case "help":
			c.printHelp()
			continue
		case "quit", "exit":
			return
		default:
			c.printf("unknown command %q\n", fields[0])
			continue
		}
		c.render()
	}
}

func (c *console) render() {
	s := c.board.State()

	c.banner("admin", s.Admin)
	c.banner("search", s.Search)

	if s.Current != nil {
		c.printf("\nCustomer %s: %s (%s)\n", s.Current.ID, s.Current.Name, s.Current.Mobile)
		if len(s.Current.Entries) == 0 {
			c.printf("  no entries yet\n")
		}
		for _, e := range s.Current.Entries {
			c.printf("  #%-5d %s  %7.2f L  %5.2f%%  %9.2f\n",
				e.EntryID, e.Date.Local().Format("2006-01-02 15:04"), e.Liters, e.Fat, e.Amount)
		}
	}

	c.banner("entry", s.Entry)
}

func (c *console) banner(panel string, b dashboard.Banner) {
	switch {
	case b.Error != "":
		c.printf("[%s] error: %s\n", panel, b.Error)
	case b.Success != "":
		c.printf("[%s] %s\n", panel, b.Success)
	}
}

func (c *console) printCustomers() {
	customers := c.board.Customers()
	if len(customers) == 0 {
		c.printf("no customers\n")
		return
	}
	for _, cu := range customers {
		c.printf("%-10s %-30s %s\n", cu.ID, cu.Name, cu.Mobile)
	}
}

func (c *console) printState() {
	data, err := json.MarshalIndent(c.board.State(), "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to encode state")
		return
	}
	c.printf("%s\n", data)
}

func (c *console) printHelp() {
	c.printf(`commands:
  list                   show all customers
  search <id>            show a customer's profile and entries
  add                    register a customer (prompts for id, name, mobile)
  remove <id>            delete a customer and all of its entries
  entry <liters> <fat>   record a collection for the displayed customer
  state                  dump the view state as JSON
  quit
`)
}

func (c *console) confirm(question string) bool {
	answer := c.ask(question + " [y/N] ")
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *console) ask(label string) string {
	line, _ := c.prompt(label)
	return strings.TrimSpace(line)
}

func (c *console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func arg(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
