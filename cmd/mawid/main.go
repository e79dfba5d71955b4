package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/robaa12/mawid-client/internal/di"
	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/internal/dto"
	"github.com/robaa12/mawid-client/internal/worker"
	"github.com/robaa12/mawid-client/pkg/config"
	"github.com/robaa12/mawid-client/pkg/logger"
	"github.com/robaa12/mawid-client/pkg/telemetry"
)

const usage = `mawid - event booking client

Usage:
  mawid login -email <email> -password <password>
  mawid register -name <name> -email <email> -password <password>
  mawid logout
  mawid whoami
  mawid events [-page N] [-size N] [-category ID]
  mawid events-search -q <query> [-page N] [-size N]
  mawid events-recent [-watch]
  mawid event -id <id>
  mawid categories
  mawid bookings [-admin] [-event ID] [-page N] [-size N]
  mawid book -event <id>
  mawid booking-status -id <id> -status <pending|confirmed|cancelled>
  mawid users [-page N] [-limit N]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		logger.Get().Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer telemetry.Shutdown(ctx)

	container, err := di.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}
	defer container.Close()

	// Pick up any persisted session and keep its expiry honest while the
	// process runs.
	container.Session.Restore(ctx)
	if err := container.Session.StartExpiryWatch(ctx); err != nil {
		logger.Get().Warn(fmt.Sprintf("Failed to start expiry watch: %v", err))
	}

	if err := run(ctx, container, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *di.Container, command string, args []string) error {
	switch command {
	case "login":
		return cmdLogin(ctx, c, args)
	case "register":
		return cmdRegister(ctx, c, args)
	case "logout":
		c.Session.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return cmdWhoami(c)
	case "events":
		return cmdEvents(ctx, c, args)
	case "events-search":
		return cmdEventsSearch(ctx, c, args)
	case "events-recent":
		return cmdEventsRecent(ctx, c, args)
	case "event":
		return cmdEvent(ctx, c, args)
	case "categories":
		return cmdCategories(ctx, c)
	case "bookings":
		return cmdBookings(ctx, c, args)
	case "book":
		return cmdBook(ctx, c, args)
	case "booking-status":
		return cmdBookingStatus(ctx, c, args)
	case "users":
		return cmdUsers(ctx, c, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func cmdLogin(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if err := c.Session.Login(ctx, dto.LoginRequest{Email: *email, Password: *password}); err != nil {
		return err
	}
	view := c.Session.Snapshot()
	fmt.Printf("Logged in as %s (%s)\n", view.User.Name, view.User.Role)
	return nil
}

func cmdRegister(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if err := c.Session.Register(ctx, dto.RegisterRequest{Name: *name, Email: *email, Password: *password}); err != nil {
		return err
	}
	view := c.Session.Snapshot()
	fmt.Printf("Registered as %s (%s)\n", view.User.Name, view.User.Role)
	return nil
}

func cmdWhoami(c *di.Container) error {
	view := c.Session.Snapshot()
	if !view.IsAuthenticated {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> role=%s", view.User.Name, view.User.Email, view.User.Role)
	if view.TokenExpiry != nil {
		fmt.Printf(" (session expires %s)", view.TokenExpiry.Format(time.RFC3339))
	}
	fmt.Println()
	return nil
}

func cmdEvents(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	category := fs.Uint("category", 0, "category id filter")
	fs.Parse(args)

	result, err := c.Events.List(ctx, *page, *size, uint(*category))
	if err != nil {
		return err
	}
	printEvents(result.Events)
	fmt.Printf("page %d of %d\n", *page, result.TotalPages)
	return nil
}

func cmdEventsSearch(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("events-search", flag.ExitOnError)
	q := fs.String("q", "", "search query")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	fs.Parse(args)

	result, err := c.Events.Search(ctx, *q, *page, *size)
	if err != nil {
		return err
	}
	printEvents(result.Events)
	fmt.Printf("page %d of %d\n", *page, result.TotalPages)
	return nil
}

func cmdEventsRecent(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("events-recent", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	fs.Parse(args)

	if !*watch {
		result, err := c.Events.Recent(ctx, 12)
		if err != nil {
			return err
		}
		printEvents(result.Events)
		return nil
	}

	w := worker.NewRecentEventsWorker(c.Events, nil, func(page domain.EventPage) {
		fmt.Printf("--- %s ---\n", time.Now().Format(time.TimeOnly))
		printEvents(page.Events)
	})
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func cmdEvent(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("event", flag.ExitOnError)
	id := fs.Uint("id", 0, "event id")
	fs.Parse(args)

	event, err := c.Events.Get(ctx, uint(*id))
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s\n%s\nVenue: %s\nDate:  %s\nPrice: %.2f\n",
		event.ID, event.Name, event.Description, event.Venue,
		event.EventDate.Format(time.RFC1123), float64(event.Price))
	return nil
}

func cmdCategories(ctx context.Context, c *di.Container) error {
	categories, err := c.Events.Categories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Printf("%d\t%s\n", category.ID, category.Name)
	}
	return nil
}

func cmdBookings(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	admin := fs.Bool("admin", false, "list all bookings (admin)")
	event := fs.Uint("event", 0, "filter by event id (admin)")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	fs.Parse(args)

	var (
		result domain.BookingPage
		err    error
	)
	switch {
	case *event != 0:
		result, err = c.Bookings.EventBookings(ctx, uint(*event), *page, *size)
	case *admin:
		result, err = c.Bookings.AdminBookings(ctx, *page, *size)
	default:
		result, err = c.Bookings.UserBookings(ctx, *page, *size)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEVENT\tSTATUS\tBOOKED")
	for _, booking := range result.Bookings {
		name := fmt.Sprintf("#%d", booking.EventID)
		if booking.Event != nil {
			name = booking.Event.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			booking.ID, name, booking.Status, booking.BookingDate.Format(time.DateOnly))
	}
	w.Flush()
	fmt.Printf("%d total, page %d of %d\n", result.Total, *page, result.TotalPages)
	return nil
}

func cmdBook(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	event := fs.Uint("event", 0, "event id")
	fs.Parse(args)

	booking, err := c.Bookings.Create(ctx, uint(*event))
	if err != nil {
		return err
	}
	fmt.Printf("Booked event #%d, booking #%d (%s)\n", booking.EventID, booking.ID, booking.Status)
	return nil
}

func cmdBookingStatus(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("booking-status", flag.ExitOnError)
	id := fs.Uint("id", 0, "booking id")
	status := fs.String("status", "", "pending, confirmed or cancelled")
	fs.Parse(args)

	booking, err := c.Bookings.UpdateStatus(ctx, uint(*id), domain.BookingStatus(*status))
	if err != nil {
		return err
	}
	fmt.Printf("Booking #%d is now %s\n", booking.ID, booking.Status)
	return nil
}

func cmdUsers(ctx context.Context, c *di.Container, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	fs.Parse(args)

	users, err := c.Users.List(ctx, *page, *limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Role)
	}
	return w.Flush()
}

func printEvents(events []domain.Event) {
	if len(events) == 0 {
		fmt.Println("No events.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVENUE\tDATE\tPRICE")
	for _, event := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n",
			event.ID, event.Name, event.Venue,
			event.EventDate.Format(time.DateOnly), float64(event.Price))
	}
	w.Flush()
}
