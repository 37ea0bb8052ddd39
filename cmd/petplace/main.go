package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jinsdrum/petplace"
	"github.com/jinsdrum/petplace/affiliate"
	"github.com/jinsdrum/petplace/blog"
	"github.com/jinsdrum/petplace/businesses"
	"github.com/jinsdrum/petplace/internal/config"
	"github.com/jinsdrum/petplace/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(args []string) error {
	_ = godotenv.Load()
	cfg := config.New()
	setupLogging(cfg.GetLogLevel())

	if len(args) == 0 {
		displayAppname(cfg.GetAppName())
		usage()
		return nil
	}

	client, err := petplace.New(cfg.GetAPIBaseURL(),
		petplace.WithDataFolder(cfg.GetDataFolder()),
		petplace.WithUserAgent(cfg.GetUserAgent()),
		petplace.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()

	switch args[0] {
	case "login":
		return loginCmd(ctx, client, args[1:])
	case "logout":
		client.Session.Logout()
		fmt.Println("signed out")
		return nil
	case "me":
		return meCmd(ctx, client)
	case "businesses":
		return businessesCmd(ctx, client, args[1:])
	case "blog":
		return blogCmd(ctx, client, args[1:])
	case "stats":
		return statsCmd(ctx, client, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func loginCmd(ctx context.Context, client *petplace.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := client.Session.Login(ctx, session.Credentials{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", profile.DisplayName(), profile.Email)
	return nil
}

func meCmd(ctx context.Context, client *petplace.Client) error {
	if err := client.Session.Bootstrap(ctx); err != nil {
		return err
	}
	profile := client.Session.CurrentUser()
	if profile == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("id:       %d\n", profile.ID)
	fmt.Printf("name:     %s\n", profile.DisplayName())
	fmt.Printf("email:    %s\n", profile.Email)
	fmt.Printf("role:     %s\n", profile.Role)
	if expiry, ok := session.TokenExpiry(client.Session.AccessToken()); ok {
		fmt.Printf("token ok: until %s\n", expiry.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func businessesCmd(ctx context.Context, client *petplace.Client, args []string) error {
	fs := flag.NewFlagSet("businesses", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	category := fs.String("category", "", "category filter")
	petType := fs.String("pet-type", "", "pet type filter")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	listing, err := client.Businesses.List(ctx, businesses.ListParams{
		Search:   *search,
		Category: *category,
		PetType:  *petType,
		Page:     *page,
	})
	if err != nil {
		return err
	}
	for _, business := range listing.Businesses {
		fmt.Printf("%6d  %-30s  %-12s  %.1f★ (%d reviews)\n",
			business.ID, business.Name, business.Category, business.AverageRating, business.ReviewCount)
	}
	fmt.Printf("page %d/%d (%d total)\n", listing.Pagination.Page, listing.Pagination.Pages, listing.Pagination.Total)
	return nil
}

func blogCmd(ctx context.Context, client *petplace.Client, args []string) error {
	fs := flag.NewFlagSet("blog", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	category := fs.String("category", "", "category filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	listing, err := client.Blog.List(ctx, blog.ListParams{
		Search:   *search,
		Category: *category,
		SortBy:   blog.SortNewest,
	})
	if err != nil {
		return err
	}
	for _, post := range listing.Posts {
		fmt.Printf("%6d  %-40s  %4d views  %3d likes\n", post.ID, post.Title, post.ViewCount, post.LikeCount)
	}
	return nil
}

func statsCmd(ctx context.Context, client *petplace.Client, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	period := fs.String("period", "month", "day, week, month or year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := client.Session.Bootstrap(ctx); err != nil {
		return err
	}
	if !client.Session.IsAuthenticated() {
		return fmt.Errorf("stats requires a signed-in session; run login first")
	}

	stats, err := client.Affiliate.Stats(ctx, affiliate.Period(*period))
	if err != nil {
		return err
	}
	fmt.Printf("period:      %s\n", stats.Period)
	fmt.Printf("links:       %d\n", stats.Totals.TotalLinks)
	fmt.Printf("clicks:      %d\n", stats.Totals.TotalClicks)
	fmt.Printf("conversions: %d (%.2f%%)\n", stats.Totals.TotalConversions, stats.Totals.ConversionRate)
	fmt.Printf("earnings:    %.2f\n", stats.Totals.TotalEarnings)
	for platform, totals := range stats.PlatformStats {
		fmt.Printf("  %-10s %d clicks, %.2f earned\n", platform, totals.Clicks, totals.Earnings)
	}
	return nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func usage() {
	fmt.Println(`usage: petplace <command> [flags]

commands:
  login       -email -password   sign in and persist the session
  logout                         clear the persisted session
  me                             show the signed-in user
  businesses  [-search -category -pet-type -page]
  blog        [-search -category]
  stats       [-period]          affiliate performance report`)
}
