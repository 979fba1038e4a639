// Command offerctl manages offers from the shell: listing, creating and
// deleting them, running one cleanup cycle, seeding sample data, and
// summarising server logs.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/countdown"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	"github.com/Govind-619/Sodfaa/surfaces"
	"github.com/Govind-619/Sodfaa/utils"
	flag "github.com/spf13/pflag"
)

const usage = `usage: offerctl <command> [flags]

commands:
  list       print every offer with its status and countdown
  create     create an offer
  delete     delete an offer by id
  cleanup    run one expired offer cleanup cycle
  seed       fill empty collections with sample storefront data
  logstats   summarise offer activity from a JSON log file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	_ = utils.InitLogger(utils.LogConfig{Level: "warn", Environment: "production", ServiceName: "offerctl"})
	defer utils.SyncLogger()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "list":
		err = runList(args)
	case "create":
		err = runCreate(args)
	case "delete":
		err = runDelete(args)
	case "cleanup":
		err = runCleanup(args)
	case "seed":
		err = runSeed(args)
	case "logstats":
		err = runLogStats(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "offerctl:", err)
		os.Exit(1)
	}
}

func openOffers() (*stores.OfferStore, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	gw, err := config.InitGateway(cfg)
	if err != nil {
		return nil, nil, err
	}
	return stores.NewOfferStore(gw), func() { _ = gw.Close() }, nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	lang := fs.String("lang", "ar", "countdown language (ar or en)")
	_ = fs.Parse(args)

	offers, closeFn, err := openOffers()
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := offers.ListAll(context.Background())
	if err != nil {
		return err
	}
	rows := surfaces.BuildAdminList(list, time.Now(), countdown.ParseLang(*lang))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tDISCOUNT\tPRICE\tSTATUS\tENDS\tCOUNTDOWN")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%s\t%s\t%s\n",
			r.ID, r.ProductName, r.Discount, surfaces.FormatPrice(r.DiscountedPrice),
			r.Status, r.EndTimeRaw, r.Countdown)
	}
	return w.Flush()
}

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	productID := fs.String("product", "", "product id")
	name := fs.String("name", "", "product name snapshot")
	price := fs.Float64("price", 0, "original price snapshot")
	discount := fs.Int("discount", -1, "discount percentage (0-100)")
	duration := fs.Duration("for", 24*time.Hour, "how long the offer runs")
	inactive := fs.Bool("inactive", false, "create the offer switched off")
	images := fs.StringSlice("image", nil, "image url (repeatable)")
	_ = fs.Parse(args)

	if *productID == "" || *name == "" || *price <= 0 {
		return fmt.Errorf("--product, --name and a positive --price are required")
	}
	if *discount < 0 || *discount > 100 {
		return fmt.Errorf("--discount must be between 0 and 100")
	}
	if *duration <= 0 {
		return fmt.Errorf("--for must be positive")
	}

	offers, closeFn, err := openOffers()
	if err != nil {
		return err
	}
	defer closeFn()

	id, err := offers.Create(context.Background(), models.Offer{
		ProductID:     *productID,
		ProductName:   *name,
		OriginalPrice: *price,
		Discount:      *discount,
		Images:        *images,
		EndTime:       time.Now().Add(*duration),
		IsActive:      !*inactive,
	})
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("delete needs at least one offer id")
	}

	offers, closeFn, err := openOffers()
	if err != nil {
		return err
	}
	defer closeFn()

	for _, id := range fs.Args() {
		if err := offers.DeleteByID(context.Background(), id); err != nil {
			return err
		}
		fmt.Println("deleted", id)
	}
	return nil
}

func runCleanup(args []string) error {
	fs := flag.NewFlagSet("cleanup", flag.ExitOnError)
	_ = fs.Parse(args)

	offers, closeFn, err := openOffers()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := stores.NewCleanupScheduler(offers, 0).RunOnce(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("scanned=%d deleted=%d failed=%d\n", result.Scanned, result.Deleted, result.Failed)
	for _, o := range result.Removed {
		fmt.Printf("  %s %s (ended %s)\n", o.ID, o.ProductName, o.EndTime.Format(time.RFC3339))
	}
	return nil
}
