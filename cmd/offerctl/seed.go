package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Govind-619/Sodfaa/config"
	"github.com/Govind-619/Sodfaa/gateway"
	"github.com/Govind-619/Sodfaa/models"
	"github.com/Govind-619/Sodfaa/stores"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

const day = 24 * time.Hour

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	gw, err := config.InitGateway(cfg)
	if err != nil {
		return err
	}
	defer gw.Close()

	return seedAll(context.Background(), gw, time.Now(), os.Stdout)
}

// seedAll fills every empty collection with sample records. Collections that
// already hold data are left untouched.
func seedAll(ctx context.Context, gw gateway.Gateway, now time.Time, out io.Writer) error {
	out = &lockedWriter{w: out}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return seedCategories(gctx, stores.NewCategoryStore(gw), out) })
	g.Go(func() error { return seedBannerText(gctx, stores.NewBannerTextStore(gw), out) })
	g.Go(func() error { return seedDiscountCodes(gctx, stores.NewDiscountCodeStore(gw), now, out) })
	g.Go(func() error { return seedReviewImages(gctx, stores.NewReviewImageStore(gw), out) })
	g.Go(func() error {
		products, err := seedProducts(gctx, stores.NewProductStore(gw), out)
		if err != nil {
			return err
		}
		return seedOffers(gctx, stores.NewOfferStore(gw), products, now, out)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintln(out, "seeding complete")
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func report(out io.Writer, collection string, created int) {
	if created == 0 {
		fmt.Fprintf(out, "%s already has data, skipped\n", collection)
		return
	}
	fmt.Fprintf(out, "seeded %d %s\n", created, collection)
}

func seedCategories(ctx context.Context, store *stores.CategoryStore, out io.Writer) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		report(out, models.CategoriesCollection, 0)
		return nil
	}
	samples := []models.Category{
		{Name: "حقائب يد", Description: "حقائب يد جلدية فاخرة", Image: "/uploads/categories/handbags.jpg"},
		{Name: "حقائب كتف", Description: "حقائب كتف للاستخدام اليومي", Image: "/uploads/categories/shoulder.jpg"},
		{Name: "كلاتش", Description: "حقائب سهرة صغيرة", Image: "/uploads/categories/clutch.jpg"},
	}
	for _, c := range samples {
		if _, err := store.Create(ctx, c); err != nil {
			return err
		}
	}
	report(out, models.CategoriesCollection, len(samples))
	return nil
}

// seedProducts returns the catalog the sample offers are drawn from,
// whether it was just created or already present.
func seedProducts(ctx context.Context, store *stores.ProductStore, out io.Writer) ([]models.Product, error) {
	existing, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		report(out, models.ProductsCollection, 0)
		return existing, nil
	}
	samples := []models.Product{
		{
			Name:        "حقيبة يد جلدية كلاسيكية",
			Description: "حقيبة يد من الجلد الطبيعي بتصميم كلاسيكي",
			Price:       850,
			Category:    "حقائب يد",
			Images:      []string{"/uploads/products/classic-1.jpg", "/uploads/products/classic-2.jpg"},
			Colors:      []models.Color{{Name: "أسود", Image: "/uploads/products/classic-black.jpg"}},
			InStock:     true,
		},
		{
			Name:        "حقيبة كتف عصرية",
			Description: "حقيبة كتف خفيفة بسحاب مزدوج",
			Price:       620,
			Category:    "حقائب كتف",
			Images:      []string{"/uploads/products/shoulder-1.jpg"},
			InStock:     true,
		},
		{
			Name:        "كلاتش سهرة",
			Description: "كلاتش مطرز للمناسبات",
			Price:       340,
			Category:    "كلاتش",
			Images:      []string{"/uploads/products/clutch-1.jpg"},
			InStock:     true,
		},
	}
	created := make([]models.Product, 0, len(samples))
	for _, p := range samples {
		id, err := store.Create(ctx, p)
		if err != nil {
			return nil, err
		}
		p.ID = id
		created = append(created, p)
	}
	report(out, models.ProductsCollection, len(created))
	return created, nil
}

func seedOffers(ctx context.Context, store *stores.OfferStore, products []models.Product, now time.Time, out io.Writer) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 || len(products) == 0 {
		report(out, models.OffersCollection, 0)
		return nil
	}
	terms := []struct {
		discount int
		runs     time.Duration
	}{
		{20, 30 * day},
		{15, 15 * day},
	}
	created := 0
	for i, term := range terms {
		if i >= len(products) {
			break
		}
		p := products[i]
		_, err := store.Create(ctx, models.Offer{
			ProductID:     p.ID,
			ProductName:   p.Name,
			OriginalPrice: p.Price,
			Discount:      term.discount,
			Images:        p.Images,
			EndTime:       now.Add(term.runs),
			IsActive:      true,
		})
		if err != nil {
			return err
		}
		created++
	}
	report(out, models.OffersCollection, created)
	return nil
}

func seedBannerText(ctx context.Context, store *stores.BannerTextStore, out io.Writer) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		report(out, models.BannerTextCollection, 0)
		return nil
	}
	samples := []models.BannerText{
		{Text: "مرحباً بك في صُدفة - وجهتك للحقائب الفاخرة", IsActive: true, Order: 1},
		{Text: "شحن مجاني للطلبات أكثر من 500 جنيه", IsActive: true, Order: 2},
	}
	for _, b := range samples {
		if _, err := store.Create(ctx, b); err != nil {
			return err
		}
	}
	report(out, models.BannerTextCollection, len(samples))
	return nil
}

func seedDiscountCodes(ctx context.Context, store *stores.DiscountCodeStore, now time.Time, out io.Writer) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		report(out, models.DiscountCodesCollection, 0)
		return nil
	}
	samples := []models.DiscountCode{
		{
			Code:               "WELCOME10",
			Description:        "خصم 10% للعملاء الجدد",
			DiscountPercentage: 10,
			IsActive:           true,
			UsageLimit:         100,
			StartDate:          now,
			EndDate:            now.Add(90 * day),
			MinimumOrderAmount: 200,
		},
		{
			Code:               "SAVE20",
			Description:        "خصم 20% على الطلبات أكثر من 500 جنيه",
			DiscountPercentage: 20,
			IsActive:           true,
			UsageLimit:         50,
			StartDate:          now,
			EndDate:            now.Add(60 * day),
			MinimumOrderAmount: 500,
		},
	}
	for _, d := range samples {
		if _, err := store.Create(ctx, d); err != nil {
			return err
		}
	}
	report(out, models.DiscountCodesCollection, len(samples))
	return nil
}

func seedReviewImages(ctx context.Context, store *stores.ReviewImageStore, out io.Writer) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		report(out, models.ReviewImagesCollection, 0)
		return nil
	}
	for i := 1; i <= 3; i++ {
		img := models.ReviewImage{ImageURL: fmt.Sprintf("/uploads/reviews/sample-%d.jpg", i), IsActive: true, Order: i}
		if _, err := store.Create(ctx, img); err != nil {
			return err
		}
	}
	report(out, models.ReviewImagesCollection, 3)
	return nil
}
