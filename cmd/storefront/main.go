// Command storefront wires the storefront client core together and runs a
// scripted browse/cart/checkout flow against the configured backend, or
// against in-memory fakes with -memory. It exists to demonstrate the store
// layer; a real presentation layer would observe the same snapshots.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumenshop/storefront/infra/backend"
	"github.com/lumenshop/storefront/infra/payments"
	"github.com/lumenshop/storefront/internal/app/domain/cart"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/domain/user"
	"github.com/lumenshop/storefront/internal/app/metrics"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/internal/app/remote/memory"
	"github.com/lumenshop/storefront/internal/app/repo"
	"github.com/lumenshop/storefront/internal/app/stores"
	"github.com/lumenshop/storefront/internal/config"
	"github.com/lumenshop/storefront/pkg/logger"
)

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to YAML configuration")
		envFile     = flag.String("env", "", "Optional .env file overriding backend credentials")
		useMemory   = flag.Bool("memory", false, "Run against in-memory fakes instead of the remote backend")
		metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9102)")
	)
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env (%s): %v", *envFile, err)
		}
	}

	cfg := config.LoadOrDefault(*configPath)
	if key := os.Getenv("BACKEND_API_KEY"); key != "" {
		cfg.Backend.APIKey = key
	}

	lg := logger.New(os.Stderr, "storefront", logger.ParseLevel(cfg.Log.Level))

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				lg.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		auth    remote.Auth
		docs    remote.Documents
		objects remote.ObjectStorage
		intents remote.PaymentIntents
	)
	if *useMemory {
		store := memory.New()
		seedMemory(ctx, store)
		auth, docs, objects, intents = store, store, store, store
	} else {
		client, err := backend.New(backend.Config{
			ProjectURL:        cfg.Backend.ProjectURL,
			APIKey:            cfg.Backend.APIKey,
			AllowedHosts:      cfg.Backend.AllowedHosts,
			Timeout:           time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		}, lg)
		if err != nil {
			log.Fatalf("backend client: %v", err)
		}
		intentClient, err := payments.NewIntentClient(cfg.Payments.IntentURL, 0, lg)
		if err != nil {
			log.Fatalf("payment intent client: %v", err)
		}
		auth = client.Auth()
		docs = client.Documents()
		objects = client.Storage()
		intents = intentClient
	}

	r := repo.New(auth, docs, objects, intents, lg)
	app := stores.NewApp(ctx, r, lg)
	defer app.Close()

	// Live cart badge via the polling watcher.
	watcher := backend.NewWatcher(docs, remote.CartItemsCollection, nil, 2*time.Second, lg).
		OnChange(func(items []remote.Document) {
			app.SetCartCount(len(items))
		})

	runDemo(ctx, app, watcher, lg)
}

func runDemo(ctx context.Context, app *stores.App, watcher *backend.Watcher, lg *logger.Logger) {
	home, cancelHome := app.Home.Observe()
	defer cancelHome()

	// Wait for the landing aggregate to reach a terminal state.
	for snap := app.Home.Snapshot(); snap.IsLoading; {
		select {
		case <-ctx.Done():
			lg.Warn("timed out waiting for home data")
			return
		case snap = <-home:
		}
		if !snap.IsLoading {
			if snap.ErrorMessage != "" {
				lg.WithField("error", snap.ErrorMessage).Error("home load failed")
				return
			}
			logSnapshot(lg, "home", snap.Payload)
			break
		}
	}

	await(ctx, app.SignUp, func() {
		app.CreateUser(ctx, user.Profile{
			FirstName:   "Asha",
			LastName:    "Rao",
			Email:       "asha@example.com",
			PhoneNumber: "9876543210",
		}, "s3cret-password")
	})

	if err := watcher.Start(ctx); err != nil {
		lg.WithError(err).Warn("cart watcher not started")
	}
	defer watcher.Stop()

	if snap, ok := await(ctx, app.Search, func() { app.SearchProducts(ctx, "shirt") }); ok {
		logSnapshot(lg, "search", snap.Payload)
	}

	home2 := app.Home.Snapshot()
	if len(home2.Payload.Products) > 0 {
		p := home2.Payload.Products[0]
		await(ctx, app.CartAdd, func() {
			app.AddToCart(ctx, cart.Item{
				ProductID:   p.ID,
				Name:        p.Name,
				Image:       p.Image,
				Price:       p.Price,
				FinalPrice:  p.FinalPrice,
				Description: p.Description,
				Category:    p.Category,
				Quantity:    1,
				Size:        "M",
			})
		})
		if snap, ok := await(ctx, app.CartItems, func() { app.LoadCart(ctx) }); ok {
			logSnapshot(lg, "cart", snap.Payload)
		}
	}

	lg.Info("demo flow complete")
}

// await subscribes, fires the trigger, and blocks until the operation
// reaches a terminal snapshot.
func await[T any](ctx context.Context, st *stores.Store[T], trigger func()) (stores.Snapshot[T], bool) {
	ch, cancel := st.Observe()
	defer cancel()
	trigger()
	for {
		select {
		case <-ctx.Done():
			return stores.Snapshot[T]{}, false
		case snap := <-ch:
			if !snap.IsLoading {
				return snap, true
			}
		}
	}
}

func logSnapshot(lg *logger.Logger, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		lg.WithError(err).Warn("encode snapshot")
		return
	}
	lg.WithField(name, json.RawMessage(data)).Info("snapshot")
}

// seedMemory fills the in-memory store with a small catalog.
func seedMemory(ctx context.Context, store *memory.Store) {
	now := time.Now().UnixMilli()
	categories := []catalog.Category{
		{Name: "Shirts", Date: now, CreatedBy: "seed", Image: "https://img.example.com/cat/shirts.png"},
		{Name: "Shoes", Date: now, CreatedBy: "seed", Image: "https://img.example.com/cat/shoes.png"},
	}
	products := []catalog.Product{
		{Name: "Linen Shirt", Price: "1999", FinalPrice: "1499", Category: "Shirts", AvailableUnits: 12, Date: now},
		{Name: "Denim Shirt", Price: "2499", FinalPrice: "1999", Category: "Shirts", AvailableUnits: 7, Date: now},
		{Name: "Trail Shoes", Price: "4999", FinalPrice: "4499", Category: "Shoes", AvailableUnits: 3, Date: now},
	}
	banners := []catalog.Banner{
		{Name: "Monsoon Sale", Image: "https://img.example.com/banner/monsoon.png", Date: now},
	}
	for _, c := range categories {
		if _, err := store.Add(ctx, remote.CategoriesCollection, c); err != nil {
			log.Fatalf("seed category: %v", err)
		}
	}
	for _, p := range products {
		if _, err := store.Add(ctx, remote.ProductsCollection, p); err != nil {
			log.Fatalf("seed product: %v", err)
		}
	}
	for _, b := range banners {
		if _, err := store.Add(ctx, remote.BannersCollection, b); err != nil {
			log.Fatalf("seed banner: %v", err)
		}
	}
}
