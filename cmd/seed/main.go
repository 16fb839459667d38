// Command seed loads a catalog YAML file and writes its categories,
// products and banners into the backend document store.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lumenshop/storefront/infra/backend"
	"github.com/lumenshop/storefront/internal/app/domain/catalog"
	"github.com/lumenshop/storefront/internal/app/remote"
	"github.com/lumenshop/storefront/internal/config"
	"github.com/lumenshop/storefront/pkg/logger"
)

type catalogFile struct {
	Categories []catalog.Category `yaml:"categories"`
	Products   []catalog.Product  `yaml:"products"`
	Banners    []catalog.Banner   `yaml:"banners"`
}

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to YAML configuration")
		envFile     = flag.String("env", "", "Optional .env file overriding backend credentials")
		catalogPath = flag.String("catalog", "catalog.yaml", "Path to catalog YAML to seed")
	)
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env (%s): %v", *envFile, err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if key := os.Getenv("BACKEND_API_KEY"); key != "" {
		cfg.Backend.APIKey = key
	}

	lg := logger.New(os.Stderr, "seed", logger.ParseLevel(cfg.Log.Level))

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("read catalog: %v", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		log.Fatalf("parse catalog: %v", err)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	docs := client.Documents()
	seeded := 0
	for _, c := range file.Categories {
		if _, err := docs.Add(ctx, remote.CategoriesCollection, c); err != nil {
			log.Fatalf("seed category %q: %v", c.Name, err)
		}
		seeded++
	}
	for _, p := range file.Products {
		if _, err := docs.Add(ctx, remote.ProductsCollection, p); err != nil {
			log.Fatalf("seed product %q: %v", p.Name, err)
		}
		seeded++
	}
	for _, b := range file.Banners {
		if _, err := docs.Add(ctx, remote.BannersCollection, b); err != nil {
			log.Fatalf("seed banner %q: %v", b.Name, err)
		}
		seeded++
	}

	lg.WithField("documents", seeded).Info("catalog seeded")
}
