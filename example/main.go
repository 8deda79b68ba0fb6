// FILE: lixenwraith/params/example/main.go
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/params"
	"go.uber.org/zap"
)

// StripeConfig is populated from /service/stripe.
type StripeConfig struct {
	BlockListID string `param:"blockListId"`
	APIKey      string `param:"apiKey"`
	Retries     int    `param:"retries"`
	Sandbox     bool   `param:"sandbox"`
}

// ServiceConfig is populated from /service with kebab-case keys.
type ServiceConfig struct {
	CustomerEmail  string        `param:"customerEmail"`
	RequestTimeout time.Duration `param:"requestTimeout"`
	Region         *string       `param:"region"`
	Stripe         StripeConfig  `param:"stripe"`
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// =========================================================================
	// PART 1: Declare the store layout
	// =========================================================================
	// Identity keeps the camelCase keys; without it the kebab convention
	// of the enclosing store would apply here too.
	stripe := params.NewSchema().
		Naming(params.Identity).
		Field("blockListId", params.String()).
		Field("apiKey", params.String()).
		Field("retries", params.Int(params.Default(3))).
		Field("sandbox", params.Bool(params.Default(true))).
		MustBuild()

	service := params.Store("/service", params.WithNaming(params.Kebab)).
		Param("customerEmail", params.String()).
		Param("requestTimeout", params.String(params.Default("5s"))).
		Param("region", params.MaybeString()).
		Nested("stripe", stripe).
		MustBuild()

	registry := params.NewRegistry()
	params.MustRegister[ServiceConfig](registry, service)

	log.Println("keys read by the service store:")
	for _, key := range service.Keys() {
		log.Println("  ", key)
	}

	// =========================================================================
	// PART 2: Write a local parameter file and load it
	// =========================================================================
	dir, err := os.MkdirTemp("", "params-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "params.toml")
	err = params.WriteParameters(path, []params.Parameter{
		params.P("/service/customer-email", "ops@example.com"),
		params.P("/service/stripe/blockListId", "bl-17"),
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	fetcher := params.NewFileFetcher(path)

	_, err = params.LoadType[ServiceConfig](ctx, registry, fetcher)
	if params.IsMissingFields(err) {
		log.Printf("expected failure: %v", err)
	}

	// =========================================================================
	// PART 3: Overlay the missing key from the environment
	// =========================================================================
	os.Setenv("EXAMPLE_SERVICE_STRIPE_APIKEY", "sk_test_123")
	defer os.Unsetenv("EXAMPLE_SERVICE_STRIPE_APIKEY")

	env := params.NewEnvFetcher(params.EnvOptions{Prefix: "EXAMPLE_", Keys: service.Keys()})
	chain := params.ChainFetcher{fetcher, env}

	cfg, err := params.LoadType[ServiceConfig](ctx, registry, chain, func(b *params.LoaderBuilder) {
		b.WithLogger(logger)
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded: %+v", cfg)

	// =========================================================================
	// PART 4: Watch for changes
	// =========================================================================
	loader := params.NewLoader().WithFetcher(chain).WithStore(service).WithLogger(logger).MustBuild()

	watchCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	updates := loader.Watch(watchCtx, params.WatchOptions{PollInterval: 200 * time.Millisecond})
	go func() {
		time.Sleep(500 * time.Millisecond)
		_ = params.WriteParameters(path, []params.Parameter{
			params.P("/service/customer-email", "billing@example.com"),
			params.P("/service/stripe/blockListId", "bl-18"),
			params.P("/service/stripe/retries", "5"),
		})
	}()

	for update := range updates {
		if update.Err != nil {
			log.Printf("update error: %v", update.Err)
			continue
		}
		email, _ := update.Values.String("customerEmail")
		retries, _ := update.Values.Int("stripe", "retries")
		log.Printf("update at %s: customerEmail=%s retries=%d", update.At.Format(time.TimeOnly), email, retries)
	}
}
