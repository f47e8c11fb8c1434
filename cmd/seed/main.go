package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	appdb "github.com/yungbote/storefront-backend/internal/data/db"
	"github.com/yungbote/storefront-backend/internal/data/seed"
	"github.com/yungbote/storefront-backend/internal/platform/envutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
	"github.com/yungbote/storefront-backend/internal/services"
)

func main() {
	file := flag.String("file", "", "seed fixture (yaml); empty uses the bundled storefront fixture")
	tokenFor := flag.String("token-for", "", "print a bearer token for this user id after seeding")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed token")
	flag.Parse()

	log, err := logger.New(envutil.String("LOG_MODE", "development", nil))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	path := *file
	if path == "" {
		path = envutil.String("SEED_FILE", "", log)
	}

	dbService, err := appdb.NewService(log, appdb.Config{
		Driver:     envutil.String("DB_DRIVER", "postgres", log),
		Host:       envutil.String("POSTGRES_HOST", "localhost", log),
		Port:       envutil.String("POSTGRES_PORT", "5432", log),
		User:       envutil.String("POSTGRES_USER", "postgres", log),
		Password:   envutil.String("POSTGRES_PASSWORD", "", log),
		Name:       envutil.String("POSTGRES_NAME", "storefront", log),
		SQLitePath: envutil.String("SQLITE_PATH", "", log),
	})
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()

	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("automigrate failed", "error", err)
		os.Exit(1)
	}

	f, err := seed.Load(path)
	if err != nil {
		log.Error("load seed failed", "error", err, "file", path)
		os.Exit(1)
	}
	sum, err := seed.NewSeeder(dbService.DB(), log).Apply(context.Background(), f)
	if err != nil {
		os.Exit(1)
	}
	fmt.Printf("seeded categories=%d products=%d orders=%d skipped=%d\n", sum.Categories, sum.Products, sum.Orders, sum.Skipped)

	if *tokenFor != "" {
		secret := envutil.String("JWT_SECRET_KEY", "", log)
		if secret == "" {
			log.Error("JWT_SECRET_KEY is required to issue a token")
			os.Exit(1)
		}
		token, err := services.NewIdentityService(log, secret).IssueToken(*tokenFor, *tokenTTL)
		if err != nil {
			log.Error("issue token failed", "error", err, "user_id", *tokenFor)
			os.Exit(1)
		}
		fmt.Printf("token for %s: %s\n", *tokenFor, token)
	}
}
