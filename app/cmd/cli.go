package cmd

import (
	"context"
	"log"
	"os"

	"github.com/Rakhulsr/go-marketplace/app/configs"
	"github.com/Rakhulsr/go-marketplace/app/db/seeders"
	"github.com/Rakhulsr/go-marketplace/app/models/migrations"
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "marketplace",
		Usage: "Multi-seller marketplace API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return Serve(ctx, configs.LoadENV)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return Serve(ctx, configs.LoadENV)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill an empty database with sample users, categories and products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "sellers", Value: int64(seeders.DefaultOptions().Sellers), Usage: "number of seller accounts"},
					&cli.IntFlag{Name: "customers", Value: int64(seeders.DefaultOptions().Customers), Usage: "number of customer accounts"},
					&cli.IntFlag{Name: "products", Value: int64(seeders.DefaultOptions().ProductsPerSeller), Usage: "products per seller"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					opts := seeders.Options{
						Sellers:           int(c.Int("sellers")),
						Customers:         int(c.Int("customers")),
						ProductsPerSeller: int(c.Int("products")),
					}
					if err := seeders.DBSeed(ctx, db, opts); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.new_keys", Usage: "file to write the keys to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.WriteKeysFile(c.String("out"))
				},
			},
		},
	}
}

func RunCli() {
	if err := NewCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
