package main

import (
	"context"
	"fmt"

	"expedientes/internal/db"
	"expedientes/internal/seed"
	"expedientes/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Create the schema and an initial admin user",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "admin-nombre",
			Usage: "Name of the initial admin",
			Value: "Administrador",
		},
		&cli.StringFlag{
			Name:     "admin-email",
			Usage:    "Email of the initial admin",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "admin-password",
			Usage:    "Password of the initial admin",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		logrus.Info("Ensuring schema...")
		if err := db.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}

		usuarioRepo := store.NewUsuarioRepository(pool)

		logrus.Info("Seeding admin user...")
		if err := seed.SeedAdmin(ctx, usuarioRepo, c.String("admin-nombre"), c.String("admin-email"), c.String("admin-password")); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		logrus.Info("Seed completed")

		return nil
	},
}
