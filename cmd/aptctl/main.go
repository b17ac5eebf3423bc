package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"aptbooking/internal/config"
	"aptbooking/internal/database"
	"aptbooking/internal/domain"
	"aptbooking/internal/modules/apartment"
	"aptbooking/internal/modules/users"
	"aptbooking/internal/pkg/logger"
	"aptbooking/internal/pkg/password"
	"aptbooking/internal/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, "console", "aptctl")
	if err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

func (e *env) userService() *users.Service {
	return users.NewService(
		repository.NewUserRepository(e.db),
		repository.NewApartmentRepository(e.db),
		password.NewHasher(e.cfg.BcryptCost),
		e.log.Named("users"),
	)
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "aptctl",
		Short:        "Operator tooling for the apartment booking service",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(migrateCmd(), createAdminCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			e.log.Info("migrations applied")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var req users.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.close()

			u, err := e.userService().Create(cmd.Context(), req, domain.RoleAdmin)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created (%s)\n", u.ID, u.Phone)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Phone, "phone", "", "admin phone in E.164 form")
	cmd.Flags().StringVar(&req.Name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		count         int
		adminPhone    string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate and load an admin plus vacant apartments",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			return seed(cmd.Context(), e, count, adminPhone, adminPassword)
		},
	}

	cmd.Flags().IntVar(&count, "apartments", 10, "number of apartments to create")
	cmd.Flags().StringVar(&adminPhone, "admin-phone", "+70000000000", "phone of the default admin")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "admin123", "password of the default admin")
	return cmd
}

func seed(ctx context.Context, e *env, count int, adminPhone, adminPassword string) error {
	svc := e.userService()

	_, err := svc.Create(ctx, users.CreateUserRequest{Phone: adminPhone, Name: "Administrator", Password: adminPassword}, domain.RoleAdmin)
	switch {
	case err == nil:
		e.log.Info("seed: admin created", zap.String("phone", adminPhone))
	case errors.Is(err, users.ErrAlreadyExists):
		e.log.Info("seed: admin already present", zap.String("phone", adminPhone))
	default:
		return fmt.Errorf("seed admin: %w", err)
	}

	apartments := apartment.NewService(repository.NewApartmentRepository(e.db), e.log.Named("apartment"))
	created := 0
	for i := 0; i < count; i++ {
		req := apartment.CreateApartmentRequest{
			SequenceNumber: i + 1,
			Type:           domain.ApartmentTypes[i%len(domain.ApartmentTypes)],
		}
		if _, err := apartments.Create(ctx, req); err != nil {
			if errors.Is(err, apartment.ErrAlreadyExists) {
				continue
			}
			return fmt.Errorf("seed apartment %d: %w", req.SequenceNumber, err)
		}
		created++
	}

	e.log.Info("seed completed", zap.Int("apartments_created", created))
	return nil
}
