// Package scripts provides utility scripts for database and system management.
//
// The seeder populates reference data the application needs, such as the
// default place categories. Like migrations it records executed seeds in a
// bookkeeping table, so it is safe to run on every start.
package scripts

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// AdminBootstrapper creates the configured administrator account.
type AdminBootstrapper interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

// Seed is a named, run-once data seed.
type Seed struct {
	Name string
	Run  func(ctx context.Context) error
}

// Seeder handles database seeding.
type Seeder struct {
	store database.Store
	admin AdminBootstrapper
	cfg   config.SeedSettings
}

// NewSeeder creates a new seeder. admin may be nil when no bootstrap
// administrator is wanted.
func NewSeeder(store database.Store, admin AdminBootstrapper, cfg config.SeedSettings) *Seeder {
	return &Seeder{
		store: store,
		admin: admin,
		cfg:   cfg,
	}
}

// Seeds returns the run-once seeds in execution order.
func (s *Seeder) Seeds() []Seed {
	return []Seed{
		{Name: "default_categories", Run: s.seedCategories},
	}
}

// SeedDatabase runs every seed that has not been recorded yet and then
// ensures the bootstrap administrator exists when one is configured.
// The seeds table is created by migrations.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	executed, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	for _, seed := range s.Seeds() {
		if executed[seed.Name] {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
			continue
		}

		log.Info().Str("seed", seed.Name).Msg("Running seed")
		if err := seed.Run(ctx); err != nil {
			return fmt.Errorf("seed %s failed: %w", seed.Name, err)
		}
		if err := s.recordSeed(ctx, seed.Name); err != nil {
			return err
		}
	}

	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// getExecutedSeeds returns the names of executed seeds.
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	res, err := s.store.Run(ctx, database.NewRequest("SELECT name FROM "+constants.TableSeeds))
	if err != nil {
		return nil, err
	}

	executed := make(map[string]bool, len(res.Rows))
	for _, row := range res.Rows {
		if name, ok := row["name"].(string); ok {
			executed[name] = true
		}
	}
	return executed, nil
}

func (s *Seeder) recordSeed(ctx context.Context, name string) error {
	if _, err := s.store.Run(ctx, database.NewRequest("INSERT INTO "+constants.TableSeeds+" (name) VALUES (?)", name)); err != nil {
		return fmt.Errorf("failed to record seed %s: %w", name, err)
	}
	return nil
}

// seedCategories inserts the default categories that are missing. Existing
// slugs are left untouched.
func (s *Seeder) seedCategories(ctx context.Context) error {
	inserted := 0
	for i := range models.DefaultCategories {
		category := models.DefaultCategories[i]

		existing, err := s.store.GetOne(ctx, database.TableCategories, map[string]interface{}{constants.ColumnSlug: category.Slug})
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		if _, err := s.store.Insert(ctx, database.TableCategories, category.Columns()); err != nil {
			// A concurrent start may have inserted it first
			if utils.IsDuplicateError(utils.ParseError(err)) {
				continue
			}
			return err
		}
		inserted++
	}

	log.Info().Int("inserted", inserted).Int("total", len(models.DefaultCategories)).Msg("Default categories seeded")
	return nil
}

// seedAdmin creates the configured administrator. It runs on every start and
// does nothing once the email is registered.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.admin == nil || !s.cfg.HasAdmin() {
		return nil
	}

	created, err := s.admin.EnsureAdmin(ctx, s.cfg.AdminName, s.cfg.AdminEmail, s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}
	if created {
		log.Info().Str("email", utils.MaskEmail(s.cfg.AdminEmail)).Msg("Bootstrap administrator created")
	}
	return nil
}
