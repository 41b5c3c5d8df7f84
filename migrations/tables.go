package migrations

import "github.com/yasinhessnawi1/travelguide/internal/constants"

// GetMigrations returns all migrations in the order they must run.
// Parents come before children so foreign keys resolve.
func GetMigrations() []Migration {
	return []Migration{
		createCountriesTable(),
		createCitiesTable(),
		createCategoriesTable(),
		createPlacesTable(),
		createAccommodationsTable(),
		createTransportsTable(),
		createUsersTable(),
		createSeedsTable(),
	}
}

// migrationsTableSQL creates the table that tracks executed migrations.
func migrationsTableSQL(postgres bool) string {
	if postgres {
		return `CREATE TABLE IF NOT EXISTS ` + constants.TableMigrations + ` (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`
	}
	return `CREATE TABLE IF NOT EXISTS ` + constants.TableMigrations + ` (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
}

// createCountriesTable creates the countries table
func createCountriesTable() Migration {
	return Migration{
		Name:        "create_countries_table",
		Description: "Creates the countries table",
		TableName:   "countries",
		MySQL: `
		CREATE TABLE IF NOT EXISTS countries (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			capital VARCHAR(255),
			currency VARCHAR(64),
			language VARCHAR(128),
			image VARCHAR(512),
			status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_countries_slug UNIQUE (slug)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS countries (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			capital VARCHAR(255),
			currency VARCHAR(64),
			language VARCHAR(128),
			image VARCHAR(512),
			status VARCHAR(16) NOT NULL DEFAULT 'published' CHECK (status IN ('draft','published','archived')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_countries_slug UNIQUE (slug)
		)`,
	}
}

// createCitiesTable creates the cities table. Deleting a country removes its cities.
func createCitiesTable() Migration {
	return Migration{
		Name:        "create_cities_table",
		Description: "Creates the cities table",
		TableName:   "cities",
		MySQL: `
		CREATE TABLE IF NOT EXISTS cities (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			country_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			image VARCHAR(512),
			status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_cities_slug_country UNIQUE (slug, country_id),
			CONSTRAINT fk_cities_country FOREIGN KEY (country_id) REFERENCES countries(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS cities (
			id BIGSERIAL PRIMARY KEY,
			country_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			image VARCHAR(512),
			status VARCHAR(16) NOT NULL DEFAULT 'published' CHECK (status IN ('draft','published','archived')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_cities_slug_country UNIQUE (slug, country_id),
			CONSTRAINT fk_cities_country FOREIGN KEY (country_id) REFERENCES countries(id) ON DELETE CASCADE
		)`,
	}
}

// createCategoriesTable creates the categories table
func createCategoriesTable() Migration {
	return Migration{
		Name:        "create_categories_table",
		Description: "Creates the categories table",
		TableName:   "categories",
		MySQL: `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			CONSTRAINT uq_categories_slug UNIQUE (slug)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			CONSTRAINT uq_categories_slug UNIQUE (slug)
		)`,
	}
}

// createPlacesTable creates the places table
func createPlacesTable() Migration {
	return Migration{
		Name:        "create_places_table",
		Description: "Creates the places table",
		TableName:   "places",
		MySQL: `
		CREATE TABLE IF NOT EXISTS places (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			city_id BIGINT UNSIGNED NOT NULL,
			category_id BIGINT UNSIGNED NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			location VARCHAR(255),
			image VARCHAR(512),
			status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_places_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_places_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE,
			CONSTRAINT fk_places_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS places (
			id BIGSERIAL PRIMARY KEY,
			city_id BIGINT NOT NULL,
			category_id BIGINT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			location VARCHAR(255),
			image VARCHAR(512),
			status VARCHAR(16) NOT NULL DEFAULT 'published' CHECK (status IN ('draft','published','archived')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_places_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_places_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE,
			CONSTRAINT fk_places_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
		)`,
	}
}

// createAccommodationsTable creates the accommodations table
func createAccommodationsTable() Migration {
	return Migration{
		Name:        "create_accommodations_table",
		Description: "Creates the accommodations table",
		TableName:   "accommodations",
		MySQL: `
		CREATE TABLE IF NOT EXISTS accommodations (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			city_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			accommodation_type VARCHAR(64),
			price_range VARCHAR(64),
			address VARCHAR(512),
			image VARCHAR(512),
			status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_accommodations_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_accommodations_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS accommodations (
			id BIGSERIAL PRIMARY KEY,
			city_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			accommodation_type VARCHAR(64),
			price_range VARCHAR(64),
			address VARCHAR(512),
			image VARCHAR(512),
			status VARCHAR(16) NOT NULL DEFAULT 'published' CHECK (status IN ('draft','published','archived')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_accommodations_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_accommodations_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE
		)`,
	}
}

// createTransportsTable creates the transports table
func createTransportsTable() Migration {
	return Migration{
		Name:        "create_transports_table",
		Description: "Creates the transports table",
		TableName:   "transports",
		MySQL: `
		CREATE TABLE IF NOT EXISTS transports (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			city_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			transport_type VARCHAR(64),
			schedule TEXT,
			route TEXT,
			image VARCHAR(512),
			status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_transports_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_transports_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS transports (
			id BIGSERIAL PRIMARY KEY,
			city_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			transport_type VARCHAR(64),
			schedule TEXT,
			route TEXT,
			image VARCHAR(512),
			status VARCHAR(16) NOT NULL DEFAULT 'published' CHECK (status IN ('draft','published','archived')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_transports_slug_city UNIQUE (slug, city_id),
			CONSTRAINT fk_transports_city FOREIGN KEY (city_id) REFERENCES cities(id) ON DELETE CASCADE
		)`,
	}
}

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		MySQL: `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role ENUM('user','moderator','admin') NOT NULL DEFAULT 'user',
			avatar VARCHAR(512),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT uq_users_email UNIQUE (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'user' CHECK (role IN ('user','moderator','admin')),
			avatar VARCHAR(512),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT uq_users_email UNIQUE (email)
		)`,
	}
}

// createSeedsTable creates the table that records executed seeds
func createSeedsTable() Migration {
	return Migration{
		Name:        "create_seeds_table",
		Description: "Creates the seed bookkeeping table",
		TableName:   constants.TableSeeds,
		MySQL: `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) NOT NULL PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		Postgres: `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) NOT NULL PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}
