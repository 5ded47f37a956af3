package db

import "database/sql"

// MigrateUp creates the schema if it does not exist. Statements are
// idempotent so the API and worker can both run them at startup.
func MigrateUp(pool *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      VARCHAR(80)  NOT NULL UNIQUE,
    email         VARCHAR(255) NOT NULL UNIQUE,
    password_hash TEXT         NOT NULL,
    full_name     VARCHAR(255),
    phone         VARCHAR(20),
    role          VARCHAR(20)  NOT NULL DEFAULT 'user',
    active        BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS categories (
    id            SERIAL PRIMARY KEY,
    site          VARCHAR(2)   NOT NULL,
    name          VARCHAR(120) NOT NULL,
    slug          VARCHAR(160) NOT NULL,
    parent_id     INTEGER REFERENCES categories(id),
    description   TEXT,
    icon          VARCHAR(120),
    display_order INTEGER      NOT NULL DEFAULT 0,
    visible       BOOLEAN      NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
    UNIQUE (site, slug)
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    site         VARCHAR(2)   NOT NULL,
    slug         VARCHAR(255) NOT NULL,
    title        TEXT         NOT NULL,
    content      TEXT         NOT NULL,
    summary      TEXT,
    thumbnail    TEXT,
    category_id  INTEGER      NOT NULL REFERENCES categories(id),
    created_by   INTEGER      NOT NULL REFERENCES users(id),
    approved_by  INTEGER REFERENCES users(id),
    status       VARCHAR(20)  NOT NULL DEFAULT 'draft',
    is_featured  BOOLEAN      NOT NULL DEFAULT FALSE,
    is_hot       BOOLEAN      NOT NULL DEFAULT FALSE,
    view_count   BIGINT       NOT NULL DEFAULT 0,
    is_deleted   BOOLEAN      NOT NULL DEFAULT FALSE,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    UNIQUE (site, slug)
)`,
		`CREATE TABLE IF NOT EXISTS article_rejections (
    id          SERIAL PRIMARY KEY,
    article_id  INTEGER     NOT NULL REFERENCES articles(id),
    rejected_by INTEGER     NOT NULL REFERENCES users(id),
    reason      TEXT        NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS tags (
    id   SERIAL PRIMARY KEY,
    name VARCHAR(80) NOT NULL UNIQUE,
    slug VARCHAR(80) NOT NULL UNIQUE
)`,
		`CREATE TABLE IF NOT EXISTS article_tags (
    article_id INTEGER NOT NULL REFERENCES articles(id),
    tag_id     INTEGER NOT NULL REFERENCES tags(id),
    PRIMARY KEY (article_id, tag_id)
)`,
		`CREATE TABLE IF NOT EXISTS comments (
    id         SERIAL PRIMARY KEY,
    article_id INTEGER     NOT NULL REFERENCES articles(id),
    user_id    INTEGER     NOT NULL REFERENCES users(id),
    content    TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS saved_articles (
    user_id    INTEGER     NOT NULL REFERENCES users(id),
    article_id INTEGER     NOT NULL REFERENCES articles(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`,
		`CREATE TABLE IF NOT EXISTS viewed_articles (
    user_id    INTEGER     NOT NULL REFERENCES users(id),
    article_id INTEGER     NOT NULL REFERENCES articles(id),
    viewed_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`,
		`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
    id                SERIAL PRIMARY KEY,
    email             VARCHAR(255) NOT NULL UNIQUE,
    active            BOOLEAN      NOT NULL DEFAULT TRUE,
    unsubscribe_token VARCHAR(64)  NOT NULL UNIQUE,
    created_at        TIMESTAMPTZ  NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ  NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
    id         SERIAL PRIMARY KEY,
    user_id    INTEGER     NOT NULL REFERENCES users(id),
    token      VARCHAR(64) NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ NOT NULL,
    used       BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS settings (
    id       SERIAL PRIMARY KEY,
    category VARCHAR(40)  NOT NULL,
    key      VARCHAR(120) NOT NULL,
    value    TEXT         NOT NULL,
    UNIQUE (category, key)
)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		// listing order for every site feed
		`CREATE INDEX IF NOT EXISTS idx_articles_site_created_at ON articles(site, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category_id ON articles(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_by ON articles(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reset_tokens_user_id ON password_reset_tokens(user_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search paths. Errors are ignored: the
	// extension may already exist or require superuser rights.
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_summary_gin ON articles USING gin(summary gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = pool.Exec(idx)
	}

	return nil
}
