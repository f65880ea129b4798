package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the sqlite database at databasePath and brings the schema up
// to date. An empty path falls back to sadiclarsan.db in the working
// directory.
func Init(databasePath string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "sadiclarsan.db"
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate creates or updates the tables for all models. Slug uniqueness is
// enforced here with a partial unique index so that posts without a slug do
// not collide with each other.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&BlogPost{},
		&Contact{},
		&AdminUser{},
		&SeoSettings{},
	); err != nil {
		return err
	}

	return gdb.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_blog_posts_seo_url ON blog_posts(seo_url) WHERE seo_url <> ''",
	).Error
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
