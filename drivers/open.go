package drivers

import (
	"fmt"
	"strings"

	"github.com/xo/dburl"
)

// Open connects to a database URL, picking the driver from the scheme.
// Supported forms: sqlite://path or file:path, mysql://..., postgres://....
func Open(urlstr string) (Driver, error) {
	driver, err := resolve(urlstr)
	if err != nil {
		return nil, err
	}
	if err := driver.Connect(urlstr); err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return driver, nil
}

func resolve(urlstr string) (Driver, error) {
	// Bare file paths and file: URLs are SQLite.
	if strings.HasPrefix(urlstr, "sqlite://") || strings.HasPrefix(urlstr, "file:") {
		return &SQLite{}, nil
	}

	u, err := dburl.Parse(urlstr)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Driver {
	case "sqlite3", "sqlite", "moderncsqlite":
		return &SQLite{}, nil
	case "mysql":
		return &MySQL{}, nil
	case "postgres":
		return &PostgreSQL{}, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", u.Driver)
	}
}
