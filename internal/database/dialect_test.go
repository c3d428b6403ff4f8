package database

import (
	"errors"
	"strings"
	"testing"
)

func TestDialectFor(t *testing.T) {
	tests := []struct {
		name       string
		wantName   string
		wantDriver string
	}{
		{"sqlite", "sqlite", "sqlite"},
		{"sqlite3", "sqlite", "sqlite"},
		{"postgres", "postgres", "pgx"},
		{"postgresql", "postgres", "pgx"},
		{"pgx", "postgres", "pgx"},
		{"mysql", "mysql", "mysql"},
	}

	for _, tt := range tests {
		d, err := DialectFor(tt.name)
		if err != nil {
			t.Fatalf("DialectFor(%q) failed: %v", tt.name, err)
		}
		if d.Name() != tt.wantName {
			t.Errorf("DialectFor(%q).Name() = %q, want %q", tt.name, d.Name(), tt.wantName)
		}
		if d.DriverName() != tt.wantDriver {
			t.Errorf("DialectFor(%q).DriverName() = %q, want %q", tt.name, d.DriverName(), tt.wantDriver)
		}
	}
}

func TestDialectForUnknown(t *testing.T) {
	_, err := DialectFor("oracle")
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
	if !strings.Contains(err.Error(), "oracle") {
		t.Errorf("error should name the driver: %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	sqlite := &SQLiteDialect{}
	pg := &PostgresDialect{}
	my := &MySQLDialect{}

	for i := 1; i <= 3; i++ {
		if got := sqlite.Placeholder(i).String(); got != "?" {
			t.Errorf("sqlite placeholder %d = %q", i, got)
		}
		if got := my.Placeholder(i).String(); got != "?" {
			t.Errorf("mysql placeholder %d = %q", i, got)
		}
	}
	if got := pg.Placeholder(2).String(); got != "$2" {
		t.Errorf("expected '$2', got %q", got)
	}
}

func TestSupportsTruncate(t *testing.T) {
	if (&SQLiteDialect{}).SupportsTruncate() {
		t.Error("sqlite should not support TRUNCATE")
	}
	if !(&PostgresDialect{}).SupportsTruncate() {
		t.Error("postgres should support TRUNCATE")
	}
	if !(&MySQLDialect{}).SupportsTruncate() {
		t.Error("mysql should support TRUNCATE")
	}
}

func TestMySQLDSN(t *testing.T) {
	d := &MySQLDialect{}
	got := d.DSN("app:secret@tcp(db:3306)/shop")
	if !strings.Contains(got, "parseTime=true") {
		t.Errorf("expected parseTime=true in %q", got)
	}
	if !strings.HasPrefix(got, "app:secret@tcp(db:3306)/shop") {
		t.Errorf("unexpected DSN %q", got)
	}

	if got := d.DSN("not a dsn"); got != "not a dsn" {
		t.Errorf("unparseable DSN should pass through, got %q", got)
	}
}

func TestSQLiteDSNIsPath(t *testing.T) {
	if got := (&SQLiteDialect{}).DSN("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("expected path unchanged, got %q", got)
	}
}
