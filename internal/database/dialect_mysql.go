package database

import (
	"github.com/go-sql-driver/mysql"

	"github.com/cdtdelta/typedsql/query"
)

// MySQLDialect implements Dialect for MySQL and MariaDB.
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string                            { return "mysql" }
func (d *MySQLDialect) DriverName() string                      { return "mysql" }
func (d *MySQLDialect) Placeholder(index int) query.Placeholder { return query.Positional() }
func (d *MySQLDialect) SupportsTruncate() bool                  { return true }

// DSN normalizes a go-sql-driver DSN, or returns it unchanged when it does
// not parse. Time values are parsed into time.Time.
func (d *MySQLDialect) DSN(pathOrConnStr string) string {
	cfg, err := mysql.ParseDSN(pathOrConnStr)
	if err != nil {
		return pathOrConnStr
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
