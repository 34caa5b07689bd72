// Package database owns the MySQL connection and the events schema.
package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSN builds the driver config for the events database.  Times are read in
// UTC; dates are stored as strings and never converted.
func DSN(user, pass, host, port, name string) *mysql.Config {
	c := mysql.NewConfig()
	c.User = user
	c.Passwd = pass
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(host, port)
	c.DBName = name
	c.ParseTime = true
	c.Loc = time.UTC
	// utf8mb4 keeps the yen sign and Japanese artist names intact
	c.Params = map[string]string{"charset": "utf8mb4"}
	c.Timeout = 5 * time.Second
	return c
}

// Open connects to MySQL and verifies the connection within 5s.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	connector, err := mysql.NewConnector(DSN(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	// Each request runs one statement; a small pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
