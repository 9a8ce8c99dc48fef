package db

import (
	"errors"
	"fmt"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"eventrent-backend/internal/platform/config"
)

const driverName = "mysql"

// MySQL server error numbers the stores translate into API errors.
const (
	ErrNumRowReferenced = 1451
	ErrNumDuplicateKey  = 1062
	ErrNumForeignKey    = 1452
)

func Connect(c config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC&clientFoundRows=true",
		c.Username, c.Password, c.Host, c.Port, c.DBName)

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	// sum of all instances must stay below MySQL max_connections
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// IsMySQLError reports whether err is a server error with the given number.
func IsMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}
