package configs

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func gormLogger(env ENV) logger.Interface {
	level := logger.Info
	if env.IsProduction() {
		level = logger.Warn
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !env.IsProduction(),
		},
	)
}

// MySQLDSN renders the driver DSN for env.
func MySQLDSN(env ENV) string {
	cfg := mysql.NewConfig()
	cfg.User = env.DBUser
	cfg.Passwd = env.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(env.DBHost, env.DBPort)
	cfg.DBName = env.DBName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func OpenConnection() (*gorm.DB, error) {
	dsn := MySQLDSN(LoadENV)

	config := &gorm.Config{
		Logger:         gormLogger(LoadENV),
		TranslateError: true,
	}

	for i := 0; i < maxRetries; i++ {
		log.Printf("Config.OpenConnection: connecting to %s:%s/%s (attempt %d/%d)", LoadENV.DBHost, LoadENV.DBPort, LoadENV.DBName, i+1, maxRetries)
		db, err := gorm.Open(gormmysql.Open(dsn), config)
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Println("Config.OpenConnection: database connection successful")
					return db, nil
				}
			}

			log.Printf("Config.OpenConnection: failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			log.Printf("Config.OpenConnection: failed to open gorm connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries", maxRetries)
}
