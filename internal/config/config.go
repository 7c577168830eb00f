package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port              string
	DBDSN             string
	LogFile           string
	LowStockThreshold int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "webstore.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./webstore.log" // default log sink in project root
	}
	lowStock := 5
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			lowStock = n
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, LowStockThreshold: lowStock}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s LOW_STOCK_THRESHOLD=%d", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.LowStockThreshold)
	return cfg
}
