package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/backup"
	"github.com/Yordanos7/gym-app-V2-pro/internal/config"
	"github.com/Yordanos7/gym-app-V2-pro/internal/db"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/nutrition"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
	"github.com/Yordanos7/gym-app-V2-pro/internal/logging"
)

// google drive backup of workout sessions and meals

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String("gd-creds", "./drive-credentials.json", "google drive service account credentials json")
	shareWith := flag.String("share-with", "", "email that gets read access to every backup file")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	reinit := flag.Bool("reinit", false, "delete all backups and start again")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("load .env: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath != "",
		LogLevel:    "info",
	})

	log.Println("starting gym app backup ...")
	if *reinit {
		log.Warnln("!! attention: will reinitialize all again ...")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	credentials, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read drive credentials file: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	store, err := backup.NewDriveStore(ctx, credentials, *shareWith)
	if err != nil {
		log.Fatalf("drive store: %s", err)
	}

	s := backup.NewService(store, sessions.NewRepo(dbPool), nutrition.NewRepo(dbPool), nil)
	if err := s.Init(ctx); err != nil {
		log.Fatalf("init backup: %s", err)
	}

	baseTime := time.Now()
	if *reinit {
		if err := s.Reinit(ctx, baseTime); err != nil {
			log.Fatalf("reinit failed: %s", err)
		}
		log.Println("reinit done")
		return
	}

	if err := s.DoBackup(ctx, baseTime); err != nil {
		log.Fatalf("backup failed: %s", err)
	}
	log.Println("backup done")
}
