// Package main runs the fitness context MCP server over stdio for local MCP clients.
// The same server is mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Yordanos7/gym-app-V2-pro/internal/config"
	"github.com/Yordanos7/gym-app-V2-pro/internal/db"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	fitnessmcp "github.com/Yordanos7/gym-app-V2-pro/internal/gym/mcp"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP protocol, so everything else goes to stderr
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("POSTGRES_PASSWORD"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	server := fitnessmcp.NewServer(
		dbPool,
		catalog.NewService(catalog.NewRepo(dbPool), nil),
		programs.NewRepo(dbPool),
		sessions.NewRepo(dbPool),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
