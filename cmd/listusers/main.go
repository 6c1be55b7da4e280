// Command listusers prints every registered user as one JSON object per line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cardzen/internal/config"
	"cardzen/internal/database"
	"cardzen/internal/logging"
	"cardzen/internal/store"

	"github.com/rs/zerolog/log"
)

var (
	loadConfig                = config.LoadDatabase
	runMigrationsFn           = database.RunMigrations
	openDB                    = database.Open
	listUsers                 = store.ListUsers
	stdout          io.Writer = os.Stdout
	exitFunc                  = os.Exit
)

type userLine struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log.Logger = logging.New(cfg.Env, cfg.LogLevel)

	// 新的資料庫檔案先建立 schema，沒有使用者時不輸出任何內容
	if err := runMigrationsFn(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := openDB(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	users, err := listUsers(ctx, db)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	for _, u := range users {
		if err := enc.Encode(userLine{ID: u.ID, Username: u.Username, Email: u.Email}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Error().Err(err).Msg("listusers failed")
		exitFunc(1)
	}
}
