package main

import (
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-api/api"
	"kanban-api/domain"
	"kanban-api/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	usersTable := os.Getenv("USERS_TABLE")
	boardsTable := os.Getenv("BOARDS_TABLE")
	columnsTable := os.Getenv("COLUMNS_TABLE")
	tasksTable := os.Getenv("TASKS_TABLE")
	if connStr == "" || usersTable == "" || boardsTable == "" || columnsTable == "" || tasksTable == "" {
		log.Fatal("missing storage config")
	}
	store, err := storage.New(connStr, usersTable, boardsTable, columnsTable, tasksTable)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	redisConn := os.Getenv("REDIS_CONNECTION_STRING")
	if redisConn == "" {
		log.Fatal("missing redis config")
	}
	redisOpts, err := redis.ParseURL(redisConn)
	if err != nil {
		parts := strings.Split(redisConn, ",")
		redisOpts = &redis.Options{Addr: parts[0]}
		for _, p := range parts[1:] {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch strings.ToLower(kv[0]) {
			case "password":
				redisOpts.Password = kv[1]
			case "ssl":
				if strings.ToLower(kv[1]) == "true" {
					redisOpts.TLSConfig = &tls.Config{}
				}
			}
		}
	}
	rc := redis.NewClient(redisOpts)
	cacheTTL := 5 * time.Minute
	if v := os.Getenv("BOARD_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			log.Fatalf("invalid BOARD_CACHE_TTL: %v", err)
		}
		cacheTTL = d
	}
	cached := storage.NewCache(store, rc, cacheTTL)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("missing JWT_SECRET")
	}
	tokenTTL := 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Fatalf("invalid JWT_TTL: %v", err)
		}
		tokenTTL = d
	}
	auth := api.NewAuth([]byte(jwtSecret), os.Getenv("JWT_ISSUER"), tokenTTL)

	boards := domain.NewBoardService(cached)
	services := api.Services{
		Auth:    domain.NewAuthService(cached, boards, auth),
		Boards:  boards,
		Columns: domain.NewColumnService(cached),
		Tasks:   domain.NewTaskService(cached),
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger := log.New()
	api.Register(e, services, auth, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
