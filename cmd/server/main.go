package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"

	"github.com/example/attendance_bot/internal/attendance"
	"github.com/example/attendance_bot/internal/config"
	"github.com/example/attendance_bot/internal/database"
	"github.com/example/attendance_bot/internal/routes"
	"github.com/example/attendance_bot/internal/schedule"
	"github.com/example/attendance_bot/internal/scheduler"
	"github.com/example/attendance_bot/internal/transport"
	"github.com/example/attendance_bot/internal/utils"
	"github.com/example/attendance_bot/internal/ws"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	if cfg.WebhookToken == "" {
		token, err := utils.GenerateCode(24)
		if err != nil {
			log.Fatalf("webhook token generation failed: %v", err)
		}
		cfg.WebhookToken = token
		log.Println("WEBHOOK_TOKEN not set, generated:", token)
	}

	var tr transport.Transport
	if cfg.GatewayURL != "" {
		tr = transport.NewGateway(cfg.GatewayURL, cfg.GatewayToken)
	} else {
		log.Println("no gateway configured, sending to console")
		tr = transport.NewConsole()
	}

	hub := ws.NewRosterHub()
	go hub.Run()

	store := attendance.NewGormStore(db, loc)
	resolver := &schedule.Resolver{DB: db, Loc: loc}
	dispatcher := &attendance.Dispatcher{Store: store, Dir: store, Transport: tr}
	assembler := &attendance.Assembler{Store: store, Dir: store, Transport: tr}
	router := attendance.NewRouter(store, store, tr, &ws.Feed{Hub: hub})

	sched := scheduler.New(loc)
	planner := &attendance.Planner{
		Resolver:   resolver,
		Sched:      sched,
		Dispatcher: dispatcher,
		Assembler:  assembler,
		Store:      store,
		NotifyLead: time.Duration(cfg.NotifyLeadMinutes) * time.Minute,
		CollectLag: time.Duration(cfg.CollectLagMinutes) * time.Minute,
		StaleAfter: time.Duration(cfg.ProvisionalTTLDays) * 24 * time.Hour,
		Now:        time.Now,
	}
	sched.Start(planner.PlanToday)
	defer sched.Stop()

	r := gin.Default()
	routes.Register(r, routes.Deps{
		DB:        db,
		Cfg:       cfg,
		Store:     store,
		Router:    router,
		Planner:   planner,
		Resolver:  resolver,
		Transport: tr,
		Hub:       hub,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Println("server exited with error:", err)
		os.Exit(1)
	}
}
