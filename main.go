package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatchboard/configs"
	"dispatchboard/controllers"
	"dispatchboard/kintone"
	"dispatchboard/repository"
	"dispatchboard/routes"
	"dispatchboard/services"
	"dispatchboard/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedOperator(); err != nil {
		log.Fatalf("seed operator: %v", err)
	}

	kin := kintone.New(kintone.Config{
		Subdomain: cfg.KintoneSubdomain,
		Driver:    kintone.AppCredentials{AppID: cfg.DriverAppID, Token: cfg.DriverToken},
		Truck:     kintone.AppCredentials{AppID: cfg.TruckAppID, Token: cfg.TruckToken},
		Chassis:   kintone.AppCredentials{AppID: cfg.ChassisAppID, Token: cfg.ChassisToken},
		Container: kintone.AppCredentials{AppID: cfg.ContainerAppID, Token: cfg.ContainerToken},
	})

	boardRepo := repository.NewBoardStateRepository(configs.DB())
	operatorRepo := repository.NewOperatorRepository(configs.DB())

	board := services.NewBoardService(cfg.BoardID, boardRepo)
	if err := board.Load(); err != nil {
		log.Fatalf("load board state: %v", err)
	}

	hub := ws.NewBoardHub()
	go hub.Run()
	board.OnChange(hub.Broadcast)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), time.Minute)
	services.LoadMasterData(bootCtx, board, kin)
	cancelBoot()

	reconciler := services.NewReconciler(board, kin)
	reconciler.Start()

	auth := services.NewAuthService(operatorRepo, cfg.JWTSecret, cfg.JWTTTL)
	mail := services.NewMailService(cfg)

	r := gin.Default()
	routes.SetupRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		Board:    controllers.NewBoardController(board),
		Settings: controllers.NewSettingsController(board),
		Mail:     controllers.NewMailController(board, mail),
		Hub:      hub,
	}, cfg.JWTSecret)

	go func() {
		if err := r.Run(":" + cfg.Port); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	reconciler.Stop()
	board.Close()
}
