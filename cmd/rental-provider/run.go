package main

import (
	"os"
	"strconv"
	"time"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	cors "github.com/itsjamie/gin-cors"
	"github.com/flexicompute/go-rental-provider/conf"
	"github.com/flexicompute/go-rental-provider/internal/initializer"
	"github.com/flexicompute/go-rental-provider/internal/market"
	"github.com/flexicompute/go-rental-provider/util"
	"github.com/urfave/cli/v2"
)

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "Start a rental market node",
	Action: func(cctx *cli.Context) error {
		logs.GetLogger().Info("Start in rental provider mode.")

		repoPath := cctx.String(FlagRepo)
		os.Setenv("FC_PATH", repoPath)
		initializer.ProjectInit(repoPath)

		r := gin.Default()
		r.Use(cors.Middleware(cors.Config{
			Origins:         "*",
			Methods:         "GET, PUT, POST, DELETE",
			RequestHeaders:  "Origin, Authorization, Content-Type",
			ExposedHeaders:  "",
			MaxAge:          50 * time.Second,
			ValidateHeaders: false,
		}))
		pprof.Register(r)

		v1 := r.Group("/api/v1")
		marketManager(v1.Group("/market"))

		shutdownChan := make(chan struct{})
		httpStopper, err := util.ServeHttp(r, "market-api", ":"+strconv.Itoa(conf.GetConfig().API.Port))
		if err != nil {
			logs.GetLogger().Fatalf("failed to start market-api endpoint: %s", err)
		}

		finishCh := util.MonitorShutdown(shutdownChan,
			util.ShutdownHandler{Component: "market-api", StopFunc: httpStopper},
		)
		<-finishCh

		return nil
	},
}

func marketManager(router *gin.RouterGroup) {

	router.GET("/host/info", market.GetHostInfo)

	router.GET("/devices", market.ListDevices)
	router.POST("/devices", market.RegisterDevice)
	router.PUT("/devices/:device_id", market.UpdateDevice)
	router.PUT("/devices/:device_id/status", market.SetDeviceStatus)
	router.GET("/devices/:device_id/price_band", market.GetPriceBand)

	router.POST("/orders", market.RentDevice)
	router.GET("/orders", market.ListOrders)
	router.GET("/orders/:order_id", market.GetOrder)
	router.PUT("/orders/:order_id/complete", market.CompleteOrder)
	router.PUT("/orders/:order_id/cancel", market.CancelOrder)
	router.PUT("/orders/:order_id/rerate", market.RerateOrder)

	router.GET("/compatibility", market.CheckCompat)
	router.POST("/deployments", market.DeployTemplate)

	router.GET("/templates", market.ListTemplates)
	router.POST("/templates", market.AddTemplate)
	router.PUT("/templates/:template_id", market.UpdateTemplate)
	router.DELETE("/templates/:template_id", market.DeleteTemplate)

	router.GET("/billing/:renter_id", market.BillingSummary)
	router.GET("/billing/:renter_id/bills", market.ListBills)
	router.GET("/stats", market.MarketStatsHandler)
}
