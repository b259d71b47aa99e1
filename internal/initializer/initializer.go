package initializer

import (
	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/conf"
	"github.com/flexicompute/go-rental-provider/constants"
	"github.com/flexicompute/go-rental-provider/internal/market"
)

func ProjectInit(repoPath string) {
	if err := conf.InitConfig(repoPath); err != nil {
		logs.GetLogger().Fatal(err)
	}
	cfg := conf.GetConfig()

	store, err := market.OpenOrInitStore(cfg.STORE.DatastorePath)
	if err != nil {
		logs.GetLogger().Fatalf("Failed open market datastore, path: %s, error: %+v", cfg.STORE.DatastorePath, err)
	}

	policy := market.PricingPolicy{
		CpuCoreHourMin: cfg.PRICING.CpuCoreHourMin,
		CpuCoreHourMax: cfg.PRICING.CpuCoreHourMax,
		GpuHourMin:     cfg.PRICING.GpuHourMin,
		GpuHourMax:     cfg.PRICING.GpuHourMax,
	}

	engine, err := market.NewEngine(store, policy)
	if err != nil {
		logs.GetLogger().Fatalf("Failed build market engine, error: %+v", err)
	}
	market.InitEngine(engine)

	celeryService := market.NewCeleryService()
	celeryService.RegisterTask(constants.TASK_TEMPLATE_DEPLOY, market.TemplateDeployTask)
	celeryService.Start()
	engine.SetDispatcher(celeryService)

	market.WatchExpiredRentals(engine)
}
