package service

import (
	"Revamp/config"
	"Revamp/pkg/log"
	"Revamp/pkg/upstream"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ZoneCron 定时刷新默认范围的快照，上游不可用时仍有可用数据
type ZoneCron struct {
	conf  *config.Config
	zones IZoneService
	cron  *cron.Cron
}

func NewZoneCron(conf *config.Config, zones IZoneService) *ZoneCron {
	return &ZoneCron{
		conf:  conf,
		zones: zones,
		cron:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start RefreshCron 为空时不做任何事
func (z *ZoneCron) Start() error {
	spec := z.conf.Zones.RefreshCron
	if spec == "" {
		return nil
	}
	if _, err := z.cron.AddFunc(spec, z.refresh); err != nil {
		return err
	}
	z.cron.Start()
	log.L.Info("zone refresh scheduled", zap.String("spec", spec))
	return nil
}

// Stop 等待正在执行的任务结束
func (z *ZoneCron) Stop() context.Context {
	return z.cron.Stop()
}

func (z *ZoneCron) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	b := upstream.Bounds(z.conf.Zones.DefaultBounds)
	if err := z.zones.Refresh(ctx, b); err != nil {
		log.L.Warn("zone refresh failed", zap.String("bounds", b.Key()), zap.Error(err))
		return
	}
	log.L.Info("zone snapshot refreshed", zap.String("bounds", b.Key()))
}
