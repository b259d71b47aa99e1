package market

import (
	"sync"
	"time"

	"github.com/flexicompute/go-rental-provider/conf"
	"github.com/flexicompute/go-rental-provider/constants"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/gocelery/gocelery"
	"github.com/gomodule/redigo/redis"
)

var redisPool *redis.Pool
var celeryService *CeleryService
var celeryOnce sync.Once

// CeleryService queues deployment dispatches for the external executor.
type CeleryService struct {
	cli *gocelery.CeleryClient
}

func newRedisPool(url string, password string) *redis.Pool {
	redisPool = &redis.Pool{
		MaxIdle:     5,
		MaxActive:   0,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			var conn redis.Conn
			var err error
			if password != "" {
				conn, err = redis.DialURL(url, redis.DialPassword(password))
			} else {
				conn, err = redis.DialURL(url)
			}
			if err != nil {
				return nil, err
			}
			return conn, err
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			_, err := c.Do("PING")
			return err
		},
	}
	return redisPool
}

func NewCeleryService() *CeleryService {
	celeryOnce.Do(
		func() {
			redisPool := newRedisPool(conf.GetConfig().API.RedisUrl, conf.GetConfig().API.RedisPassword)
			celeryClient, err := gocelery.NewCeleryClient(
				gocelery.NewRedisBroker(redisPool),
				gocelery.NewRedisBackend(redisPool),
				10)
			if err != nil {
				logs.GetLogger().Fatalf("Failed init celery service, error: %+v", err)
			}
			celeryService = &CeleryService{
				cli: celeryClient,
			}
		})

	return celeryService
}

func (s *CeleryService) RegisterTask(taskName string, task interface{}) {
	s.cli.Register(taskName, task)
}

func (s *CeleryService) DelayTask(taskName string, params ...interface{}) (*gocelery.AsyncResult, error) {
	return s.cli.Delay(taskName, params...)
}

func (s *CeleryService) Start() {
	s.cli.StartWorker()
}

func (s *CeleryService) Stop() {
	s.cli.StopWorker()
}

// DispatchTemplateDeploy implements DeployDispatcher by queueing the decision
// for the deployment executor. Failures only log: the attachment is already
// recorded on the order and the executor can replay from it.
func (s *CeleryService) DispatchTemplateDeploy(orderId, deviceId, templateId string) {
	delayTask, err := s.DelayTask(constants.TASK_TEMPLATE_DEPLOY, orderId, deviceId, templateId)
	if err != nil {
		logs.GetLogger().Errorf("Failed dispatch deploy task, order: %s, template: %s, error: %+v", orderId, templateId, err)
		return
	}
	logs.GetLogger().Infof("deploy task queued: %+v, order: %s, device: %s, template: %s",
		delayTask, orderId, deviceId, templateId)
}

// TemplateDeployTask is the worker-side stub: the real executor is out of
// process, this records that the decision left the engine.
func TemplateDeployTask(orderId, deviceId, templateId string) string {
	logs.GetLogger().Infof("deploy decision handed off, order: %s, device: %s, template: %s", orderId, deviceId, templateId)
	return orderId
}
