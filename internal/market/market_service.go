package market

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/build"
	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/flexicompute/go-rental-provider/util"
	"github.com/gin-gonic/gin"
)

func errorCode(err error) int {
	switch {
	case errors.Is(err, ErrDeviceNotFound):
		return util.DeviceNotFoundError
	case errors.Is(err, ErrDeviceNotAvailable):
		return util.DeviceNotAvailableError
	case errors.Is(err, ErrInvalidStateTransition):
		return util.InvalidStateTransitionError
	case errors.Is(err, ErrInvalidDuration):
		return util.InvalidDurationError
	case errors.Is(err, ErrInvalidPricing):
		return util.InvalidPricingError
	case errors.Is(err, ErrOrderNotFound):
		return util.OrderNotFoundError
	case errors.Is(err, ErrInvalidOrderState):
		return util.InvalidOrderStateError
	case errors.Is(err, ErrIncompatibleTemplate):
		return util.IncompatibleTemplateError
	case errors.Is(err, ErrConcurrentModification):
		return util.ConcurrentModificationError
	case errors.Is(err, ErrTemplateNotFound):
		return util.TemplateNotFoundError
	case errors.Is(err, ErrDeviceBusy):
		return util.DeviceBusyError
	}
	return util.JsonError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(http.StatusOK, util.CreateErrorResponse(errorCode(err)))
}

func GetHostInfo(c *gin.Context) {
	info := new(models.HostInfo)
	info.ProviderVersion = build.UserVersion()
	info.OperatingSystem = runtime.GOOS
	info.Architecture = runtime.GOARCH
	info.CPUCores = runtime.NumCPU()
	c.JSON(http.StatusOK, util.CreateSuccessResponse(info))
}

func ListDevices(c *gin.Context) {
	var filter models.DeviceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Registry.List(&filter)))
}

func RegisterDevice(c *gin.Context) {
	var req models.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	device, err := engine.Registry.Register(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	logs.GetLogger().Infof("device registered: %s, owner: %s, kind: %s", device.Id, device.OwnerId, device.Kind)

	if warning := engine.Policy.PriceWarning(device); warning != "" {
		c.JSON(http.StatusOK, util.CreateSuccessResponseWithWarning(device, warning))
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(device))
}

func UpdateDevice(c *gin.Context) {
	deviceId := c.Param("device_id")
	var req models.UpdateDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	device, err := engine.Registry.Update(deviceId, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if warning := engine.Policy.PriceWarning(device); warning != "" {
		c.JSON(http.StatusOK, util.CreateSuccessResponseWithWarning(device, warning))
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(device))
}

func SetDeviceStatus(c *gin.Context) {
	deviceId := c.Param("device_id")
	var req models.SetDeviceStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	device, err := engine.Registry.Transition(deviceId, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	logs.GetLogger().Infof("device %s moved to %s", device.Id, device.Status)
	c.JSON(http.StatusOK, util.CreateSuccessResponse(device))
}

func GetPriceBand(c *gin.Context) {
	device, err := engine.Registry.Get(c.Param("device_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Policy.RecommendRange(device)))
}

func RentDevice(c *gin.Context) {
	var req models.RentDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	order, err := engine.Orders.Rent(req.DeviceId, req.RenterId, req.DurationHours)
	if err != nil {
		abortWithError(c, err)
		return
	}
	logs.GetLogger().Infof("rental created: %s, device: %s, renter: %s, cost: %.2f",
		order.Id, order.DeviceId, order.RenterId, order.TotalCost)

	if redisPool != nil {
		go SaveRentalMetadata(order.Id, order.RenterId, order.DeviceId, order.StartTime, order.DurationHours)
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func GetOrder(c *gin.Context) {
	order, err := engine.Orders.Get(c.Param("order_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Orders.List(c.Query("renter_id"))))
}

func CompleteOrder(c *gin.Context) {
	order, err := engine.Orders.Complete(c.Param("order_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	logs.GetLogger().Infof("rental completed: %s, device: %s", order.Id, order.DeviceId)
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func CancelOrder(c *gin.Context) {
	order, err := engine.Orders.Cancel(c.Param("order_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	logs.GetLogger().Infof("rental cancelled: %s, device: %s", order.Id, order.DeviceId)
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func RerateOrder(c *gin.Context) {
	order, err := engine.Orders.Rerate(c.Param("order_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func CheckCompat(c *gin.Context) {
	result, err := engine.CheckCompatibility(c.Query("device_id"), c.Query("template_id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(result))
}

func DeployTemplate(c *gin.Context) {
	var req models.DeployTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	order, err := engine.DeployTemplate(req.OrderId, req.TemplateId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(order))
}

func ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Catalog.List()))
}

func AddTemplate(c *gin.Context) {
	var req models.AddTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	template, err := engine.Catalog.Add(&req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(template))
}

func UpdateTemplate(c *gin.Context) {
	var req models.AddTemplateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, util.CreateErrorResponse(util.JsonError, err.Error()))
		return
	}

	template, err := engine.Catalog.Update(c.Param("template_id"), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(template))
}

func DeleteTemplate(c *gin.Context) {
	if err := engine.DeleteTemplate(c.Param("template_id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.CreateSuccessResponse(nil))
}

func BillingSummary(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Billing.Summarize(c.Param("renter_id"))))
}

func ListBills(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(engine.Billing.Bills(c.Param("renter_id"))))
}

func MarketStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, util.CreateSuccessResponse(Stats(engine.Registry, engine.Orders)))
}
