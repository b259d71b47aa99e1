package util

const (
	ApiStatusSuccess = "success"
	ApiStatusFail    = "failed"
)

type BasicResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

func CreateSuccessResponse(_data interface{}) BasicResponse {
	return BasicResponse{
		Status: ApiStatusSuccess,
		Data:   _data,
		Code:   SuccessCode,
	}
}

// CreateSuccessResponseWithWarning carries an advisory note (e.g. a listing
// price outside the recommended band) beside the payload.
func CreateSuccessResponseWithWarning(_data interface{}, warning string) BasicResponse {
	resp := CreateSuccessResponse(_data)
	resp.Warning = warning
	return resp
}

func CreateErrorResponse(code int, errMsg ...string) BasicResponse {
	var msg string
	if len(errMsg) == 0 {
		msg = codeMsg[code]
	} else {
		msg = errMsg[0]
	}
	return BasicResponse{
		Status:  ApiStatusFail,
		Code:    code,
		Message: msg,
	}
}

const (
	SuccessCode = 200
	JsonError   = 400

	DeviceNotFoundError         = 7001
	DeviceNotAvailableError     = 7002
	InvalidStateTransitionError = 7003
	InvalidDurationError        = 7004
	InvalidPricingError         = 7005
	OrderNotFoundError          = 7006
	InvalidOrderStateError      = 7007
	IncompatibleTemplateError   = 7008
	ConcurrentModificationError = 7009
	TemplateNotFoundError       = 7010
	DeviceBusyError             = 7011
)

var codeMsg = map[int]string{
	JsonError: "An error occurred while converting to json",

	DeviceNotFoundError:         "The requested device does not exist",
	DeviceNotAvailableError:     "The device is not available, try another device",
	InvalidStateTransitionError: "The device cannot move to the requested status",
	InvalidDurationError:        "The rental duration must be greater than zero",
	InvalidPricingError:         "The device pricing does not derive a positive hourly rate",
	OrderNotFoundError:          "The requested order does not exist",
	InvalidOrderStateError:      "The order is not in a valid state for this operation",
	IncompatibleTemplateError:   "The device does not satisfy the template requirements, upgrade device",
	ConcurrentModificationError: "The record changed concurrently, retry the request",
	TemplateNotFoundError:       "The requested template does not exist",
	DeviceBusyError:             "The device has an active order, pricing cannot change",
}
