package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/pos-terminal/constant"
	"github.com/muhammadheryan/pos-terminal/utils/errors"
)

type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []ErrorItem `json:"errors,omitempty"`
}

type ErrorItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

// writeError renders the first error as the response status and lists every error
// when several validation rules failed at once.
func writeError(w http.ResponseWriter, err error) {
	errs := errors.Flatten(err)
	if len(errs) == 0 {
		errs = []errors.CustomError{errors.SetCustomError(constant.ErrInternal)}
	}

	res := Response{
		Code:    errs[0].ErrorCode(),
		Message: errs[0].Error(),
	}
	if len(errs) > 1 {
		for _, e := range errs {
			res.Errors = append(res.Errors, ErrorItem{Code: e.ErrorCode(), Message: e.Error()})
		}
	}
	writeJSON(w, errs[0].ErrorHTTPCode(), res)
}
