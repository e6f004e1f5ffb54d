package api

import (
	"github.com/gaze-network/royalty-registry/modules/royalty/api/httphandler"
	"github.com/gaze-network/royalty-registry/modules/royalty/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(usecase)
}
