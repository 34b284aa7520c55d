package main

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/wolfman30/client-search/internal/app/bootstrap"
	appconfig "github.com/wolfman30/client-search/internal/config"
	"github.com/wolfman30/client-search/internal/leadsearch"
	"github.com/wolfman30/client-search/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	logger := logging.New(cfg.LogLevel)

	// Nothing scrapes a Lambda process, so request metrics stay off here.
	handler, err := bootstrap.BuildSearchHandler(cfg, logger, nil)
	if err != nil {
		panic(err)
	}

	lambda.Start(func(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handle(ctx, handler, evt), nil
	})
}

func handle(ctx context.Context, h *leadsearch.Handler, evt events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	resp := h.Handle(ctx, leadsearch.Request{
		Method: evt.HTTPMethod,
		Params: evt.QueryStringParameters,
		UserID: headerValue(evt.Headers, leadsearch.UserIDHeader),
	})
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: false,
	}
}

func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
