package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

type handlerFunc func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

func newHandler(r *discord.Router, b discord.Bindings, log *zap.Logger) handlerFunc {
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		log.Debug("webhook hit",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RawPath),
			zap.String("ip", req.RequestContext.HTTP.SourceIP),
			zap.Bool("b64", req.IsBase64Encoded))

		hreq, err := toHTTPRequest(ctx, req)
		if err != nil {
			log.Warn("webhook: bad request", zap.Error(err))
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "Bad Request"}, nil
		}

		res, err := r.Fetch(ctx, hreq, b, nil)
		if err != nil {
			res = r.ErrorResponse(err)
		}
		return toAPIGWResponse(res), nil
	}
}

// toHTTPRequest reconstruye el request con el body crudo: la firma se verifica sobre esos bytes.
func toHTTPRequest(ctx context.Context, req events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		dec, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 body: %w", err)
		}
		body = dec
	}

	method := req.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodPost
	}
	path := req.RawPath
	if path == "" {
		path = "/"
	}
	if req.RawQueryString != "" {
		path += "?" + req.RawQueryString
	}

	hreq, err := http.NewRequestWithContext(ctx, method, "https://lambda.local"+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}
	return hreq, nil
}

func toAPIGWResponse(res *discord.Response) events.APIGatewayV2HTTPResponse {
	headers := make(map[string]string, len(res.Header))
	for k := range res.Header {
		headers[k] = res.Header.Get(k)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: res.Status,
		Headers:    headers,
		Body:       string(res.Body),
	}
}
